package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satyam/medicare-backend/internal/domain"
	"github.com/satyam/medicare-backend/internal/testutil"
)

func doJSON(t *testing.T, method, url, token string, body interface{}) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func TestMedicines_RequireAuth(t *testing.T) {
	ts := testutil.NewTestServer(t, testutil.NewFakeLLM())

	resp := doJSON(t, http.MethodGet, ts.Server.URL+"/medicines", "", nil)
	testutil.AssertStatusCode(t, resp, http.StatusUnauthorized)
	resp.Body.Close()

	resp = doJSON(t, http.MethodGet, ts.Server.URL+"/medicines", "not-a-token", nil)
	testutil.AssertStatusCode(t, resp, http.StatusUnauthorized)
	resp.Body.Close()
}

func TestMedicines_AddAndList(t *testing.T) {
	ts := testutil.NewTestServer(t, testutil.NewFakeLLM())
	_, authToken := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)

	// capsulesLeft arrives as a string from the mobile client's text input.
	resp := doJSON(t, http.MethodPost, ts.Server.URL+"/add-medicine", authToken, map[string]interface{}{
		"name":         "Paracetamol",
		"dosage":       "500mg",
		"schedule":     "after meals",
		"capsulesLeft": "12",
	})
	testutil.AssertStatusCode(t, resp, http.StatusCreated)
	resp.Body.Close()

	// A numeric capsulesLeft works too.
	resp = doJSON(t, http.MethodPost, ts.Server.URL+"/add-medicine", authToken, map[string]interface{}{
		"name":         "Ibuprofen",
		"dosage":       "200mg",
		"capsulesLeft": 24,
	})
	testutil.AssertStatusCode(t, resp, http.StatusCreated)
	resp.Body.Close()

	// The schedule screen sends "Bearer <token>"; both header shapes verify.
	resp = doJSON(t, http.MethodGet, ts.Server.URL+"/medicines", "Bearer "+authToken, nil)
	var meds []domain.Medication
	testutil.AssertStatusCode(t, resp, http.StatusOK)
	testutil.AssertJSONResponse(t, resp, &meds)
	resp.Body.Close()

	require.Len(t, meds, 2)
	assert.Equal(t, "Paracetamol", meds[0].Name)
	assert.Equal(t, 12, meds[0].CapsulesLeft)
	assert.Equal(t, 24, meds[1].CapsulesLeft)
}

func TestMedicines_ScopedToOwner(t *testing.T) {
	ts := testutil.NewTestServer(t, testutil.NewFakeLLM())

	owner, _ := testutil.NewUserBuilder().Build(t, ts.DB.DB)
	testutil.NewMedicationBuilder(owner.ID).WithName("private-med").Build(t, ts.DB.DB)

	_, otherToken := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)

	resp := doJSON(t, http.MethodGet, ts.Server.URL+"/medicines", otherToken, nil)
	var meds []domain.Medication
	testutil.AssertStatusCode(t, resp, http.StatusOK)
	testutil.AssertJSONResponse(t, resp, &meds)
	resp.Body.Close()

	assert.Empty(t, meds, "other users' medications must not leak")
}

func TestUpdateMedicationTime(t *testing.T) {
	ts := testutil.NewTestServer(t, testutil.NewFakeLLM())
	user, authToken := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)
	med := testutil.NewMedicationBuilder(user.ID).Build(t, ts.DB.DB)

	url := fmt.Sprintf("%s/update-medication-time/%s", ts.Server.URL, med.ID)

	// The client sends the slot capitalized.
	resp := doJSON(t, http.MethodPatch, url, authToken, map[string]interface{}{
		"time": "Morning", "selected": true,
	})
	testutil.AssertStatusCode(t, resp, http.StatusOK)
	resp.Body.Close()

	// Idempotent: setting the same slot to the same value succeeds again.
	resp = doJSON(t, http.MethodPatch, url, authToken, map[string]interface{}{
		"time": "morning", "selected": true,
	})
	testutil.AssertStatusCode(t, resp, http.StatusOK)
	resp.Body.Close()

	got, err := ts.Repos.Medication.GetByID(context.Background(), med.ID)
	require.NoError(t, err)
	assert.True(t, got.Morning)
	assert.False(t, got.Evening)
	assert.False(t, got.Night)
}

func TestUpdateMedicationTime_Errors(t *testing.T) {
	ts := testutil.NewTestServer(t, testutil.NewFakeLLM())
	user, authToken := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)
	med := testutil.NewMedicationBuilder(user.ID).Build(t, ts.DB.DB)

	tests := []struct {
		name       string
		id         string
		body       map[string]interface{}
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "unknown medication",
			id:         uuid.New().String(),
			body:       map[string]interface{}{"time": "morning", "selected": true},
			wantStatus: http.StatusNotFound,
			wantMsg:    "Medication not found",
		},
		{
			name:       "invalid slot",
			id:         med.ID.String(),
			body:       map[string]interface{}{"time": "afternoon", "selected": true},
			wantStatus: http.StatusBadRequest,
			wantMsg:    "Invalid medication time slot",
		},
		{
			name:       "malformed id",
			id:         "not-a-uuid",
			body:       map[string]interface{}{"time": "morning", "selected": true},
			wantStatus: http.StatusBadRequest,
			wantMsg:    "Invalid medication id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			url := fmt.Sprintf("%s/update-medication-time/%s", ts.Server.URL, tt.id)
			resp := doJSON(t, http.MethodPatch, url, authToken, tt.body)
			testutil.AssertErrorResponse(t, resp, tt.wantStatus, tt.wantMsg)
			resp.Body.Close()
		})
	}
}
