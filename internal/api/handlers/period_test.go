package handlers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/satyam/medicare-backend/internal/testutil"
)

type nextPeriodResponse struct {
	NextPeriodDate string `json:"nextPeriodDate"`
}

func TestSetPeriodAndGetNext(t *testing.T) {
	ts := testutil.NewTestServer(t, testutil.NewFakeLLM())
	_, authToken := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)

	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	resp := doJSON(t, http.MethodPost, ts.Server.URL+"/set-period", "Bearer "+authToken, map[string]string{
		"startDate": start.Format(time.RFC3339),
	})
	var setResp nextPeriodResponse
	testutil.AssertStatusCode(t, resp, http.StatusOK)
	testutil.AssertJSONResponse(t, resp, &setResp)
	resp.Body.Close()

	want := start.AddDate(0, 0, 28).Format(time.RFC3339)
	assert.Equal(t, want, setResp.NextPeriodDate)

	resp = doJSON(t, http.MethodGet, ts.Server.URL+"/get-next-period", "Bearer "+authToken, nil)
	var getResp nextPeriodResponse
	testutil.AssertStatusCode(t, resp, http.StatusOK)
	testutil.AssertJSONResponse(t, resp, &getResp)
	resp.Body.Close()

	assert.Equal(t, want, getResp.NextPeriodDate)
}

func TestGetNextPeriod_NothingLogged(t *testing.T) {
	ts := testutil.NewTestServer(t, testutil.NewFakeLLM())
	_, authToken := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)

	resp := doJSON(t, http.MethodGet, ts.Server.URL+"/get-next-period", authToken, nil)
	testutil.AssertErrorResponse(t, resp, http.StatusNotFound, "No period logged yet")
	resp.Body.Close()
}

func TestSetPeriod_Validation(t *testing.T) {
	ts := testutil.NewTestServer(t, testutil.NewFakeLLM())
	_, authToken := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)

	resp := doJSON(t, http.MethodPost, ts.Server.URL+"/set-period", authToken, map[string]string{
		"startDate": "yesterday",
	})
	testutil.AssertErrorResponse(t, resp, http.StatusBadRequest, "startDate must be an ISO timestamp")
	resp.Body.Close()
}
