package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satyam/medicare-backend/internal/testutil"
)

func postJSON(t *testing.T, url string, body interface{}) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	return resp
}

func getWithAuth(t *testing.T, url, authHeader string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, url, nil)
	require.NoError(t, err)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func TestSignupLoginProtectedFlow(t *testing.T) {
	ts := testutil.NewTestServer(t, testutil.NewFakeLLM())

	// signup {username:"amy", password:"p1"} -> 201
	resp := postJSON(t, ts.Server.URL+"/signup", map[string]string{
		"username": "amy",
		"password": "p1",
	})
	testutil.AssertStatusCode(t, resp, http.StatusCreated)
	resp.Body.Close()

	// login with the same credentials -> 200 with token
	resp = postJSON(t, ts.Server.URL+"/login", map[string]string{
		"username": "amy",
		"password": "p1",
	})
	var login testutil.LoginResponse
	testutil.AssertStatusCode(t, resp, http.StatusOK)
	testutil.AssertJSONResponse(t, resp, &login)
	resp.Body.Close()
	require.NotEmpty(t, login.Token)
	assert.Equal(t, "amy", login.Username)

	// GET /protected with the raw token -> 200 with amy's id
	resp = getWithAuth(t, ts.Server.URL+"/protected", login.Token)
	var protected struct {
		UserID string `json:"userId"`
	}
	testutil.AssertStatusCode(t, resp, http.StatusOK)
	testutil.AssertJSONResponse(t, resp, &protected)
	resp.Body.Close()

	subject, err := ts.Tokens.Verify(login.Token)
	require.NoError(t, err)
	assert.Equal(t, subject.String(), protected.UserID)

	// GET /protected with no header -> 403
	resp = getWithAuth(t, ts.Server.URL+"/protected", "")
	testutil.AssertErrorResponse(t, resp, http.StatusForbidden, "No token provided")
	resp.Body.Close()

	// GET /protected with an unverifiable token -> 500 (original contract)
	resp = getWithAuth(t, ts.Server.URL+"/protected", "garbage-token")
	testutil.AssertErrorResponse(t, resp, http.StatusInternalServerError, "Failed to authenticate token")
	resp.Body.Close()
}

func TestSignup_Duplicate(t *testing.T) {
	ts := testutil.NewTestServer(t, testutil.NewFakeLLM())

	resp := postJSON(t, ts.Server.URL+"/signup", map[string]string{
		"username": "amy",
		"email":    "amy@example.com",
		"password": "p1",
	})
	testutil.AssertStatusCode(t, resp, http.StatusCreated)
	resp.Body.Close()

	resp = postJSON(t, ts.Server.URL+"/signup", map[string]string{
		"username": "amy",
		"password": "p2",
	})
	testutil.AssertErrorResponse(t, resp, http.StatusBadRequest, "Username already exists")
	resp.Body.Close()

	resp = postJSON(t, ts.Server.URL+"/signup", map[string]string{
		"username": "amy2",
		"email":    "amy@example.com",
		"password": "p2",
	})
	testutil.AssertErrorResponse(t, resp, http.StatusBadRequest, "Email already exists")
	resp.Body.Close()
}

func TestLogin_InvalidCredentials(t *testing.T) {
	ts := testutil.NewTestServer(t, testutil.NewFakeLLM())

	testutil.NewUserBuilder().WithUsername("amy").WithPassword("p1").Build(t, ts.DB.DB)

	// Wrong password and unknown user produce the identical response body.
	wrongPass := postJSON(t, ts.Server.URL+"/login", map[string]string{
		"username": "amy", "password": "wrong",
	})
	unknownUser := postJSON(t, ts.Server.URL+"/login", map[string]string{
		"username": "nobody", "password": "p1",
	})
	defer wrongPass.Body.Close()
	defer unknownUser.Body.Close()

	testutil.AssertErrorResponse(t, wrongPass, http.StatusUnauthorized, "Invalid username or password")
	testutil.AssertErrorResponse(t, unknownUser, http.StatusUnauthorized, "Invalid username or password")
}

func TestLogin_ByEmailField(t *testing.T) {
	ts := testutil.NewTestServer(t, testutil.NewFakeLLM())

	testutil.NewUserBuilder().
		WithUsername("amy").
		WithEmail("amy@example.com").
		WithPassword("p1").
		Build(t, ts.DB.DB)

	// The later client variant posts {email, password}.
	resp := postJSON(t, ts.Server.URL+"/login", map[string]string{
		"email":    "amy@example.com",
		"password": "p1",
	})
	var login testutil.LoginResponse
	testutil.AssertStatusCode(t, resp, http.StatusOK)
	testutil.AssertJSONResponse(t, resp, &login)
	resp.Body.Close()
	assert.Equal(t, "amy", login.Username, "login response echoes the username for the client")
}
