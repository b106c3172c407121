package handlers_test

import (
	"bytes"
	"errors"
	"mime/multipart"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satyam/medicare-backend/internal/testutil"
)

type triageResponse struct {
	Response string `json:"response"`
}

func postTriageForm(t *testing.T, url, username, symptoms string) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	require.NoError(t, writer.WriteField("symptoms", symptoms))
	require.NoError(t, writer.WriteField("username", username))
	require.NoError(t, writer.Close())

	resp, err := http.Post(url, writer.FormDataContentType(), &buf)
	require.NoError(t, err)
	return resp
}

func TestGenerateResponse_MultipartForm(t *testing.T) {
	fake := testutil.NewFakeLLM()
	fake.Reply = "1) Possible diagnosis ..."
	ts := testutil.NewTestServer(t, fake)

	resp := postTriageForm(t, ts.Server.URL+"/generate-response", "amy", "persistent cough for a week")
	var body triageResponse
	testutil.AssertStatusCode(t, resp, http.StatusOK)
	testutil.AssertJSONResponse(t, resp, &body)
	resp.Body.Close()

	assert.Equal(t, fake.Reply, body.Response)
	require.NotEmpty(t, fake.Calls)
	assert.Contains(t, fake.Calls[1].Content, "persistent cough for a week")
}

func TestGenerateResponse_GreetingIdempotence(t *testing.T) {
	fake := testutil.NewFakeLLM()
	ts := testutil.NewTestServer(t, fake)

	// First "hi" gets the canned greeting without touching the model.
	resp := postJSON(t, ts.Server.URL+"/generate-response", map[string]string{
		"username": "amy", "symptoms": "hi",
	})
	var first triageResponse
	testutil.AssertStatusCode(t, resp, http.StatusOK)
	testutil.AssertJSONResponse(t, resp, &first)
	resp.Body.Close()
	assert.Contains(t, first.Response, "amy")
	assert.Empty(t, fake.Calls)

	// Second "hi" is ordinary input and goes to the model.
	resp = postJSON(t, ts.Server.URL+"/generate-response", map[string]string{
		"username": "amy", "symptoms": "hi",
	})
	var second triageResponse
	testutil.AssertStatusCode(t, resp, http.StatusOK)
	testutil.AssertJSONResponse(t, resp, &second)
	resp.Body.Close()
	assert.Equal(t, fake.Reply, second.Response)
	assert.NotEmpty(t, fake.Calls)
}

func TestGenerateResponse_UpstreamFailure(t *testing.T) {
	fake := testutil.NewFakeLLM()
	fake.Err = errors.New("upstream down")
	ts := testutil.NewTestServer(t, fake)

	resp := postJSON(t, ts.Server.URL+"/generate-response", map[string]string{
		"username": "amy", "symptoms": "chest pain",
	})
	testutil.AssertErrorResponse(t, resp, http.StatusInternalServerError, "Error generating response")
	resp.Body.Close()
}

func TestGenerateResponse_MissingSymptoms(t *testing.T) {
	ts := testutil.NewTestServer(t, testutil.NewFakeLLM())

	resp := postJSON(t, ts.Server.URL+"/generate-response", map[string]string{
		"username": "amy",
	})
	testutil.AssertStatusCode(t, resp, http.StatusBadRequest)
	resp.Body.Close()
}
