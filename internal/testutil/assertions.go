package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertStatusCode checks the response status and dumps the body on mismatch
func AssertStatusCode(t *testing.T, resp *http.Response, expected int) {
	t.Helper()

	if resp.StatusCode != expected {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("expected status %d, got %d: %s", expected, resp.StatusCode, string(body))
	}
}

// AssertJSONResponse decodes the response body into target
func AssertJSONResponse(t *testing.T, resp *http.Response, target interface{}) {
	t.Helper()

	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(target))
}

// AssertErrorResponse checks the machine-readable error code in the body
func AssertErrorResponse(t *testing.T, resp *http.Response, expectedStatus int, expectedCode string) {
	t.Helper()

	AssertStatusCode(t, resp, expectedStatus)

	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	AssertJSONResponse(t, resp, &body)
	assert.Equal(t, expectedCode, body.Error)
}
