package testutils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type TestServer struct {
	*httptest.Server
	t *testing.T
}

func NewTestServer(t *testing.T, handler http.Handler) *TestServer {
	server := httptest.NewServer(handler)
	return &TestServer{
		Server: server,
		t:      t,
	}
}

func (ts *TestServer) GET(path string) *http.Response {
	resp, err := http.Get(ts.URL + path)
	require.NoError(ts.t, err)
	return resp
}

// POSTXML sends body as an application/xml request.
func (ts *TestServer) POSTXML(path, body string) *http.Response {
	resp, err := http.Post(ts.URL+path, "application/xml", strings.NewReader(body))
	require.NoError(ts.t, err)
	return resp
}

func (ts *TestServer) OPTIONS(path string) *http.Response {
	req, err := http.NewRequest(http.MethodOptions, ts.URL+path, nil)
	require.NoError(ts.t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(ts.t, err)
	return resp
}

func AssertJSONResponse(t *testing.T, resp *http.Response, expectedStatus int, target interface{}) {
	require.Equal(t, expectedStatus, resp.StatusCode)

	if target != nil {
		defer resp.Body.Close()
		err := json.NewDecoder(resp.Body).Decode(target)
		require.NoError(t, err)
	}
}

func AssertErrorResponse(t *testing.T, resp *http.Response, expectedStatus int, expectedMessage string) {
	require.Equal(t, expectedStatus, resp.StatusCode)

	defer resp.Body.Close()
	var errorResp map[string]interface{}
	err := json.NewDecoder(resp.Body).Decode(&errorResp)
	require.NoError(t, err)

	if expectedMessage != "" {
		require.Contains(t, errorResp["error"], expectedMessage)
	}
}
