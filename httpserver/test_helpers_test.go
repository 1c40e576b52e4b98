package httpserver_test

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"watchlist/httpserver"
	"watchlist/pkg/config"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.TMDB.APIKey = "test-key"
	return cfg
}

func decodeAPIResponse(t *testing.T, recorder *httptest.ResponseRecorder) httpserver.APIResponse {
	t.Helper()
	var resp httpserver.APIResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	return resp
}

func decodeAPIResult(t *testing.T, result interface{}, out interface{}) {
	t.Helper()
	raw, err := json.Marshal(result)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, out))
}
