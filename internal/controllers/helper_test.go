package controllers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"routemap_api/internal/config"
	"routemap_api/internal/routes"
	"routemap_api/internal/store"
	"routemap_api/internal/testutil"
)

// setup points the global store client at a fresh fake backing store and
// builds the full router, so tests exercise the real routing table.
func setup(t *testing.T) (*testutil.FakeStore, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	f := testutil.NewFakeStore()
	t.Cleanup(f.Close)
	config.Store = store.New(f.URL(), "test-key")
	return f, routes.SetupRouter()
}

func do(t *testing.T, r http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, into any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), into), "body: %s", w.Body.String())
}
