package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aescanero/dago-node-preview/internal/preview"
	"github.com/aescanero/dago-node-preview/internal/variables"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakePinger struct {
	err error
}

func (p fakePinger) Ping(ctx context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", p.err)
}

func newTestServer(t *testing.T, pinger Pinger) http.Handler {
	t.Helper()
	svc, err := preview.NewService(preview.Options{MaxTemplateBytes: 64}, zap.NewNop())
	require.NoError(t, err)
	return NewServer(0, svc, pinger, zap.NewNop()).Router()
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestPreviewEndpoint(t *testing.T) {
	h := newTestServer(t, nil)

	rec := do(t, h, http.MethodPost, "/v1/preview",
		`{"template":"<p>{{ name }}</p>","rows":[{"key":"name","value":"World"}]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var result preview.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.True(t, result.Rendered)
	assert.Equal(t, "<p>World</p>", result.Output)
	assert.NotEmpty(t, result.ID)
}

func TestPreviewEndpointGateClosed(t *testing.T) {
	h := newTestServer(t, nil)

	rec := do(t, h, http.MethodPost, "/v1/preview",
		`{"template":"{{a}}","rows":[{"key":"a","value":"1"},{"key":"a","value":"2"}]}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var result preview.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.False(t, result.Rendered)
	assert.Equal(t, []string{"a"}, result.Report.Duplicates)
}

func TestRenderEndpoint(t *testing.T) {
	h := newTestServer(t, nil)

	rec := do(t, h, http.MethodPost, "/v1/render",
		`{"id":"r1","template":"{{a}}-{{b}}","rows":[{"key":"z","value":1},{"key":"a","value":"1"},{"key":"a","value":"2"},{"key":"b","value":null}]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"variables":{"z":"1","b":"null"}`)

	var result preview.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "r1", result.ID)
	assert.Equal(t, "{{a}}-null", result.Output)
}

func TestValidateEndpoint(t *testing.T) {
	h := newTestServer(t, nil)

	rec := do(t, h, http.MethodPost, "/v1/validate", `{"rows":[{"key":"ok"},{"key":"1bad"}]}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var report variables.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.False(t, report.Valid)
	assert.Equal(t, variables.ProblemInvalid, report.Rows[1].Problem)
}

func TestBadRequests(t *testing.T) {
	h := newTestServer(t, nil)

	rec := do(t, h, http.MethodPost, "/v1/preview", `{"template":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodPost, "/v1/render", `{"template":"`+strings.Repeat("x", 65)+`"}`)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)

	rec = do(t, h, http.MethodGet, "/v1/preview", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHealthEndpoints(t *testing.T) {
	rec := do(t, newTestServer(t, nil), http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"redis":"disabled"`)

	rec = do(t, newTestServer(t, fakePinger{}), http.MethodGet, "/ready", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	down := newTestServer(t, fakePinger{err: errors.New("connection refused")})

	rec = do(t, down, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "connection refused")

	rec = do(t, down, http.MethodGet, "/ready", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
