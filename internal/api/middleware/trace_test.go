package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func traceRecordingHandler(got *string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*got = TraceIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestTraceMiddlewareHonorsWellFormedID(t *testing.T) {
	id := uuid.NewString()
	var got string

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Trace-ID", id)
	rec := httptest.NewRecorder()
	TraceMiddleware(traceRecordingHandler(&got)).ServeHTTP(rec, req)

	assert.Equal(t, id, got)
	assert.Equal(t, id, rec.Header().Get("X-Trace-ID"))
}

func TestTraceMiddlewareReplacesMalformedID(t *testing.T) {
	var got string

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Trace-ID", "not-a-uuid")
	rec := httptest.NewRecorder()
	TraceMiddleware(traceRecordingHandler(&got)).ServeHTTP(rec, req)

	require.NotEqual(t, "not-a-uuid", got)
	_, err := uuid.Parse(got)
	assert.NoError(t, err)
	assert.Equal(t, got, rec.Header().Get("X-Trace-ID"))
}
