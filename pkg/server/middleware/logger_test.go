package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(Logger(&logger))
	router.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		zerolog.Ctx(r.Context()).Info().Msg("handled")
		w.WriteHeader(http.StatusTeapot)
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)

	var handled, completed map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &handled))
	require.NoError(t, json.Unmarshal(lines[1], &completed))

	assert.Equal(t, "handled", handled["message"])
	assert.Equal(t, "GET", handled["method"])
	assert.Equal(t, "/ping", handled["path"])
	assert.Equal(t, rec.Header().Get(middleware.RequestIDHeader), handled["request_id"])

	assert.Equal(t, "request completed", completed["message"])
	assert.Equal(t, float64(http.StatusTeapot), completed["status"])
	assert.Equal(t, handled["request_id"], completed["request_id"])
}
