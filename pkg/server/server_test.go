package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/de-tools/eval-atlas/pkg/handlers/evaluation"
	"github.com/de-tools/eval-atlas/pkg/models/api"
	"github.com/de-tools/eval-atlas/pkg/services/console"
	"github.com/de-tools/eval-atlas/pkg/services/loader"
	"github.com/de-tools/eval-atlas/pkg/store/client/clienttest"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestWebAPI_Endpoints(t *testing.T) {
	logger := zerolog.New(zerolog.NewTestWriter(t))

	m := new(clienttest.MockAdminClient)
	l := loader.NewLoader(m, nil)
	sessions := evaluation.NewSessions(func(onError func(string)) *console.Console {
		cfg := console.DefaultConfig()
		cfg.OnError = onError
		return console.New(m, l, cfg)
	}, 0)
	defer sessions.CloseAll()

	config := Config{
		Addr:            ":8080",
		ShutdownTimeout: 10 * time.Second,
		Dependencies: Dependencies{
			Loader:   l,
			Sessions: sessions,
			Logger:   logger,
		},
	}
	router := ConfigureRouter(config)
	testServer := httptest.NewServer(router)
	defer testServer.Close()

	tests := []struct {
		name           string
		method         string
		path           string
		setupMocks     func()
		expectedStatus int
		expected       interface{}
		parseResponse  func([]byte) (interface{}, error)
	}{
		{
			name:           "Health",
			method:         http.MethodGet,
			path:           "/healthz",
			setupMocks:     func() {},
			expectedStatus: http.StatusOK,
			expected:       "",
			parseResponse: func(data []byte) (interface{}, error) {
				return string(data), nil
			},
		},
		{
			name:   "CreateSession",
			method: http.MethodPost,
			path:   "/api/v1/sessions",
			setupMocks: func() {
				m.On("GetBusinessesWithEvaluations", mock.Anything).
					Return([]api.Business{{ID: "b-1", Name: "Acme"}}, nil)
				m.On("GetBusinessReviews", mock.Anything, "b-1").
					Return(&api.BusinessReviews{}, nil)
			},
			expectedStatus: http.StatusCreated,
			expected:       []string{"Acme"},
			parseResponse: func(data []byte) (interface{}, error) {
				res, err := unmarshalResponse[api.SessionView]()(data)
				if err != nil {
					return nil, err
				}
				names := make([]string, 0)
				for _, b := range res.(api.SessionView).Businesses {
					names = append(names, b.Name)
				}
				return names, nil
			},
		},
		{
			name:           "UnknownSession",
			method:         http.MethodGet,
			path:           "/api/v1/sessions/missing",
			setupMocks:     func() {},
			expectedStatus: http.StatusNotFound,
			expected:       api.ErrorResponse{Error: evaluation.ErrSessionNotFound.Error()},
			parseResponse:  unmarshalResponse[api.ErrorResponse](),
		},
		{
			name:   "RunPosition",
			method: http.MethodGet,
			path:   "/api/v1/runs/r-1/position",
			setupMocks: func() {
				m.On("GetEvaluationRun", mock.Anything, "r-1").
					Return(clienttest.RunDetail("r-1", "a-1", "completed"), nil)
				m.On("GetEvaluationScores", mock.Anything, "r-1").Return(clienttest.Scores(), nil)
			},
			expectedStatus: http.StatusOK,
			expected:       "At-Risk",
			parseResponse: func(data []byte) (interface{}, error) {
				res, err := unmarshalResponse[api.RunPositionView]()(data)
				if err != nil {
					return nil, err
				}
				return res.(api.RunPositionView).Position.Quadrant, nil
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.setupMocks()
			req, err := http.NewRequest(tc.method, testServer.URL+tc.path, nil)
			require.NoError(t, err)
			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err, "Failed to send request")
			defer resp.Body.Close()

			assert.Equal(t, tc.expectedStatus, resp.StatusCode, "Status code mismatch")
			assert.NotEmpty(t, resp.Header.Get("X-Request-Id"), "Request id missing")

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err, "Failed to read response body")

			actual, err := tc.parseResponse(body)
			require.NoError(t, err, "Failed to parse response")

			assert.Equal(t, tc.expected, actual)
		})
	}
}

func unmarshalResponse[T any]() func([]byte) (interface{}, error) {
	return func(data []byte) (interface{}, error) {
		var result T
		err := json.Unmarshal(data, &result)
		return result, err
	}
}
