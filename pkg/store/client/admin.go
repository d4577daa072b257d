package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/de-tools/eval-atlas/pkg/models/api"
	"github.com/de-tools/eval-atlas/pkg/services/auth"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	defaultTimeout  = 30 * time.Second
	requestIDHeader = "X-Request-ID"
)

// AdminClient is the subset of the admin REST API used by the evaluation console.
type AdminClient interface {
	GetBusinessesWithEvaluations(ctx context.Context) ([]api.Business, error)
	GetBusinessReviews(ctx context.Context, businessID string) (*api.BusinessReviews, error)
	GetAssessmentEvaluationRuns(ctx context.Context, assessmentID string) ([]api.EvaluationRunSummary, error)
	GetEvaluationRun(ctx context.Context, runID string) (*api.EvaluationRunDetail, error)
	GetEvaluationScores(ctx context.Context, runID string) (*api.EvaluationScoresResponse, error)
	RunEvaluation(ctx context.Context, assessmentID string) (*api.RunEvaluationResponse, error)
	ResolveFlag(ctx context.Context, flagID, resolution string) (*api.MessageResponse, error)
	GetRefinedReport(ctx context.Context, runID string) (*api.RefinedReport, error)
}

type Config struct {
	Host    string
	Timeout time.Duration
}

// APIError is returned for any non-2xx response.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("admin api returned %d: %s", e.StatusCode, e.Message)
}

// IsNotFound reports whether err is an APIError with status 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

type adminClient struct {
	baseURL *url.URL
	session *auth.Session
	http    *http.Client
}

func NewAdminClient(cfg Config, session *auth.Session) (AdminClient, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("admin api host is empty")
	}
	if session == nil {
		return nil, fmt.Errorf("auth session is nil")
	}

	host := cfg.Host
	if !strings.Contains(host, "://") {
		host = "https://" + host
	}
	base, err := url.Parse(strings.TrimSuffix(host, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid admin api host %q: %w", cfg.Host, err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &adminClient{
		baseURL: base,
		session: session,
		http:    &http.Client{Timeout: timeout},
	}, nil
}

func (c *adminClient) GetBusinessesWithEvaluations(ctx context.Context) ([]api.Business, error) {
	var businesses []api.Business
	if err := c.do(ctx, http.MethodGet, "/admin/evaluations/businesses", nil, &businesses); err != nil {
		return nil, err
	}
	return businesses, nil
}

func (c *adminClient) GetBusinessReviews(ctx context.Context, businessID string) (*api.BusinessReviews, error) {
	var reviews api.BusinessReviews
	path := fmt.Sprintf("/admin/businesses/%s/reviews", url.PathEscape(businessID))
	if err := c.do(ctx, http.MethodGet, path, nil, &reviews); err != nil {
		return nil, err
	}
	return &reviews, nil
}

func (c *adminClient) GetAssessmentEvaluationRuns(
	ctx context.Context,
	assessmentID string,
) ([]api.EvaluationRunSummary, error) {
	var runs []api.EvaluationRunSummary
	path := fmt.Sprintf("/admin/assessments/%s/evaluation-runs", url.PathEscape(assessmentID))
	if err := c.do(ctx, http.MethodGet, path, nil, &runs); err != nil {
		return nil, err
	}
	return runs, nil
}

func (c *adminClient) GetEvaluationRun(ctx context.Context, runID string) (*api.EvaluationRunDetail, error) {
	var run api.EvaluationRunDetail
	path := fmt.Sprintf("/admin/evaluation-runs/%s", url.PathEscape(runID))
	if err := c.do(ctx, http.MethodGet, path, nil, &run); err != nil {
		return nil, err
	}
	return &run, nil
}

func (c *adminClient) GetEvaluationScores(ctx context.Context, runID string) (*api.EvaluationScoresResponse, error) {
	var scores api.EvaluationScoresResponse
	path := fmt.Sprintf("/admin/evaluation-runs/%s/scores", url.PathEscape(runID))
	if err := c.do(ctx, http.MethodGet, path, nil, &scores); err != nil {
		return nil, err
	}
	return &scores, nil
}

func (c *adminClient) RunEvaluation(ctx context.Context, assessmentID string) (*api.RunEvaluationResponse, error) {
	var resp api.RunEvaluationResponse
	path := fmt.Sprintf("/admin/assessments/%s/evaluate", url.PathEscape(assessmentID))
	if err := c.do(ctx, http.MethodPost, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *adminClient) ResolveFlag(ctx context.Context, flagID, resolution string) (*api.MessageResponse, error) {
	var resp api.MessageResponse
	path := fmt.Sprintf("/admin/evaluation-flags/%s/resolve", url.PathEscape(flagID))
	body := api.ResolveFlagRequest{Resolution: resolution}
	if err := c.do(ctx, http.MethodPost, path, body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *adminClient) GetRefinedReport(ctx context.Context, runID string) (*api.RefinedReport, error) {
	var report api.RefinedReport
	path := fmt.Sprintf("/admin/evaluation-runs/%s/refined-report", url.PathEscape(runID))
	if err := c.do(ctx, http.MethodGet, path, nil, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

func (c *adminClient) do(ctx context.Context, method, path string, in, out interface{}) error {
	requestID := uuid.New().String()
	logger := zerolog.Ctx(ctx).With().
		Str("method", method).
		Str("path", path).
		Str("request_id", requestID).
		Logger()

	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.String()+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestIDHeader, requestID)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		logger.Warn().Err(err).Msg("admin api request failed")
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func(Body io.ReadCloser) {
		if err := Body.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close response body")
		}
	}(resp.Body)

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	logger.Debug().
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(started)).
		Msg("admin api request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{StatusCode: resp.StatusCode, Message: errorMessage(respBody, resp.Status)}
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to decode %s %s response: %w", method, path, err)
	}
	return nil
}

// errorMessage extracts a human readable message from an error payload.
func errorMessage(body []byte, status string) string {
	var payload struct {
		Detail  string `json:"detail"`
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		for _, msg := range []string{payload.Detail, payload.Message, payload.Error} {
			if msg != "" {
				return msg
			}
		}
	}
	if text := strings.TrimSpace(string(body)); text != "" {
		return text
	}
	return status
}
