package evaluation

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/de-tools/eval-atlas/pkg/adapters"
	"github.com/de-tools/eval-atlas/pkg/models/api"
	"github.com/de-tools/eval-atlas/pkg/services/console"
	"github.com/de-tools/eval-atlas/pkg/services/loader"
	"github.com/de-tools/eval-atlas/pkg/services/navigation"
	"github.com/de-tools/eval-atlas/pkg/services/trigger"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

type sessionKey struct{}

type Handler struct {
	sessions *Sessions
	loader   *loader.Loader
}

func NewHandler(sessions *Sessions, l *loader.Loader) *Handler {
	return &Handler{
		sessions: sessions,
		loader:   l,
	}
}

// Routes mounts the session and run endpoints on r.
func (h *Handler) Routes(r chi.Router) {
	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", h.CreateSession)
		r.Route("/{session}", func(r chi.Router) {
			r.Use(h.withSession)
			r.Get("/", h.GetSession)
			r.Delete("/", h.CloseSession)
			r.Post("/businesses/{business}", h.SelectBusiness)
			r.Post("/assessments/{assessment}", h.SelectAssessment)
			r.Post("/runs/{run}", h.SelectRun)
			r.Post("/breakdown", h.ViewBreakdown)
			r.Post("/interviews/{source}", h.SelectInterview)
			r.Post("/back", h.Back)
			r.Post("/refresh", h.Refresh)
			r.Post("/jump/{level}", h.JumpTo)
			r.Post("/evaluations/{assessment}", h.TriggerEvaluation)
			r.Post("/flags/{flag}/resolve", h.ResolveFlag)
			r.Post("/insights", h.LoadInsights)
		})
	})
	r.Get("/runs/{run}/position", h.GetRunPosition)
}

func (h *Handler) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "session")
		c, err := h.sessions.Get(id)
		if err != nil {
			writeError(w, r, err)
			return
		}

		logger := zerolog.Ctx(r.Context()).With().Str("session", id).Logger()
		ctx := context.WithValue(logger.WithContext(r.Context()), sessionKey{}, c)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func sessionFromRequest(r *http.Request) (string, *console.Console) {
	c, _ := r.Context().Value(sessionKey{}).(*console.Console)
	return chi.URLParam(r, "session"), c
}

func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	id, c, err := h.sessions.Create(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, mapSessionView(id, c.View()))
}

func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	id, c := sessionFromRequest(r)
	writeJSON(w, r, http.StatusOK, mapSessionView(id, c.View()))
}

func (h *Handler) CloseSession(w http.ResponseWriter, r *http.Request) {
	id, _ := sessionFromRequest(r)
	if err := h.sessions.Close(id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) SelectBusiness(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, func(ctx context.Context, c *console.Console) error {
		return c.SelectBusiness(ctx, chi.URLParam(r, "business"))
	})
}

func (h *Handler) SelectAssessment(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, func(ctx context.Context, c *console.Console) error {
		return c.SelectAssessment(ctx, chi.URLParam(r, "assessment"))
	})
}

func (h *Handler) SelectRun(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, func(ctx context.Context, c *console.Console) error {
		return c.SelectRun(ctx, chi.URLParam(r, "run"))
	})
}

func (h *Handler) ViewBreakdown(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, func(_ context.Context, c *console.Console) error {
		return c.ViewBreakdown()
	})
}

func (h *Handler) SelectInterview(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, func(_ context.Context, c *console.Console) error {
		return c.SelectInterview(chi.URLParam(r, "source"))
	})
}

func (h *Handler) Back(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, func(ctx context.Context, c *console.Console) error {
		return c.Back(ctx)
	})
}

func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, func(ctx context.Context, c *console.Console) error {
		return c.Refresh(ctx)
	})
}

func (h *Handler) JumpTo(w http.ResponseWriter, r *http.Request) {
	level, err := navigation.ParseLevel(chi.URLParam(r, "level"))
	if err != nil {
		writeJSON(w, r, http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}
	h.act(w, r, func(ctx context.Context, c *console.Console) error {
		return c.JumpTo(ctx, level)
	})
}

func (h *Handler) TriggerEvaluation(w http.ResponseWriter, r *http.Request) {
	id, c := sessionFromRequest(r)
	result, err := c.TriggerEvaluation(r.Context(), chi.URLParam(r, "assessment"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, api.TriggerView{
		RunID:     result.RunID,
		RunNumber: result.RunNumber,
		Status:    string(result.Status),
		Session:   mapSessionView(id, c.View()),
	})
}

func (h *Handler) ResolveFlag(w http.ResponseWriter, r *http.Request) {
	var req api.ResolveFlagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, r, http.StatusBadRequest, api.ErrorResponse{Error: "invalid request body"})
		return
	}
	h.act(w, r, func(ctx context.Context, c *console.Console) error {
		return c.ResolveFlag(ctx, chi.URLParam(r, "flag"), req.Resolution)
	})
}

func (h *Handler) LoadInsights(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, func(ctx context.Context, c *console.Console) error {
		return c.LoadInsights(ctx)
	})
}

// GetRunPosition aggregates a run's scores without a session.
func (h *Handler) GetRunPosition(w http.ResponseWriter, r *http.Request) {
	runID := chi.URLParam(r, "run")
	bundle, err := h.loader.LoadRunDetail(r.Context(), runID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	rv := console.BuildRunView(*bundle, navigation.SubLevelSummary, "")
	writeJSON(w, r, http.StatusOK, api.RunPositionView{
		RunID:    runID,
		Status:   string(rv.Detail.Status),
		Metrics:  adapters.MapDomainMetricsToApi(rv.Metrics),
		Position: adapters.MapDomainPositionToApi(rv.Position),
	})
}

// act runs one session action and responds with the resulting view.
func (h *Handler) act(w http.ResponseWriter, r *http.Request, action func(context.Context, *console.Console) error) {
	id, c := sessionFromRequest(r)
	if err := action(r.Context(), c); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, mapSessionView(id, c.View()))
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrSessionNotFound),
		errors.Is(err, console.ErrClosed),
		errors.Is(err, console.ErrUnknownEntity):
		return http.StatusNotFound
	case errors.Is(err, navigation.ErrInvalidTransition),
		errors.Is(err, console.ErrNoRunSelected),
		errors.Is(err, trigger.ErrTriggerInProgress):
		return http.StatusConflict
	case errors.Is(err, trigger.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadGateway
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	zerolog.Ctx(r.Context()).Warn().Err(err).Int("status", status).Msg("request failed")
	writeJSON(w, r, status, api.ErrorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to encode response")
	}
}
