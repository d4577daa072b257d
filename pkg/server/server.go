package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/de-tools/eval-atlas/pkg/handlers/evaluation"
	"github.com/de-tools/eval-atlas/pkg/services/loader"
	evalatlasmiddleware "github.com/de-tools/eval-atlas/pkg/server/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

const DefaultShutdownTimeout = 10 * time.Second

type WebAPI struct {
	router   *chi.Mux
	logger   *zerolog.Logger
	server   *http.Server
	sessions *evaluation.Sessions
	timeout  time.Duration
}

type Dependencies struct {
	Loader   *loader.Loader
	Sessions *evaluation.Sessions
	Logger   zerolog.Logger
}

type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	Dependencies    Dependencies
}

// ConfigureRouter builds the API router without binding a listener.
func ConfigureRouter(config Config) *chi.Mux {
	logger := config.Dependencies.Logger
	evalHandler := evaluation.NewHandler(config.Dependencies.Sessions, config.Dependencies.Loader)

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(evalatlasmiddleware.Logger(&logger))
	router.Use(middleware.Recoverer)

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	router.Route("/api/v1", evalHandler.Routes)

	return router
}

func NewWebAPI(config Config) *WebAPI {
	router := ConfigureRouter(config)
	logger := config.Dependencies.Logger

	timeout := config.ShutdownTimeout
	if timeout <= 0 {
		timeout = DefaultShutdownTimeout
	}

	return &WebAPI{
		router:   router,
		logger:   &logger,
		sessions: config.Dependencies.Sessions,
		timeout:  timeout,
		server: &http.Server{
			Addr:              config.Addr,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

func (w *WebAPI) Start() error {
	serverErrors := make(chan error, 1)
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	janitorCtx, stopJanitor := context.WithCancel(w.logger.WithContext(context.Background()))
	defer stopJanitor()
	go w.sessions.RunJanitor(janitorCtx, w.sessions.JanitorInterval())

	go func() {
		w.logger.Info().Str("addr", w.server.Addr).Msg("starting server")
		serverErrors <- w.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-shutdown:
		w.logger.Info().Msg("shutdown initiated")
		return w.Shutdown()
	}
}

// Shutdown drains outstanding requests and then closes every session so
// that no poll outlives the server.
func (w *WebAPI) Shutdown() error {
	defer w.sessions.CloseAll()

	ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
	defer cancel()

	err := w.server.Shutdown(ctx)
	if err != nil {
		w.logger.Error().Err(err).Msg("graceful shutdown failed")
		err = w.server.Close()
	}
	return err
}
