package main

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/Simplici0/costquote/internal/httpx"
	"github.com/Simplici0/costquote/internal/logger"
	"github.com/Simplici0/costquote/internal/model"
	"github.com/Simplici0/costquote/internal/pricing"
	"github.com/Simplici0/costquote/internal/project"
	"github.com/Simplici0/costquote/internal/quote"
	"github.com/Simplici0/costquote/internal/store"
)

const maxBodyBytes = 1 << 20

type settingsStore interface {
	Settings(ctx context.Context) (model.Settings, error)
	SaveSettings(ctx context.Context, st model.Settings) error
}

type server struct {
	settings settingsStore
	projects *project.Service
	quotes   *quote.Service
}

func newServer(st *store.Store) *server {
	return &server{
		settings: st,
		projects: project.NewService(st),
		quotes:   quote.NewService(st),
	}
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/pricing/compute", s.handlePricingCompute)
		r.Post("/overhead/rate", s.handleOverheadRate)

		r.Get("/settings", s.handleSettingsGet)
		r.Put("/settings", s.handleSettingsUpdate)

		r.Get("/projects", s.handleProjectsList)
		r.Post("/projects", s.handleProjectsCreate)
		r.Get("/projects/{id}", s.handleProjectGet)
		r.Put("/projects/{id}", s.handleProjectUpdate)
		r.Delete("/projects/{id}", s.handleProjectDelete)

		r.Get("/quotes", s.handleQuotesList)
		r.Post("/quotes", s.handleQuotesCreate)
		r.Route("/quotes/{id}", func(r chi.Router) {
			r.Get("/", s.handleQuoteGet)
			r.Delete("/", s.handleQuoteDelete)
			r.Get("/text", s.handleQuoteText)
			r.Post("/products", s.handleQuoteAddProduct)
			r.Post("/projects/{projectID}", s.handleQuoteAddProject)
			r.Delete("/products/{index}", s.handleQuoteRemoveProduct)
			r.Put("/discount", s.handleQuoteSetDiscount)
			r.Delete("/discount", s.handleQuoteClearDiscount)
			r.Put("/shipping", s.handleQuoteSetShipping)
			r.Delete("/shipping", s.handleQuoteClearShipping)
			r.Put("/tax", s.handleQuoteSetTax)
			r.Delete("/tax", s.handleQuoteClearTax)
			r.Put("/status", s.handleQuoteSetStatus)
		})
	})

	return r
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		logger.Info(r.Context(), "request",
			logger.String("method", r.Method),
			logger.String("path", r.URL.Path),
			logger.Int("status", ww.Status()),
			logger.Int("bytes", ww.BytesWritten()),
			logger.Duration("duration", time.Since(start)),
			logger.String("request_id", middleware.GetReqID(r.Context())))
	})
}

// writeError maps domain errors onto HTTP statuses.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, model.ErrValidation), errors.Is(err, model.ErrUnknownStatus):
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", err.Error())
	case pricing.IsInputError(err):
		httpx.JSONError(w, http.StatusUnprocessableEntity, "invalid_pricing_input", err.Error())
	case errors.Is(err, model.ErrNotFound):
		httpx.JSONError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, model.ErrQuoteCompleted), errors.Is(err, model.ErrInvalidTransition):
		httpx.JSONError(w, http.StatusConflict, "conflict", err.Error())
	default:
		logger.Error(r.Context(), "request failed",
			logger.String("path", r.URL.Path),
			logger.ErrorF(err))
		httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := httpx.DecodeJSON(w, r, maxBodyBytes, dst); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return false
	}
	return true
}

func uuidParam(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", map[string]string{name: "must_be_uuid"})
		return uuid.Nil, false
	}
	return id, true
}

func intParam(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	n, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_"+name, map[string]string{name: "must_be_integer"})
		return 0, false
	}
	return n, true
}
