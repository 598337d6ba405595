package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	appanalysis "github.com/imageinsight/appraiser/internal/application/analysis"
	domain "github.com/imageinsight/appraiser/internal/domain/analysis"
	"github.com/imageinsight/appraiser/internal/infra/usage"
	"github.com/imageinsight/appraiser/internal/middleware"
	"github.com/imageinsight/appraiser/internal/settings"
)

type Router struct {
	analyzeSvc *appanalysis.Service
	store      *settings.Store
	limiter    *usage.Limiter
	log        *zap.Logger
}

func New(analyzeSvc *appanalysis.Service, store *settings.Store, limiter *usage.Limiter, checkers map[string]middleware.HealthChecker, log *zap.Logger) http.Handler {
	rt := &Router{analyzeSvc: analyzeSvc, store: store, limiter: limiter, log: log}
	mux := chi.NewRouter()

	mux.Get("/health", middleware.HealthHandler(checkers))

	mux.Route("/v1", func(r chi.Router) {
		r.Post("/analyze", rt.wrap("Failed to process image", rt.handleAnalyze))
		r.Get("/analyses", rt.wrap("Failed to list analyses", rt.handleHistory))
		r.Post("/reports", rt.wrap("Failed to generate report", rt.handleGenerateReport))
		r.Post("/subscriptions", rt.wrap("Failed to manage subscription", rt.handleSubscription))
		r.Post("/admin", rt.wrap("Failed to perform admin operation", rt.handleAdmin))
		r.Post("/settings", rt.wrap("Failed to manage settings", rt.handleSettings))
		r.Post("/contact", rt.wrap("Failed to process contact form", rt.handleContact))
	})

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

// badRequest marks validation failures that map to 400.
type badRequest struct{ msg string }

func (e badRequest) Error() string { return e.msg }

func badRequestf(format string, args ...any) error {
	return badRequest{msg: fmt.Sprintf(format, args...)}
}

// wrap adapts error-returning handlers: validation errors become 400,
// quota errors 429, everything else a 500 carrying the original message.
func (rt *Router) wrap(prefix string, h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				rt.log.Error("panic in handler", zap.String("path", req.URL.Path), zap.Any("panic", rec))
				writeError(w, http.StatusInternalServerError, fmt.Sprintf("%s: %v", prefix, rec))
			}
		}()

		if err := h(w, req); err != nil {
			var br badRequest
			switch {
			case errors.As(err, &br), errors.Is(err, domain.ErrNoImageData):
				writeError(w, http.StatusBadRequest, err.Error())
			case errors.Is(err, usage.ErrQuotaExceeded):
				writeError(w, http.StatusTooManyRequests, err.Error())
			default:
				rt.log.Error("handler error", zap.String("path", req.URL.Path), zap.Error(err))
				writeError(w, http.StatusInternalServerError, fmt.Sprintf("%s: %s", prefix, err.Error()))
			}
		}
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, v any) error {
	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(v)
}

// POST /v1/analyze
// Body: {"imageData": "<base64, optionally data-URL prefixed>", "userId": "<optional>"}
func (rt *Router) handleAnalyze(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		ImageData string `json:"imageData"`
		UserID    string `json:"userId"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return badRequestf("invalid request body: %s", err.Error())
	}

	if rt.limiter != nil && body.UserID != "" {
		ok, err := rt.limiter.Allow(req.Context(), body.UserID, rt.analyzeSvc.Clock.Now())
		if err != nil {
			// a broken counter must not block analysis
			rt.log.Warn("usage counter unavailable", zap.Error(err))
		} else if !ok {
			return usage.ErrQuotaExceeded
		}
	}

	result, err := rt.analyzeSvc.Analyze(req.Context(), appanalysis.AnalyzeCommand{ImageData: body.ImageData})
	if err != nil {
		return err
	}
	return writeJSON(w, result)
}

// GET /v1/analyses?limit=20
func (rt *Router) handleHistory(w http.ResponseWriter, req *http.Request) error {
	limit, _ := strconv.Atoi(req.URL.Query().Get("limit"))
	list, err := rt.analyzeSvc.Latest(req.Context(), limit)
	if err != nil {
		return err
	}
	if list == nil {
		list = []*domain.Record{}
	}
	return writeJSON(w, map[string]any{"success": true, "analyses": list})
}
