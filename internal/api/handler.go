package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/aretw0/lattice/internal/logging"
	"github.com/aretw0/lattice/internal/scoring"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// adminScore is returned to admin callers without touching the engine.
const adminScore = 42

var statusTexts = map[int]string{
	http.StatusBadRequest:          "Bad Request",
	http.StatusForbidden:           "Forbidden",
	http.StatusNotFound:            "Not Found",
	http.StatusUnprocessableEntity: "Invalid Request",
	http.StatusInternalServerError: "Internal Server Error",
}

// Server wires the scoring engine to the HTTP surface.
type Server struct {
	engine  *scoring.Engine
	logger  *slog.Logger
	metrics *Metrics
	now     func() time.Time
}

// HandlerOption defines a functional option for configuring the Server.
type HandlerOption func(*Server)

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) HandlerOption {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithClock injects the time source used for admin token checks and
// birthday validation. Tests pin it.
func WithClock(now func() time.Time) HandlerOption {
	return func(s *Server) {
		s.now = now
	}
}

// NewHandler creates the HTTP handler for the scoring API.
func NewHandler(engine *scoring.Engine, opts ...HandlerOption) (http.Handler, error) {
	s := &Server{
		engine:  engine,
		logger:  logging.NewNop(),
		metrics: NewMetrics(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	spec, err := loadSpec()
	if err != nil {
		return nil, fmt.Errorf("failed to load openapi spec: %w", err)
	}

	r := chi.NewRouter()
	r.Use(withRequestID)
	r.Use(logAndMeasure(s.logger, s.metrics))
	r.Use(recoverPanics(s.logger))

	r.Post("/method", s.handleMethod)

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		s.handleHealth(w, req, spec.Info.Version)
	})
	r.Handle("/metrics", promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{}))

	// Swagger UI
	r.Get("/openapi.yaml", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(specYAML)
	})
	r.Get("/swagger", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(swaggerHTML))
	})

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		writeError(w, http.StatusNotFound, "")
	})

	return r, nil
}

// handleMethod implements POST /method: envelope parsing, auth, dispatch.
func (s *Server) handleMethod(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var raw map[string]any
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil || raw == nil {
		writeError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	env, err := decodeEnvelope(raw)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if !checkAuth(env.Account, env.Login, env.Token, s.now()) {
		writeError(w, http.StatusForbidden, "")
		return
	}

	switch env.Method {
	case "online_score":
		args, has, err := decodeOnlineScore(env.Arguments, s.now())
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		s.logger.Info("online_score",
			"has", has,
			"request_id", RequestIDFromContext(ctx),
		)

		if isAdmin(env.Login) {
			writeResponse(w, map[string]any{"score": adminScore})
			return
		}
		if !args.validate() {
			writeError(w, http.StatusUnprocessableEntity, "invalid arguments: at least one pair of phone/email, first_name/last_name or gender/birthday is required")
			return
		}

		gender := 0
		if args.Gender != nil {
			gender = *args.Gender
		}
		score := s.engine.Score(ctx, scoring.Person{
			Phone:     string(args.Phone),
			Email:     args.Email,
			FirstName: args.FirstName,
			LastName:  args.LastName,
			Birthday:  args.Birthday,
			Gender:    gender,
		})
		writeResponse(w, map[string]any{"score": score})

	case "clients_interests":
		args, err := decodeClientsInterests(env.Arguments)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		s.logger.Info("clients_interests",
			"nclients", len(args.ClientIDs),
			"request_id", RequestIDFromContext(ctx),
		)

		interests := make(map[string][]string, len(args.ClientIDs))
		for _, cid := range args.ClientIDs {
			list, err := s.engine.Interests(ctx, cid)
			if err != nil {
				s.logger.Error("interests lookup failed",
					"client_id", cid,
					"error", err,
					"request_id", RequestIDFromContext(ctx),
				)
				writeError(w, http.StatusInternalServerError, "")
				return
			}
			interests[strconv.Itoa(cid)] = list
		}
		writeResponse(w, interests)

	default:
		writeError(w, http.StatusUnprocessableEntity, "Invalid method")
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request, apiVersion string) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status":      "ok",
		"api_version": apiVersion,
	})
}

// writeResponse emits the success envelope {"response": ..., "code": 200}.
func writeResponse(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]any{
		"response": payload,
		"code":     http.StatusOK,
	})
}

// writeError emits the failure envelope {"error": ..., "code": N}. An empty
// message falls back to the conventional text for the code.
func writeError(w http.ResponseWriter, code int, message string) {
	if message == "" {
		message = statusTexts[code]
		if message == "" {
			message = "Unknown Error"
		}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]any{
		"error": message,
		"code":  code,
	})
}
