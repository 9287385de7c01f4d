package routes

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"github.com/stridelab/stride/catalog"
	"github.com/stridelab/stride/engine"
	"github.com/stridelab/stride/internal/config"
	"github.com/stridelab/stride/internal/jobs"
	"github.com/stridelab/stride/internal/store"
	"github.com/stridelab/stride/workout"
)

type Server struct {
	Router    *chi.Mux
	Engine    *engine.Engine
	Catalogs  *catalog.Registry
	Store     *store.Store // nil when running without a database
	RedisAddr string
	Cfg       config.Config
}

type ServerOptions struct {
	Engine   *engine.Engine
	Catalogs *catalog.Registry
	Store    *store.Store
	Cfg      config.Config
}

func New(opts ServerOptions) *Server {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)

	s := &Server{
		Router:    r,
		Engine:    opts.Engine,
		Catalogs:  opts.Catalogs,
		Store:     opts.Store,
		RedisAddr: opts.Cfg.RedisAddr,
		Cfg:       opts.Cfg,
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte("ok")); err != nil {
			log.Printf("Error writing health check response: %v", err)
		}
	})

	r.Route("/v1", func(v1 chi.Router) {
		v1.Get("/catalog", s.handleCatalog)
		v1.Post("/workouts/resolve", s.handleResolve)
		v1.Post("/workouts/alternatives", s.handleAlternatives)
		v1.Post("/workouts/replacement", s.handleReplacement)
	})

	return s
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write json response failed: %v", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, errorResponse{Error: msg})
}

// context returns the request's resolution context, falling back to the
// configured default athlete profile when the body carries none.
func (s *Server) context(ctx *workout.Context) workout.Context {
	if ctx != nil {
		return *ctx
	}
	return s.Cfg.Context()
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	type family struct {
		Family        string   `json:"family"`
		Subcategories []string `json:"subcategories,omitempty"`
	}
	var out []family
	for _, name := range s.Catalogs.List() {
		f := family{Family: name}
		if provider, ok := s.Catalogs.Get(name); ok {
			if lister, ok := provider.(interface{ Subcategories() []string }); ok {
				f.Subcategories = lister.Subcategories()
			}
		}
		out = append(out, f)
	}
	s.writeJSON(w, http.StatusOK, out)
}

type resolveRequest struct {
	Workout engine.Ref       `json:"workout"`
	Context *workout.Context `json:"context,omitempty"`
}

func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	var req resolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resolved, err := s.Engine.Resolve(req.Workout, s.context(req.Context))
	if err != nil {
		if errors.Is(err, engine.ErrMissingCategory) {
			s.writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		log.Printf("resolve %q failed: %v", req.Workout.Name, err)
		s.writeError(w, http.StatusInternalServerError, "could not resolve workout")
		return
	}
	s.writeJSON(w, http.StatusOK, resolved)
}

type alternativesRequest struct {
	Workout        engine.Ref       `json:"workout"`
	Context        *workout.Context `json:"context,omitempty"`
	HotClimate     bool             `json:"hotClimate,omitempty"`
	WeatherExtreme bool             `json:"weatherExtreme,omitempty"`
	AthleteID      string           `json:"athleteId,omitempty"`
}

type alternativesResponse struct {
	Workout    *workout.Resolved             `json:"workout"`
	Categories []workout.AlternativeCategory `json:"categories"`
	Cached     bool                          `json:"cached,omitempty"`
}

func (s *Server) handleAlternatives(w http.ResponseWriter, r *http.Request) {
	var req alternativesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	ctx := s.context(req.Context)

	resolved, err := s.Engine.Resolve(req.Workout, ctx)
	if err != nil {
		if errors.Is(err, engine.ErrMissingCategory) {
			s.writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		log.Printf("resolve %q failed: %v", req.Workout.Name, err)
		s.writeError(w, http.StatusInternalServerError, "could not resolve workout")
		return
	}

	// Serve the precomputed list when one is fresh enough.
	if s.Store != nil && req.AthleteID != "" && !req.WeatherExtreme {
		if aid, err := uuid.Parse(req.AthleteID); err == nil {
			if cats, err := s.Store.GetAlternatives(r.Context(), aid, resolved.Name, 24*time.Hour); err == nil {
				s.writeJSON(w, http.StatusOK, alternativesResponse{Workout: resolved, Categories: cats, Cached: true})
				return
			}
		}
	}

	profile := engine.Profile{Context: ctx, HotClimate: req.HotClimate}
	cats := s.Engine.Alternatives(resolved, profile, req.WeatherExtreme)
	s.writeJSON(w, http.StatusOK, alternativesResponse{Workout: resolved, Categories: cats})
}

type replacementRequest struct {
	Workout   engine.Ref       `json:"workout"`
	Option    workout.Option   `json:"option"`
	Context   *workout.Context `json:"context,omitempty"`
	AthleteID string           `json:"athleteId,omitempty"`
}

func (s *Server) handleReplacement(w http.ResponseWriter, r *http.Request) {
	var req replacementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Option.Name == "" {
		s.writeError(w, http.StatusBadRequest, "option name required")
		return
	}

	resolved, err := s.Engine.Resolve(req.Workout, s.context(req.Context))
	if err != nil {
		if errors.Is(err, engine.ErrMissingCategory) {
			s.writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		log.Printf("resolve %q failed: %v", req.Workout.Name, err)
		s.writeError(w, http.StatusInternalServerError, "could not resolve workout")
		return
	}
	next := s.Engine.ApplyReplacement(resolved, req.Option)

	if s.Store != nil && req.AthleteID != "" {
		aid, err := uuid.Parse(req.AthleteID)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, "invalid athlete ID")
			return
		}
		if err := s.Store.SaveReplacement(r.Context(), aid, next); err != nil {
			log.Printf("save replacement for athlete %s failed: %v", aid, err)
			s.writeError(w, http.StatusInternalServerError, "could not save replacement")
			return
		}
		s.enqueuePrecompute(next, req.AthleteID)
	}

	s.writeJSON(w, http.StatusOK, next)
}

// enqueuePrecompute queues a rebuild of the cached alternative list for the
// replacement so the next lookup is warm. Failures only log; the replacement
// itself is already saved.
func (s *Server) enqueuePrecompute(next *workout.Resolved, athleteID string) {
	if s.RedisAddr == "" {
		return
	}
	client := asynq.NewClient(asynq.RedisClientOpt{Addr: s.RedisAddr})
	defer func() {
		if closeErr := client.Close(); closeErr != nil {
			log.Printf("Error closing asynq client: %v", closeErr)
		}
	}()

	payload, err := json.Marshal(jobs.PrecomputeAlternativesPayload{
		AthleteID:   athleteID,
		WorkoutName: next.Name,
		Category:    next.Category,
		Day:         next.Day,
		Week:        next.Week,
	})
	if err != nil {
		log.Printf("failed to marshal precompute payload: %v", err)
		return
	}
	task := asynq.NewTask(jobs.TaskPrecomputeAlternatives, payload)
	info, err := client.Enqueue(task,
		asynq.Queue("plan"),
		asynq.MaxRetry(3),
		asynq.Timeout(time.Minute),
	)
	if err != nil {
		log.Printf("[asynq] enqueue failed: %v", err)
		return
	}
	log.Printf("[asynq] enqueued task: id=%s queue=%s", info.ID, info.Queue)
}
