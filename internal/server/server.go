// Package server exposes the ranking, matching and clustering services over
// a JSON REST API.
package server

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/talentvec/talentvec/internal/clustering"
	"github.com/talentvec/talentvec/internal/embedding"
	"github.com/talentvec/talentvec/internal/matching"
	"github.com/talentvec/talentvec/internal/ranking"
	"github.com/talentvec/talentvec/internal/store"
)

type ctxKey string

const requestIDKey ctxKey = "request_id"

// Config holds the HTTP server settings.
type Config struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

func (c *Config) withDefaults() *Config {
	out := *c
	if out.Addr == "" {
		out.Addr = ":8080"
	}
	if out.ReadTimeout == 0 {
		out.ReadTimeout = 15 * time.Second
	}
	if out.WriteTimeout == 0 {
		out.WriteTimeout = 60 * time.Second
	}
	if out.ShutdownTimeout == 0 {
		out.ShutdownTimeout = 15 * time.Second
	}
	return &out
}

// Server wires the core services to HTTP handlers.
type Server struct {
	cfg      *Config
	logger   *zap.Logger
	provider embedding.Provider
	repo     store.Repository
	ranker   *ranking.Engine
	scorer   *matching.Scorer
	grouper  *clustering.Grouper

	providerName string
	modelName    string
	version      string

	dimOnce sync.Once
	dim     int
}

// Deps aggregates the dependencies of the server.
type Deps struct {
	Logger   *zap.Logger
	Provider embedding.Provider
	Repo     store.Repository
	Ranker   *ranking.Engine
	Scorer   *matching.Scorer
	Grouper  *clustering.Grouper

	ProviderName string
	ModelName    string
	Version      string
}

func New(cfg *Config, deps Deps) *Server {
	if cfg == nil {
		cfg = &Config{}
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Server{
		cfg:          cfg.withDefaults(),
		logger:       logger,
		provider:     deps.Provider,
		repo:         deps.Repo,
		ranker:       deps.Ranker,
		scorer:       deps.Scorer,
		grouper:      deps.Grouper,
		providerName: deps.ProviderName,
		modelName:    deps.ModelName,
		version:      deps.Version,
	}
}

// Handler builds the route table with the request-id and logging middleware
// applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", s.handleHealthz)
	mux.HandleFunc("GET /info", s.handleInfo)

	mux.HandleFunc("POST /v1/embed", s.handleEmbed)
	mux.HandleFunc("POST /v1/similarity", s.handleSimilarity)
	mux.HandleFunc("POST /v1/search", s.handleSearch)
	mux.HandleFunc("POST /v1/cluster", s.handleCluster)
	mux.HandleFunc("POST /v1/match", s.handleMatch)

	mux.HandleFunc("GET /v1/profiles", s.handleListProfiles)
	mux.HandleFunc("POST /v1/profiles", s.handleAddProfile)
	mux.HandleFunc("GET /v1/profiles/{id}", s.handleGetProfile)
	mux.HandleFunc("GET /v1/positions", s.handleListPositions)
	mux.HandleFunc("POST /v1/positions", s.handleAddPosition)
	mux.HandleFunc("GET /v1/positions/{id}", s.handleGetPosition)
	mux.HandleFunc("GET /v1/positions/{id}/candidates", s.handlePositionCandidates)

	return s.withRequestID(mux)
}

// Run serves until the context is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", zap.String("addr", s.cfg.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down http server", zap.Duration("timeout", s.cfg.ShutdownTimeout))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	return httpServer.Shutdown(shutdownCtx)
}

func (s *Server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get("X-Request-Id")
		if reqID == "" {
			reqID = uuid.NewString()
		}

		w.Header().Set("X-Request-Id", reqID)
		ctx := context.WithValue(r.Context(), requestIDKey, reqID)

		start := time.Now()
		next.ServeHTTP(w, r.WithContext(ctx))

		s.logger.Debug("handled request",
			zap.String("request_id", reqID),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("elapsed", time.Since(start)),
		)
	})
}

// dimension probes the provider once for the embedding dimensionality.
// Returns 0 when the probe fails; the next restart retries.
func (s *Server) dimension(ctx context.Context) int {
	s.dimOnce.Do(func() {
		probeCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		vector, err := s.provider.Embed(probeCtx, "dimension probe")
		if err != nil {
			s.logger.Warn("dimension probe failed", zap.Error(err))
			return
		}
		s.dim = len(vector)
	})
	return s.dim
}

func requestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}
