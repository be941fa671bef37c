package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/mikey/llm-scam-honeypot/internal/core"
	"go.uber.org/zap"
)

// Server is the HTTP transport for the honeypot. It implements the
// MessageEndpoint interface.
type Server struct {
	service        *core.HoneypotService
	logger         *zap.Logger
	listenAddress  string
	apiKey         string
	requestTimeout time.Duration
	httpServer     *http.Server
}

// NewServer creates a new HTTP server for the honeypot service
func NewServer(
	service *core.HoneypotService,
	logger *zap.Logger,
	listenAddress string,
	apiKey string,
	requestTimeout time.Duration,
) *Server {
	return &Server{
		service:        service,
		logger:         logger,
		listenAddress:  listenAddress,
		apiKey:         apiKey,
		requestTimeout: requestTimeout,
	}
}

// routes builds the chi router
func (s *Server) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.requestTimeout))

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(api chi.Router) {
		api.Use(apiKeyAuth(s.apiKey))

		api.Post("/message", s.handleMessage)
		api.Route("/session/{sessionID}", func(session chi.Router) {
			session.Get("/", s.handleGetSession)
			session.Delete("/", s.handleDeleteSession)
			session.Post("/flush", s.handleFlushSession)
		})
	})

	return r
}

// Start starts serving inbound messages. It returns immediately; serve
// errors other than a clean shutdown are logged.
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:    s.listenAddress,
		Handler: s.routes(),
	}

	s.logger.Info("Starting HTTP endpoint", zap.String("address", s.listenAddress))

	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error("HTTP server error", zap.Error(err))
		}
	}()

	return nil
}

// Stop gracefully shuts the server down.
func (s *Server) Stop() error {
	if s.httpServer == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s.logger.Info("Stopping HTTP endpoint")
	return s.httpServer.Shutdown(ctx)
}
