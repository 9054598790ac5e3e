package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/information-sharing-networks/posts-demo/docs"
	"github.com/information-sharing-networks/posts-demo/internal/config"
	"github.com/information-sharing-networks/posts-demo/internal/logger"
	"github.com/information-sharing-networks/posts-demo/internal/server/handlers"
	postsmiddleware "github.com/information-sharing-networks/posts-demo/internal/server/middleware"
	"github.com/information-sharing-networks/posts-demo/internal/storage"
	"github.com/information-sharing-networks/posts-demo/internal/version"
)

type Server struct {
	store  storage.Backend
	config *config.ServerEnvironment
	logger *slog.Logger
	router *chi.Mux
}

func NewServer(
	store storage.Backend,
	cfg *config.ServerEnvironment,
	logger *slog.Logger,
) *Server {
	server := &Server{
		store:  store,
		config: cfg,
		logger: logger,
		router: chi.NewRouter(),
	}

	server.setupMiddleware()
	server.registerRoutes()

	return server
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(logger.RequestLogging(s.logger))
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(s.config.RequestTimeout))
	s.router.Use(postsmiddleware.SecurityHeaders(s.config.Environment))
}

func (s *Server) registerRoutes() {
	s.router.Route("/health", func(r chi.Router) {
		r.Get("/live", handlers.HandleHealth)
		r.Get("/ready", handlers.HandleReadiness(s.store))
	})
	s.router.Get("/version", handlers.HandleVersion(version.Get()))
	s.router.Get("/docs/swagger.json", handlers.HandleSwaggerDoc(docs.SwaggerInfo.InstanceName()))

	s.router.Route("/posts", func(r chi.Router) {
		r.Use(postsmiddleware.RateLimit(s.config.RateLimitRPS, s.config.RateLimitBurst))
		r.Use(postsmiddleware.RequestSizeLimit(s.config.MaxRequestSize))

		r.Get("/", handlers.HandleListPosts(s.store))
		r.Post("/", handlers.HandleCreatePost(s.store))
		r.Get("/{postID}", handlers.HandleGetPost(s.store))
		r.Put("/{postID}", handlers.HandleUpdatePost(s.store))
		r.Delete("/{postID}", handlers.HandleDeletePost(s.store))
	})
}

// Handler returns the router with all middleware applied.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Start(ctx context.Context) error {
	serverAddr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	httpServer := &http.Server{
		Addr:         serverAddr,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("service listening",
			slog.String("environment", s.config.Environment),
			slog.String("store_backend", s.config.StoreBackend),
			slog.String("address", serverAddr))

		err := httpServer.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			serverErrors <- fmt.Errorf("server failed to start: %w", err)
		}
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		s.logger.Info("shutdown signal received")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), s.config.ServerShutdownTimeout)
	defer shutdownCancel()

	s.logger.Info("shutting down HTTP server")

	err := httpServer.Shutdown(shutdownCtx)
	if err != nil {
		s.logger.Warn("HTTP server shutdown error",
			slog.String("error", err.Error()))
		return fmt.Errorf("HTTP server shutdown failed: %w", err)
	}

	s.logger.Info("HTTP server shutdown complete")
	return nil
}

// StoreShutdown closes the storage backend.
func (s *Server) StoreShutdown() {
	if s.store == nil {
		return
	}
	if err := s.store.Close(); err != nil {
		s.logger.Warn("failed to close store", slog.String("error", err.Error()))
		return
	}
	s.logger.Info("store closed")
}
