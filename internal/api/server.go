package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/wonny/betalab/pkg/config"
	"github.com/wonny/betalab/pkg/logger"
)

// Server wraps http.Server with lifecycle logging
// ⭐ SSOT: API 서버 설정은 이 파일에서만
type Server struct {
	*http.Server
	logger *logger.Logger
	env    string
}

// New wires the prepared router into a server bound to cfg.Port
func New(cfg *config.Config, log *logger.Logger, router http.Handler) *Server {
	return &Server{
		Server: &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           router,
			ReadTimeout:       10 * time.Second,
			ReadHeaderTimeout: 5 * time.Second,
			// An analysis holds the response open through two chart
			// fetches with retries and host failover
			WriteTimeout: 120 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger: log.Component("api"),
		env:    cfg.Env,
	}
}

// Start listens until the server is shut down
func (s *Server) Start() error {
	s.logger.WithField("addr", s.Addr).WithField("env", s.env).Info("API server listening")

	if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("api server: %w", err)
	}

	return nil
}

// Shutdown drains in-flight requests before returning
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Stopping API server")

	if err := s.Server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown api server: %w", err)
	}

	s.logger.Info("API server stopped")
	return nil
}
