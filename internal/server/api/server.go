// Package api exposes the credential service over HTTP using gin.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/logging"
	"github.com/dmitrijs2005/gophauth/internal/server/auth"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
	"github.com/dmitrijs2005/gophauth/internal/server/services"
	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 5 * time.Second

// CredentialService is the business logic the handlers call into.
type CredentialService interface {
	Signup(ctx context.Context, email, password string, profile services.Profile) (*services.AuthResult, error)
	Signin(ctx context.Context, email, password string) (*services.AuthResult, error)
	Me(ctx context.Context, accountID int64) (*models.AccountView, error)
}

// TokenParser verifies bearer tokens.
type TokenParser interface {
	Parse(token string) (*auth.Claims, error)
}

type Server struct {
	address        string
	credentials    CredentialService
	tokens         TokenParser
	logger         logging.Logger
	requestTimeout time.Duration
	router         *gin.Engine
}

func NewServer(address string, l logging.Logger, cs CredentialService, tp TokenParser, requestTimeout time.Duration) *Server {
	s := &Server{
		address:        address,
		credentials:    cs,
		tokens:         tp,
		logger:         l.With("module", "api"),
		requestTimeout: requestTimeout,
	}
	s.router = s.routes()
	return s
}

// Handler returns the configured router.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestID(), s.accessLog(), s.timeout())

	r.GET("/health", s.health)

	authGroup := r.Group("/auth")
	{
		authGroup.POST("/signup", s.signup)
		authGroup.POST("/signin", s.signin)
	}

	users := r.Group("/users", s.bearerAuth())
	{
		users.GET("/me", s.me)
	}

	return r
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	stopped := make(chan struct{})
	defer close(stopped)

	go func() {
		select {
		case <-ctx.Done():
		case <-stopped:
			return
		}
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP server shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
