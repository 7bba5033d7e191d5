package api

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	ctxKeyRequestID = "requestID"
	ctxKeyAccountID = "accountID"
)

func (s *Server) requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(common.RequestIDHeaderName)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(ctxKeyRequestID, id)
		c.Header(common.RequestIDHeaderName, id)
		c.Next()
	}
}

func (s *Server) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		s.logger.Info(c.Request.Context(), "request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start),
			"request_id", c.GetString(ctxKeyRequestID),
		)
	}
}

func (s *Server) timeout() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.requestTimeout <= 0 {
			c.Next()
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), s.requestTimeout)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// bearerAuth verifies the access token and stores the account id in the
// gin context.
func (s *Server) bearerAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader(common.AuthorizationHeaderName))
		if !ok {
			respondWithError(c, http.StatusUnauthorized, "Authorization header required")
			return
		}

		claims, err := s.tokens.Parse(token)
		if err != nil {
			msg := "Invalid token"
			if errors.Is(err, common.ErrTokenExpired) {
				msg = "Token expired"
			}
			respondWithError(c, http.StatusUnauthorized, msg)
			return
		}

		id, err := claims.AccountID()
		if err != nil {
			respondWithError(c, http.StatusUnauthorized, "Invalid token")
			return
		}

		c.Set(ctxKeyAccountID, id)
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, common.BearerScheme) {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func accountIDFrom(c *gin.Context) (int64, bool) {
	v, ok := c.Get(ctxKeyAccountID)
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}
