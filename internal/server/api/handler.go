package api

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/server/services"
	"github.com/gin-gonic/gin"
)

// maxBodyBytes caps request bodies before they are decoded.
const maxBodyBytes = 1 << 20

type SignupRequest struct {
	Email     string  `json:"email" validate:"required,email"`
	Password  string  `json:"password" validate:"required,max=1024"`
	FirstName *string `json:"firstName" validate:"omitempty,max=100"`
	LastName  *string `json:"lastName" validate:"omitempty,max=100"`
}

type SigninRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,max=1024"`
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) signup(c *gin.Context) {
	var req SignupRequest
	if !s.bind(c, &req) {
		return
	}

	res, err := s.credentials.Signup(c.Request.Context(), req.Email, req.Password, services.Profile{
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		s.respondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, res)
}

func (s *Server) signin(c *gin.Context) {
	var req SigninRequest
	if !s.bind(c, &req) {
		return
	}

	res, err := s.credentials.Signin(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		s.respondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (s *Server) me(c *gin.Context) {
	id, ok := accountIDFrom(c)
	if !ok {
		respondWithError(c, http.StatusUnauthorized, "Authorization header required")
		return
	}

	view, err := s.credentials.Me(c.Request.Context(), id)
	if err != nil {
		s.respondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"account": view})
}

// bind decodes and validates the JSON body, writing a 400 on failure.
func (s *Server) bind(c *gin.Context, req any) bool {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)
	if err := c.ShouldBindJSON(req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondWithError(c, http.StatusRequestEntityTooLarge, "Request body too large")
			return false
		}
		respondWithError(c, http.StatusBadRequest, "Invalid request body")
		return false
	}
	if details := validateRequest(req); details != nil {
		respondWithValidationError(c, details)
		return false
	}
	return true
}

func (s *Server) respondWithServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, common.ErrValidation):
		respondWithError(c, http.StatusBadRequest, "Invalid request data")
	case errors.Is(err, common.ErrDuplicateAccount):
		respondWithError(c, http.StatusForbidden, common.ErrDuplicateAccount.Error())
	case errors.Is(err, common.ErrInvalidCredentials):
		respondWithError(c, http.StatusBadRequest, common.ErrInvalidCredentials.Error())
	case errors.Is(err, common.ErrorNotFound):
		respondWithError(c, http.StatusNotFound, "Account not found")
	default:
		s.logger.Error(c.Request.Context(), "request failed",
			"path", c.FullPath(),
			"request_id", c.GetString(ctxKeyRequestID),
			"error", err,
		)
		respondWithError(c, http.StatusInternalServerError, common.ErrorInternal.Error())
	}
}
