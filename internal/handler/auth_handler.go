package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/studentdesk/studentdesk-backend/internal/middleware"
	"github.com/studentdesk/studentdesk-backend/internal/model"
	"github.com/studentdesk/studentdesk-backend/internal/repository"
	"github.com/studentdesk/studentdesk-backend/internal/response"
	"github.com/studentdesk/studentdesk-backend/internal/service"
	"github.com/studentdesk/studentdesk-backend/internal/validator"
)

// AuthHandler handles signup, login, and the authenticated profile route.
type AuthHandler struct {
	authService *service.AuthService
	log         zerolog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *service.AuthService, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, log: log}
}

// Signup godoc
// POST /api/auth/signup
// Self-registration. The created account always carries the student role.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req model.SignupRequest
	if errs := validator.Bind(c, &req); errs != nil {
		response.FailWithErrors(c, http.StatusBadRequest, response.MsgValidationFailed, errs)
		return
	}

	account, token, err := h.authService.Signup(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			response.Fail(c, http.StatusBadRequest, "Email already registered")
			return
		}
		h.log.Error().Err(err).Msg("signup failed")
		response.Fail(c, http.StatusInternalServerError, response.MsgInternal)
		return
	}

	response.Success(c, http.StatusCreated, "User registered successfully", model.AuthResponse{
		AccountID: account.ID,
		Name:      account.Name,
		Email:     account.Email,
		Age:       account.Age,
		Class:     account.Class,
		Role:      account.Role,
		Token:     token,
	})
}

// Login godoc
// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if errs := validator.Bind(c, &req); errs != nil {
		response.FailWithErrors(c, http.StatusBadRequest, response.MsgValidationFailed, errs)
		return
	}

	account, token, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Fail(c, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		h.log.Error().Err(err).Msg("login failed")
		response.Fail(c, http.StatusInternalServerError, response.MsgInternal)
		return
	}

	response.Success(c, http.StatusOK, "Login successful", model.AuthResponse{
		AccountID: account.ID,
		Name:      account.Name,
		Email:     account.Email,
		Age:       account.Age,
		Class:     account.Class,
		Role:      account.Role,
		Token:     token,
	})
}

// Me godoc
// GET /api/auth/me
// Returns the authenticated caller's account.
func (h *AuthHandler) Me(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, response.MsgAuthRequired)
		return
	}

	account, err := h.authService.Profile(c.Request.Context(), identity.AccountID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Fail(c, http.StatusUnauthorized, response.MsgUserNotFound)
			return
		}
		h.log.Error().Err(err).Msg("profile lookup failed")
		response.Fail(c, http.StatusInternalServerError, response.MsgInternal)
		return
	}

	response.Success(c, http.StatusOK, "Profile retrieved successfully", account)
}
