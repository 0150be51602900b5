package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"catalog-service/internal/delivery/dto"
	"catalog-service/internal/delivery/http/middleware"
	"catalog-service/internal/usecase"
	"catalog-service/pkg/response"
	"catalog-service/pkg/validator"
)

type AuthHandler struct {
	authUsecase usecase.AuthUsecase
	validator   *validator.CustomValidator
}

func NewAuthHandler(authUsecase usecase.AuthUsecase, validator *validator.CustomValidator) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
		validator:   validator,
	}
}

// Register creates an account with the "user" role
// @Summary Register a new user
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Register Request"
// @Success 201 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if !bindJSON(w, r, h.validator, &req) {
		return
	}

	user, err := h.authUsecase.Register(r.Context(), &req)
	switch {
	case err == nil:
		response.Success(w, http.StatusCreated, "User registered successfully", user)
	case errors.Is(err, usecase.ErrEmailAlreadyExists):
		response.Conflict(w, "Email already exists", response.CodeDuplicateEmail, map[string]string{"field": "email"})
	case errors.Is(err, usecase.ErrUsernameAlreadyExists):
		response.Conflict(w, "Username already exists", response.CodeDuplicateUsername, map[string]string{"field": "username"})
	default:
		response.InternalServerError(w, "Failed to register user")
	}
}

// Login exchanges credentials for an access/refresh token pair
// @Summary Login user
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login Request"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if !bindJSON(w, r, h.validator, &req) {
		return
	}

	tokens, err := h.authUsecase.Login(r.Context(), &req)
	switch {
	case err == nil:
		response.Success(w, http.StatusOK, "Login successful", tokens)
	case errors.Is(err, usecase.ErrInvalidCredentials):
		response.Error(w, http.StatusUnauthorized, "Invalid email or password", response.CodeInvalidCredentials, nil)
	default:
		response.InternalServerError(w, "Failed to login")
	}
}

// Logout revokes the access token of the request and, if sent, the refresh token
// @Summary Logout user
// @Tags Auth
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.LogoutRequest false "Refresh token to revoke"
// @Success 200 {object} response.Response
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	userID, hasUser := middleware.GetUserIDFromContext(r.Context())
	tokenID, hasToken := middleware.GetTokenIDFromContext(r.Context())
	if !hasUser || !hasToken {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.LogoutRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			response.ValidationError(w, []validator.FieldError{{Field: "body", Message: decodeMessage(err)}})
			return
		}
	}

	if err := h.authUsecase.Logout(r.Context(), userID, tokenID, req.RefreshToken); err != nil {
		response.InternalServerError(w, "Failed to logout")
		return
	}

	response.Success(w, http.StatusOK, "Logout successful", nil)
}

// RefreshToken rotates a refresh token into a new token pair
// @Summary Refresh access token
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest true "Refresh Token Request"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/refresh-token [post]
func (h *AuthHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var req dto.RefreshTokenRequest
	if !bindJSON(w, r, h.validator, &req) {
		return
	}

	tokens, err := h.authUsecase.RefreshToken(r.Context(), &req)
	switch {
	case err == nil:
		response.Success(w, http.StatusOK, "Token refreshed successfully", tokens)
	case errors.Is(err, usecase.ErrInvalidToken), errors.Is(err, usecase.ErrTokenRevoked):
		response.Unauthorized(w, err.Error())
	default:
		response.InternalServerError(w, "Failed to refresh token")
	}
}

// GetCurrentUser returns the account behind the access token
// @Summary Get current user
// @Tags Auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /auth/me [get]
func (h *AuthHandler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	user, err := h.authUsecase.GetCurrentUser(r.Context(), userID)
	switch {
	case err == nil:
		response.Success(w, http.StatusOK, "User retrieved successfully", user)
	case errors.Is(err, usecase.ErrUserNotFound):
		response.NotFound(w, "User not found", nil)
	default:
		response.InternalServerError(w, "Failed to get user info")
	}
}
