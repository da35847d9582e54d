package handler

import (
	"errors"
	"net/http"

	"cafe-pos/internal/model"
	"cafe-pos/internal/service"

	"github.com/rs/zerolog"
)

type registerResponse struct {
	Message string `json:"message"`
	UserID  int64  `json:"userId"`
}

// AuthHandler handles registration and login requests.
type AuthHandler struct {
	service service.AuthService
	logger  zerolog.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(service service.AuthService, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		logger:  logger.With().Str("handler", "auth").Logger(),
	}
}

// Register handles POST /api/auth/register requests.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	id, err := h.service.Register(r.Context(), &req)
	if err != nil {
		if msg, ok := validationMessage(err); ok {
			writeError(w, http.StatusBadRequest, msg, h.logger)
			return
		}
		if errors.Is(err, model.ErrAlreadyExists) {
			writeError(w, http.StatusConflict, "Username already exists", h.logger)
			return
		}
		h.logger.Error().Err(err).Msg("register failed")
		writeError(w, http.StatusInternalServerError, "Failed to register user", h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, registerResponse{Message: "User created", UserID: id})
}

// Login handles POST /api/auth/login requests.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	resp, err := h.service.Login(r.Context(), &req)
	if err != nil {
		if msg, ok := validationMessage(err); ok {
			writeError(w, http.StatusBadRequest, msg, h.logger)
			return
		}
		if errors.Is(err, model.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "Invalid credentials", h.logger)
			return
		}
		h.logger.Error().Err(err).Msg("login failed")
		writeError(w, http.StatusInternalServerError, "Login failed", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
