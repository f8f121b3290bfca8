package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/qora-app/qora-server/internal/api/middleware"
	"github.com/qora-app/qora-server/internal/service"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type RegisterRequest struct {
	Password    string `json:"password"`
	DisplayName string `json:"displayName"`
}

type LoginRequest struct {
	DisplayName string `json:"displayName"`
	Password    string `json:"password"`
}

type AuthResponse struct {
	User         UserResponse `json:"user"`
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
}

type UserResponse struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	IsAdmin     bool   `json:"isAdmin"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, CodeInvalidRequest, "Invalid request body")
		return
	}

	if req.Password == "" || req.DisplayName == "" {
		respondError(w, http.StatusBadRequest, CodeInvalidRequest, "Password and display name are required")
		return
	}

	result, err := h.authService.Register(r.Context(), service.RegisterInput{
		Password:    req.Password,
		DisplayName: req.DisplayName,
	})
	if err != nil {
		if errors.Is(err, service.ErrDisplayNameExists) {
			respondError(w, http.StatusConflict, CodeInvalidRequest, "Display name already exists")
			return
		}
		respondInternal(w, "AuthHandler.Register", err)
		return
	}

	respondJSON(w, http.StatusOK, AuthResponse{
		User: UserResponse{
			ID:          result.User.ID.String(),
			DisplayName: result.User.DisplayName,
			IsAdmin:     result.User.IsAdmin,
		},
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, CodeInvalidRequest, "Invalid request body")
		return
	}

	if req.DisplayName == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, CodeInvalidRequest, "Display name and password are required")
		return
	}

	result, err := h.authService.Login(r.Context(), service.LoginInput{
		DisplayName: req.DisplayName,
		Password:    req.Password,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondError(w, http.StatusUnauthorized, CodeInvalidRequest, "Invalid credentials")
			return
		}
		respondInternal(w, "AuthHandler.Login", err)
		return
	}

	respondJSON(w, http.StatusOK, AuthResponse{
		User: UserResponse{
			ID:          result.User.ID.String(),
			DisplayName: result.User.DisplayName,
			IsAdmin:     result.User.IsAdmin,
		},
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
	})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, CodeInvalidRequest, "Unauthorized")
		return
	}

	user, err := h.authService.GetUserByID(r.Context(), userID)
	if err != nil {
		respondError(w, http.StatusNotFound, CodeNotFound, "User not found")
		return
	}

	respondJSON(w, http.StatusOK, UserResponse{
		ID:          user.ID.String(),
		DisplayName: user.DisplayName,
		IsAdmin:     user.IsAdmin,
	})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, CodeInvalidRequest, "Unauthorized")
		return
	}

	if err := h.authService.Logout(r.Context(), userID); err != nil {
		respondInternal(w, "AuthHandler.Logout", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}
