package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/coachpad/coachpad/internal/api/middleware"
	"github.com/coachpad/coachpad/internal/api/response"
	"github.com/coachpad/coachpad/internal/api/validation"
	"github.com/coachpad/coachpad/internal/auth"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type registerRequest struct {
	Username  string  `json:"username"`
	Email     string  `json:"email"`
	Password  string  `json:"password"`
	Firstname *string `json:"firstname"`
	Lastname  *string `json:"lastname"`
	Role      *string `json:"role"`
	Club      *string `json:"club"`
	TeamID    *int64  `json:"team_id"`
}

// AuthHandler handles the /auth endpoint family.
type AuthHandler struct {
	svc *auth.Service
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(svc *auth.Service) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Message(w, http.StatusBadRequest, "Missing JSON in request")
		return
	}

	if errs := validation.ValidateLoginRequest(validation.LoginRequest(req)); len(errs) > 0 {
		response.Message(w, http.StatusBadRequest, "Missing username or password")
		return
	}

	profile, err := h.svc.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrUserNotFound):
			response.Message(w, http.StatusUnauthorized, "User not found")
		case errors.Is(err, auth.ErrInvalidPassword):
			response.Message(w, http.StatusUnauthorized, "Invalid password")
		default:
			response.Internal(w, middleware.GetRequestID(r.Context()), err)
		}
		return
	}

	response.MessageUser(w, http.StatusOK, "Login successful", profile)
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Message(w, http.StatusBadRequest, "Missing JSON in request")
		return
	}

	if errs := validation.ValidateRegisterRequest(validation.RegisterRequest{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	}); len(errs) > 0 {
		response.Message(w, http.StatusBadRequest, validation.Join(errs))
		return
	}

	profile, err := h.svc.Register(r.Context(), auth.RegisterParams{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		Firstname: req.Firstname,
		Lastname:  req.Lastname,
		Role:      req.Role,
		Club:      req.Club,
		TeamID:    req.TeamID,
	})
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrDuplicateUsername):
			response.Message(w, http.StatusBadRequest, "Username already exists")
		case errors.Is(err, auth.ErrDuplicateEmail):
			response.Message(w, http.StatusBadRequest, "Email already exists")
		default:
			response.Internal(w, middleware.GetRequestID(r.Context()), err)
		}
		return
	}

	response.MessageUser(w, http.StatusCreated, "Registration successful", profile)
}

// Profile handles GET /auth/profile.
func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())

	profile, err := h.svc.GetProfile(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			response.Message(w, http.StatusNotFound, "User not found")
			return
		}
		response.Internal(w, middleware.GetRequestID(r.Context()), err)
		return
	}

	response.MessageUser(w, http.StatusOK, "Profile retrieved successfully", profile)
}

// ProfileWithTeam handles GET /auth/profile/with-team.
func (h *AuthHandler) ProfileWithTeam(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())

	profile, err := h.svc.GetProfileWithTeam(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			response.Message(w, http.StatusNotFound, "User not found")
			return
		}
		response.Internal(w, middleware.GetRequestID(r.Context()), err)
		return
	}

	response.MessageUser(w, http.StatusOK, "Profile retrieved successfully", profile)
}

// VerifyToken handles GET /auth/verify-token.
func (h *AuthHandler) VerifyToken(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())

	profile, err := h.svc.GetProfile(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			response.Message(w, http.StatusUnauthorized, "Invalid token!")
			return
		}
		response.Internal(w, middleware.GetRequestID(r.Context()), err)
		return
	}

	response.MessageUser(w, http.StatusOK, "Token is valid", profile)
}

// Logout handles POST /auth/logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())

	if err := h.svc.Logout(r.Context(), claims.UserID); err != nil {
		response.Message(w, http.StatusBadRequest, "Logout failed")
		return
	}

	response.Message(w, http.StatusOK, "Logged out successfully")
}
