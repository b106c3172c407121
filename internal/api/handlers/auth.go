package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/satyam/medicare-backend/internal/api/middleware"
	"github.com/satyam/medicare-backend/internal/domain"
	"github.com/satyam/medicare-backend/internal/service"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type SignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	// The early client sends username, the later one email; accept either
	// field as the login identifier.
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Message  string `json:"message"`
	Token    string `json:"token"`
	Username string `json:"username"`
}

// Signup registers a new account. Duplicate username or email is a 400 so
// the client can show the message inline.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Username == "" || req.Password == "" {
		respondMessage(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	_, err := h.authService.Register(r.Context(), service.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUsernameTaken):
			respondMessage(w, http.StatusBadRequest, "Username already exists")
		case errors.Is(err, domain.ErrEmailTaken):
			respondMessage(w, http.StatusBadRequest, "Email already exists")
		default:
			log.Printf("ERROR [auth.Signup] failed to register user: %v", err)
			respondMessage(w, http.StatusInternalServerError, "Error registering user")
		}
		return
	}

	respondMessage(w, http.StatusCreated, "User registered successfully")
}

// Login verifies credentials and returns a bearer token. Unknown identifier
// and wrong password get the identical response.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	identifier := req.Username
	if identifier == "" {
		identifier = req.Email
	}
	if identifier == "" || req.Password == "" {
		respondMessage(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	result, err := h.authService.Login(r.Context(), service.LoginInput{
		Identifier: identifier,
		Password:   req.Password,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			respondMessage(w, http.StatusUnauthorized, "Invalid username or password")
			return
		}
		log.Printf("ERROR [auth.Login] failed to log in: %v", err)
		respondMessage(w, http.StatusInternalServerError, "Error logging in")
		return
	}

	respondJSON(w, http.StatusOK, LoginResponse{
		Message:  "Login successful",
		Token:    result.Token,
		Username: result.User.Username,
	})
}

// Protected probes the presented token and echoes the subject user id. Its
// status codes preserve the original backend contract: 403 when no token is
// presented, 500 when the token cannot be verified.
func (h *AuthHandler) Protected(w http.ResponseWriter, r *http.Request) {
	raw := middleware.TokenFromHeader(r)
	if raw == "" {
		respondMessage(w, http.StatusForbidden, "No token provided")
		return
	}

	userID, err := h.authService.VerifyToken(raw)
	if err != nil {
		respondMessage(w, http.StatusInternalServerError, "Failed to authenticate token")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": "Protected data",
		"userId":  userID.String(),
	})
}
