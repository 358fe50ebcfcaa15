package controllers

import (
	"encoding/json"
	"log"
	"net/http"

	"uclmatch_server/services"
)

// AuthController handles registration, sign-in and session teardown
type AuthController struct {
	AuthService *services.AuthService
}

func NewAuthController(authService *services.AuthService) *AuthController {
	return &AuthController{AuthService: authService}
}

// Register creates a new account. Only UCL email addresses are accepted.
func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var request struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}

	profile, err := c.AuthService.Register(r.Context(), request.Name, request.Email, request.Password)
	if err != nil {
		log.Printf("Registration failed for %s: %v", request.Email, err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Registered successfully, please verify your email",
		"profile": profile,
	})
}

// Login exchanges credentials for a session token
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var request struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}

	token, profile, err := c.AuthService.SignIn(r.Context(), request.Email, request.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"token":   token,
		"profile": profile,
	})
}

// Logout drops the caller's session
func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	c.AuthService.SignOut(bearerToken(r))
	writeJSON(w, http.StatusOK, map[string]string{"message": "Signed out"})
}

// VerifyEmail consumes the token from the verification link
func (c *AuthController) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		http.Error(w, `{"error": "token is required"}`, http.StatusBadRequest)
		return
	}

	if err := c.AuthService.VerifyEmail(r.Context(), token); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Email verified"})
}
