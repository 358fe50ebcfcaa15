package controllers

import (
	"encoding/json"
	"log"
	"net/http"

	"uclmatch_server/services"

	"github.com/gorilla/mux"
)

// UserProfileController handles requests related to user profiles
type UserProfileController struct {
	UserProfileService *services.UserProfileService
	AuthService        *services.AuthService
}

// NewUserProfileController creates a new instance of UserProfileController
func NewUserProfileController(userProfileService *services.UserProfileService, authService *services.AuthService) *UserProfileController {
	return &UserProfileController{UserProfileService: userProfileService, AuthService: authService}
}

// GetMyProfile returns the authenticated user's own profile
func (c *UserProfileController) GetMyProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r, c.AuthService)
	if err != nil {
		writeError(w, err)
		return
	}

	profile, err := c.UserProfileService.GetProfile(r.Context(), userID)
	if err != nil {
		log.Printf("Failed to fetch profile for %s: %v", userID, err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

// UpdateMyProfile merges the posted fields into the authenticated user's
// profile. Fields not present in the body are left untouched.
func (c *UserProfileController) UpdateMyProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r, c.AuthService)
	if err != nil {
		writeError(w, err)
		return
	}

	var updates map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		http.Error(w, `{"error": "Invalid request payload"}`, http.StatusBadRequest)
		return
	}

	updatedProfile, err := c.UserProfileService.UpdateProfileFields(r.Context(), userID, updates)
	if err != nil {
		log.Printf("Failed to update profile for %s: %v", userID, err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Profile updated successfully",
		"profile": updatedProfile,
	})
}

// GetProfileByID resolves another user's profile, e.g. a message sender
func (c *UserProfileController) GetProfileByID(w http.ResponseWriter, r *http.Request) {
	if _, err := currentUser(r, c.AuthService); err != nil {
		writeError(w, err)
		return
	}

	userID := mux.Vars(r)["userId"]
	profile, err := c.UserProfileService.ResolveUser(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}
