package controllers

import (
	"encoding/json"
	"log"
	"net/http"

	"uclmatch_server/services"
)

// S3Controller hands out presigned avatar URLs and writes the durable
// download URL back into the owner's profile.
type S3Controller struct {
	UserProfileService *services.UserProfileService
	AuthService        *services.AuthService
}

func NewS3Controller(userProfileService *services.UserProfileService, authService *services.AuthService) *S3Controller {
	return &S3Controller{UserProfileService: userProfileService, AuthService: authService}
}

// GetAvatarUploadURL returns a presigned PUT URL for the caller's new avatar
func (c *S3Controller) GetAvatarUploadURL(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r, c.AuthService)
	if err != nil {
		writeError(w, err)
		return
	}

	uploadURL, key, err := services.GenerateAvatarUploadURL(userID)
	if err != nil {
		log.Printf("Failed to presign avatar upload for %s: %v", userID, err)
		http.Error(w, `{"error": "Failed to generate upload URL"}`, http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"uploadUrl": uploadURL,
		"key":       key,
	})
}

// ConfirmAvatar resolves the uploaded object to a download URL and stores it
// on the caller's profile.
func (c *S3Controller) ConfirmAvatar(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r, c.AuthService)
	if err != nil {
		writeError(w, err)
		return
	}

	var request struct {
		Key string `json:"key"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil || request.Key == "" {
		http.Error(w, `{"error": "key is required"}`, http.StatusBadRequest)
		return
	}

	readURL, err := services.GenerateReadURL(request.Key)
	if err != nil {
		log.Printf("Failed to presign avatar read for %s: %v", userID, err)
		http.Error(w, `{"error": "Failed to generate read URL"}`, http.StatusInternalServerError)
		return
	}

	profile, err := c.UserProfileService.UpdateProfileField(r.Context(), userID, "avatar", readURL)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Avatar updated",
		"profile": profile,
	})
}
