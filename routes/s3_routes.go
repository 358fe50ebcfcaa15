package routes

import (
	"uclmatch_server/controllers"
	"uclmatch_server/services"

	"github.com/gorilla/mux"
)

// RegisterS3Routes sets up avatar storage routes under /api/s3
func RegisterS3Routes(r *mux.Router, userProfileService *services.UserProfileService, authService *services.AuthService) {
	controller := controllers.NewS3Controller(userProfileService, authService)

	s3Router := r.PathPrefix("/api/s3").Subrouter()

	s3Router.HandleFunc("/avatar-upload-url", controller.GetAvatarUploadURL).Methods("GET")
	s3Router.HandleFunc("/avatar", controller.ConfirmAvatar).Methods("POST")
}
