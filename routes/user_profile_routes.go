package routes

import (
	"uclmatch_server/controllers"
	"uclmatch_server/services"

	"github.com/gorilla/mux"
)

// RegisterUserProfileRoutes sets up routes for user profile operations under /api/profiles
func RegisterUserProfileRoutes(r *mux.Router, userProfileService *services.UserProfileService, authService *services.AuthService) {
	controller := controllers.NewUserProfileController(userProfileService, authService)

	profileRouter := r.PathPrefix("/api/profiles").Subrouter()

	profileRouter.HandleFunc("/me", controller.GetMyProfile).Methods("GET")
	profileRouter.HandleFunc("/me", controller.UpdateMyProfile).Methods("PATCH")
	profileRouter.HandleFunc("/{userId}", controller.GetProfileByID).Methods("GET")
}
