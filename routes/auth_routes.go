package routes

import (
	"uclmatch_server/controllers"
	"uclmatch_server/services"

	"github.com/gorilla/mux"
)

// RegisterAuthRoutes sets up routes for account operations under /api/auth
func RegisterAuthRoutes(r *mux.Router, authService *services.AuthService) {
	controller := controllers.NewAuthController(authService)

	authRouter := r.PathPrefix("/api/auth").Subrouter()

	authRouter.HandleFunc("/register", controller.Register).Methods("POST")
	authRouter.HandleFunc("/login", controller.Login).Methods("POST")
	authRouter.HandleFunc("/logout", controller.Logout).Methods("POST")
	authRouter.HandleFunc("/verify", controller.VerifyEmail).Methods("GET")
}
