package routes

import (
	"uclmatch_server/controllers"
	"uclmatch_server/services"

	"github.com/gorilla/mux"
)

// RegisterSwipeRoutes sets up routes for the discovery deck under /api/swipe
func RegisterSwipeRoutes(r *mux.Router, swipeService *services.SwipeService, authService *services.AuthService) {
	controller := controllers.NewSwipeController(swipeService, authService)

	swipeRouter := r.PathPrefix("/api/swipe").Subrouter()

	swipeRouter.HandleFunc("/session", controller.StartSession).Methods("POST")
	swipeRouter.HandleFunc("/session", controller.GetCurrent).Methods("GET")
	swipeRouter.HandleFunc("/session", controller.EndSession).Methods("DELETE")
	swipeRouter.HandleFunc("", controller.Swipe).Methods("POST")
}
