package routes

import (
	"uclmatch_server/controllers"
	"uclmatch_server/services"

	"github.com/gorilla/mux"
)

// RegisterCandidateRoutes sets up the candidate pool route under /api/candidates
func RegisterCandidateRoutes(r *mux.Router, candidateService *services.CandidateService, authService *services.AuthService) {
	controller := controllers.NewCandidateController(candidateService, authService)

	r.HandleFunc("/api/candidates", controller.GetCandidates).Methods("GET")
}
