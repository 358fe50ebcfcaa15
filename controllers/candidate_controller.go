package controllers

import (
	"log"
	"net/http"

	"uclmatch_server/services"
)

// CandidateController exposes the raw shuffled candidate pool
type CandidateController struct {
	CandidateService *services.CandidateService
	AuthService      *services.AuthService
}

func NewCandidateController(candidateService *services.CandidateService, authService *services.AuthService) *CandidateController {
	return &CandidateController{CandidateService: candidateService, AuthService: authService}
}

// GetCandidates returns every user except the caller, freshly shuffled
func (c *CandidateController) GetCandidates(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r, c.AuthService)
	if err != nil {
		writeError(w, err)
		return
	}

	candidates, err := c.CandidateService.LoadCandidates(r.Context(), userID)
	if err != nil {
		log.Printf("Failed to load candidates for %s: %v", userID, err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, candidates)
}
