package controllers

import (
	"encoding/json"
	"log"
	"net/http"

	"uclmatch_server/services"
)

// SwipeController drives the discovery deck: session start, current card,
// and gesture decisions.
type SwipeController struct {
	SwipeService *services.SwipeService
	AuthService  *services.AuthService
}

func NewSwipeController(swipeService *services.SwipeService, authService *services.AuthService) *SwipeController {
	return &SwipeController{SwipeService: swipeService, AuthService: authService}
}

// StartSession loads a fresh shuffled deck for the caller
func (c *SwipeController) StartSession(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r, c.AuthService)
	if err != nil {
		writeError(w, err)
		return
	}

	first, total, err := c.SwipeService.StartSession(r.Context(), userID)
	if err != nil {
		log.Printf("Failed to start swipe session for %s: %v", userID, err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"candidate": first,
		"total":     total,
	})
}

// GetCurrent returns the candidate under the cursor
func (c *SwipeController) GetCurrent(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r, c.AuthService)
	if err != nil {
		writeError(w, err)
		return
	}

	candidate, err := c.SwipeService.Current(userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"candidate": candidate,
		"exhausted": candidate == nil,
	})
}

// EndSession drops the caller's deck when the swipe screen is dismissed
func (c *SwipeController) EndSession(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r, c.AuthService)
	if err != nil {
		writeError(w, err)
		return
	}

	c.SwipeService.EndSession(userID)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Session ended"})
}

// Swipe commits the end of a drag gesture
func (c *SwipeController) Swipe(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r, c.AuthService)
	if err != nil {
		writeError(w, err)
		return
	}

	var request struct {
		TranslationX float64 `json:"translationX"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}

	result, err := c.SwipeService.Swipe(r.Context(), userID, request.TranslationX)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
