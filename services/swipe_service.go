package services

import (
	"context"
	"fmt"
	"log"
	"sync"

	"uclmatch_server/models"
)

// SwipeThreshold is the horizontal displacement, in logical units, a drag
// must strictly exceed to commit a decision. At exactly the threshold the
// gesture cancels and the card snaps back.
const SwipeThreshold = 150.0

// CandidateLoader supplies the shuffled deck for a new session.
type CandidateLoader interface {
	LoadCandidates(ctx context.Context, excludeID string) ([]models.UserProfile, error)
}

// ChatBootstrapper turns a like into a durable chat record.
type ChatBootstrapper interface {
	CreateChat(ctx context.Context, viewerID string, candidate models.UserProfile) (string, error)
}

type swipeSession struct {
	candidates []models.UserProfile
	cursor     int
}

// SwipeService holds each viewer's in-memory cursor over their candidate deck
// and interprets completed drag gestures as like/pass decisions. Decisions
// are strictly sequential per viewer; the cursor only moves after a completed
// gesture. Exhaustion (cursor -1) is terminal until the session restarts.
type SwipeService struct {
	Candidates CandidateLoader
	Chats      ChatBootstrapper

	mu       sync.Mutex
	sessions map[string]*swipeSession
}

func NewSwipeService(candidates CandidateLoader, chats ChatBootstrapper) *SwipeService {
	return &SwipeService{
		Candidates: candidates,
		Chats:      chats,
		sessions:   make(map[string]*swipeSession),
	}
}

// StartSession loads a fresh shuffled deck for the viewer and resets the
// cursor. Re-entering the swipe screen always comes through here, so a
// previously exhausted session is replaced, not resumed. Returns the first
// candidate (nil for an empty deck) and the deck size.
func (ss *SwipeService) StartSession(ctx context.Context, viewerID string) (*models.UserProfile, int, error) {
	candidates, err := ss.Candidates.LoadCandidates(ctx, viewerID)
	if err != nil {
		return nil, 0, err
	}

	session := &swipeSession{candidates: candidates, cursor: 0}
	if len(candidates) == 0 {
		session.cursor = -1
	}

	ss.mu.Lock()
	ss.sessions[viewerID] = session
	ss.mu.Unlock()

	if session.cursor < 0 {
		return nil, 0, nil
	}
	return &candidates[0], len(candidates), nil
}

// Current returns the candidate under the cursor, or nil when the session is
// exhausted. A viewer with no session at all gets ErrNotFound.
func (ss *SwipeService) Current(viewerID string) (*models.UserProfile, error) {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	session, ok := ss.sessions[viewerID]
	if !ok {
		return nil, fmt.Errorf("%w: no active swipe session", models.ErrNotFound)
	}
	if session.cursor < 0 {
		return nil, nil
	}
	candidate := session.candidates[session.cursor]
	return &candidate, nil
}

// Swipe commits the end of a drag gesture. Displacement beyond +threshold is
// a like, beyond -threshold a pass; anything inside (threshold included) is
// an elastic cancel with no decision. The cursor advances under the lock; a
// like then bootstraps a chat outside it, best-effort, so one slow chat write
// cannot stall other viewers' swipes. A failed chat write is logged and the
// swipe flow carries on.
func (ss *SwipeService) Swipe(ctx context.Context, viewerID string, translationX float64) (*models.SwipeResult, error) {
	ss.mu.Lock()

	session, ok := ss.sessions[viewerID]
	if !ok {
		ss.mu.Unlock()
		return nil, fmt.Errorf("%w: no active swipe session", models.ErrNotFound)
	}

	if session.cursor < 0 {
		ss.mu.Unlock()
		return &models.SwipeResult{Exhausted: true}, nil
	}

	var verdict string
	switch {
	case translationX > SwipeThreshold:
		verdict = models.VerdictLike
	case translationX < -SwipeThreshold:
		verdict = models.VerdictPass
	default:
		// No decision; the card offset resets to zero.
		current := session.candidates[session.cursor]
		ss.mu.Unlock()
		return &models.SwipeResult{Decided: false, Next: &current}, nil
	}

	candidate := session.candidates[session.cursor]

	result := &models.SwipeResult{Decided: true, Verdict: verdict}
	if session.cursor < len(session.candidates)-1 {
		session.cursor++
		next := session.candidates[session.cursor]
		result.Next = &next
	} else {
		session.cursor = -1
		result.Exhausted = true
	}
	ss.mu.Unlock()

	if verdict == models.VerdictLike {
		chatID, err := ss.Chats.CreateChat(ctx, viewerID, candidate)
		if err != nil {
			log.Printf("Failed to create chat for like by %s on %s: %v", viewerID, candidate.UserID, err)
		} else {
			result.ChatID = chatID
		}
	}

	return result, nil
}

// EndSession drops the viewer's in-memory session, if any.
func (ss *SwipeService) EndSession(viewerID string) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	delete(ss.sessions, viewerID)
}
