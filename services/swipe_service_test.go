package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"uclmatch_server/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedLoader struct {
	candidates []models.UserProfile
	err        error
}

func (f *fixedLoader) LoadCandidates(_ context.Context, excludeID string) ([]models.UserProfile, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]models.UserProfile, 0, len(f.candidates))
	for _, c := range f.candidates {
		if c.UserID != excludeID {
			out = append(out, c)
		}
	}
	return out, nil
}

type recordingBootstrapper struct {
	calls []struct {
		viewerID  string
		candidate models.UserProfile
	}
	err error
}

func (r *recordingBootstrapper) CreateChat(_ context.Context, viewerID string, candidate models.UserProfile) (string, error) {
	r.calls = append(r.calls, struct {
		viewerID  string
		candidate models.UserProfile
	}{viewerID, candidate})
	if r.err != nil {
		return "", r.err
	}
	return "chat-1", nil
}

func deck(ids ...string) []models.UserProfile {
	out := make([]models.UserProfile, 0, len(ids))
	for _, id := range ids {
		out = append(out, models.UserProfile{UserID: id, Name: "user " + id})
	}
	return out
}

func newSwipeFixture(t *testing.T, ids ...string) (*SwipeService, *recordingBootstrapper) {
	t.Helper()
	chats := &recordingBootstrapper{}
	ss := NewSwipeService(&fixedLoader{candidates: deck(ids...)}, chats)
	_, _, err := ss.StartSession(context.Background(), "viewer")
	require.NoError(t, err)
	return ss, chats
}

func TestSwipeThresholdIsExclusive(t *testing.T) {
	tests := []struct {
		name         string
		translationX float64
		wantDecided  bool
		wantVerdict  string
	}{
		{"exactly at positive threshold", SwipeThreshold, false, ""},
		{"exactly at negative threshold", -SwipeThreshold, false, ""},
		{"just beyond positive threshold", SwipeThreshold + 0.5, true, models.VerdictLike},
		{"just beyond negative threshold", -SwipeThreshold - 0.5, true, models.VerdictPass},
		{"small drag", 30, false, ""},
		{"zero", 0, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ss, _ := newSwipeFixture(t, "a", "b")

			result, err := ss.Swipe(context.Background(), "viewer", tt.translationX)
			require.NoError(t, err)
			assert.Equal(t, tt.wantDecided, result.Decided)
			assert.Equal(t, tt.wantVerdict, result.Verdict)

			// An undecided gesture leaves the cursor in place.
			current, err := ss.Current("viewer")
			require.NoError(t, err)
			require.NotNil(t, current)
			if tt.wantDecided {
				assert.Equal(t, "b", current.UserID)
			} else {
				assert.Equal(t, "a", current.UserID)
			}
		})
	}
}

func TestSwipeLikeCreatesOneChat(t *testing.T) {
	ss, chats := newSwipeFixture(t, "a", "b")

	result, err := ss.Swipe(context.Background(), "viewer", 400)
	require.NoError(t, err)
	assert.True(t, result.Decided)
	assert.Equal(t, models.VerdictLike, result.Verdict)
	assert.Equal(t, "chat-1", result.ChatID)

	require.Len(t, chats.calls, 1)
	assert.Equal(t, "viewer", chats.calls[0].viewerID)
	assert.Equal(t, "a", chats.calls[0].candidate.UserID)
}

func TestSwipePassHasNoSideEffect(t *testing.T) {
	ss, chats := newSwipeFixture(t, "a", "b")

	result, err := ss.Swipe(context.Background(), "viewer", -400)
	require.NoError(t, err)
	assert.Equal(t, models.VerdictPass, result.Verdict)
	assert.Empty(t, chats.calls)
	assert.Equal(t, "b", result.Next.UserID)
}

func TestSwipeChatFailureDoesNotBlockFlow(t *testing.T) {
	chats := &recordingBootstrapper{err: errors.New("backend down")}
	ss := NewSwipeService(&fixedLoader{candidates: deck("a", "b")}, chats)
	_, _, err := ss.StartSession(context.Background(), "viewer")
	require.NoError(t, err)

	result, err := ss.Swipe(context.Background(), "viewer", 400)
	require.NoError(t, err)

	// The like was attempted, the failure swallowed, and the cursor advanced.
	assert.Len(t, chats.calls, 1)
	assert.True(t, result.Decided)
	assert.Empty(t, result.ChatID)
	require.NotNil(t, result.Next)
	assert.Equal(t, "b", result.Next.UserID)
}

type blockingBootstrapper struct {
	entered chan struct{}
	release chan struct{}
}

func (b *blockingBootstrapper) CreateChat(_ context.Context, _ string, _ models.UserProfile) (string, error) {
	close(b.entered)
	<-b.release
	return "chat-1", nil
}

func TestSwipeChatWriteDoesNotStallOtherViewers(t *testing.T) {
	chats := &blockingBootstrapper{entered: make(chan struct{}), release: make(chan struct{})}
	ss := NewSwipeService(&fixedLoader{candidates: deck("a", "b", "c")}, chats)
	for _, viewer := range []string{"v1", "v2"} {
		_, _, err := ss.StartSession(context.Background(), viewer)
		require.NoError(t, err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, err := ss.Swipe(context.Background(), "v1", 400)
		assert.NoError(t, err)
	}()

	select {
	case <-chats.entered:
	case <-time.After(2 * time.Second):
		t.Fatal("chat write never started")
	}

	// v1's chat write is in flight; v2's swipe must still go through.
	swiped := make(chan struct{})
	go func() {
		defer close(swiped)
		result, err := ss.Swipe(context.Background(), "v2", -400)
		assert.NoError(t, err)
		assert.Equal(t, models.VerdictPass, result.Verdict)
	}()
	select {
	case <-swiped:
	case <-time.After(2 * time.Second):
		t.Fatal("swipe stalled behind another viewer's chat write")
	}

	close(chats.release)
	<-done
}

func TestSwipeExhaustionIsTerminal(t *testing.T) {
	ss, _ := newSwipeFixture(t, "a", "b")

	_, err := ss.Swipe(context.Background(), "viewer", -200)
	require.NoError(t, err)
	result, err := ss.Swipe(context.Background(), "viewer", -200)
	require.NoError(t, err)
	assert.True(t, result.Exhausted)
	assert.Nil(t, result.Next)

	// Further gestures never re-enable the session.
	for i := 0; i < 3; i++ {
		result, err = ss.Swipe(context.Background(), "viewer", 999)
		require.NoError(t, err)
		assert.True(t, result.Exhausted)
		assert.False(t, result.Decided)
	}

	current, err := ss.Current("viewer")
	require.NoError(t, err)
	assert.Nil(t, current)

	// Re-entering the screen starts over from a fresh deck.
	first, total, err := ss.StartSession(context.Background(), "viewer")
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.NotNil(t, first)
}

func TestSwipeEmptyDeckStartsExhausted(t *testing.T) {
	ss := NewSwipeService(&fixedLoader{}, &recordingBootstrapper{})
	first, total, err := ss.StartSession(context.Background(), "viewer")
	require.NoError(t, err)
	assert.Nil(t, first)
	assert.Zero(t, total)

	result, err := ss.Swipe(context.Background(), "viewer", 400)
	require.NoError(t, err)
	assert.True(t, result.Exhausted)
}

func TestEndSessionDropsState(t *testing.T) {
	ss, _ := newSwipeFixture(t, "a", "b")

	ss.EndSession("viewer")
	_, err := ss.Current("viewer")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestSwipeWithoutSession(t *testing.T) {
	ss := NewSwipeService(&fixedLoader{}, &recordingBootstrapper{})

	_, err := ss.Swipe(context.Background(), "ghost", 200)
	assert.ErrorIs(t, err, models.ErrNotFound)

	_, err = ss.Current("ghost")
	assert.ErrorIs(t, err, models.ErrNotFound)
}
