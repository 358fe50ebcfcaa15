package models

// SwipeResult reports what a completed drag gesture did to the session.
type SwipeResult struct {
	Decided   bool         `json:"decided"`           // false when the drag fell inside the threshold
	Verdict   string       `json:"verdict,omitempty"` // VerdictLike or VerdictPass when Decided
	ChatID    string       `json:"chatId,omitempty"`  // set when a like created a chat
	Exhausted bool         `json:"exhausted"`
	Next      *UserProfile `json:"next,omitempty"` // candidate now under the cursor
}
