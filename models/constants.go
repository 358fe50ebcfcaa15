package models

// ✅ Swipe verdicts
const (
	VerdictLike = "like"
	VerdictPass = "pass"
)
