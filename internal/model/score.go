package model

import "time"

// GameStats describes one finished or timed-out play session.
// It is the input to achievement evaluation and scoring, and is never
// persisted directly.
type GameStats struct {
	Time      float64 // elapsed seconds (fractional allowed)
	Completed bool
	Mistakes  int
}

// Score is a user's single best-result record.
// There is at most one Score per user; it is created on the first play and
// overwritten in place only when a completed run beats the stored time.
type Score struct {
	UserID    UserID
	Time      *float64 // nil until the user completes a run
	Points    int
	Completed bool
	Attempts  int // total submissions, completed or not
	UpdatedAt time.Time
}

// BestTime returns the recorded completed time, or false if the user has
// never completed a run.
func (s *Score) BestTime() (float64, bool) {
	if s == nil || !s.Completed || s.Time == nil {
		return 0, false
	}
	return *s.Time, true
}
