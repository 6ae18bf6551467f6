package response

import (
	"fmt"

	"github.com/mcoot/memorymatch-go/internal/model"
	"github.com/mcoot/memorymatch-go/internal/services/auth"
	"github.com/mcoot/memorymatch-go/internal/services/game"
	"github.com/mcoot/memorymatch-go/internal/services/leaderboard"
)

// User represents a user in API responses
type User struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	Company string `json:"company"`
}

// UserFromModel converts a model.User to a response User
func UserFromModel(u *model.User) User {
	return User{
		ID:      string(u.ID),
		Name:    u.Name,
		Email:   u.Email,
		Role:    u.Role,
		Company: u.Company,
	}
}

// RegisterResponse is the response for the registration endpoint.
// AccessCode is present only when a new account was created; it is shown
// this one time and never again.
type RegisterResponse struct {
	User       User   `json:"user"`
	AccessCode string `json:"access_code,omitempty"`
	IsExisting bool   `json:"is_existing"`
}

// LoginResponse is the response for the login endpoint
type LoginResponse struct {
	User         User     `json:"user"`
	SessionToken string   `json:"session_token"`
	BestTime     *float64 `json:"best_time"`
}

// LoginResponseFromSession creates a LoginResponse from a session
func LoginResponseFromSession(s *auth.Session, bestTime *float64) LoginResponse {
	return LoginResponse{
		User:         UserFromModel(&s.User),
		SessionToken: s.Token,
		BestTime:     bestTime,
	}
}

// AccessCodeResponse is the response for access-code regeneration
type AccessCodeResponse struct {
	AccessCode string `json:"access_code"`
}

// Achievement represents an unlocked achievement in API responses
type Achievement struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Points      int    `json:"points"`
}

// AchievementFromModel converts a model.Achievement
func AchievementFromModel(a model.Achievement) Achievement {
	return Achievement{
		Name:        string(a.Name),
		Description: a.Description,
		Icon:        a.Icon,
		Points:      a.Points,
	}
}

// Score represents a user's best record in API responses
type Score struct {
	UserID      string   `json:"user_id"`
	Time        *float64 `json:"time"`
	DisplayTime string   `json:"display_time"`
	Points      int      `json:"points"`
	Completed   bool     `json:"completed"`
	Attempts    int      `json:"attempts"`
}

// ScoreFromModel converts a model.Score
func ScoreFromModel(s *model.Score) Score {
	return Score{
		UserID:      string(s.UserID),
		Time:        s.Time,
		DisplayTime: displayTime(s.Time),
		Points:      s.Points,
		Completed:   s.Completed,
		Attempts:    s.Attempts,
	}
}

// SubmitScoreResponse is the response for score submission
type SubmitScoreResponse struct {
	Success              bool          `json:"success"`
	Score                Score         `json:"score"`
	UnlockedAchievements []Achievement `json:"unlocked_achievements"`
	Message              string        `json:"message"`
}

// SubmitScoreResponseFromResult converts a game.SubmitResult
func SubmitScoreResponseFromResult(res *game.SubmitResult) SubmitScoreResponse {
	unlocked := make([]Achievement, 0, len(res.Unlocked))
	for _, a := range res.Unlocked {
		unlocked = append(unlocked, AchievementFromModel(a))
	}
	return SubmitScoreResponse{
		Success:              true,
		Score:                ScoreFromModel(res.Score),
		UnlockedAchievements: unlocked,
		Message:              res.Message,
	}
}

// LeaderboardEntry represents one ranked row in API responses
type LeaderboardEntry struct {
	Rank         int           `json:"rank"`
	UserID       string        `json:"user_id"`
	Name         string        `json:"name"`
	Time         *float64      `json:"time"`
	DisplayTime  string        `json:"display_time"`
	Points       int           `json:"points"`
	Completed    bool          `json:"completed"`
	Achievements []Achievement `json:"achievements"`
}

// LeaderboardResponse is the response for the leaderboard endpoint
type LeaderboardResponse struct {
	Entries []LeaderboardEntry `json:"entries"`
}

// LeaderboardResponseFromEntries converts leaderboard entries, assigning
// 1-based ranks in order
func LeaderboardResponseFromEntries(entries []leaderboard.Entry) LeaderboardResponse {
	out := make([]LeaderboardEntry, 0, len(entries))
	for i, e := range entries {
		achievements := make([]Achievement, 0, len(e.Achievements))
		for _, a := range e.Achievements {
			achievements = append(achievements, AchievementFromModel(a))
		}
		out = append(out, LeaderboardEntry{
			Rank:         i + 1,
			UserID:       string(e.UserID),
			Name:         e.Name,
			Time:         e.Time,
			DisplayTime:  displayTime(e.Time),
			Points:       e.Points,
			Completed:    e.Completed,
			Achievements: achievements,
		})
	}
	return LeaderboardResponse{Entries: out}
}

// displayTime renders a best time for display
func displayTime(t *float64) string {
	if t == nil {
		return "Did not complete"
	}
	return fmt.Sprintf("%g seconds", *t)
}
