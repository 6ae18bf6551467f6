package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case User:
		o.printUser(v)
	case RegisterResult:
		o.printRegisterResult(v)
	case LoginResult:
		o.printLoginResult(v)
	case AccessCodeResult:
		o.printAccessCodeResult(v)
	case SubmitResult:
		o.printSubmitResult(v)
	case Leaderboard:
		o.printLeaderboard(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// User response type (matches API)
type User struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	Company string `json:"company"`
}

// RegisterResult response type
type RegisterResult struct {
	User       User   `json:"user"`
	AccessCode string `json:"access_code,omitempty"`
	IsExisting bool   `json:"is_existing"`
}

// LoginResult response type
type LoginResult struct {
	User         User     `json:"user"`
	SessionToken string   `json:"session_token"`
	BestTime     *float64 `json:"best_time"`
}

// AccessCodeResult response type
type AccessCodeResult struct {
	AccessCode string `json:"access_code"`
}

// Achievement response type
type Achievement struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Points      int    `json:"points"`
}

// Score response type
type Score struct {
	UserID      string   `json:"user_id"`
	Time        *float64 `json:"time"`
	DisplayTime string   `json:"display_time"`
	Points      int      `json:"points"`
	Completed   bool     `json:"completed"`
	Attempts    int      `json:"attempts"`
}

// SubmitResult response type
type SubmitResult struct {
	Success              bool          `json:"success"`
	Score                Score         `json:"score"`
	UnlockedAchievements []Achievement `json:"unlocked_achievements"`
	Message              string        `json:"message"`
}

// LeaderboardEntry response type
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

// Leaderboard response type
type Leaderboard struct {
	Entries []LeaderboardEntry `json:"entries"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printUser(u User) {
	fmt.Printf("User: %s (%s)\n", u.Name, u.ID)
	fmt.Printf("Email: %s\n", u.Email)
	fmt.Printf("Role: %s at %s\n", u.Role, u.Company)
}

func (o *Output) printRegisterResult(r RegisterResult) {
	o.printUser(r.User)
	if r.IsExisting {
		fmt.Println("This email was already registered; existing account returned.")
		return
	}
	fmt.Printf("Access code: %s\n", r.AccessCode)
	fmt.Println("Save this code now. It will not be shown again.")
}

func (o *Output) printLoginResult(l LoginResult) {
	o.printUser(l.User)
	if l.BestTime != nil {
		fmt.Printf("Best time: %g seconds\n", *l.BestTime)
	} else {
		fmt.Println("Best time: none yet")
	}
	fmt.Printf("Token: %s\n", l.SessionToken)
}

func (o *Output) printAccessCodeResult(a AccessCodeResult) {
	fmt.Printf("New access code: %s\n", a.AccessCode)
	fmt.Println("Save this code now. It will not be shown again.")
}

func (o *Output) printSubmitResult(r SubmitResult) {
	fmt.Println(r.Message)
	fmt.Printf("Best: %s, %d points (%d attempts)\n", r.Score.DisplayTime, r.Score.Points, r.Score.Attempts)
	if len(r.UnlockedAchievements) > 0 {
		fmt.Println("Unlocked:")
		for _, a := range r.UnlockedAchievements {
			fmt.Printf("  %s %s (+%d) - %s\n", a.Icon, a.Name, a.Points, a.Description)
		}
	}
}

func (o *Output) printLeaderboard(l Leaderboard) {
	if len(l.Entries) == 0 {
		fmt.Println("No scores yet")
		return
	}

	for _, e := range l.Entries {
		icons := make([]string, 0, len(e.Achievements))
		for _, a := range e.Achievements {
			icons = append(icons, a.Icon)
		}
		fmt.Printf("%2d. %-20s %6d pts  %-18s %s\n",
			e.Rank, e.Name, e.Points, e.DisplayTime, strings.Join(icons, " "))
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
