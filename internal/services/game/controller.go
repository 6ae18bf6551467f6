package game

import (
	"context"
	"log/slog"

	"github.com/mcoot/memorymatch-go/internal/model"
	"github.com/mcoot/memorymatch-go/internal/services/achievement"
	"github.com/mcoot/memorymatch-go/internal/services/record"
	"github.com/mcoot/memorymatch-go/internal/services/scoring"
	"github.com/mcoot/memorymatch-go/internal/storage"
)

// Response messages for score submission
const (
	MsgScoreRecorded  = "Score recorded successfully"
	MsgNotCompleted   = "Game not completed"
	MsgPreviousBetter = "Previous time was better; best score kept"
)

// SubmitResult is the outcome of one session submission
type SubmitResult struct {
	Score    *model.Score
	Unlocked []model.Achievement
	Message  string
}

// Controller orchestrates a session submission: verify the user, evaluate
// achievements, compute points, record the score. Each step fails
// independently and aborts the submission; nothing is retried here.
type Controller struct {
	storage      storage.Storage
	achievements *achievement.Service
	recorder     *record.Service
	logger       *slog.Logger
}

// NewController creates a new game Controller
func NewController(storage storage.Storage, achievements *achievement.Service, recorder *record.Service, logger *slog.Logger) *Controller {
	return &Controller{
		storage:      storage,
		achievements: achievements,
		recorder:     recorder,
		logger:       logger,
	}
}

// SubmitScore applies one play session for a user
func (c *Controller) SubmitScore(ctx context.Context, userID model.UserID, stats model.GameStats) (*SubmitResult, error) {
	// Reject unknown users before any write
	if _, err := c.storage.GetUser(ctx, userID); err != nil {
		return nil, err
	}

	unlocked, err := c.achievements.Evaluate(ctx, userID, stats)
	if err != nil {
		return nil, err
	}

	// Only completed runs score; achievement bonuses count toward the
	// session's points, not retroactively
	points := 0
	if stats.Completed {
		points = scoring.CalculatePoints(stats.Time, unlocked)
	}

	res, err := c.recorder.Record(ctx, userID, stats, points)
	if err != nil {
		return nil, err
	}

	message := MsgScoreRecorded
	switch {
	case !stats.Completed:
		message = MsgNotCompleted
	case res.PreviousBetter:
		message = MsgPreviousBetter
	}

	c.logger.Info("session submitted",
		slog.String("user_id", string(userID)),
		slog.Bool("completed", stats.Completed),
		slog.Int("points", points),
		slog.Int("unlocked", len(unlocked)),
	)

	return &SubmitResult{
		Score:    res.Score,
		Unlocked: unlocked,
		Message:  message,
	}, nil
}
