package record

import (
	"context"
	"errors"
	"log/slog"

	"github.com/mcoot/memorymatch-go/internal/dependencies/clock"
	"github.com/mcoot/memorymatch-go/internal/model"
	"github.com/mcoot/memorymatch-go/internal/storage"
)

// Result describes what happened to the user's Score record
type Result struct {
	// Score is the record after the submission was applied
	Score *model.Score
	// Updated is true if the best result (time/points) changed
	Updated bool
	// PreviousBetter is true when a completed run was rejected because the
	// stored completed time was faster or equal
	PreviousBetter bool
}

// Service decides whether a session result replaces the stored best record.
// Each user has exactly one Score row; the recorded completed time only ever
// decreases.
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new record Service
func New(storage storage.Storage, clock clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		logger:  logger,
	}
}

// Best returns the user's current Score record, or nil if the user has
// never submitted a session.
func (s *Service) Best(ctx context.Context, userID model.UserID) (*model.Score, error) {
	score, err := s.storage.GetScore(ctx, userID)
	if err != nil {
		if errors.Is(err, model.ErrScoreNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return score, nil
}

// Record applies one play session to the user's Score record. The
// compare-and-overwrite runs inside the storage backend's per-user critical
// section, so concurrent submissions (retries, multiple tabs) cannot lose
// updates. Every submission bumps the attempt counter, even when the best
// result is kept.
func (s *Service) Record(ctx context.Context, userID model.UserID, stats model.GameStats, points int) (*Result, error) {
	now := s.clock.Now()
	result := &Result{}

	score, err := s.storage.UpdateScore(ctx, userID, func(current *model.Score) (*model.Score, error) {
		if current == nil {
			next := &model.Score{
				UserID:    userID,
				Attempts:  1,
				UpdatedAt: now,
			}
			if stats.Completed {
				t := stats.Time
				next.Time = &t
				next.Completed = true
				next.Points = points
			}
			result.Updated = true
			return next, nil
		}

		next := *current
		next.Attempts++
		next.UpdatedAt = now

		switch {
		case !stats.Completed:
			// A timed-out session never replaces a stored result
		case !current.Completed:
			// First completion always beats "never completed"
			t := stats.Time
			next.Time = &t
			next.Completed = true
			next.Points = points
			result.Updated = true
		case current.Time != nil && stats.Time < *current.Time:
			t := stats.Time
			next.Time = &t
			next.Points = points
			result.Updated = true
		default:
			result.PreviousBetter = true
		}

		return &next, nil
	})
	if err != nil {
		return nil, err
	}

	if result.Updated {
		s.logger.Info("best score updated",
			slog.String("user_id", string(userID)),
			slog.Int("points", score.Points),
			slog.Int("attempts", score.Attempts),
		)
	}

	result.Score = score
	return result, nil
}
