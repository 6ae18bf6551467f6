package achievement

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mcoot/memorymatch-go/internal/model"
	"github.com/mcoot/memorymatch-go/internal/storage"
)

// Unlock thresholds
const (
	// SpeedDemon requires a completed run strictly under this many seconds
	speedDemonThreshold = 30.0
	// Persistent requires this many total play attempts
	persistentThreshold = 5
)

// Service evaluates which achievements a play session unlocks
type Service struct {
	storage storage.Storage
	catalog *Catalog
	logger  *slog.Logger
}

// New creates a new achievement Service
func New(storage storage.Storage, catalog *Catalog, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		catalog: catalog,
		logger:  logger,
	}
}

// Catalog returns the catalog the service evaluates against
func (s *Service) Catalog() *Catalog {
	return s.catalog
}

// Evaluate determines which achievements the given session newly unlocks
// and persists the unlock records. The result is in catalog order and
// contains only achievements the user did not already hold; re-evaluating
// the same session never produces duplicates.
//
// Any storage failure aborts the evaluation; the caller must treat the whole
// session save as failed rather than report partial results.
func (s *Service) Evaluate(ctx context.Context, userID model.UserID, stats model.GameStats) ([]model.Achievement, error) {
	unlocked, err := s.storage.GetUnlocks(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load unlocks for %s: %w", userID, err)
	}
	held := make(map[model.AchievementName]struct{}, len(unlocked))
	for _, name := range unlocked {
		held[name] = struct{}{}
	}

	// Persistent counts attempts, not just this session's stats. The current
	// submission counts too, so a user's 5th play unlocks it.
	attempts, err := s.attemptCount(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count attempts for %s: %w", userID, err)
	}

	var newly []model.Achievement
	for _, a := range s.catalog.All() {
		if _, ok := held[a.Name]; ok {
			continue
		}
		if !satisfied(a.Name, stats, attempts) {
			continue
		}

		created, err := s.storage.SaveUnlock(ctx, userID, a.Name)
		if err != nil {
			return nil, fmt.Errorf("save unlock %q for %s: %w", a.Name, userID, err)
		}
		if !created {
			// A concurrent evaluation for the same user got there first
			continue
		}

		s.logger.Info("achievement unlocked",
			slog.String("user_id", string(userID)),
			slog.String("achievement", string(a.Name)),
		)
		newly = append(newly, a)
	}

	return newly, nil
}

// attemptCount returns the user's total attempts including the submission
// currently being evaluated.
func (s *Service) attemptCount(ctx context.Context, userID model.UserID) (int, error) {
	score, err := s.storage.GetScore(ctx, userID)
	if err != nil {
		if errors.Is(err, model.ErrScoreNotFound) {
			return 1, nil
		}
		return 0, err
	}
	return score.Attempts + 1, nil
}

// satisfied evaluates a catalog entry's unlock predicate
func satisfied(name model.AchievementName, stats model.GameStats, attempts int) bool {
	switch name {
	case FirstWin.Name:
		return stats.Completed
	case SpeedDemon.Name:
		return stats.Completed && stats.Time < speedDemonThreshold
	case Persistent.Name:
		return attempts >= persistentThreshold
	case PerfectMemory.Name:
		return stats.Completed && stats.Mistakes == 0
	default:
		return false
	}
}
