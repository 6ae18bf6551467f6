package leaderboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/mcoot/memorymatch-go/internal/model"
	"github.com/mcoot/memorymatch-go/internal/services/achievement"
	"github.com/mcoot/memorymatch-go/internal/storage"
)

// Limit is the number of entries a leaderboard holds
const Limit = 10

// Entry is one ranked, display-ready leaderboard row
type Entry struct {
	UserID       model.UserID
	Name         string
	Time         *float64
	Points       int
	Completed    bool
	Achievements []model.Achievement
}

// Service builds the ranked top-N view over all Score records.
// It is read-only; a snapshot may lag an in-flight write.
type Service struct {
	storage storage.Storage
	catalog *achievement.Catalog
	logger  *slog.Logger
}

// New creates a new leaderboard Service
func New(storage storage.Storage, catalog *achievement.Catalog, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		catalog: catalog,
		logger:  logger,
	}
}

// Top returns the ranked leaderboard: points descending, then completed
// before uncompleted, then fastest time first, truncated to Limit entries
// and enriched with display names and unlocked achievements.
func (s *Service) Top(ctx context.Context) ([]Entry, error) {
	scores, err := s.storage.ListScores(ctx)
	if err != nil {
		return nil, fmt.Errorf("list scores: %w", err)
	}

	sort.SliceStable(scores, func(i, j int) bool {
		a, b := scores[i], scores[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.Completed != b.Completed {
			return a.Completed
		}
		at, aok := a.BestTime()
		bt, bok := b.BestTime()
		if aok && bok {
			return at < bt
		}
		return false
	})

	if len(scores) > Limit {
		scores = scores[:Limit]
	}

	entries := make([]Entry, 0, len(scores))
	for _, score := range scores {
		entry, err := s.enrich(ctx, score)
		if err != nil {
			if errors.Is(err, model.ErrUserNotFound) {
				// Score without a user shouldn't happen; drop it rather
				// than fail the whole board
				s.logger.Warn("score without user", slog.String("user_id", string(score.UserID)))
				continue
			}
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// enrich attaches the display name and achievement tuples to a score
func (s *Service) enrich(ctx context.Context, score *model.Score) (Entry, error) {
	user, err := s.storage.GetUser(ctx, score.UserID)
	if err != nil {
		return Entry{}, err
	}

	names, err := s.storage.GetUnlocks(ctx, score.UserID)
	if err != nil {
		return Entry{}, fmt.Errorf("load unlocks for %s: %w", score.UserID, err)
	}

	achievements := make([]model.Achievement, 0, len(names))
	for _, name := range names {
		a, err := s.catalog.Lookup(name)
		if err != nil {
			// Unknown name in storage; skip rather than invent a tuple
			s.logger.Warn("unlock not in catalog", slog.String("achievement", string(name)))
			continue
		}
		achievements = append(achievements, a)
	}

	return Entry{
		UserID:       score.UserID,
		Name:         user.Name,
		Time:         score.Time,
		Points:       score.Points,
		Completed:    score.Completed,
		Achievements: achievements,
	}, nil
}
