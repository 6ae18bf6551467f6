package storage

import (
	"context"

	"github.com/mcoot/memorymatch-go/internal/model"
)

// ScoreUpdateFn transforms a user's current Score record into its next state.
// current is nil if the user has no record yet. Returning (nil, err) aborts
// the update. Implementations run the function inside the backend's per-user
// critical section, so the read-compare-write is atomic.
type ScoreUpdateFn func(current *model.Score) (*model.Score, error)

// Storage defines the interface for data persistence
type Storage interface {
	// User operations
	SaveUser(ctx context.Context, user *model.User) error
	GetUser(ctx context.Context, id model.UserID) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)

	// Credential operations
	SaveCredential(ctx context.Context, cred *model.Credential) error
	GetCredential(ctx context.Context, userID model.UserID) (*model.Credential, error)

	// Score operations
	GetScore(ctx context.Context, userID model.UserID) (*model.Score, error)
	// UpdateScore applies fn to the user's Score record atomically and
	// returns the resulting record.
	UpdateScore(ctx context.Context, userID model.UserID, fn ScoreUpdateFn) (*model.Score, error)
	ListScores(ctx context.Context) ([]*model.Score, error)

	// Achievement unlock operations
	// SaveUnlock records that a user unlocked an achievement. It reports
	// whether a new record was created; saving an existing unlock is a no-op.
	SaveUnlock(ctx context.Context, userID model.UserID, name model.AchievementName) (bool, error)
	GetUnlocks(ctx context.Context, userID model.UserID) ([]model.AchievementName, error)
}
