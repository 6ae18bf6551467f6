package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/memorymatch-go/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	s.storage = NewWithClient(client, DefaultConfig())
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

// User tests

func (s *StorageSuite) TestSaveAndGetUser() {
	user := &model.User{
		ID:        "user-1",
		Name:      "Alice",
		Email:     "alice@example.com",
		Role:      "developer",
		Company:   "Acme",
		CreatedAt: time.Now(),
	}

	err := s.storage.SaveUser(s.ctx, user)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetUser(s.ctx, "user-1")
	s.Require().NoError(err)
	s.Equal(user.Name, retrieved.Name)
	s.Equal(user.Email, retrieved.Email)
}

func (s *StorageSuite) TestGetUserNotFound() {
	_, err := s.storage.GetUser(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *StorageSuite) TestGetUserByEmail() {
	user := &model.User{ID: "user-1", Name: "Alice", Email: "alice@example.com"}
	_ = s.storage.SaveUser(s.ctx, user)

	retrieved, err := s.storage.GetUserByEmail(s.ctx, "alice@example.com")
	s.Require().NoError(err)
	s.Equal(model.UserID("user-1"), retrieved.ID)

	_, err = s.storage.GetUserByEmail(s.ctx, "missing@example.com")
	s.ErrorIs(err, model.ErrUserNotFound)
}

// Credential tests

func (s *StorageSuite) TestSaveAndGetCredential() {
	cred := &model.Credential{
		UserID:         "user-1",
		Email:          "alice@example.com",
		AccessCodeHash: "hash123",
	}

	err := s.storage.SaveCredential(s.ctx, cred)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetCredential(s.ctx, "user-1")
	s.Require().NoError(err)
	s.Equal("hash123", retrieved.AccessCodeHash)
}

func (s *StorageSuite) TestGetCredentialNotFound() {
	_, err := s.storage.GetCredential(s.ctx, "user-1")
	s.ErrorIs(err, model.ErrUserNotFound)
}

// Score tests

func (s *StorageSuite) TestGetScoreNotFound() {
	_, err := s.storage.GetScore(s.ctx, "user-1")
	s.ErrorIs(err, model.ErrScoreNotFound)
}

func (s *StorageSuite) TestUpdateScoreCreates() {
	score, err := s.storage.UpdateScore(s.ctx, "user-1", func(current *model.Score) (*model.Score, error) {
		s.Nil(current)
		return &model.Score{UserID: "user-1", Points: 750, Attempts: 1}, nil
	})
	s.Require().NoError(err)
	s.Equal(750, score.Points)

	retrieved, err := s.storage.GetScore(s.ctx, "user-1")
	s.Require().NoError(err)
	s.Equal(750, retrieved.Points)
}

func (s *StorageSuite) TestUpdateScoreSeesCurrent() {
	t := 40.0
	_, err := s.storage.UpdateScore(s.ctx, "user-1", func(current *model.Score) (*model.Score, error) {
		return &model.Score{UserID: "user-1", Time: &t, Completed: true, Attempts: 1}, nil
	})
	s.Require().NoError(err)

	score, err := s.storage.UpdateScore(s.ctx, "user-1", func(current *model.Score) (*model.Score, error) {
		s.Require().NotNil(current)
		s.Require().NotNil(current.Time)
		s.Equal(40.0, *current.Time)
		next := *current
		next.Attempts++
		return &next, nil
	})
	s.Require().NoError(err)
	s.Equal(2, score.Attempts)
}

func (s *StorageSuite) TestUpdateScoreAbortLeavesRecord() {
	_, err := s.storage.UpdateScore(s.ctx, "user-1", func(current *model.Score) (*model.Score, error) {
		return &model.Score{UserID: "user-1", Points: 100, Attempts: 1}, nil
	})
	s.Require().NoError(err)

	_, err = s.storage.UpdateScore(s.ctx, "user-1", func(current *model.Score) (*model.Score, error) {
		return nil, model.ErrScoreNotFound
	})
	s.ErrorIs(err, model.ErrScoreNotFound)

	retrieved, err := s.storage.GetScore(s.ctx, "user-1")
	s.Require().NoError(err)
	s.Equal(100, retrieved.Points)
}

func (s *StorageSuite) TestListScores() {
	for _, id := range []model.UserID{"user-1", "user-2"} {
		uid := id
		_, err := s.storage.UpdateScore(s.ctx, uid, func(current *model.Score) (*model.Score, error) {
			return &model.Score{UserID: uid, Attempts: 1}, nil
		})
		s.Require().NoError(err)
	}

	scores, err := s.storage.ListScores(s.ctx)
	s.Require().NoError(err)
	s.Len(scores, 2)
}

func (s *StorageSuite) TestListScoresEmpty() {
	scores, err := s.storage.ListScores(s.ctx)
	s.Require().NoError(err)
	s.Empty(scores)
}

// Unlock tests

func (s *StorageSuite) TestSaveUnlockIdempotent() {
	created, err := s.storage.SaveUnlock(s.ctx, "user-1", "First Win")
	s.Require().NoError(err)
	s.True(created)

	created, err = s.storage.SaveUnlock(s.ctx, "user-1", "First Win")
	s.Require().NoError(err)
	s.False(created)

	unlocks, err := s.storage.GetUnlocks(s.ctx, "user-1")
	s.Require().NoError(err)
	s.Equal([]model.AchievementName{"First Win"}, unlocks)
}

func (s *StorageSuite) TestGetUnlocksPreservesOrder() {
	_, _ = s.storage.SaveUnlock(s.ctx, "user-1", "First Win")
	_, _ = s.storage.SaveUnlock(s.ctx, "user-1", "Perfect Memory")

	unlocks, err := s.storage.GetUnlocks(s.ctx, "user-1")
	s.Require().NoError(err)
	s.Equal([]model.AchievementName{"First Win", "Perfect Memory"}, unlocks)
}
