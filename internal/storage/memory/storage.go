package memory

import (
	"context"
	"sync"

	"github.com/mcoot/memorymatch-go/internal/model"
	"github.com/mcoot/memorymatch-go/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	users       map[model.UserID]*model.User
	emailIndex  map[string]model.UserID
	credentials map[model.UserID]*model.Credential
	scores      map[model.UserID]*model.Score
	unlocks     map[model.UserID]map[model.AchievementName]struct{}
	unlockOrder map[model.UserID][]model.AchievementName
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		users:       make(map[model.UserID]*model.User),
		emailIndex:  make(map[string]model.UserID),
		credentials: make(map[model.UserID]*model.Credential),
		scores:      make(map[model.UserID]*model.Score),
		unlocks:     make(map[model.UserID]map[model.AchievementName]struct{}),
		unlockOrder: make(map[model.UserID][]model.AchievementName),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// User operations

func (s *Storage) SaveUser(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.ID] = user
	s.emailIndex[user.Email] = user.ID
	return nil
}

func (s *Storage) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return user, nil
}

func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.emailIndex[email]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	user, ok := s.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return user, nil
}

// Credential operations

func (s *Storage) SaveCredential(ctx context.Context, cred *model.Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.credentials[cred.UserID] = cred
	return nil
}

func (s *Storage) GetCredential(ctx context.Context, userID model.UserID) (*model.Credential, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cred, ok := s.credentials[userID]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return cred, nil
}

// Score operations

func (s *Storage) GetScore(ctx context.Context, userID model.UserID) (*model.Score, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	score, ok := s.scores[userID]
	if !ok {
		return nil, model.ErrScoreNotFound
	}
	return score, nil
}

func (s *Storage) UpdateScore(ctx context.Context, userID model.UserID, fn storage.ScoreUpdateFn) (*model.Score, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var current *model.Score
	if existing, ok := s.scores[userID]; ok {
		// Hand fn a copy so an aborted update can't mutate stored state
		c := *existing
		current = &c
	}

	next, err := fn(current)
	if err != nil {
		return nil, err
	}
	s.scores[userID] = next
	return next, nil
}

func (s *Storage) ListScores(ctx context.Context) ([]*model.Score, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	scores := make([]*model.Score, 0, len(s.scores))
	for _, score := range s.scores {
		scores = append(scores, score)
	}
	return scores, nil
}

// Achievement unlock operations

func (s *Storage) SaveUnlock(ctx context.Context, userID model.UserID, name model.AchievementName) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	set, ok := s.unlocks[userID]
	if !ok {
		set = make(map[model.AchievementName]struct{})
		s.unlocks[userID] = set
	}
	if _, exists := set[name]; exists {
		return false, nil
	}
	set[name] = struct{}{}
	s.unlockOrder[userID] = append(s.unlockOrder[userID], name)
	return true, nil
}

func (s *Storage) GetUnlocks(ctx context.Context, userID model.UserID) ([]model.AchievementName, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := s.unlockOrder[userID]
	result := make([]model.AchievementName, len(names))
	copy(result, names)
	return result, nil
}
