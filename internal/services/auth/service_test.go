package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/memorymatch-go/internal/dependencies/mocks"
	"github.com/mcoot/memorymatch-go/internal/model"
	"github.com/mcoot/memorymatch-go/internal/storage/memory"
	"github.com/mcoot/memorymatch-go/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	s.service = New(s.storage, s.clock, DefaultConfig(), testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *ServiceSuite) register(email string) *RegisterResult {
	res, err := s.service.Register(s.ctx, "Alice", email, "developer", "Acme")
	s.Require().NoError(err)
	return res
}

func (s *ServiceSuite) TestRegisterNewUser() {
	res := s.register("alice@example.com")

	s.False(res.IsExisting)
	s.NotEmpty(res.AccessCode)
	s.NotEmpty(res.User.ID)
	s.Equal("Alice", res.User.Name)
	s.Equal(s.clock.CurrentTime, res.User.CreatedAt)

	// The stored credential holds a hash, never the plaintext code
	cred, err := s.storage.GetCredential(s.ctx, res.User.ID)
	s.Require().NoError(err)
	s.NotEmpty(cred.AccessCodeHash)
	s.NotEqual(res.AccessCode, cred.AccessCodeHash)
}

func (s *ServiceSuite) TestRegisterExistingEmail() {
	first := s.register("alice@example.com")

	second, err := s.service.Register(s.ctx, "Someone Else", "alice@example.com", "qa", "Other Co")
	s.Require().NoError(err)

	s.True(second.IsExisting)
	s.Empty(second.AccessCode)
	s.Equal(first.User.ID, second.User.ID)
	s.Equal("Alice", second.User.Name)
}

func (s *ServiceSuite) TestLoginSuccess() {
	res := s.register("alice@example.com")

	session, err := s.service.Login(s.ctx, "alice@example.com", res.AccessCode)
	s.Require().NoError(err)
	s.Equal(res.User.ID, session.UserID)
	s.NotEmpty(session.Token)
}

func (s *ServiceSuite) TestLoginWrongCode() {
	s.register("alice@example.com")

	_, err := s.service.Login(s.ctx, "alice@example.com", "not-the-code")
	s.ErrorIs(err, ErrInvalidCredentials)
}

func (s *ServiceSuite) TestLoginUnknownEmail() {
	_, err := s.service.Login(s.ctx, "ghost@example.com", "whatever")
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *ServiceSuite) TestValidateSession() {
	res := s.register("alice@example.com")
	session, err := s.service.Login(s.ctx, "alice@example.com", res.AccessCode)
	s.Require().NoError(err)

	validated, err := s.service.ValidateSession(session.Token)
	s.Require().NoError(err)
	s.Equal(res.User.ID, validated.UserID)

	_, err = s.service.ValidateSession("sess_bogus")
	s.ErrorIs(err, ErrInvalidSession)
}

func (s *ServiceSuite) TestSessionExpiry() {
	res := s.register("alice@example.com")
	session, err := s.service.Login(s.ctx, "alice@example.com", res.AccessCode)
	s.Require().NoError(err)

	s.clock.Advance(25 * time.Hour)

	_, err = s.service.ValidateSession(session.Token)
	s.ErrorIs(err, ErrInvalidSession)
}

func (s *ServiceSuite) TestInvalidateSession() {
	res := s.register("alice@example.com")
	session, err := s.service.Login(s.ctx, "alice@example.com", res.AccessCode)
	s.Require().NoError(err)

	s.service.InvalidateSession(session.Token)

	_, err = s.service.ValidateSession(session.Token)
	s.ErrorIs(err, ErrInvalidSession)
}

func (s *ServiceSuite) TestRegenerateAccessCode() {
	res := s.register("alice@example.com")

	newCode, err := s.service.RegenerateAccessCode(s.ctx, res.User.ID)
	s.Require().NoError(err)
	s.NotEmpty(newCode)
	s.NotEqual(res.AccessCode, newCode)

	// Old code stops working, new one logs in
	_, err = s.service.Login(s.ctx, "alice@example.com", res.AccessCode)
	s.ErrorIs(err, ErrInvalidCredentials)

	_, err = s.service.Login(s.ctx, "alice@example.com", newCode)
	s.NoError(err)
}

func (s *ServiceSuite) TestCleanExpiredSessions() {
	res := s.register("alice@example.com")
	stale, err := s.service.Login(s.ctx, "alice@example.com", res.AccessCode)
	s.Require().NoError(err)

	s.clock.Advance(25 * time.Hour)
	fresh, err := s.service.Login(s.ctx, "alice@example.com", res.AccessCode)
	s.Require().NoError(err)

	s.service.CleanExpiredSessions()

	_, err = s.service.ValidateSession(stale.Token)
	s.ErrorIs(err, ErrInvalidSession)
	_, err = s.service.ValidateSession(fresh.Token)
	s.NoError(err)
}
