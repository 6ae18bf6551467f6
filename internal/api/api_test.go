package api_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/memorymatch-go/internal/api"
	"github.com/mcoot/memorymatch-go/internal/api/response"
	"github.com/mcoot/memorymatch-go/internal/factory"
	"github.com/mcoot/memorymatch-go/internal/services/auth"
	"github.com/mcoot/memorymatch-go/internal/storage/memory"
)

// testServer creates a test server with all dependencies
type testServer struct {
	handler http.Handler
	storage *memory.Storage
	auth    *auth.Service
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	// API tests are integration tests - use production factory with a real clock
	app, err := factory.New(factory.Config{})
	require.NoError(t, err)

	router := api.NewRouter(api.RouterConfig{
		Logger:             logger,
		AuthService:        app.AuthService,
		RecordService:      app.RecordService,
		GameController:     app.GameController,
		LeaderboardService: app.LeaderboardService,
	})

	return &testServer{
		handler: router,
		storage: app.Storage.(*memory.Storage),
		auth:    app.AuthService,
	}
}

func (ts *testServer) request(method, path string, body any, token string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		b, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(b)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

// registerUser registers a user and returns the response
func registerUser(t *testing.T, ts *testServer, name, email string) response.RegisterResponse {
	t.Helper()

	body := map[string]string{
		"name":    name,
		"email":   email,
		"role":    "developer",
		"company": "Acme",
	}
	rr := ts.request(http.MethodPost, "/api/v1/users/register", body, "")
	require.Equal(t, http.StatusCreated, rr.Code)

	var resp response.RegisterResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp
}

// submitScore posts a play session for a user
func submitScore(t *testing.T, ts *testServer, userID string, time float64, completed bool, mistakes int) response.SubmitScoreResponse {
	t.Helper()

	body := map[string]any{
		"user_id":   userID,
		"time":      time,
		"completed": completed,
		"mistakes":  mistakes,
	}
	rr := ts.request(http.MethodPost, "/api/v1/scores", body, "")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp response.SubmitScoreResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/health", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "ok")
}

func TestRegisterNewUser(t *testing.T) {
	ts := newTestServer(t)

	resp := registerUser(t, ts, "Alice", "alice@example.com")
	assert.Equal(t, "Alice", resp.User.Name)
	assert.False(t, resp.IsExisting)
	assert.NotEmpty(t, resp.AccessCode)
	assert.NotEmpty(t, resp.User.ID)
}

func TestRegisterExistingEmail(t *testing.T) {
	ts := newTestServer(t)

	first := registerUser(t, ts, "Alice", "alice@example.com")

	body := map[string]string{
		"name":    "Impostor",
		"email":   "alice@example.com",
		"role":    "qa",
		"company": "Other Co",
	}
	rr := ts.request(http.MethodPost, "/api/v1/users/register", body, "")
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp response.RegisterResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.True(t, resp.IsExisting)
	assert.Empty(t, resp.AccessCode)
	assert.Equal(t, first.User.ID, resp.User.ID)
	assert.Equal(t, "Alice", resp.User.Name)
}

func TestRegisterValidation(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name string
		body map[string]string
	}{
		{"missing name", map[string]string{"email": "a@b.com", "role": "dev", "company": "Acme"}},
		{"missing email", map[string]string{"name": "Alice", "role": "dev", "company": "Acme"}},
		{"bad email", map[string]string{"name": "Alice", "email": "nope", "role": "dev", "company": "Acme"}},
		{"missing role", map[string]string{"name": "Alice", "email": "a@b.com", "company": "Acme"}},
		{"missing company", map[string]string{"name": "Alice", "email": "a@b.com", "role": "dev"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rr := ts.request(http.MethodPost, "/api/v1/users/register", tc.body, "")
			assert.Equal(t, http.StatusBadRequest, rr.Code)
		})
	}
}

func TestLogin(t *testing.T) {
	ts := newTestServer(t)

	reg := registerUser(t, ts, "Alice", "alice@example.com")
	submitScore(t, ts, reg.User.ID, 42, true, 1)

	body := map[string]string{
		"email":       "alice@example.com",
		"access_code": reg.AccessCode,
	}
	rr := ts.request(http.MethodPost, "/api/v1/users/login", body, "")
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp response.LoginResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, reg.User.ID, resp.User.ID)
	assert.NotEmpty(t, resp.SessionToken)
	require.NotNil(t, resp.BestTime)
	assert.Equal(t, 42.0, *resp.BestTime)
}

func TestLoginWrongCode(t *testing.T) {
	ts := newTestServer(t)

	registerUser(t, ts, "Alice", "alice@example.com")

	body := map[string]string{
		"email":       "alice@example.com",
		"access_code": "not-the-code",
	}
	rr := ts.request(http.MethodPost, "/api/v1/users/login", body, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestGetMe(t *testing.T) {
	ts := newTestServer(t)

	reg := registerUser(t, ts, "Bob", "bob@example.com")

	loginBody := map[string]string{"email": "bob@example.com", "access_code": reg.AccessCode}
	rr := ts.request(http.MethodPost, "/api/v1/users/login", loginBody, "")
	require.Equal(t, http.StatusOK, rr.Code)

	var login response.LoginResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &login))

	rr = ts.request(http.MethodGet, "/api/v1/users/me", nil, login.SessionToken)
	assert.Equal(t, http.StatusOK, rr.Code)

	var me response.User
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &me))
	assert.Equal(t, "Bob", me.Name)
}

func TestUnauthorizedWithoutToken(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/users/me", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/users/me/regenerate-code", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestRegenerateAccessCode(t *testing.T) {
	ts := newTestServer(t)

	reg := registerUser(t, ts, "Alice", "alice@example.com")

	loginBody := map[string]string{"email": "alice@example.com", "access_code": reg.AccessCode}
	rr := ts.request(http.MethodPost, "/api/v1/users/login", loginBody, "")
	require.Equal(t, http.StatusOK, rr.Code)
	var login response.LoginResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &login))

	rr = ts.request(http.MethodPost, "/api/v1/users/me/regenerate-code", nil, login.SessionToken)
	assert.Equal(t, http.StatusOK, rr.Code)

	var regen response.AccessCodeResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &regen))
	require.NotEmpty(t, regen.AccessCode)
	assert.NotEqual(t, reg.AccessCode, regen.AccessCode)

	// Old code no longer works
	rr = ts.request(http.MethodPost, "/api/v1/users/login", loginBody, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	// New code does
	loginBody["access_code"] = regen.AccessCode
	rr = ts.request(http.MethodPost, "/api/v1/users/login", loginBody, "")
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestSubmitScore(t *testing.T) {
	ts := newTestServer(t)

	reg := registerUser(t, ts, "Alice", "alice@example.com")

	resp := submitScore(t, ts, reg.User.ID, 25, true, 0)
	assert.True(t, resp.Success)
	assert.Equal(t, 1350, resp.Score.Points)
	assert.Equal(t, "25 seconds", resp.Score.DisplayTime)
	assert.Len(t, resp.UnlockedAchievements, 3)
	assert.Equal(t, "Score recorded successfully", resp.Message)
}

func TestSubmitScoreUnknownUser(t *testing.T) {
	ts := newTestServer(t)

	body := map[string]any{"user_id": "ghost", "time": 25.0, "completed": true}
	rr := ts.request(http.MethodPost, "/api/v1/scores", body, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "USER_NOT_FOUND")
}

func TestSubmitScoreValidation(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name string
		body map[string]any
	}{
		{"missing user_id", map[string]any{"time": 25.0, "completed": true}},
		{"negative time", map[string]any{"user_id": "u", "time": -1.0, "completed": true}},
		{"negative mistakes", map[string]any{"user_id": "u", "time": 25.0, "completed": true, "mistakes": -2}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rr := ts.request(http.MethodPost, "/api/v1/scores", tc.body, "")
			assert.Equal(t, http.StatusBadRequest, rr.Code)
		})
	}
}

func TestSubmitScoreNotCompleted(t *testing.T) {
	ts := newTestServer(t)

	reg := registerUser(t, ts, "Alice", "alice@example.com")

	resp := submitScore(t, ts, reg.User.ID, 20, false, 0)
	assert.True(t, resp.Success)
	assert.Equal(t, 0, resp.Score.Points)
	assert.Equal(t, "Did not complete", resp.Score.DisplayTime)
	assert.Empty(t, resp.UnlockedAchievements)
	assert.Equal(t, "Game not completed", resp.Message)
}

func TestLeaderboard(t *testing.T) {
	ts := newTestServer(t)

	alice := registerUser(t, ts, "Alice", "alice@example.com")
	bob := registerUser(t, ts, "Bob", "bob@example.com")

	submitScore(t, ts, alice.User.ID, 50, true, 2)
	submitScore(t, ts, bob.User.ID, 25, true, 0)

	rr := ts.request(http.MethodGet, "/api/v1/scores", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp response.LeaderboardResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp.Entries, 2)

	assert.Equal(t, 1, resp.Entries[0].Rank)
	assert.Equal(t, "Bob", resp.Entries[0].Name)
	assert.Equal(t, 2, resp.Entries[1].Rank)
	assert.Equal(t, "Alice", resp.Entries[1].Name)
	assert.NotEmpty(t, resp.Entries[0].Achievements)
}

func TestLeaderboardEmpty(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/scores", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp response.LeaderboardResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Empty(t, resp.Entries)
}
