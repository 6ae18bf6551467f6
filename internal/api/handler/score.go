package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/mcoot/memorymatch-go/internal/api/request"
	"github.com/mcoot/memorymatch-go/internal/api/response"
	"github.com/mcoot/memorymatch-go/internal/model"
	"github.com/mcoot/memorymatch-go/internal/services/game"
	"github.com/mcoot/memorymatch-go/internal/services/leaderboard"
)

// submitTimeout bounds a submission end to end. The submission is idempotent
// (unlocks are deduplicated, best-score updates are monotonic), so a timed
// out request can be retried safely.
const submitTimeout = 10 * time.Second

// ScoreHandler handles score submission and the leaderboard
type ScoreHandler struct {
	gameController     *game.Controller
	leaderboardService *leaderboard.Service
}

// NewScoreHandler creates a new score handler
func NewScoreHandler(gameController *game.Controller, leaderboardService *leaderboard.Service) *ScoreHandler {
	return &ScoreHandler{
		gameController:     gameController,
		leaderboardService: leaderboardService,
	}
}

// Submit handles POST /api/v1/scores
func (h *ScoreHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req request.SubmitScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.UserID == "" {
		WriteError(w, NewInvalidRequestError("user_id is required"))
		return
	}
	if req.Time < 0 {
		WriteError(w, NewInvalidRequestError("time must not be negative"))
		return
	}
	if req.Mistakes < 0 {
		WriteError(w, NewInvalidRequestError("mistakes must not be negative"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), submitTimeout)
	defer cancel()

	res, err := h.gameController.SubmitScore(ctx, model.UserID(req.UserID), model.GameStats{
		Time:      req.Time,
		Completed: req.Completed,
		Mistakes:  req.Mistakes,
	})
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SubmitScoreResponseFromResult(res))
}

// Leaderboard handles GET /api/v1/scores
func (h *ScoreHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	entries, err := h.leaderboardService.Top(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.LeaderboardResponseFromEntries(entries))
}
