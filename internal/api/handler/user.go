package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/mcoot/memorymatch-go/internal/api/middleware"
	"github.com/mcoot/memorymatch-go/internal/api/request"
	"github.com/mcoot/memorymatch-go/internal/api/response"
	"github.com/mcoot/memorymatch-go/internal/services/auth"
	"github.com/mcoot/memorymatch-go/internal/services/record"
)

// UserHandler handles user-related endpoints
type UserHandler struct {
	authService   *auth.Service
	recordService *record.Service
}

// NewUserHandler creates a new user handler
func NewUserHandler(authService *auth.Service, recordService *record.Service) *UserHandler {
	return &UserHandler{
		authService:   authService,
		recordService: recordService,
	}
}

// Register handles POST /api/v1/users/register
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Name == "" {
		WriteError(w, NewInvalidRequestError("name is required"))
		return
	}
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		WriteError(w, NewInvalidRequestError("a valid email is required"))
		return
	}
	if req.Role == "" {
		WriteError(w, NewInvalidRequestError("role is required"))
		return
	}
	if req.Company == "" {
		WriteError(w, NewInvalidRequestError("company is required"))
		return
	}

	res, err := h.authService.Register(r.Context(), req.Name, req.Email, req.Role, req.Company)
	if err != nil {
		WriteError(w, err)
		return
	}

	status := http.StatusCreated
	if res.IsExisting {
		status = http.StatusOK
	}
	response.JSON(w, status, response.RegisterResponse{
		User:       response.UserFromModel(res.User),
		AccessCode: res.AccessCode,
		IsExisting: res.IsExisting,
	})
}

// Login handles POST /api/v1/users/login
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Email == "" {
		WriteError(w, NewInvalidRequestError("email is required"))
		return
	}
	if req.AccessCode == "" {
		WriteError(w, NewInvalidRequestError("access_code is required"))
		return
	}

	session, err := h.authService.Login(r.Context(), req.Email, req.AccessCode)
	if err != nil {
		WriteError(w, err)
		return
	}

	var bestTime *float64
	if score, err := h.recordService.Best(r.Context(), session.UserID); err == nil && score != nil {
		if t, ok := score.BestTime(); ok {
			bestTime = &t
		}
	}

	response.JSON(w, http.StatusOK, response.LoginResponseFromSession(session, bestTime))
}

// GetMe handles GET /api/v1/users/me
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())
	response.JSON(w, http.StatusOK, response.UserFromModel(user))
}

// RegenerateAccessCode handles POST /api/v1/users/me/regenerate-code
func (h *UserHandler) RegenerateAccessCode(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())

	code, err := h.authService.RegenerateAccessCode(r.Context(), user.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.AccessCodeResponse{AccessCode: code})
}
