package model

import "errors"

// Common errors used across the application
var (
	// User errors
	ErrUserNotFound = errors.New("user not found")
	ErrEmailExists  = errors.New("email already registered")

	// Score errors
	ErrScoreNotFound = errors.New("score not found")

	// Achievement errors
	ErrAchievementNotFound = errors.New("achievement not found in catalog")
)
