package redis

import (
	"fmt"

	"github.com/mcoot/memorymatch-go/internal/model"
)

// Key prefix for all game-related data
const keyPrefix = "memgame"

// Key generation functions for each entity type

// userKey returns the Redis key for a User
func userKey(id model.UserID) string {
	return fmt.Sprintf("%s:user:%s", keyPrefix, id)
}

// emailIndexKey returns the Redis key for the email -> user_id index
func emailIndexKey(email string) string {
	return fmt.Sprintf("%s:idx:email:%s", keyPrefix, email)
}

// credentialKey returns the Redis key for a Credential
func credentialKey(userID model.UserID) string {
	return fmt.Sprintf("%s:credential:%s", keyPrefix, userID)
}

// scoreKey returns the Redis key for a user's Score record
func scoreKey(userID model.UserID) string {
	return fmt.Sprintf("%s:score:%s", keyPrefix, userID)
}

// scoreIndexKey returns the Redis key for the SET of users with scores
func scoreIndexKey() string {
	return fmt.Sprintf("%s:idx:scores", keyPrefix)
}

// unlocksKey returns the Redis key for the SET of a user's unlocked achievements
func unlocksKey(userID model.UserID) string {
	return fmt.Sprintf("%s:unlocks:%s", keyPrefix, userID)
}

// unlockOrderKey returns the Redis key for the LIST preserving unlock order
func unlockOrderKey(userID model.UserID) string {
	return fmt.Sprintf("%s:unlocks_order:%s", keyPrefix, userID)
}
