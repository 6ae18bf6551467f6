package model

// AchievementName identifies a catalog entry. Lookups are exact-match and
// case-sensitive.
type AchievementName string

// Achievement is a named, point-valued milestone a user can unlock at most
// once. The catalog is fixed at compile time; entries are never created or
// mutated at runtime.
type Achievement struct {
	Name        AchievementName
	Description string
	Icon        string
	Points      int
}
