package achievement

import "github.com/mcoot/memorymatch-go/internal/model"

// Catalog entries. The order here is the order achievements are evaluated
// and reported in.
var (
	FirstWin = model.Achievement{
		Name:        "First Win",
		Description: "Completed the game for the first time",
		Icon:        "🎉",
		Points:      100,
	}
	SpeedDemon = model.Achievement{
		Name:        "Speed Demon",
		Description: "Completed the game in under 30 seconds",
		Icon:        "⚡",
		Points:      200,
	}
	Persistent = model.Achievement{
		Name:        "Persistent",
		Description: "Played 5 times",
		Icon:        "💪",
		Points:      150,
	}
	PerfectMemory = model.Achievement{
		Name:        "Perfect Memory",
		Description: "Completed the game without mistakes",
		Icon:        "🧠",
		Points:      300,
	}
)

// Catalog is the fixed set of achievement definitions, seeded at compile
// time. Nothing is ever added at runtime.
type Catalog struct {
	ordered []model.Achievement
	byName  map[model.AchievementName]model.Achievement
}

// NewCatalog creates the standard catalog
func NewCatalog() *Catalog {
	ordered := []model.Achievement{FirstWin, SpeedDemon, Persistent, PerfectMemory}
	byName := make(map[model.AchievementName]model.Achievement, len(ordered))
	for _, a := range ordered {
		byName[a.Name] = a
	}
	return &Catalog{ordered: ordered, byName: byName}
}

// All returns the catalog entries in evaluation order
func (c *Catalog) All() []model.Achievement {
	result := make([]model.Achievement, len(c.ordered))
	copy(result, c.ordered)
	return result
}

// Lookup finds an achievement by name. Names are exact-match and
// case-sensitive.
func (c *Catalog) Lookup(name model.AchievementName) (model.Achievement, error) {
	a, ok := c.byName[name]
	if !ok {
		return model.Achievement{}, model.ErrAchievementNotFound
	}
	return a, nil
}
