package achievement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/memorymatch-go/internal/model"
)

func TestCatalogAll(t *testing.T) {
	catalog := NewCatalog()

	all := catalog.All()
	require.Len(t, all, 4)

	// Order is fixed and matches evaluation order
	assert.Equal(t, FirstWin.Name, all[0].Name)
	assert.Equal(t, SpeedDemon.Name, all[1].Name)
	assert.Equal(t, Persistent.Name, all[2].Name)
	assert.Equal(t, PerfectMemory.Name, all[3].Name)
}

func TestCatalogLookup(t *testing.T) {
	catalog := NewCatalog()

	a, err := catalog.Lookup("Speed Demon")
	require.NoError(t, err)
	assert.Equal(t, 200, a.Points)

	_, err = catalog.Lookup("speed demon")
	assert.ErrorIs(t, err, model.ErrAchievementNotFound)

	_, err = catalog.Lookup("Nonexistent")
	assert.ErrorIs(t, err, model.ErrAchievementNotFound)
}

func TestCatalogPoints(t *testing.T) {
	assert.Equal(t, 100, FirstWin.Points)
	assert.Equal(t, 200, SpeedDemon.Points)
	assert.Equal(t, 150, Persistent.Points)
	assert.Equal(t, 300, PerfectMemory.Points)
}
