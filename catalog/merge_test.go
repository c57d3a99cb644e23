package catalog

import (
	"testing"

	"paperpen/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeLocalOnlySurvives(t *testing.T) {
	local := []models.Product{{ProductID: "1", Name: "Ball Pen", Price: 10}}

	got := Merge(local, nil)

	require.Len(t, got, 1)
	assert.Equal(t, "Ball Pen", got[0].Name)
}

func TestMergeRemoteOnlyAppends(t *testing.T) {
	local := []models.Product{{ProductID: "1", Name: "Ball Pen"}}
	remote := []models.Product{{ProductID: "9", Name: "Stapler"}}

	got := Merge(local, remote)

	require.Len(t, got, 2)
	assert.Equal(t, "Ball Pen", got[0].Name)
	assert.Equal(t, "Stapler", got[1].Name)
}

func TestMergeRemoteScalarsWin(t *testing.T) {
	local := []models.Product{{ProductID: "1", Name: "Ball Pen", Price: 10, Description: "classic"}}
	remote := []models.Product{{ProductID: "1", Name: "Ball Pen Pro", Price: 15}}

	got := Merge(local, remote)

	require.Len(t, got, 1)
	assert.Equal(t, "Ball Pen Pro", got[0].Name)
	assert.Equal(t, 15.0, got[0].Price)
	// remote zero values leave local fields alone
	assert.Equal(t, "classic", got[0].Description)
}

func TestMergeUnionsColorsAndSizes(t *testing.T) {
	local := []models.Product{{ProductID: "1", Colors: []string{"Blue", "Black"}, Sizes: []string{"M"}}}
	remote := []models.Product{{ProductID: "1", Colors: []string{"Black", "Red"}, Sizes: []string{"M", "L"}}}

	got := Merge(local, remote)

	require.Len(t, got, 1)
	assert.Equal(t, []string{"Blue", "Black", "Red"}, got[0].Colors)
	assert.Equal(t, []string{"M", "L"}, got[0].Sizes)
}

func TestMergePreservesLocalOrder(t *testing.T) {
	local := []models.Product{
		{ProductID: "1", Name: "Ball Pen"},
		{ProductID: "2", Name: "Pencil"},
	}
	remote := []models.Product{{ProductID: "2", Name: "Pencil HB"}}

	got := Merge(local, remote)

	require.Len(t, got, 2)
	assert.Equal(t, "Ball Pen", got[0].Name)
	assert.Equal(t, "Pencil HB", got[1].Name)
}

func TestSeedCoversStationeryBasics(t *testing.T) {
	ids := make(map[string]bool, len(Seed))
	for _, p := range Seed {
		require.NotEmpty(t, p.ProductID)
		require.NotEmpty(t, p.Name)
		require.Greater(t, p.Price, 0.0)
		assert.False(t, ids[p.ProductID], "seed ids must be unique")
		ids[p.ProductID] = true
	}
}
