package search

import (
	"sync"
	"testing"

	"paperpen/models"

	"github.com/stretchr/testify/assert"
)

func named(names ...string) []models.Product {
	out := make([]models.Product, 0, len(names))
	for i, n := range names {
		out = append(out, models.Product{ProductID: string(rune('a' + i)), Name: n})
	}
	return out
}

func namesOf(products []models.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.Name)
	}
	return out
}

func TestNormalizeStripsDiacritics(t *testing.T) {
	assert.Equal(t, "creme", Normalize("Crème"))
	assert.Equal(t, "uber", Normalize("Über"))
	assert.Equal(t, "gel pen", Normalize("Gel Pen"))
}

func TestNormalizeIsIdempotent(t *testing.T) {
	once := Normalize("Crème Brûlée")
	assert.Equal(t, once, Normalize(once))
}

func TestRankPutsPrefixMatchesFirst(t *testing.T) {
	products := named("Happen", "Pencil", "Pen")

	got := Filter(products, "pen")

	assert.Equal(t, []string{"Pen", "Pencil", "Happen"}, namesOf(got))
}

func TestFilterMatchesAccentedNames(t *testing.T) {
	products := named("Crème Paper", "Plain Paper")

	got := Filter(products, "creme")

	assert.Equal(t, []string{"Crème Paper"}, namesOf(got))
}

func TestFilterEmptyQueryReturnsEverything(t *testing.T) {
	products := named("Pen", "Notebook")

	got := Filter(products, "   ")

	assert.Equal(t, []string{"Pen", "Notebook"}, namesOf(got))
}

func TestFilterCopiesOnEmptyQuery(t *testing.T) {
	products := named("Pen", "Notebook")

	got := Filter(products, "")
	got[0].Name = "mutated"

	assert.Equal(t, "Pen", products[0].Name)
}

func TestFilterNoMatches(t *testing.T) {
	products := named("Pen", "Notebook")

	assert.Empty(t, Filter(products, "stapler"))
}

func TestSuggestEmptyQuerySuggestsNothing(t *testing.T) {
	products := named("Pen", "Notebook")

	got := Suggest(products, "")

	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFilterIsSafeForConcurrentUse(t *testing.T) {
	// searches arrive on concurrent request handlers; run under -race
	products := named("Pen", "Pencil", "Happen", "Crème Paper", "Notebook", "Über Marker")

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				got := Filter(products, "pen")
				assert.Equal(t, []string{"Pen", "Pencil", "Happen"}, namesOf(got))
				Suggest(products, "crème")
				Normalize("Crème Brûlée Über")
			}
		}()
	}
	wg.Wait()
}

func TestSuggestRanksLikeFilter(t *testing.T) {
	products := named("Pencil", "Happen", "Pen")

	got := Suggest(products, "Pen")

	assert.Equal(t, []string{"Pen", "Pencil", "Happen"}, namesOf(got))
}
