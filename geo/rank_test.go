package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v float64) *float64 { return &v }

// origin plus entities at roughly 1 km, 5 km, and one with an unusable longitude
func rankFixture() (Point, []Entity) {
	origin := Point{Latitude: -23.5505, Longitude: -46.6333}
	entities := []Entity{
		{ID: "far", Name: "Chácara Ipê", Point: Point{Latitude: -23.5955, Longitude: -46.6333}, Category: "dairy", Price: 15},
		{ID: "near", Name: "Sítio Boa Vista", Point: Point{Latitude: -23.5595, Longitude: -46.6333}, Category: "vegetables", Price: 4},
		{ID: "lost", Name: "Fazenda Sem Mapa", Point: Point{Latitude: -23.5600, Longitude: math.NaN()}, Category: "vegetables", Price: 2},
	}
	return origin, entities
}

func TestRankSortsByDistance(t *testing.T) {
	origin, entities := rankFixture()

	results := Rank(origin, entities, Filter{})

	require.Len(t, results, 3)
	assert.Equal(t, "near", results[0].ID)
	assert.Equal(t, "far", results[1].ID)
	assert.Equal(t, "lost", results[2].ID)

	assert.InDelta(t, 1, results[0].DistanceKm, 0.1)
	assert.InDelta(t, 5, results[1].DistanceKm, 0.1)
	assert.True(t, math.IsNaN(results[2].DistanceKm))
}

func TestRankUnknownDistanceSortsLastWithoutBound(t *testing.T) {
	origin, entities := rankFixture()

	results := Rank(origin, entities, Filter{})

	require.NotEmpty(t, results)
	assert.True(t, math.IsNaN(results[len(results)-1].DistanceKm))
}

func TestRankMaxDistanceDropsUnknown(t *testing.T) {
	origin, entities := rankFixture()

	results := Rank(origin, entities, Filter{MaxDistanceKm: ptr(10)})

	require.Len(t, results, 2)
	for _, r := range results {
		assert.True(t, Known(r.DistanceKm))
		assert.LessOrEqual(t, r.DistanceKm, 10.0)
	}
}

func TestRankMaxDistanceBound(t *testing.T) {
	origin, entities := rankFixture()

	results := Rank(origin, entities, Filter{MaxDistanceKm: ptr(2)})

	require.Len(t, results, 1)
	assert.Equal(t, "near", results[0].ID)
}

func TestRankCategoryExactCaseSensitive(t *testing.T) {
	origin, entities := rankFixture()

	results := Rank(origin, entities, Filter{Category: "vegetables"})
	require.Len(t, results, 2)
	assert.Equal(t, "near", results[0].ID)
	assert.Equal(t, "lost", results[1].ID)

	assert.Empty(t, Rank(origin, entities, Filter{Category: "Vegetables"}))
}

func TestRankMaxPrice(t *testing.T) {
	origin, entities := rankFixture()

	results := Rank(origin, entities, Filter{MaxPrice: ptr(5)})

	require.Len(t, results, 2)
	for _, r := range results {
		assert.LessOrEqual(t, r.Price, 5.0)
	}
}

func TestRankCombinedFilters(t *testing.T) {
	origin, entities := rankFixture()

	results := Rank(origin, entities, Filter{
		MaxDistanceKm: ptr(10),
		Category:      "vegetables",
		MaxPrice:      ptr(5),
	})

	require.Len(t, results, 1)
	assert.Equal(t, "near", results[0].ID)
}

func TestRankDoesNotMutateInput(t *testing.T) {
	origin, entities := rankFixture()
	orig := make([]Entity, len(entities))
	copy(orig, entities)

	_ = Rank(origin, entities, Filter{MaxDistanceKm: ptr(10), Category: "vegetables"})

	for i := range orig {
		assert.Equal(t, orig[i].ID, entities[i].ID)
	}
}

func TestRankEmptyInput(t *testing.T) {
	origin, _ := rankFixture()

	results := Rank(origin, nil, Filter{})
	assert.Empty(t, results)
}

func TestRankStableForEqualDistance(t *testing.T) {
	origin := Point{Latitude: -23.5505, Longitude: -46.6333}
	entities := []Entity{
		{ID: "a", Point: origin},
		{ID: "b", Point: origin},
		{ID: "c", Point: origin},
	}

	results := Rank(origin, entities, Filter{})

	require.Len(t, results, 3)
	assert.Equal(t, "a", results[0].ID)
	assert.Equal(t, "b", results[1].ID)
	assert.Equal(t, "c", results[2].ID)
}
