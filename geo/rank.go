package geo

import (
	"math"
	"sort"
)

// Entity is anything with a location that can be ranked: a producer or a
// product listing mapped out of its Mongo document.
type Entity struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Point    Point   `json:"point"`
	Category string  `json:"category,omitempty"`
	Price    float64 `json:"price,omitempty"`
}

// Result is an Entity annotated with its distance from the reference point.
// DistanceKm is NaN when either coordinate is missing or non-finite.
type Result struct {
	Entity
	DistanceKm float64 `json:"distanceKm"`
}

// Filter narrows a ranking. Nil fields mean "no bound"; Category "" means
// "any". Category matching is exact and case-sensitive.
type Filter struct {
	MaxDistanceKm *float64
	Category      string
	MaxPrice      *float64
}

// Rank computes distances from origin, applies the filters in a fixed order
// and returns results sorted ascending by distance. Entities with unknown
// distance are kept when no distance bound is requested and always sort last.
// Rank never mutates its input and is safe for concurrent use.
func Rank(origin Point, entities []Entity, f Filter) []Result {
	results := make([]Result, 0, len(entities))
	for _, e := range entities {
		results = append(results, Result{Entity: e, DistanceKm: Distance(origin, e.Point)})
	}

	if f.MaxDistanceKm != nil {
		kept := results[:0]
		for _, r := range results {
			// an unknown distance cannot satisfy a bound
			if Known(r.DistanceKm) && r.DistanceKm <= *f.MaxDistanceKm {
				kept = append(kept, r)
			}
		}
		results = kept
	}

	if f.Category != "" {
		kept := results[:0]
		for _, r := range results {
			if r.Category == f.Category {
				kept = append(kept, r)
			}
		}
		results = kept
	}

	if f.MaxPrice != nil {
		kept := results[:0]
		for _, r := range results {
			if r.Price <= *f.MaxPrice {
				kept = append(kept, r)
			}
		}
		results = kept
	}

	sort.SliceStable(results, func(i, j int) bool {
		di, dj := results[i].DistanceKm, results[j].DistanceKm
		if math.IsNaN(di) {
			return false
		}
		if math.IsNaN(dj) {
			return true
		}
		return di < dj
	})

	return results
}
