package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceZeroForSamePoint(t *testing.T) {
	p := Point{Latitude: -23.5505, Longitude: -46.6333}
	assert.Equal(t, 0.0, Distance(p, p))
}

func TestDistanceKnownPair(t *testing.T) {
	// São Paulo to Rio de Janeiro, roughly 360 km
	sp := Point{Latitude: -23.5505, Longitude: -46.6333}
	rj := Point{Latitude: -22.9068, Longitude: -43.1729}

	d := Distance(sp, rj)
	assert.InDelta(t, 360, d, 10)
}

func TestDistanceSymmetric(t *testing.T) {
	a := Point{Latitude: -23.5505, Longitude: -46.6333}
	b := Point{Latitude: -22.9068, Longitude: -43.1729}

	assert.InDelta(t, Distance(a, b), Distance(b, a), 1e-9)
}

func TestDistanceNaNForBadCoordinates(t *testing.T) {
	good := Point{Latitude: -23.5, Longitude: -46.6}

	cases := []Point{
		{Latitude: math.NaN(), Longitude: -46.6},
		{Latitude: -23.5, Longitude: math.NaN()},
		{Latitude: math.Inf(1), Longitude: -46.6},
		{Latitude: -23.5, Longitude: math.Inf(-1)},
	}
	for _, bad := range cases {
		assert.True(t, math.IsNaN(Distance(good, bad)))
		assert.True(t, math.IsNaN(Distance(bad, good)))
	}
}

func TestKnown(t *testing.T) {
	assert.True(t, Known(0))
	assert.True(t, Known(12.5))
	assert.False(t, Known(math.NaN()))
}
