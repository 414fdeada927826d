package hydro

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPointCollector(t *testing.T) {
	var pc PointCollector
	assert.Equal(t, PickDamStart, pc.Next())

	_, err := pc.Spec()
	assert.ErrorIs(t, err, ErrIncompletePicks)

	next, err := pc.Add(Point{0.1, -0.5})
	require.NoError(t, err)
	assert.Equal(t, PickDamEnd, next)
	assert.Equal(t, Point{0.1, 0}, pc.Points()[0], "picks are clamped to the unit square")

	next, err = pc.Add(Point{0.9, 0.5})
	require.NoError(t, err)
	assert.Equal(t, PickFloodSide, next)

	next, err = pc.Add(Point{0.5, 1.2})
	require.NoError(t, err)
	assert.Equal(t, PickComplete, next)

	next, err = pc.Add(Point{0.3, 0.3})
	assert.ErrorIs(t, err, ErrPicksComplete)
	assert.Equal(t, PickComplete, next)
	assert.Len(t, pc.Points(), 3)

	spec, err := pc.Spec()
	require.NoError(t, err)
	assert.Equal(t, Point{0.5, 1}, spec.Indicator)

	pc.Reset()
	assert.Equal(t, PickDamStart, pc.Next())
	assert.Empty(t, pc.Points())
}

func TestPointCollector_Degenerate(t *testing.T) {
	var pc PointCollector
	for _, p := range []Point{{0.3, 0.3}, {0.3, 0.3}, {0.1, 0.1}} {
		_, err := pc.Add(p)
		require.NoError(t, err)
	}

	_, err := pc.Spec()
	assert.ErrorIs(t, err, ErrDegenerateDam)
}

func TestPickStageString(t *testing.T) {
	assert.Equal(t, "flood side", PickFloodSide.String())
	assert.Equal(t, "PickStage(9)", PickStage(9).String())
}
