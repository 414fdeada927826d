package hydro

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/terraflood/internal/grid"
)

func TestRasterizeLine(t *testing.T) {
	tests := []struct {
		name string
		a, b Cell
		want []Cell
	}{
		{"point", Cell{2, 2}, Cell{2, 2}, []Cell{{2, 2}}},
		{"horizontal", Cell{1, 0}, Cell{1, 3}, []Cell{{1, 0}, {1, 1}, {1, 2}, {1, 3}}},
		{"vertical reversed", Cell{3, 1}, Cell{0, 1}, []Cell{{3, 1}, {2, 1}, {1, 1}, {0, 1}}},
		{"diagonal", Cell{0, 0}, Cell{3, 3}, []Cell{{0, 0}, {1, 1}, {2, 2}, {3, 3}}},
		{"shallow", Cell{0, 0}, Cell{1, 4}, []Cell{{0, 0}, {0, 1}, {0, 2}, {1, 3}, {1, 4}}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, RasterizeLine(tc.a, tc.b))
		})
	}
}

func TestRasterizeLine_Connected(t *testing.T) {
	cells := RasterizeLine(Cell{2, 37}, Cell{29, 4})

	assert.Equal(t, Cell{2, 37}, cells[0])
	assert.Equal(t, Cell{29, 4}, cells[len(cells)-1])
	assert.Len(t, cells, 34)
	for i := 1; i < len(cells); i++ {
		dr := abs(cells[i].Row - cells[i-1].Row)
		dc := abs(cells[i].Col - cells[i-1].Col)
		assert.LessOrEqual(t, dr, 1)
		assert.LessOrEqual(t, dc, 1)
	}
}

func TestSideOf(t *testing.T) {
	a, b := Cell{0, 0}, Cell{0, 10}
	assert.Positive(t, sideOf(a, b, 3, 5))
	assert.Negative(t, sideOf(a, b, -3, 5))
	assert.Zero(t, sideOf(a, b, 0, 7))
}

func TestFloodFill(t *testing.T) {
	candidate := grid.NewMask(4, 4)
	// Region A is the top-left 2x2 block. Region B is an L in the bottom
	// right that touches A only diagonally through (2,2).
	for _, c := range [][2]int{{0, 0}, {0, 1}, {1, 0}, {1, 1}, {2, 2}, {3, 3}, {3, 2}} {
		candidate.Set(c[0], c[1], true)
	}

	got := FloodFill(candidate, Cell{0, 0})
	assert.Equal(t, 4, got.Count())
	assert.False(t, got.Get(2, 2), "diagonal neighbours are not connected")

	other := FloodFill(candidate, Cell{3, 3})
	assert.Equal(t, 3, other.Count())

	none := FloodFill(candidate, Cell{0, 3})
	assert.Equal(t, 0, none.Count())
}

func TestFloodFill_LargeGrid(t *testing.T) {
	candidate := grid.NewMask(500, 500)
	for i := range candidate.Bits {
		candidate.Bits[i] = true
	}

	got := FloodFill(candidate, Cell{250, 250})
	assert.Equal(t, 500*500, got.Count())
}
