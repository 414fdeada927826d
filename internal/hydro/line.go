package hydro

import "github.com/Faultbox/terraflood/internal/grid"

// RasterizeLine returns the cells on the Bresenham line from a to b,
// both ends included.
func RasterizeLine(a, b Cell) []Cell {
	dx := abs(b.Col - a.Col)
	dy := abs(b.Row - a.Row)
	sx, sy := 1, 1
	if a.Col >= b.Col {
		sx = -1
	}
	if a.Row >= b.Row {
		sy = -1
	}

	cells := make([]Cell, 0, max(dx, dy)+1)
	x, y := a.Col, a.Row
	err := dx - dy
	for {
		cells = append(cells, Cell{Row: y, Col: x})
		if x == b.Col && y == b.Row {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x += sx
		}
		if e2 < dx {
			err += dx
			y += sy
		}
	}
	return cells
}

// DamMask marks the cells of the line from a to b on a rows x cols mask.
func DamMask(rows, cols int, a, b Cell) *grid.Mask {
	m := grid.NewMask(rows, cols)
	for _, c := range RasterizeLine(a, b) {
		m.Set(c.Row, c.Col, true)
	}
	return m
}

// sideOf returns the cross product of the a->b direction with a->(row, col).
// Its sign tells which side of the line the cell lies on; zero means on it.
func sideOf(a, b Cell, row, col int) int {
	dx := b.Col - a.Col
	dy := b.Row - a.Row
	return dx*(row-a.Row) - dy*(col-a.Col)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
