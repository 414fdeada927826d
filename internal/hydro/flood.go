package hydro

import "github.com/Faultbox/terraflood/internal/grid"

// FloodFill returns the 4-connected region of candidate reachable from
// start. The result is empty when start is not a candidate.
func FloodFill(candidate *grid.Mask, start Cell) *grid.Mask {
	rows, cols := candidate.Rows, candidate.Cols
	visited := grid.NewMask(rows, cols)
	if !candidate.Get(start.Row, start.Col) {
		return visited
	}

	stack := make([]int, 0, 64)
	stack = append(stack, start.Row*cols+start.Col)
	visited.Bits[start.Row*cols+start.Col] = true

	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		r, c := i/cols, i%cols

		for _, n := range [4][2]int{{r + 1, c}, {r - 1, c}, {r, c + 1}, {r, c - 1}} {
			nr, nc := n[0], n[1]
			if nr < 0 || nc < 0 || nr >= rows || nc >= cols {
				continue
			}
			j := nr*cols + nc
			if visited.Bits[j] || !candidate.Bits[j] {
				continue
			}
			visited.Bits[j] = true
			stack = append(stack, j)
		}
	}

	return visited
}
