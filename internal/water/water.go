// Package water builds the water surface geometry for a flooded region.
package water

import (
	"github.com/Faultbox/terraflood/internal/grid"
	"github.com/Faultbox/terraflood/internal/terrain"
)

// Color is the default RGB tint renderers use for water.
var Color = [3]float32{0.2, 0.4, 0.8}

// DefaultAlpha is the default water transparency.
const DefaultAlpha = 0.6

// BuildSurface creates a flat water mesh at level (source height units) over
// the flooded cells. Every flooded cell gets one vertex; a quad of two
// triangles is emitted only where a cell and its right, lower and diagonal
// neighbours are all flooded, so the surface never extends past the mask.
// Returns nil if nothing is flooded.
func BuildSurface(flood *grid.Mask, frame terrain.Frame, level float64) *terrain.Mesh {
	rows, cols := flood.Rows, flood.Cols
	count := flood.Count()
	if count == 0 {
		return nil
	}

	// Vertex index per cell, -1 where dry.
	vertexOf := make([]int32, rows*cols)
	mesh := &terrain.Mesh{
		Positions: make([]float32, 0, count*3),
		Topology:  terrain.Triangles,
		Rows:      rows,
		Cols:      cols,
	}

	y := frame.WorldY(level)
	var n int32
	for i, wet := range flood.Bits {
		if !wet {
			vertexOf[i] = -1
			continue
		}
		p := frame.Cell(i/cols, i%cols, 0)
		mesh.Positions = append(mesh.Positions, p.X, y, p.Z)
		vertexOf[i] = n
		n++
	}

	for r := 0; r < rows-1; r++ {
		for c := 0; c < cols-1; c++ {
			v1 := vertexOf[r*cols+c]
			v2 := vertexOf[(r+1)*cols+c]
			v3 := vertexOf[r*cols+c+1]
			v4 := vertexOf[(r+1)*cols+c+1]
			if v1 < 0 || v2 < 0 || v3 < 0 || v4 < 0 {
				continue
			}
			mesh.Indices = append(mesh.Indices,
				uint32(v1), uint32(v2), uint32(v3),
				uint32(v3), uint32(v2), uint32(v4),
			)
		}
	}

	mesh.Bounds = terrain.BoundsOf(mesh.Positions)
	return mesh
}

// TriangleCount returns the number of triangles in a surface mesh, 0 for nil.
func TriangleCount(m *terrain.Mesh) int {
	if m == nil {
		return 0
	}
	return len(m.Indices) / 3
}
