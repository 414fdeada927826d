// Package terrain loads elevation rasters, cleans and resamples them, and
// builds renderable terrain meshes.
package terrain

import "errors"

// Terrain errors.
var (
	ErrIO        = errors.New("terrain I/O error")
	ErrFormat    = errors.New("terrain format error")
	ErrNoTerrain = errors.New("no terrain loaded")
)

// Detail level bounds. 100 keeps full resolution.
const (
	MinDetail = 1
	MaxDetail = 100
)

// ClampDetail clamps a detail level into [MinDetail, MaxDetail].
func ClampDetail(detail int) int {
	if detail < MinDetail {
		return MinDetail
	}
	if detail > MaxDetail {
		return MaxDetail
	}
	return detail
}

// Topology tells the renderer how to assemble Indices.
type Topology int

const (
	TriangleStrip Topology = iota
	Triangles
)

// String returns the topology name.
func (t Topology) String() string {
	switch t {
	case TriangleStrip:
		return "triangle-strip"
	case Triangles:
		return "triangles"
	default:
		return "unknown"
	}
}

// Bounds holds the axis-aligned bounding box of a mesh.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// emptyBounds returns bounds that any point will expand.
func emptyBounds() Bounds {
	return Bounds{
		Min: [3]float32{1e30, 1e30, 1e30},
		Max: [3]float32{-1e30, -1e30, -1e30},
	}
}

func (b *Bounds) extend(x, y, z float32) {
	p := [3]float32{x, y, z}
	for i := range p {
		if p[i] < b.Min[i] {
			b.Min[i] = p[i]
		}
		if p[i] > b.Max[i] {
			b.Max[i] = p[i]
		}
	}
}

// BoundsOf returns the bounds of a flat x,y,z position buffer.
func BoundsOf(pos []float32) Bounds {
	if len(pos) < 3 {
		return Bounds{}
	}
	b := emptyBounds()
	for i := 0; i+2 < len(pos); i += 3 {
		b.extend(pos[i], pos[i+1], pos[i+2])
	}
	return b
}

// Mesh holds vertex and index buffers ready for GPU upload.
type Mesh struct {
	Positions []float32 // x,y,z per vertex
	Colors    []float32 // r,g,b per vertex, empty when no scheme is set
	Indices   []uint32
	Topology  Topology
	Bounds    Bounds

	// Sampled grid dimensions the vertices were laid out on.
	Rows int
	Cols int
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Positions) / 3
}

// Vertex returns the position of vertex i.
func (m *Mesh) Vertex(i int) [3]float32 {
	return [3]float32{m.Positions[3*i], m.Positions[3*i+1], m.Positions[3*i+2]}
}
