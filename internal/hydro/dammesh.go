package hydro

import (
	"github.com/Faultbox/terraflood/internal/terrain"
	"github.com/Faultbox/terraflood/pkg/math"
)

// BuildDamMesh builds the dam as a closed box of six independent quads
// (front, back, top, bottom, left, right) running from base to crest height
// and offset by thickness to either side of the centerline. The result has
// 24 vertices and 36 triangle indices.
func BuildDamMesh(frame terrain.Frame, spec DamSpec, base, crest, thickness float64) *terrain.Mesh {
	start := frame.World(spec.Start.X, spec.Start.Y, 0).XZ()
	end := frame.World(spec.End.X, spec.End.Y, 0).XZ()
	perp := end.Sub(start).Normalize().Perp().Scale(float32(thickness))

	frontL := start.Add(perp)
	frontR := end.Add(perp)
	backL := start.Sub(perp)
	backR := end.Sub(perp)

	yb := frame.WorldY(base)
	yt := frame.WorldY(crest)

	at := func(p math.Vec2, y float32) math.Vec3 {
		return math.Vec3{X: p.X, Y: y, Z: p.Y}
	}

	// Each face: bottom-left, bottom-right, top-left, top-right.
	faces := [6][4]math.Vec3{
		{at(frontL, yb), at(frontR, yb), at(frontL, yt), at(frontR, yt)}, // front
		{at(backR, yb), at(backL, yb), at(backR, yt), at(backL, yt)},     // back
		{at(frontL, yt), at(frontR, yt), at(backL, yt), at(backR, yt)},   // top
		{at(frontR, yb), at(frontL, yb), at(backR, yb), at(backL, yb)},   // bottom
		{at(backL, yb), at(frontL, yb), at(backL, yt), at(frontL, yt)},   // left
		{at(frontR, yb), at(backR, yb), at(frontR, yt), at(backR, yt)},   // right
	}

	mesh := &terrain.Mesh{
		Positions: make([]float32, 0, 24*3),
		Indices:   make([]uint32, 0, 36),
		Topology:  terrain.Triangles,
	}

	for _, face := range faces {
		first := uint32(mesh.VertexCount())
		for _, v := range face {
			mesh.Positions = append(mesh.Positions, v.X, v.Y, v.Z)
		}
		mesh.Indices = append(mesh.Indices,
			first, first+1, first+2,
			first+2, first+1, first+3,
		)
	}
	mesh.Bounds = terrain.BoundsOf(mesh.Positions)

	return mesh
}
