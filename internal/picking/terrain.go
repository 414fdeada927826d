package picking

import (
	"github.com/Faultbox/terraflood/internal/grid"
	"github.com/Faultbox/terraflood/internal/terrain"
	"github.com/Faultbox/terraflood/pkg/math"
)

const (
	minMarchSteps  = 64
	maxMarchSteps  = 4096
	bisectionSteps = 24
)

// PickTerrain returns the first point where r crosses the height field g
// laid out by frame. The ray is clipped to the terrain's bounding box, then
// marched until the height difference changes sign and refined by
// bisection. ok is false when the ray misses the terrain.
func PickTerrain(r Ray, g *grid.Grid, frame terrain.Frame) (math.Vec3, bool) {
	if g == nil || g.Rows == 0 || g.Cols == 0 {
		return math.Vec3{}, false
	}
	st := g.Stats()
	if st.Valid == 0 {
		return math.Vec3{}, false
	}

	halfX, halfZ := frame.ScaleX/2, frame.ScaleZ/2

	// Flat terrain is a plane.
	if st.Min == st.Max {
		x, z, ok := r.IntersectPlaneY(frame.WorldY(st.Min))
		if !ok || x < -halfX || x > halfX || z < -halfZ || z > halfZ {
			return math.Vec3{}, false
		}
		return math.Vec3{X: x, Y: frame.WorldY(st.Min), Z: z}, true
	}

	box := NewAABB(
		math.Vec3{X: -halfX, Y: frame.WorldY(st.Min), Z: -halfZ},
		math.Vec3{X: halfX, Y: frame.WorldY(st.Max), Z: halfZ},
	)
	tmin, tmax, hit := r.Span(box)
	if !hit {
		return math.Vec3{}, false
	}
	tmin = max(tmin, 0)

	above := func(t float32) float32 {
		p := r.At(t)
		return p.Y - surfaceY(g, frame, p)
	}

	f0 := above(tmin)
	if f0 == 0 {
		return r.At(tmin), true
	}

	steps := min(max(2*max(g.Rows, g.Cols), minMarchSteps), maxMarchSteps)
	dt := (tmax - tmin) / float32(steps)

	prev := tmin
	for i := 1; i <= steps; i++ {
		t := tmin + dt*float32(i)
		f := above(t)
		if f == 0 || (f < 0) != (f0 < 0) {
			return r.At(bisect(above, prev, t, f0 < 0)), true
		}
		prev = t
	}
	return math.Vec3{}, false
}

// bisect narrows [lo, hi] onto the sign change of f. startBelow is the sign
// at lo.
func bisect(f func(float32) float32, lo, hi float32, startBelow bool) float32 {
	for i := 0; i < bisectionSteps; i++ {
		mid := (lo + hi) / 2
		if (f(mid) < 0) == startBelow {
			lo = mid
		} else {
			hi = mid
		}
	}
	return (lo + hi) / 2
}

// surfaceY returns the terrain's world Y under p.
func surfaceY(g *grid.Grid, frame terrain.Frame, p math.Vec3) float32 {
	u, v := frame.WorldToNormalized(p)
	h := terrain.SampleBilinear(g, v*float64(g.Rows-1), u*float64(g.Cols-1))
	return frame.WorldY(h)
}
