package hydro

import "fmt"

// PickStage names the point a PointCollector expects next.
type PickStage int

const (
	PickDamStart PickStage = iota
	PickDamEnd
	PickFloodSide
	PickComplete
)

// String returns a prompt-style name for the stage.
func (s PickStage) String() string {
	switch s {
	case PickDamStart:
		return "dam start"
	case PickDamEnd:
		return "dam end"
	case PickFloodSide:
		return "flood side"
	case PickComplete:
		return "complete"
	default:
		return fmt.Sprintf("PickStage(%d)", int(s))
	}
}

// PointCollector accumulates the three picks that define a dam: two
// endpoints, then a point on the side to flood.
type PointCollector struct {
	points []Point
}

// Add records the next pick, clamped into [0, 1], and returns the stage
// expected after it. Picks beyond the third are rejected.
func (c *PointCollector) Add(p Point) (PickStage, error) {
	if len(c.points) >= 3 {
		return PickComplete, fmt.Errorf("%w: rejected %s", ErrPicksComplete, p)
	}
	p.X = clampUnit(p.X)
	p.Y = clampUnit(p.Y)
	c.points = append(c.points, p)
	return c.Next(), nil
}

// Next returns the stage expected next.
func (c *PointCollector) Next() PickStage {
	return PickStage(len(c.points))
}

// Points returns the picks so far.
func (c *PointCollector) Points() []Point {
	return append([]Point(nil), c.points...)
}

// Reset discards all picks.
func (c *PointCollector) Reset() {
	c.points = c.points[:0]
}

// Spec builds the dam specification once all three points are picked.
func (c *PointCollector) Spec() (DamSpec, error) {
	if len(c.points) < 3 {
		return DamSpec{}, fmt.Errorf("%w: have %d of 3", ErrIncompletePicks, len(c.points))
	}
	return NewDamSpec(c.points[0], c.points[1], c.points[2])
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
