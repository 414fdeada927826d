package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Faultbox/terraflood/internal/grid"
	"github.com/Faultbox/terraflood/internal/hydro"
)

// parseFloats splits a comma-separated list of exactly n numbers.
func parseFloats(s string, n int) ([]float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != n {
		return nil, fmt.Errorf("expected %d comma-separated values, got %q", n, s)
	}
	out := make([]float64, n)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("bad number %q in %q", p, s)
		}
		out[i] = v
	}
	return out, nil
}

func parsePoint(s string) (hydro.Point, error) {
	v, err := parseFloats(s, 2)
	if err != nil {
		return hydro.Point{}, err
	}
	return hydro.Point{X: v[0], Y: v[1]}, nil
}

// parseDam parses "x1,y1,x2,y2".
func parseDam(s string) (start, end hydro.Point, err error) {
	v, err := parseFloats(s, 4)
	if err != nil {
		return hydro.Point{}, hydro.Point{}, err
	}
	return hydro.Point{X: v[0], Y: v[1]}, hydro.Point{X: v[2], Y: v[3]}, nil
}

// parseRegion parses "x,y,w,h". An empty string means no region.
func parseRegion(s string) (*grid.Region, error) {
	if s == "" {
		return nil, nil
	}
	v, err := parseFloats(s, 4)
	if err != nil {
		return nil, err
	}
	r := &grid.Region{X: int(v[0]), Y: int(v[1]), Width: int(v[2]), Height: int(v[3])}
	if r.Empty() {
		return nil, fmt.Errorf("region %s is empty", r)
	}
	return r, nil
}

// parseSize parses "WxH". An empty string means 0x0.
func parseSize(s string) (w, h int, err error) {
	if s == "" {
		return 0, 0, nil
	}
	ws, hs, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, fmt.Errorf("expected WxH, got %q", s)
	}
	if w, err = strconv.Atoi(ws); err != nil || w < 0 {
		return 0, 0, fmt.Errorf("bad width in %q", s)
	}
	if h, err = strconv.Atoi(hs); err != nil || h < 0 {
		return 0, 0, fmt.Errorf("bad height in %q", s)
	}
	return w, h, nil
}
