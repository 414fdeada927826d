// Package export writes dam results in formats other tools can read.
package export

import (
	"encoding/json"
	"fmt"

	"github.com/peterstace/simplefeatures/geom"

	"github.com/Faultbox/terraflood/internal/grid"
	"github.com/Faultbox/terraflood/internal/hydro"
)

// FloodGeoJSON returns a GeoJSON FeatureCollection with two features: the
// dam centerline and the flooded footprint. Coordinates are normalized grid
// positions (x along columns, y along rows).
func FloodGeoJSON(dam *hydro.Dam) ([]byte, error) {
	if dam == nil {
		return nil, fmt.Errorf("export geojson: no dam")
	}

	s := dam.Spec
	line, err := geom.NewLineString(geom.NewSequence(
		[]float64{s.Start.X, s.Start.Y, s.End.X, s.End.Y}, geom.DimXY))
	if err != nil {
		return nil, fmt.Errorf("export geojson: dam line: %w", err)
	}

	footprint, err := Footprint(dam.Flood.Mask)
	if err != nil {
		return nil, fmt.Errorf("export geojson: %w", err)
	}

	fc := geom.GeoJSONFeatureCollection{
		{
			Geometry: line.AsGeometry(),
			ID:       "dam",
			Properties: map[string]interface{}{
				"crest_height": dam.Flood.CrestHeight,
				"base_height":  dam.BaseHeight,
				"indicator":    []float64{s.Indicator.X, s.Indicator.Y},
			},
		},
		{
			Geometry: footprint.AsGeometry(),
			ID:       "flood",
			Properties: map[string]interface{}{
				"water_height":     dam.Flood.WaterHeight,
				"flooded_cells":    dam.Flood.FloodedCells,
				"flooded_fraction": dam.Flood.FloodedFraction,
			},
		},
	}

	out, err := json.Marshal(fc)
	if err != nil {
		return nil, fmt.Errorf("export geojson: %w", err)
	}
	return out, nil
}

// Footprint converts a mask to polygons in normalized grid space. Each run
// of consecutive set cells in a row becomes a rectangle, and the rectangles
// are dissolved so cells sharing an edge end up in one polygon.
func Footprint(m *grid.Mask) (geom.MultiPolygon, error) {
	if m == nil || m.Rows == 0 || m.Cols == 0 {
		return geom.MultiPolygon{}, nil
	}

	du := 1 / float64(m.Cols)
	dv := 1 / float64(m.Rows)

	var runs []geom.Geometry
	for r := 0; r < m.Rows; r++ {
		c := 0
		for c < m.Cols {
			if !m.Get(r, c) {
				c++
				continue
			}
			start := c
			for c < m.Cols && m.Get(r, c) {
				c++
			}
			poly, err := rect(float64(start)*du, float64(r)*dv, float64(c)*du, float64(r+1)*dv)
			if err != nil {
				return geom.MultiPolygon{}, err
			}
			runs = append(runs, poly.AsGeometry())
		}
	}
	if len(runs) == 0 {
		return geom.MultiPolygon{}, nil
	}

	union, err := geom.UnionMany(runs)
	if err != nil {
		return geom.MultiPolygon{}, fmt.Errorf("footprint union: %w", err)
	}
	if mp, ok := union.AsMultiPolygon(); ok {
		return mp, nil
	}
	if p, ok := union.AsPolygon(); ok {
		return p.AsMultiPolygon(), nil
	}
	return geom.MultiPolygon{}, fmt.Errorf("footprint union: unexpected %s", union.Type())
}

func rect(x0, y0, x1, y1 float64) (geom.Polygon, error) {
	ring, err := geom.NewLineString(geom.NewSequence([]float64{
		x0, y0,
		x1, y0,
		x1, y1,
		x0, y1,
		x0, y0,
	}, geom.DimXY))
	if err != nil {
		return geom.Polygon{}, fmt.Errorf("footprint ring: %w", err)
	}
	return geom.NewPolygon([]geom.LineString{ring})
}
