package export

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/draw"

	"github.com/Faultbox/terraflood/internal/grid"
	"github.com/Faultbox/terraflood/internal/hydro"
	"github.com/Faultbox/terraflood/internal/terrain"
	"github.com/Faultbox/terraflood/internal/water"
)

// PreviewOptions controls preview rendering. A zero Width or Height keeps
// the grid's own size on that axis.
type PreviewOptions struct {
	Width  int
	Height int
	Scheme terrain.ColorScheme
}

// DamColor marks cells under the dam line.
var DamColor = color.RGBA{0, 0, 0, 255}

// Preview renders g top-down, one pixel per cell, coloured by height. When
// dam is set, flooded cells are tinted with the water colour and dam cells
// drawn in DamColor. The result is then scaled to the requested size.
func Preview(g *grid.Grid, dam *hydro.Dam, opts PreviewOptions) (*image.RGBA, error) {
	if g == nil {
		return nil, terrain.ErrNoTerrain
	}
	if dam != nil && (dam.Flood.Mask.Rows != g.Rows || dam.Flood.Mask.Cols != g.Cols) {
		return nil, fmt.Errorf("preview: dam is %dx%d, grid is %dx%d",
			dam.Flood.Mask.Rows, dam.Flood.Mask.Cols, g.Rows, g.Cols)
	}

	st := g.Stats()
	colorizer := terrain.Colorizer{Scheme: opts.Scheme, Min: st.Min, Max: st.Max}

	src := image.NewRGBA(image.Rect(0, 0, g.Cols, g.Rows))
	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Cols; c++ {
			src.SetRGBA(c, r, cellColor(g, dam, colorizer, r, c))
		}
	}

	w, h := opts.Width, opts.Height
	if w <= 0 {
		w = g.Cols
	}
	if h <= 0 {
		h = g.Rows
	}
	if w == g.Cols && h == g.Rows {
		return src, nil
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst, nil
}

func cellColor(g *grid.Grid, dam *hydro.Dam, cz terrain.Colorizer, r, c int) color.RGBA {
	if dam != nil && dam.Flood.DamMask.Get(r, c) {
		return DamColor
	}

	h := g.At(r, c)
	var rgb terrain.RGB
	switch {
	case math.IsNaN(h):
		rgb = terrain.RGB{1, 0, 1}
	case cz.Scheme == terrain.ColorNone:
		t := float32(0)
		if cz.Max > cz.Min {
			t = float32((h - cz.Min) / (cz.Max - cz.Min))
		}
		rgb = terrain.RGB{t, t, t}
	default:
		rgb = cz.Color(h)
	}

	if dam != nil && dam.Flood.Mask.Get(r, c) {
		a := float32(water.DefaultAlpha)
		for i := range rgb {
			rgb[i] = rgb[i]*(1-a) + water.Color[i]*a
		}
	}

	return color.RGBA{R: channel(rgb[0]), G: channel(rgb[1]), B: channel(rgb[2]), A: 255}
}

func channel(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}

// WritePNG encodes img as PNG.
func WritePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("write png: %w", err)
	}
	return nil
}
