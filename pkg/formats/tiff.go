package formats

import (
	"errors"
	"fmt"
	"image"
	"io"
	"math"

	"golang.org/x/image/tiff"
)

// TIFF errors.
var (
	ErrUnsupportedTIFF = errors.New("unsupported TIFF raster")
)

// DecodeTIFF decodes band 1 of a grayscale TIFF raster.
//
// 16-bit samples are read as signed int16, the layout elevation products
// use, and HGTVoid samples become NaN. 8-bit samples are taken as is.
func DecodeTIFF(rd io.Reader) (*Raster, error) {
	img, err := tiff.Decode(rd)
	if err != nil {
		var unsupported tiff.UnsupportedError
		if errors.As(err, &unsupported) {
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedTIFF, string(unsupported))
		}
		return nil, fmt.Errorf("decoding TIFF: %w", err)
	}

	b := img.Bounds()
	r := &Raster{
		Width:  b.Dx(),
		Height: b.Dy(),
		Values: make([]float64, b.Dx()*b.Dy()),
	}

	switch m := img.(type) {
	case *image.Gray16:
		for y := 0; y < r.Height; y++ {
			for x := 0; x < r.Width; x++ {
				v := int16(m.Gray16At(b.Min.X+x, b.Min.Y+y).Y)
				if v == HGTVoid {
					r.Values[y*r.Width+x] = math.NaN()
					continue
				}
				r.Values[y*r.Width+x] = float64(v)
			}
		}
	case *image.Gray:
		for y := 0; y < r.Height; y++ {
			for x := 0; x < r.Width; x++ {
				r.Values[y*r.Width+x] = float64(m.GrayAt(b.Min.X+x, b.Min.Y+y).Y)
			}
		}
	default:
		return nil, fmt.Errorf("%w: color model %T", ErrUnsupportedTIFF, img)
	}

	return r, nil
}
