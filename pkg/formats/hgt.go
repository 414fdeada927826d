package formats

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// HGT format errors.
var (
	ErrInvalidHGTSize = errors.New("invalid HGT size: expected 1201x1201 or 3601x3601 int16 samples")
)

// HGT layout constants.
const (
	HGTSide3   = 1201   // 3 arc-second tile side (SRTM3)
	HGTSide1   = 3601   // 1 arc-second tile side (SRTM1)
	HGTVoid    = -32768 // void sample marker
	hgtSampleB = 2
)

// HGTSide returns the tile side length for a file of n bytes, or 0 if the
// size matches neither SRTM resolution.
func HGTSide(n int) int {
	switch n {
	case HGTSide3 * HGTSide3 * hgtSampleB:
		return HGTSide3
	case HGTSide1 * HGTSide1 * hgtSampleB:
		return HGTSide1
	default:
		return 0
	}
}

// ParseHGT parses an SRTM .hgt tile from raw bytes.
// Samples are big-endian int16 in row-major order starting at the north-west
// corner. Void samples become NaN.
func ParseHGT(data []byte) (*Raster, error) {
	side := HGTSide(len(data))
	if side == 0 {
		return nil, fmt.Errorf("%w: got %d bytes", ErrInvalidHGTSize, len(data))
	}

	r := &Raster{
		Width:  side,
		Height: side,
		Values: make([]float64, side*side),
	}
	for i := range r.Values {
		v := int16(binary.BigEndian.Uint16(data[i*hgtSampleB:]))
		if v == HGTVoid {
			r.Values[i] = math.NaN()
			continue
		}
		r.Values[i] = float64(v)
	}

	return r, nil
}
