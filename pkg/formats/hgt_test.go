package formats

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"testing"
)

// createTestHGT creates an SRTM3-sized tile whose first samples are set.
func createTestHGT(first []int16) []byte {
	buf := new(bytes.Buffer)
	buf.Grow(HGTSide3 * HGTSide3 * 2)

	for i := 0; i < HGTSide3*HGTSide3; i++ {
		var v int16 = 10
		if i < len(first) {
			v = first[i]
		}
		binary.Write(buf, binary.BigEndian, v)
	}

	return buf.Bytes()
}

func TestParseHGT_ValidFile(t *testing.T) {
	data := createTestHGT([]int16{500, -20, HGTVoid})

	r, err := ParseHGT(data)
	if err != nil {
		t.Fatalf("ParseHGT failed: %v", err)
	}

	if r.Width != HGTSide3 || r.Height != HGTSide3 {
		t.Errorf("expected %dx%d, got %dx%d", HGTSide3, HGTSide3, r.Width, r.Height)
	}
	if r.At(0, 0) != 500 {
		t.Errorf("expected first sample 500, got %f", r.At(0, 0))
	}
	if r.At(1, 0) != -20 {
		t.Errorf("expected negative sample -20, got %f", r.At(1, 0))
	}
	if !math.IsNaN(r.At(2, 0)) {
		t.Errorf("expected void sample to be NaN, got %f", r.At(2, 0))
	}
	if r.NoDataCount() != 1 {
		t.Errorf("expected 1 no-data sample, got %d", r.NoDataCount())
	}
}

func TestParseHGT_InvalidSize(t *testing.T) {
	tests := []struct {
		name string
		size int
	}{
		{"empty", 0},
		{"odd", 1201*1201*2 - 1},
		{"small square", 100 * 100 * 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseHGT(make([]byte, tc.size))
			if !errors.Is(err, ErrInvalidHGTSize) {
				t.Errorf("expected ErrInvalidHGTSize, got %v", err)
			}
		})
	}
}

func TestHGTSide(t *testing.T) {
	if HGTSide(25934402) != HGTSide1 {
		t.Errorf("expected SRTM1 side for 25934402 bytes")
	}
	if HGTSide(2884802) != HGTSide3 {
		t.Errorf("expected SRTM3 side for 2884802 bytes")
	}
}

func TestRasterAt_OutOfBounds(t *testing.T) {
	r := &Raster{Width: 2, Height: 2, Values: []float64{1, 2, 3, 4}}
	if !math.IsNaN(r.At(2, 0)) || !math.IsNaN(r.At(0, -1)) {
		t.Error("out-of-bounds At should return NaN")
	}
	if r.At(1, 1) != 4 {
		t.Errorf("expected 4, got %f", r.At(1, 1))
	}
}
