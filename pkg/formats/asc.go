package formats

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// ASCII grid errors.
var (
	ErrInvalidASCIIHeader = errors.New("invalid ASCII grid header")
	ErrTruncatedASCIIData = errors.New("truncated ASCII grid data")
)

// MaxASCIICells bounds ncols*nrows, four SRTM1 tiles worth of samples.
const MaxASCIICells = 4 * HGTSide1 * HGTSide1

// ASCIIHeader holds the ESRI ASCII grid header fields.
type ASCIIHeader struct {
	Cols      int
	Rows      int
	XLL       float64
	YLL       float64
	Center    bool // xll/yll refer to the centre of the lower-left cell
	CellSize  float64
	NoData    float64
	HasNoData bool
}

// ParseASCIIGrid parses an ESRI ASCII grid (.asc).
// Header keys are case-insensitive; NODATA_value is optional.
func ParseASCIIGrid(rd io.Reader) (*Raster, *ASCIIHeader, error) {
	sc := bufio.NewScanner(rd)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	sc.Split(bufio.ScanWords)

	hdr, first, err := parseASCIIHeader(sc)
	if err != nil {
		return nil, nil, err
	}

	n := hdr.Cols * hdr.Rows
	r := &Raster{
		Width:  hdr.Cols,
		Height: hdr.Rows,
		Values: make([]float64, n),
	}

	i := 0
	tok := first
	for i < n {
		if tok == "" {
			if !sc.Scan() {
				break
			}
			tok = sc.Text()
		}
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return nil, nil, fmt.Errorf("sample %d: %w", i, err)
		}
		if hdr.HasNoData && v == hdr.NoData {
			v = math.NaN()
		}
		r.Values[i] = v
		i++
		tok = ""
	}
	if err := sc.Err(); err != nil {
		return nil, nil, fmt.Errorf("reading ASCII grid: %w", err)
	}
	if i < n {
		return nil, nil, fmt.Errorf("%w: got %d of %d samples", ErrTruncatedASCIIData, i, n)
	}

	return r, hdr, nil
}

// parseASCIIHeader consumes key/value pairs until the first numeric token,
// which is returned so the caller can treat it as the first sample.
func parseASCIIHeader(sc *bufio.Scanner) (*ASCIIHeader, string, error) {
	hdr := &ASCIIHeader{}
	seen := map[string]bool{}
	var first string

	for sc.Scan() {
		key := strings.ToLower(sc.Text())
		if _, err := strconv.ParseFloat(key, 64); err == nil {
			first = sc.Text()
			break
		}
		if !sc.Scan() {
			return nil, "", fmt.Errorf("%w: missing value for %q", ErrInvalidASCIIHeader, key)
		}
		val := sc.Text()
		f, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return nil, "", fmt.Errorf("%w: %s=%q", ErrInvalidASCIIHeader, key, val)
		}

		if (key == "ncols" || key == "nrows") && (f < 1 || f > MaxASCIICells || f != math.Trunc(f)) {
			return nil, "", fmt.Errorf("%w: %s=%s", ErrInvalidASCIIHeader, key, val)
		}

		switch key {
		case "ncols":
			hdr.Cols = int(f)
		case "nrows":
			hdr.Rows = int(f)
		case "xllcorner":
			hdr.XLL = f
		case "xllcenter":
			hdr.XLL, hdr.Center = f, true
		case "yllcorner":
			hdr.YLL = f
		case "yllcenter":
			hdr.YLL, hdr.Center = f, true
		case "cellsize":
			hdr.CellSize = f
		case "nodata_value":
			hdr.NoData, hdr.HasNoData = f, true
		default:
			return nil, "", fmt.Errorf("%w: unknown key %q", ErrInvalidASCIIHeader, key)
		}
		seen[key] = true
	}
	if err := sc.Err(); err != nil {
		return nil, "", fmt.Errorf("reading ASCII grid header: %w", err)
	}

	if !seen["ncols"] || !seen["nrows"] {
		return nil, "", fmt.Errorf("%w: ncols and nrows are required", ErrInvalidASCIIHeader)
	}
	if hdr.Cols <= 0 || hdr.Rows <= 0 {
		return nil, "", fmt.Errorf("%w: dimensions %dx%d", ErrInvalidASCIIHeader, hdr.Cols, hdr.Rows)
	}
	if hdr.Cols > MaxASCIICells/hdr.Rows {
		return nil, "", fmt.Errorf("%w: %dx%d exceeds %d cells", ErrInvalidASCIIHeader, hdr.Cols, hdr.Rows, MaxASCIICells)
	}

	return hdr, first, nil
}
