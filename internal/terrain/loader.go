package terrain

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/terraflood/internal/grid"
	"github.com/Faultbox/terraflood/internal/logger"
	"github.com/Faultbox/terraflood/pkg/formats"
)

// Load reads an elevation file and returns it as a grid, cropped to region
// when one is given. The format is chosen by extension: .hgt, .tif/.tiff or
// .asc. Failures wrap ErrIO or ErrFormat.
func Load(path string, region *grid.Region) (*grid.Grid, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %w", ErrIO, path, err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	raster, err := decode(ext, data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFormat, path, err)
	}

	g, err := grid.FromSlice(raster.Height, raster.Width, raster.Values)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFormat, path, err)
	}

	if region != nil {
		g, err = g.Crop(*region)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrFormat, path, err)
		}
	}

	logger.Debug("terrain loaded",
		zap.String("path", path),
		zap.String("format", ext),
		zap.Int("rows", g.Rows),
		zap.Int("cols", g.Cols),
		zap.Int("nodata", raster.NoDataCount()))

	return g, nil
}

// decode parses raw file bytes according to ext.
func decode(ext string, data []byte) (*formats.Raster, error) {
	switch ext {
	case ".hgt":
		return formats.ParseHGT(data)
	case ".tif", ".tiff":
		return formats.DecodeTIFF(bytes.NewReader(data))
	case ".asc":
		r, _, err := formats.ParseASCIIGrid(bytes.NewReader(data))
		return r, err
	default:
		return nil, fmt.Errorf("unsupported extension %q", ext)
	}
}
