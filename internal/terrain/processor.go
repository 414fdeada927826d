package terrain

import (
	"math"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat"

	"github.com/Faultbox/terraflood/internal/grid"
	"github.com/Faultbox/terraflood/internal/logger"
)

// ProcessOptions controls cleaning.
type ProcessOptions struct {
	// OutlierThreshold is the z-score above which a cell is replaced.
	OutlierThreshold float64
	// Smooth enables the Gaussian blend after outlier removal.
	Smooth bool
	// SmoothBlend is the weight of the cleaned grid in the blend.
	SmoothBlend float64
}

// DefaultProcessOptions returns the standard cleaning settings.
func DefaultProcessOptions() ProcessOptions {
	return ProcessOptions{
		OutlierThreshold: 3.0,
		Smooth:           false,
		SmoothBlend:      0.7,
	}
}

// Process cleans g and resamples it for the given detail level.
// The input grid is never modified.
func Process(g *grid.Grid, detail int, opts ProcessOptions) *grid.Grid {
	detail = ClampDetail(detail)
	cleaned := Clean(g, opts)
	out := Resample(cleaned, detail)

	logger.Debug("terrain processed",
		zap.Int("detail", detail),
		zap.Int("in_rows", g.Rows),
		zap.Int("in_cols", g.Cols),
		zap.Int("out_rows", out.Rows),
		zap.Int("out_cols", out.Cols))

	return out
}

// Clean fills no-data cells and replaces statistical outliers.
//
// NaN cells take the mean of the valid cells (0 when there are none). A cell
// is an outlier when its population z-score exceeds opts.OutlierThreshold;
// every outlier gets the mean of the non-outlier cells. A flat grid has no
// outliers.
func Clean(g *grid.Grid, opts ProcessOptions) *grid.Grid {
	threshold := opts.OutlierThreshold
	if threshold <= 0 {
		threshold = DefaultProcessOptions().OutlierThreshold
	}

	out := g.Clone()

	fill := 0.0
	if valid := g.ValidValues(); len(valid) > 0 {
		fill = stat.Mean(valid, nil)
	}
	nodata := 0
	for i, v := range out.Data {
		if math.IsNaN(v) {
			out.Data[i] = fill
			nodata++
		}
	}

	outliers := replaceOutliers(out.Data, threshold)

	logger.Debug("terrain cleaned",
		zap.Int("nodata_filled", nodata),
		zap.Int("outliers", outliers),
		zap.Float64("threshold", threshold))

	if opts.Smooth {
		blend := opts.SmoothBlend
		if blend < 0 || blend > 1 {
			blend = DefaultProcessOptions().SmoothBlend
		}
		out = Smooth(out, blend)
	}

	return out
}

// replaceOutliers overwrites outliers in data and returns how many there were.
func replaceOutliers(data []float64, threshold float64) int {
	mean, std := grid.PopulationMeanStd(data)
	if std == 0 {
		return 0
	}

	isOutlier := make([]bool, len(data))
	var sum float64
	var kept, count int
	for i, v := range data {
		if math.Abs(v-mean)/std > threshold {
			isOutlier[i] = true
			count++
			continue
		}
		sum += v
		kept++
	}
	if count == 0 {
		return 0
	}

	replacement := mean
	if kept > 0 {
		replacement = sum / float64(kept)
	}
	for i, o := range isOutlier {
		if o {
			data[i] = replacement
		}
	}
	return count
}
