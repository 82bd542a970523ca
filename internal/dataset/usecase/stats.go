package usecase

import (
	"math"
	"strconv"
	"strings"

	"github.com/go-gota/gota/series"
	"github.com/shandysiswandi/gocsv/internal/dataset/entity"
)

// parseNumber reports whether a single cell is numeric. The test is per cell,
// so one column can contribute some cells and skip others.
func parseNumber(value string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// numericSamples collects, per column, the numeric cells of rows in row order.
func numericSamples(rows []entity.Row) map[string][]float64 {
	samples := make(map[string][]float64)
	for _, row := range rows {
		for column, value := range row {
			if f, ok := parseNumber(value); ok {
				samples[column] = append(samples[column], f)
			}
		}
	}
	return samples
}

func computeStats(rows []entity.Row) StatsResult {
	samples := numericSamples(rows)

	result := make(StatsResult, len(samples))
	for column, values := range samples {
		s := series.New(values, series.Float, column)
		result[column] = entity.ColumnStat{
			Mean:   s.Mean(),
			Median: s.Median(),
		}
	}

	return result
}
