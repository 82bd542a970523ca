package usecase

import (
	"io"

	"github.com/shandysiswandi/gocsv/internal/dataset/entity"
)

const (
	msgNoFile          = "No file provided"
	msgNoFilename      = "No file selected"
	msgInvalidFileType = "Invalid file type. Only CSV files are allowed."
	msgInvalidEncoding = "Invalid file encoding. CSV files must be UTF-8 text."
	msgNoData          = "No data available"
	msgNoNumericData   = "No numeric data found in the dataset"
	msgMissingFilter   = "Provide both 'column' and 'value' as query parameters"
	msgNoText          = "No text provided"
	msgUpstream        = "Failed to get response from analysis service"

	// NoResponse is returned when the analysis service answered without content.
	NoResponse = "No response"
)

// UploadInput is one uploaded file. A nil Body means the request had no file part.
type UploadInput struct {
	Filename string
	Body     io.Reader
}

type UploadResult struct {
	UploadID int64
	Rows     int
}

// StatsResult maps a column name to the statistics of its numeric sample.
type StatsResult map[string]entity.ColumnStat

// RowFilter selects rows whose Column cell equals Value exactly.
type RowFilter struct {
	Column string
	Value  string
}

// Matches reports whether row has Column and its cell is byte-equal to Value.
func (f RowFilter) Matches(row entity.Row) bool {
	v, ok := row.Value(f.Column)
	return ok && v == f.Value
}
