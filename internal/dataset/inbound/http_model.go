package inbound

import (
	"github.com/shandysiswandi/gocsv/internal/dataset/entity"
	"github.com/shandysiswandi/gocsv/internal/dataset/usecase"
)

const msgUploaded = "CSV file uploaded successfully"

type UploadResponse struct {
	Message      string `json:"message"`
	RowsUploaded int    `json:"rows_uploaded"`
	UploadID     string `json:"upload_id"`
}

type ColumnStat struct {
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
}

type BatchResponse struct {
	UploadID   string `json:"upload_id"`
	Filename   string `json:"filename"`
	Rows       int    `json:"rows"`
	UploadedAt int64  `json:"uploaded_at"`
}

type AnalyzeRequest struct {
	Text *string `json:"text"`
}

func toStatsResponse(in usecase.StatsResult) map[string]ColumnStat {
	out := make(map[string]ColumnStat, len(in))
	for column, stat := range in {
		out[column] = ColumnStat{Mean: stat.Mean, Median: stat.Median}
	}
	return out
}

func toRowsResponse(rows []entity.Row) []map[string]string {
	out := make([]map[string]string, 0, len(rows))
	for _, row := range rows {
		out = append(out, row)
	}
	return out
}
