package inbound

import (
	"context"

	"github.com/shandysiswandi/gocsv/internal/dataset/entity"
	"github.com/shandysiswandi/gocsv/internal/dataset/usecase"
	"github.com/shandysiswandi/gocsv/internal/pkg/pkgrouter"
)

type uc interface {
	Upload(ctx context.Context, in usecase.UploadInput) (usecase.UploadResult, error)
	Stats(ctx context.Context) (usecase.StatsResult, error)
	Query(ctx context.Context, filter usecase.RowFilter) ([]entity.Row, error)
	Analyze(ctx context.Context, question string) (string, error)
	Uploads(ctx context.Context) ([]entity.Batch, error)
}

// Config holds the transport settings of the dataset endpoints.
type Config struct {
	APIKey         string
	APIKeyHeader   string
	MaxUploadBytes int64
}

func RegisterHTTPEndpoint(r *pkgrouter.Router, uc uc, cfg Config) {
	end := &HTTPEndpoint{uc: uc, maxUploadBytes: cfg.MaxUploadBytes}
	auth := pkgrouter.MiddlewareAPIKey(cfg.APIKeyHeader, cfg.APIKey)

	r.POST("/upload", end.Upload, auth)
	r.GET("/stats", end.Stats, auth)
	r.GET("/query", end.Query, auth)   // ?column=&value=
	r.POST("/query", end.Analyze, auth) // {"text": "..."}
	r.GET("/uploads", end.Uploads, auth)
}
