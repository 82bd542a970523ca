package dataset

import (
	"context"
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shandysiswandi/gocsv/internal/dataset/inbound"
	"github.com/shandysiswandi/gocsv/internal/dataset/metric"
	"github.com/shandysiswandi/gocsv/internal/dataset/outbound"
	"github.com/shandysiswandi/gocsv/internal/dataset/store"
	"github.com/shandysiswandi/gocsv/internal/dataset/usecase"
	"github.com/shandysiswandi/gocsv/internal/pkg/pkgconfig"
	"github.com/shandysiswandi/gocsv/internal/pkg/pkgrouter"
	"github.com/shandysiswandi/gocsv/internal/pkg/pkguid"
)

var (
	ErrMissingAPIKey        = errors.New("auth.api_key (API_KEY) is not set")
	ErrMissingAnalysisToken = errors.New("analysis.token (DEEPSEEK_API_KEY) is not set")
)

type Dependency struct {
	Config     pkgconfig.Config
	Router     *pkgrouter.Router
	Registerer prometheus.Registerer
	ID         pkguid.NumberID
}

func New(dep Dependency) (func(context.Context) error, error) {
	apiKey := dep.Config.GetString("auth.api_key")
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	token := dep.Config.GetString("analysis.token")
	if token == "" {
		return nil, ErrMissingAnalysisToken
	}

	if dep.ID == nil {
		sf, err := pkguid.NewSnowflake()
		if err != nil {
			return nil, err
		}
		dep.ID = sf
	}

	var recorder usecase.Recorder
	if dep.Registerer != nil {
		recorder = metric.NewPrometheus(dep.Registerer)
	}

	uc := usecase.New(usecase.Dependency{
		Store: store.NewInMemoryStore(),
		Analyzer: outbound.NewOpenRouter(outbound.Config{
			Endpoint: dep.Config.GetString("analysis.endpoint"),
			Model:    dep.Config.GetString("analysis.model"),
			Token:    token,
			Timeout:  dep.Config.GetDuration("analysis.timeout"),
		}),
		Recorder: recorder,
		ID:       dep.ID,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc, inbound.Config{
		APIKey:         apiKey,
		APIKeyHeader:   dep.Config.GetString("auth.header"),
		MaxUploadBytes: dep.Config.GetInt("upload.max_bytes"),
	})

	return nil, nil
}
