package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shandysiswandi/gocsv/internal/dataset/entity"
	"github.com/shandysiswandi/gocsv/internal/pkg/pkgerror"
	"github.com/shandysiswandi/gocsv/internal/pkg/pkguid"
)

type Store interface {
	Append(ctx context.Context, batch entity.Batch, rows []entity.Row) error
	Rows(ctx context.Context) ([]entity.Row, error)
	Find(ctx context.Context, filter RowFilter) ([]entity.Row, error)
	Batches(ctx context.Context) ([]entity.Batch, error)
}

// Analyzer answers a prompt with generated text. An empty answer with a nil
// error means the service replied without content.
type Analyzer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Recorder receives domain measurements. It may be nil.
type Recorder interface {
	ObserveUpload(rows int)
	ObserveAnalysis(err error)
}

type Clock interface {
	Now() time.Time
}

type Dependency struct {
	Store    Store
	Analyzer Analyzer
	Recorder Recorder
	Clock    Clock
	ID       pkguid.NumberID
}

type Usecase struct {
	store    Store
	analyzer Analyzer
	recorder Recorder
	clock    Clock
	id       pkguid.NumberID
}

func New(dep Dependency) *Usecase {
	clock := dep.Clock
	if clock == nil {
		clock = realClock{}
	}

	recorder := dep.Recorder
	if recorder == nil {
		recorder = noopRecorder{}
	}

	return &Usecase{
		store:    dep.Store,
		analyzer: dep.Analyzer,
		recorder: recorder,
		clock:    clock,
		id:       dep.ID,
	}
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now()
}

type noopRecorder struct{}

func (noopRecorder) ObserveUpload(int) {}

func (noopRecorder) ObserveAnalysis(error) {}

// Upload validates and parses one CSV file and appends all of its rows.
//
// The file is parsed completely before the store is touched, so a rejected
// file never leaves a partial batch behind.
func (u *Usecase) Upload(ctx context.Context, in UploadInput) (UploadResult, error) {
	if u.store == nil || u.id == nil {
		return UploadResult{}, pkgerror.NewServer(errors.New("missing dependency"))
	}

	if in.Body == nil {
		return UploadResult{}, pkgerror.NewValidation(msgNoFile, pkgerror.CodeInvalidInput)
	}
	if in.Filename == "" {
		return UploadResult{}, pkgerror.NewValidation(msgNoFilename, pkgerror.CodeInvalidInput)
	}
	if !strings.HasSuffix(strings.ToLower(in.Filename), ".csv") {
		return UploadResult{}, pkgerror.NewValidation(msgInvalidFileType, pkgerror.CodeInvalidInput)
	}

	data, err := io.ReadAll(in.Body)
	if err != nil {
		return UploadResult{}, normalizeErr(err)
	}

	if !utf8.Valid(data) {
		return UploadResult{}, pkgerror.NewValidation(msgInvalidEncoding, pkgerror.CodeInvalidInput)
	}

	rows, err := parseCSV(ctx, data)
	if err != nil {
		slog.ErrorContext(ctx, "failed to parse csv", "filename", in.Filename, "error", err)
		return UploadResult{}, normalizeErr(err)
	}

	batch := entity.Batch{
		ID:         u.id.Generate(),
		Filename:   in.Filename,
		Rows:       len(rows),
		UploadedAt: u.clock.Now().Unix(),
	}

	if err := u.store.Append(ctx, batch, rows); err != nil {
		return UploadResult{}, normalizeErr(err)
	}
	u.recorder.ObserveUpload(len(rows))

	slog.InfoContext(ctx, "csv uploaded", "upload_id", batch.ID, "filename", batch.Filename, "rows", batch.Rows)

	return UploadResult{UploadID: batch.ID, Rows: len(rows)}, nil
}

// Stats returns mean and median for every column with at least one numeric cell.
func (u *Usecase) Stats(ctx context.Context) (StatsResult, error) {
	rows, err := u.store.Rows(ctx)
	if err != nil {
		return nil, normalizeErr(err)
	}

	if len(rows) == 0 {
		return nil, pkgerror.NewBusiness(msgNoData, pkgerror.CodeFailedPrecondition)
	}

	result := computeStats(rows)
	if len(result) == 0 {
		return nil, pkgerror.NewBusiness(msgNoNumericData, pkgerror.CodeFailedPrecondition)
	}

	return result, nil
}

// Query returns the stored rows matching filter, in upload order.
func (u *Usecase) Query(ctx context.Context, filter RowFilter) ([]entity.Row, error) {
	if filter.Column == "" || filter.Value == "" {
		return nil, pkgerror.NewValidation(msgMissingFilter, pkgerror.CodeInvalidInput)
	}

	rows, err := u.store.Find(ctx, filter)
	if err != nil {
		return nil, normalizeErr(err)
	}

	return rows, nil
}

// Uploads lists the accepted upload batches, oldest first.
func (u *Usecase) Uploads(ctx context.Context) ([]entity.Batch, error) {
	batches, err := u.store.Batches(ctx)
	if err != nil {
		return nil, normalizeErr(err)
	}

	return batches, nil
}

// Analyze sends the whole dataset and question to the analysis service and
// returns its answer verbatim. Any upstream failure yields no content.
func (u *Usecase) Analyze(ctx context.Context, question string) (string, error) {
	if question == "" {
		return "", pkgerror.NewValidation(msgNoText, pkgerror.CodeInvalidInput)
	}

	if u.analyzer == nil {
		return "", pkgerror.NewServer(errors.New("missing analyzer"))
	}

	rows, err := u.store.Rows(ctx)
	if err != nil {
		return "", normalizeErr(err)
	}

	prompt, err := buildPrompt(rows, question)
	if err != nil {
		return "", pkgerror.NewServer(err)
	}

	answer, err := u.analyzer.Complete(ctx, prompt)
	u.recorder.ObserveAnalysis(err)
	if err != nil {
		slog.ErrorContext(ctx, "analysis request failed", "rows", len(rows), "error", err)
		return "", pkgerror.NewUpstream(err, msgUpstream)
	}

	if answer == "" {
		return NoResponse, nil
	}

	return answer, nil
}

func normalizeErr(err error) error {
	var perr *pkgerror.Error
	if errors.As(err, &perr) {
		return perr
	}
	return pkgerror.NewServer(err)
}
