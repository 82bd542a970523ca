package inbound

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/shandysiswandi/gocsv/internal/dataset/usecase"
	"github.com/shandysiswandi/gocsv/internal/pkg/pkgerror"
	"github.com/shandysiswandi/gocsv/internal/pkg/pkgrouter"
)

const (
	formFieldFile = "file"

	msgUnsupportedMedia = "Unsupported Media Type. Content-Type must be application/json"
	msgTooLarge         = "Uploaded file is too large"
)

type HTTPEndpoint struct {
	uc             uc
	maxUploadBytes int64
}

func (h *HTTPEndpoint) Upload(ctx context.Context, r *http.Request) (any, error) {
	if h.maxUploadBytes > 0 && r.Body != nil {
		r.Body = http.MaxBytesReader(nil, r.Body, h.maxUploadBytes)
	}

	in, cleanup, err := extractUpload(r)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	result, err := h.uc.Upload(ctx, in)
	if err != nil {
		return nil, err
	}

	uploadID := strconv.FormatInt(result.UploadID, 10)
	pkgrouter.LogAttrs(ctx, slog.String("upload_id", uploadID), slog.Int("rows_uploaded", result.Rows))

	return UploadResponse{
		Message:      msgUploaded,
		RowsUploaded: result.Rows,
		UploadID:     uploadID,
	}, nil
}

func (h *HTTPEndpoint) Stats(ctx context.Context, r *http.Request) (any, error) {
	result, err := h.uc.Stats(ctx)
	if err != nil {
		return nil, err
	}
	pkgrouter.LogAttrs(ctx, slog.Int("numeric_columns", len(result)))

	return toStatsResponse(result), nil
}

func (h *HTTPEndpoint) Query(ctx context.Context, r *http.Request) (any, error) {
	query := r.URL.Query()
	filter := usecase.RowFilter{
		Column: query.Get("column"),
		Value:  query.Get("value"),
	}

	rows, err := h.uc.Query(ctx, filter)
	if err != nil {
		return nil, err
	}
	pkgrouter.LogAttrs(ctx, slog.String("column", filter.Column), slog.Int("matches", len(rows)))

	return toRowsResponse(rows), nil
}

func (h *HTTPEndpoint) Analyze(ctx context.Context, r *http.Request) (any, error) {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || !strings.EqualFold(mediaType, "application/json") {
		return nil, pkgerror.NewValidation(msgUnsupportedMedia, pkgerror.CodeUnsupportedMedia)
	}

	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, pkgerror.NewInvalidFormat()
	}

	question := ""
	if req.Text != nil {
		question = *req.Text
	}

	answer, err := h.uc.Analyze(ctx, question)
	if err != nil {
		return nil, err
	}
	pkgrouter.LogAttrs(ctx, slog.Int("answer_chars", len(answer)))

	return answer, nil
}

func (h *HTTPEndpoint) Uploads(ctx context.Context, r *http.Request) (any, error) {
	batches, err := h.uc.Uploads(ctx)
	if err != nil {
		return nil, err
	}
	pkgrouter.LogAttrs(ctx, slog.Int("batches", len(batches)))

	items := make([]BatchResponse, 0, len(batches))
	for _, b := range batches {
		items = append(items, BatchResponse{
			UploadID:   strconv.FormatInt(b.ID, 10),
			Filename:   b.Filename,
			Rows:       b.Rows,
			UploadedAt: b.UploadedAt,
		})
	}

	return items, nil
}

// extractUpload finds the "file" part of a multipart body. A request that is
// not multipart, or has no file part, yields an input with a nil Body.
func extractUpload(r *http.Request) (usecase.UploadInput, func(), error) {
	noop := func() {}

	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || !strings.EqualFold(mediaType, "multipart/form-data") || r.Body == nil {
		return usecase.UploadInput{}, noop, nil
	}

	reader, err := r.MultipartReader()
	if err != nil {
		return usecase.UploadInput{}, noop, pkgerror.NewInvalidFormat()
	}

	for {
		part, err := reader.NextPart()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return usecase.UploadInput{}, noop, nil
			}
			return usecase.UploadInput{}, noop, readErr(err)
		}

		filename, ok := partFilename(part)
		if part.FormName() == formFieldFile && ok {
			return usecase.UploadInput{
				Filename: filename,
				Body:     &bodyReader{r: part},
			}, func() { _ = part.Close() }, nil
		}
		_ = part.Close()
	}
}

// partFilename reports the filename parameter of a part and whether the
// parameter is present at all. A form value without it is not a file.
func partFilename(part *multipart.Part) (string, bool) {
	_, params, err := mime.ParseMediaType(part.Header.Get("Content-Disposition"))
	if err != nil {
		return "", false
	}

	if _, ok := params["filename"]; !ok {
		return "", false
	}

	return part.FileName(), true
}

// bodyReader maps transport read failures onto client errors.
type bodyReader struct {
	r io.Reader
}

func (b *bodyReader) Read(p []byte) (int, error) {
	n, err := b.r.Read(p)
	if err != nil && !errors.Is(err, io.EOF) {
		return n, readErr(err)
	}
	return n, err
}

func readErr(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return pkgerror.NewValidation(msgTooLarge, pkgerror.CodeTooLarge)
	}
	return pkgerror.NewInvalidFormat()
}
