package usecase

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"io"
	"log/slog"

	"github.com/shandysiswandi/gocsv/internal/dataset/entity"
)

//nolint:gochecknoglobals // constant byte sequence
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// parseCSV reads data with its first record as the header and returns one Row
// per following record. Blank lines are skipped, short records produce rows
// without the missing columns, and cells past the header width are dropped.
// Quotes are lazy: a bare quote stays in the cell and an unterminated quote
// runs to the end of the input.
func parseCSV(ctx context.Context, data []byte) ([]entity.Row, error) {
	reader := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, utf8BOM)))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return []entity.Row{}, nil
	}
	if err != nil {
		return nil, err
	}

	rows := make([]entity.Row, 0)
	var dropped int

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		if len(record) > len(header) {
			dropped += len(record) - len(header)
			record = record[:len(header)]
		}

		row := make(entity.Row, len(record))
		for i, value := range record {
			row[header[i]] = value
		}
		rows = append(rows, row)
	}

	if dropped > 0 {
		slog.WarnContext(ctx, "dropped csv cells beyond header width", "cells", dropped, "columns", len(header))
	}

	return rows, nil
}
