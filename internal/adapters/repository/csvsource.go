package repository

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/okian/ploffs/internal/domain/model"
	"github.com/okian/ploffs/pkg/metrics"
)

// CSVSource reads a score table from a CSV file whose header is the period
// column followed by one column per entrant.
type CSVSource struct {
	path         string
	periodColumn string
	comma        rune
}

// NewCSVSource constructs a file-backed source.
func NewCSVSource(path string, opts ...CSVOption) *CSVSource {
	s := &CSVSource{path: path, periodColumn: DefaultPeriodColumn, comma: ','}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the file the source reads.
func (s *CSVSource) Path() string { return s.path }

// Load implements Source.Load.
func (s *CSVSource) Load(ctx context.Context) (model.ScoreTable, error) {
	if s.path == "" {
		return model.ScoreTable{}, ErrNoSource
	}
	if err := ctx.Err(); err != nil {
		return model.ScoreTable{}, err
	}
	f, err := os.Open(s.path)
	if err != nil {
		metrics.RecordErrorByComponent("repository", "open")
		return model.ScoreTable{}, fmt.Errorf("open scores: %w", err)
	}
	defer f.Close()

	table, err := ReadTable(f, s.periodColumn, s.comma)
	if err != nil {
		metrics.RecordErrorByComponent("repository", "parse")
		return model.ScoreTable{}, fmt.Errorf("%s: %w", s.path, err)
	}
	return table, nil
}

// ReadTable parses a score table from r.
func ReadTable(r io.Reader, periodColumn string, comma rune) (model.ScoreTable, error) {
	reader := csv.NewReader(r)
	reader.Comma = comma
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return model.ScoreTable{}, fmt.Errorf("%w: empty file", ErrMalformedTable)
	}
	if err != nil {
		return model.ScoreTable{}, fmt.Errorf("%w: %w", ErrMalformedTable, err)
	}

	periodIdx := -1
	var table model.ScoreTable
	cols := make([]int, 0, len(header))
	seen := make(map[string]struct{}, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if h == periodColumn {
			periodIdx = i
			continue
		}
		if h == "" {
			return model.ScoreTable{}, fmt.Errorf("%w: column %d has no name", ErrMalformedTable, i+1)
		}
		if _, dup := seen[h]; dup {
			return model.ScoreTable{}, fmt.Errorf("%w: duplicate column %q", ErrMalformedTable, h)
		}
		seen[h] = struct{}{}
		cols = append(cols, i)
		table.Entrants = append(table.Entrants, model.Entrant{Name: h})
	}
	if periodIdx < 0 {
		return model.ScoreTable{}, fmt.Errorf("%w: missing period column %q", ErrMalformedTable, periodColumn)
	}

	for line := 2; ; line++ {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return model.ScoreTable{}, fmt.Errorf("%w: %w", ErrMalformedTable, err)
		}
		table.Periods = append(table.Periods, strings.TrimSpace(rec[periodIdx]))
		for j, col := range cols {
			cell := strings.TrimSpace(rec[col])
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return model.ScoreTable{}, fmt.Errorf("%w: line %d, %q: bad score %q", ErrMalformedTable, line, table.Entrants[j].Name, cell)
			}
			table.Entrants[j].Scores = append(table.Entrants[j].Scores, v)
		}
	}
	return table, nil
}

// WriteTable writes t in the layout ReadTable accepts.
func WriteTable(w io.Writer, t model.ScoreTable, periodColumn string) error {
	writer := csv.NewWriter(w)
	header := make([]string, 0, len(t.Entrants)+1)
	header = append(header, periodColumn)
	for _, e := range t.Entrants {
		header = append(header, e.Name)
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, period := range t.Periods {
		row := make([]string, 0, len(header))
		row = append(row, period)
		for _, e := range t.Entrants {
			if i >= len(e.Scores) {
				return fmt.Errorf("%w: %q has no score for period %s", ErrMalformedTable, e.Name, period)
			}
			row = append(row, strconv.FormatFloat(e.Scores[i], 'f', -1, 64))
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}
