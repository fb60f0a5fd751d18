package repository

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/okian/ploffs/internal/domain/model"
)

const sampleCSV = `Week,Nico,Sam,Bryce
1,120.5,98,101
2,133,110.25,87
3,101,125,99
`

func TestReadTable_Valid(t *testing.T) {
	table, err := ReadTable(strings.NewReader(sampleCSV), DefaultPeriodColumn, ',')
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := len(table.Periods); got != 3 {
		t.Fatalf("expected 3 periods, got %d", got)
	}
	if table.Periods[2] != "3" {
		t.Errorf("expected last period label 3, got %q", table.Periods[2])
	}
	if got := len(table.Entrants); got != 3 {
		t.Fatalf("expected 3 entrants, got %d", got)
	}
	nico := table.Entrants[0]
	if nico.Name != "Nico" {
		t.Fatalf("expected Nico in the first column, got %q", nico.Name)
	}
	want := []float64{120.5, 133, 101}
	for i, v := range want {
		if nico.Scores[i] != v {
			t.Errorf("score %d: expected %v, got %v", i, v, nico.Scores[i])
		}
	}
}

func TestReadTable_PeriodColumnAnywhere(t *testing.T) {
	in := "Nico,Round,Sam\n1,a,2\n3,b,4\n"
	table, err := ReadTable(strings.NewReader(in), "Round", ',')
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if table.Periods[1] != "b" {
		t.Errorf("expected period b, got %q", table.Periods[1])
	}
	if table.Entrants[1].Name != "Sam" || table.Entrants[1].Scores[1] != 4 {
		t.Errorf("unexpected Sam column: %+v", table.Entrants[1])
	}
}

func TestReadTable_Malformed(t *testing.T) {
	cases := map[string]string{
		"empty":            "",
		"no period column": "Nico,Sam\n1,2\n",
		"blank cell":       "Week,Nico,Sam\n1,,2\n",
		"not a number":     "Week,Nico,Sam\n1,abc,2\n",
		"short row":        "Week,Nico,Sam\n1,2\n",
		"duplicate name":   "Week,Nico,Nico\n1,2,3\n",
		"unnamed column":   "Week,,Sam\n1,2,3\n",
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ReadTable(strings.NewReader(in), DefaultPeriodColumn, ',')
			if !errors.Is(err, ErrMalformedTable) {
				t.Errorf("expected ErrMalformedTable, got %v", err)
			}
		})
	}
}

func TestWriteTable_RoundTrip(t *testing.T) {
	src := model.ScoreTable{
		Periods: []string{"1", "2"},
		Entrants: []model.Entrant{
			{Name: "Nico", Scores: []float64{250.25, 240}},
			{Name: "Sam", Scores: []float64{199, 201.5}},
		},
	}
	var sb strings.Builder
	if err := WriteTable(&sb, src, "Week"); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := ReadTable(strings.NewReader(sb.String()), "Week", ',')
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got.Entrants[0].Scores[0] != 250.25 || got.Entrants[1].Scores[1] != 201.5 {
		t.Errorf("round trip changed scores: %+v", got.Entrants)
	}
}

func TestWriteTable_MissingScore(t *testing.T) {
	src := model.ScoreTable{
		Periods:  []string{"1", "2"},
		Entrants: []model.Entrant{{Name: "Nico", Scores: []float64{1}}},
	}
	var sb strings.Builder
	if err := WriteTable(&sb, src, "Week"); !errors.Is(err, ErrMalformedTable) {
		t.Errorf("expected ErrMalformedTable, got %v", err)
	}
}

func TestCSVSource_Load(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, "scores.csv")
	if err := os.WriteFile(path, []byte(strings.ReplaceAll(sampleCSV, ",", ";")), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	src := NewCSVSource(path, WithComma(';'))
	if src.Path() != path {
		t.Errorf("expected path %s, got %s", path, src.Path())
	}
	table, err := src.Load(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(table.Entrants) != 3 {
		t.Errorf("expected 3 entrants, got %d", len(table.Entrants))
	}

	if _, err := NewCSVSource(filepath.Join(dir, "missing.csv")).Load(ctx); err == nil {
		t.Error("expected error for missing file")
	}
	if _, err := NewCSVSource("").Load(ctx); !errors.Is(err, ErrNoSource) {
		t.Errorf("expected ErrNoSource, got %v", err)
	}
	if _, err := NewCSVSource(path, WithPeriodColumn("Round"), WithComma(';')).Load(ctx); !errors.Is(err, ErrMalformedTable) {
		t.Errorf("expected ErrMalformedTable for wrong period column, got %v", err)
	}
}

func TestMemorySource_IsolatesCallers(t *testing.T) {
	ctx := context.Background()
	orig := model.ScoreTable{
		Periods:  []string{"1", "2"},
		Entrants: []model.Entrant{{Name: "Nico", Scores: []float64{1, 2}}},
	}
	src := NewMemorySource(orig)
	orig.Entrants[0].Scores[0] = 99

	got, err := src.Load(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Entrants[0].Scores[0] != 1 {
		t.Errorf("source shares memory with caller")
	}
	got.Entrants[0].Scores[1] = 42
	again, _ := src.Load(ctx)
	if again.Entrants[0].Scores[1] != 2 {
		t.Errorf("load results share memory")
	}

	src.Set(model.ScoreTable{Periods: []string{"x"}})
	next, _ := src.Load(ctx)
	if len(next.Entrants) != 0 || next.Periods[0] != "x" {
		t.Errorf("expected replaced table, got %+v", next)
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := src.Load(cancelled); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
