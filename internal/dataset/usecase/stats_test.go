package usecase

import (
	"testing"

	"github.com/shandysiswandi/gocsv/internal/dataset/entity"
)

func TestParseNumber(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{in: "1", want: 1, ok: true},
		{in: "-2.5", want: -2.5, ok: true},
		{in: " 3 ", want: 3, ok: true},
		{in: "1e3", want: 1000, ok: true},
		{in: "", ok: false},
		{in: "abc", ok: false},
		{in: "1,5", ok: false},
		{in: "NaN", ok: false},
		{in: "Inf", ok: false},
		{in: "-infinity", ok: false},
	}

	for _, tt := range tests {
		got, ok := parseNumber(tt.in)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Fatalf("parseNumber(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestComputeStats(t *testing.T) {
	t.Parallel()

	rows := []entity.Row{
		{"n": "4", "mixed": "1", "text": "a"},
		{"n": "1", "mixed": "x", "text": "b"},
		{"n": "3", "mixed": "3"},
		{"n": "2", "text": "c"},
	}

	got := computeStats(rows)

	if _, ok := got["text"]; ok {
		t.Fatalf("non-numeric column must be omitted: %v", got)
	}
	if got["n"].Mean != 2.5 || got["n"].Median != 2.5 {
		t.Fatalf("n = %+v, want mean 2.5 median 2.5", got["n"])
	}
	if got["mixed"].Mean != 2 || got["mixed"].Median != 2 {
		t.Fatalf("mixed = %+v, want mean 2 median 2", got["mixed"])
	}
}

func TestComputeStats_OddMedian(t *testing.T) {
	t.Parallel()

	got := computeStats([]entity.Row{{"v": "10"}, {"v": "1"}, {"v": "7"}})
	if got["v"].Median != 7 || got["v"].Mean != 6 {
		t.Fatalf("v = %+v, want mean 6 median 7", got["v"])
	}
}

func TestComputeStats_Empty(t *testing.T) {
	t.Parallel()

	if got := computeStats(nil); len(got) != 0 {
		t.Fatalf("computeStats(nil) = %v, want empty", got)
	}
}
