package app

import (
	"context"
	"net/http"
	"testing"

	"github.com/shandysiswandi/gocsv/internal/pkg/pkgconfig"
	"github.com/shandysiswandi/gocsv/internal/pkg/pkgroutine"
)

func TestInitClosersOnlyHoldsResources(t *testing.T) {
	cfg, err := pkgconfig.NewViper("")
	if err != nil {
		t.Fatalf("NewViper: %v", err)
	}

	a := &App{config: cfg, httpServer: &http.Server{}}
	a.initClosers()

	if len(a.closerFn) != 1 || a.closerFn["Config"] == nil {
		t.Fatalf("unexpected closers: %v", a.closerFn)
	}
	if err := a.closerFn["Config"](context.Background()); err != nil {
		t.Fatalf("config closer: %v", err)
	}
}

func TestStopRunsEveryCloserOnce(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := map[string]int{}

	a := &App{
		ctx:        ctx,
		cancel:     cancel,
		goroutine:  pkgroutine.NewManager(1),
		httpServer: &http.Server{},
		closerFn: map[string]func(context.Context) error{
			"Config": func(context.Context) error {
				calls["Config"]++
				return nil
			},
			"Other": func(context.Context) error {
				calls["Other"]++
				return nil
			},
		},
	}

	a.Stop(context.Background())

	if calls["Config"] != 1 || calls["Other"] != 1 {
		t.Fatalf("closer calls = %v, want each once", calls)
	}
	if ctx.Err() == nil {
		t.Fatalf("expected app context to be canceled")
	}
}
