package app

import (
	"context"
	"log/slog"
	"os"

	"github.com/shandysiswandi/gocsv/internal/dataset"
)

func (a *App) initModules() {
	if a.config.GetBool("modules.dataset.enabled") {
		closer, err := dataset.New(dataset.Dependency{
			Config:     a.config,
			Router:     a.router,
			Registerer: a.registry,
			ID:         a.snowflake,
		})
		if err != nil {
			slog.Error("failed to init module dataset", "error", err)
			os.Exit(1)
		}
		if closer != nil {
			if a.closerFn == nil {
				a.closerFn = map[string]func(context.Context) error{}
			}
			a.closerFn["Dataset"] = closer
		}
	}
}
