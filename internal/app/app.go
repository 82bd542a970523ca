package app

import (
	"context"
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shandysiswandi/gocsv/internal/pkg/pkgconfig"
	"github.com/shandysiswandi/gocsv/internal/pkg/pkglog"
	"github.com/shandysiswandi/gocsv/internal/pkg/pkgrouter"
	"github.com/shandysiswandi/gocsv/internal/pkg/pkgroutine"
	"github.com/shandysiswandi/gocsv/internal/pkg/pkguid"
)

type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	// configuration
	config *pkgconfig.Viper

	// libraries
	uuid      pkguid.StringID
	snowflake pkguid.NumberID
	goroutine *pkgroutine.Manager
	registry  *prometheus.Registry

	// server
	router     *pkgrouter.Router
	httpServer *http.Server

	//
	closerFn  map[string]func(context.Context) error
	terminate sync.Once
}

func New() *App {
	pkglog.InitLogging()

	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		ctx:    ctx,
		cancel: cancel,
	}

	app.initConfig()
	app.initLibraries()
	app.initHTTPServer()
	app.initModules()
	app.initClosers()

	return app
}
