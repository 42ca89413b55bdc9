package menu

import (
	"context"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/mchmarny/navmenu/pkg/logger"
	"github.com/mchmarny/navmenu/pkg/metric"
	"github.com/mchmarny/navmenu/pkg/server"
)

var (
	version = "dev"     // Set at build time via -ldflags "-X github.com/mchmarny/navmenu/pkg/menu.version=version"
	commit  = "none"    // Set at build time via -ldflags "-X github.com/mchmarny/navmenu/pkg/menu.commit=commit"
	date    = "unknown" // Set at build time via -ldflags "-X github.com/mchmarny/navmenu/pkg/menu.date=date"
)

// Run serves the menu view, health and metrics endpoints until the context
// is canceled or an error occurs. Options are applied after the defaults.
func (m *Menu) Run(ctx context.Context, opt ...server.Option) error {
	logger.SetDefaultLogger("navmenu", version)
	slog.Info("starting navmenu", "menu", m.Title, "commit", commit, "date", date)

	reg := prometheus.NewRegistry()
	views := metric.NewViewRequestCounter(reg)

	opts := []server.Option{
		server.WithRegistry(reg),
		server.WithPrometheusMetrics(),
		server.WithSimpleHealth(),
		server.WithMenuHandler(m.Handler(WithRequestCounter(views))),
	}

	return server.New(append(opts, opt...)...).Serve(ctx)
}
