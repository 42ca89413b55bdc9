package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/mchmarny/navmenu/internal/config"
	"github.com/mchmarny/navmenu/internal/watch"
	"github.com/mchmarny/navmenu/pkg/menu"
	"github.com/mchmarny/navmenu/pkg/metric"
	"github.com/mchmarny/navmenu/pkg/server"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the menu view over HTTP",
		Long: `Serve the menu resolved for the requested page at /menu.

The page is taken from the X-Original-URI header or the uri query parameter.
Health, readiness and Prometheus metrics are served at /healthz, /readyz
and /metrics. With --watch the definition is reloaded when it changes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := config.LoadSettings(cmd.Flags())
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return runServe(ctx, cmd, s)
		},
	}

	cmd.Flags().IntP(config.KeyPort, "p", server.DefaultPort, "port to serve on")
	cmd.Flags().Bool(config.KeyWatch, false, "reload the definition when the file changes")

	return cmd
}

func runServe(ctx context.Context, cmd *cobra.Command, s config.Settings) error {
	reg := prometheus.NewRegistry()
	views := metric.NewViewRequestCounter(reg)
	reloads := metric.NewReloadCounter(reg)

	holder := watch.NewHolder(func() (*menu.Menu, error) {
		return loadMenu(cmd, s)
	}, watch.WithReloadCounter(reloads))

	if err := holder.Reload(); err != nil {
		return err
	}

	opts := []server.Option{
		server.WithPort(s.Port),
		server.WithRegistry(reg),
		server.WithPrometheusMetrics(),
		server.WithSimpleHealth(),
		server.WithReadiness(holder),
		server.WithMenuHandler(menu.ViewHandler(holder.Menu, menu.WithRequestCounter(views))),
	}

	if s.Watch {
		opts = append(opts, server.WithBackground(watch.NewWatcher(s.File, holder, 0).Run))
	}

	return server.New(opts...).Serve(ctx)
}
