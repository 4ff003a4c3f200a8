package cmd

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/google/subcommands"
	"github.com/stupidvibecoder/pre-ipo/api"
)

type serveCmd struct {
	addr string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "serve series and metrics over HTTP" }
func (*serveCmd) Usage() string {
	return `pmt serve [-addr <host:port>]

  Serves a read-only JSON API:

    GET /entities
    GET /entities/:id
    GET /entities/:id/series
    GET /entities/:id/metrics?baseline=0.4
    GET /entities/:id/report?baseline=0.4
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.addr, "addr", "", "Listen address. Defaults to the configuration 'listen' value.")
}

func (c *serveCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, cat, status := app.load()
	if status != subcommands.ExitSuccess {
		return status
	}
	addr := c.addr
	if addr == "" {
		addr = cfg.Listen
	}

	if !app.verbose {
		gin.SetMode(gin.ReleaseMode)
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	s := &api.Server{
		Data:     cat.Data,
		Profiles: cat.Profiles,
		Rate:     cat.Rate,
		Options:  cat.Options,
	}
	return exitStatus(s.ListenAndServe(ctx, addr))
}
