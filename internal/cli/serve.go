package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-htmlstring/internal/server"
)

// ServeOptions holds the flags of the serve command.
type ServeOptions struct {
	*GlobalOptions

	Layout string
	Data   string
	Engine string
	Addr   string
}

// NewServeOptions returns serve options sharing g.
func NewServeOptions(g *GlobalOptions) *ServeOptions {
	return &ServeOptions{GlobalOptions: g}
}

// NewServeCmd builds the serve command around o.
func NewServeCmd(o *ServeOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a rendered layout over HTTP",
		Args:  cobra.NoArgs,
		RunE:  func(cmd *cobra.Command, _ []string) error { return o.Run(cmd) },
	}
	cmd.Flags().StringVarP(&o.Layout, "layout", "l", "", "Layout file")
	cmd.Flags().StringVarP(&o.Data, "data", "d", "", "YAML or JSON data file")
	cmd.Flags().StringVarP(&o.Engine, "engine", "e", "", "Template engine (layout, pongo2)")
	cmd.Flags().StringVar(&o.Addr, "addr", "", "Listen address (default from config, :8080)")
	return cmd
}

// Run serves the page until the command context is cancelled or the
// process receives SIGINT or SIGTERM.
func (o *ServeOptions) Run(cmd *cobra.Command) error {
	if err := requireFlag("layout", o.Layout); err != nil {
		return err
	}
	env, err := o.load(cmd, o.Engine)
	if err != nil {
		return err
	}
	addr := env.cfg.Server.Addr
	if o.Addr != "" {
		addr = o.Addr
	}

	p, err := newPage(o.Layout, o.Data, env)
	if err != nil {
		return err
	}

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.Serve(ctx, addr, server.Handler(p.Render, env.logger), env.cfg.Server.ShutdownTimeout, env.logger)
}
