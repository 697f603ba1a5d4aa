// Package cli implements the htmlstring command line tool.
package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	htmlstring "github.com/goliatone/go-htmlstring"
	"github.com/goliatone/go-htmlstring/internal/config"
	"github.com/goliatone/go-htmlstring/pkg/escape"
)

// GlobalOptions holds the flags shared by every subcommand.
type GlobalOptions struct {
	ConfigPath string
	Escaper    string
	LogLevel   string
}

// NewRootCmd builds the htmlstring command tree.
func NewRootCmd() *cobra.Command {
	g := &GlobalOptions{}

	cmd := &cobra.Command{
		Use:   "htmlstring",
		Short: "htmlstring renders escaped HTML from layouts and data files",
		Long: `htmlstring renders escaped HTML from layouts and data files.

Layout tags look like {{ name }}, {{ name:safe }} or {{ name:attrs }}.
Values are escaped unless a tag or value type says otherwise.`,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	cmd.PersistentFlags().StringVarP(&g.ConfigPath, "config", "c", "", "Path to a YAML config file")
	cmd.PersistentFlags().StringVar(&g.Escaper, "escaper", "", "Escaper to use (entities, strict, ugc)")
	cmd.PersistentFlags().StringVar(&g.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")

	cmd.AddCommand(NewRenderCmd(NewRenderOptions(g)))
	cmd.AddCommand(NewAttrsCmd(NewAttrsOptions(g)))
	cmd.AddCommand(NewServeCmd(NewServeOptions(g)))
	return cmd
}

type environment struct {
	cfg      config.Config
	renderer *htmlstring.Renderer
	logger   *slog.Logger
}

// load resolves the config file and flag overrides into a renderer and
// logger. A non-empty engine overrides the configured one. Logs go to the
// command's error stream.
func (g *GlobalOptions) load(cmd *cobra.Command, engine string) (environment, error) {
	cfg, err := config.Load(g.ConfigPath)
	if err != nil {
		return environment{}, err
	}
	if g.Escaper != "" {
		cfg.Escaper = g.Escaper
	}
	if g.LogLevel != "" {
		cfg.Log.Level = g.LogLevel
	}
	if engine != "" {
		cfg.Engine = engine
	}
	if err := cfg.Validate(); err != nil {
		return environment{}, err
	}

	esc, err := escape.NewDefaultRegistry().Get(cfg.Escaper)
	if err != nil {
		return environment{}, err
	}
	logger, err := cfg.Log.NewLogger(cmd.ErrOrStderr())
	if err != nil {
		return environment{}, err
	}

	logger.Debug("configuration loaded",
		slog.String("config", g.ConfigPath),
		slog.String("escaper", cfg.Escaper),
		slog.String("engine", cfg.Engine),
	)
	return environment{
		cfg:      cfg,
		renderer: htmlstring.New(htmlstring.WithEscaper(esc)),
		logger:   logger,
	}, nil
}

func requireFlag(name, value string) error {
	if value == "" {
		return fmt.Errorf("--%s is required", name)
	}
	return nil
}
