package cli

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	htmlstring "github.com/goliatone/go-htmlstring"
)

// RenderOptions holds the flags of the render command.
type RenderOptions struct {
	*GlobalOptions

	Layout string
	Data   string
	Engine string
	Output string
}

// NewRenderOptions returns render options sharing g.
func NewRenderOptions(g *GlobalOptions) *RenderOptions {
	return &RenderOptions{GlobalOptions: g}
}

// NewRenderCmd builds the render command around o.
func NewRenderCmd(o *RenderOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a layout file with values from a data file",
		Args:  cobra.NoArgs,
		RunE:  func(cmd *cobra.Command, _ []string) error { return o.Run(cmd) },
	}
	cmd.Flags().StringVarP(&o.Layout, "layout", "l", "", "Layout file")
	cmd.Flags().StringVarP(&o.Data, "data", "d", "", "YAML or JSON data file")
	cmd.Flags().StringVarP(&o.Engine, "engine", "e", "", "Template engine (layout, pongo2)")
	cmd.Flags().StringVarP(&o.Output, "output", "o", "", "Output file (stdout if empty)")
	return cmd
}

// Run renders the layout and writes it to --output or stdout.
func (o *RenderOptions) Run(cmd *cobra.Command) error {
	if err := requireFlag("layout", o.Layout); err != nil {
		return err
	}
	env, err := o.load(cmd, o.Engine)
	if err != nil {
		return err
	}

	p, err := newPage(o.Layout, o.Data, env)
	if err != nil {
		return err
	}
	out, err := p.Render(cmd.Context())
	if err != nil {
		return err
	}
	body := htmlstring.Finalize(out)

	if o.Output == "" {
		_, err := io.WriteString(cmd.OutOrStdout(), body+"\n")
		return err
	}
	if err := os.WriteFile(o.Output, []byte(body+"\n"), 0o644); err != nil {
		return err
	}
	env.logger.Info("page written", slog.String("output", o.Output), slog.Int("bytes", len(body)))
	return nil
}
