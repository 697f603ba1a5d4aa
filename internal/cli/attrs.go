package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-htmlstring/internal/data"
)

// AttrsOptions holds the flags of the attrs command.
type AttrsOptions struct {
	*GlobalOptions

	Data string
	Key  string
}

// NewAttrsOptions returns attrs options sharing g.
func NewAttrsOptions(g *GlobalOptions) *AttrsOptions {
	return &AttrsOptions{GlobalOptions: g}
}

// NewAttrsCmd builds the attrs command around o.
func NewAttrsCmd(o *AttrsOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "attrs",
		Short: "Print the HTML attributes for a mapping in a data file",
		Args:  cobra.NoArgs,
		RunE:  func(cmd *cobra.Command, _ []string) error { return o.Run(cmd) },
	}
	cmd.Flags().StringVarP(&o.Data, "data", "d", "", "YAML or JSON data file")
	cmd.Flags().StringVarP(&o.Key, "key", "k", "", "Top-level key holding the mapping (whole document if empty)")
	return cmd
}

// Run prints the attribute string of the selected mapping.
func (o *AttrsOptions) Run(cmd *cobra.Command) error {
	if err := requireFlag("data", o.Data); err != nil {
		return err
	}
	env, err := o.load(cmd, "")
	if err != nil {
		return err
	}

	doc, err := data.LoadOrdered(o.Data)
	if err != nil {
		return err
	}
	var value any = doc
	if o.Key != "" {
		v, ok := doc.Get(o.Key)
		if !ok {
			return fmt.Errorf("key %q not found in %s", o.Key, o.Data)
		}
		value = v
	}

	attrs, err := env.renderer.ToAttributes(value)
	if err != nil {
		return err
	}
	_, err = io.WriteString(cmd.OutOrStdout(), attrs+"\n")
	return err
}
