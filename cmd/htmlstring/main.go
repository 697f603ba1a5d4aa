package main

import (
	"context"
	"fmt"
	"os"

	"github.com/goliatone/go-htmlstring/internal/cli"
)

func main() {
	cmd := cli.NewRootCmd()
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "htmlstring: Error: %s\n", err)
		os.Exit(1)
	}
}
