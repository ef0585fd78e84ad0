package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/scene/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		errors.Print(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dir string

	rootCmd := &cobra.Command{
		Use:   "scene",
		Short: "Build, inspect and export memoized scene trees",
		Long: `scene drives a declarative scene tree through repeated construction
passes. Unchanged subtrees are reused between passes, and every frame
yields a layout tree and a paint sequence for a display backend.

Features include:

  • Memoized construction with positional and keyed slots
  • Live inspector over HTTP and WebSocket
  • Prometheus metrics and OpenTelemetry spans per pass
  • Frame reports exported to a directory or S3`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&dir, "dir", "C", ".", "Directory containing scene.json or scene.yaml")

	rootCmd.AddCommand(
		demoCmd(&dir),
		serveCmd(&dir),
		exportCmd(&dir),
		configCmd(&dir),
		versionCmd(),
	)
	return rootCmd
}

// success prints a success message.
func success(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "  %s\n", fmt.Sprintf(format, args...))
}
