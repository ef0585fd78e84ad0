package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vango-dev/scene/internal/demo"
	"github.com/vango-dev/scene/pkg/elements"
	"github.com/vango-dev/scene/pkg/scene"
)

func demoCmd(dir *string) *cobra.Command {
	var (
		passes int
		clicks bool
		title  string
	)

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run the built-in counter scene",
		Long: `Run a few passes of the built-in counter scene and print what each
pass reused, followed by the paint sequence of the last frame.

Between passes the increment button is clicked, so only the
subtree that shows the count is rebuilt.

Examples:
  scene demo
  scene demo --passes=5 --click=false`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), *dir, passes, clicks, title)
		},
	}

	cmd.Flags().IntVarP(&passes, "passes", "n", 3, "Number of passes to run")
	cmd.Flags().BoolVar(&clicks, "click", true, "Click the increment button between passes")
	cmd.Flags().StringVar(&title, "title", "Counter", "Window title")

	return cmd
}

func runDemo(ctx context.Context, out, logw io.Writer, dir string, passes int, clicks bool, title string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	e, err := setup(dir, logw)
	if err != nil {
		return err
	}

	counter := demo.NewCounter(title)
	for i := 0; i < passes; i++ {
		if i > 0 && clicks {
			e.rt.Dispatch(demo.IncrementPath, elements.Click{})
		}
		f, err := e.rt.Frame(ctx, counter.Render)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "pass %d: %d nodes, %d reused, %d rebuilt, %d evicted\n",
			f.Seq, f.Nodes, f.Stats.Hits, f.Stats.Misses, f.Stats.Evicted)
	}

	last := e.rt.Last()
	if last == nil {
		return nil
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, "paint sequence:")
	for _, entry := range last.Entries {
		if !entry.Painted {
			continue
		}
		info(out, "%-8s %-7s %s", displayPath(entry.Path), entry.Kind, describePaint(entry.Paint))
	}
	return nil
}

func displayPath(p string) string {
	if p == "" {
		return "/"
	}
	return p
}

func describePaint(p scene.PaintDetails) string {
	s := ""
	if p.Text != "" {
		s += fmt.Sprintf("text=%q ", p.Text)
	}
	if p.Background != 0 {
		s += "bg=" + p.Background.String() + " "
	}
	if p.Foreground != 0 {
		s += "fg=" + p.Foreground.String() + " "
	}
	if p.Border != 0 {
		s += fmt.Sprintf("border=%g", p.Border)
	}
	return s
}
