package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vango-dev/scene/internal/demo"
	"github.com/vango-dev/scene/pkg/inspect"
)

func serveCmd(dir *string) *cobra.Command {
	var (
		port   int
		host   string
		passes int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the counter scene with the live inspector",
		Long: `Run the counter scene on a fixed interval and serve the inspector.

Open /frame for the latest frame, connect to /ws to stream frames,
and POST to /dispatch to click the button.

Examples:
  scene serve
  scene serve --port=8080
  scene serve --host=0.0.0.0 --passes=100`,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(*dir, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if port > 0 {
				e.cfg.Inspector.Port = port
			}
			if host != "" {
				e.cfg.Inspector.Host = host
			}
			if cmd.Flags().Changed("passes") {
				e.cfg.Runtime.Passes = passes
			}
			if err := e.cfg.Validate(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, e, cmd)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Inspector port (default from config)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Inspector host (default from config)")
	cmd.Flags().IntVarP(&passes, "passes", "n", 0, "Stop producing frames after n passes (0 = never)")

	return cmd
}

func runServe(ctx context.Context, e *env, cmd *cobra.Command) error {
	interval, err := e.cfg.Interval()
	if err != nil {
		return err
	}

	counter := demo.NewCounter("Counter")
	g, ctx := errgroup.WithContext(ctx)

	if e.cfg.Inspector.Enabled {
		srv := inspect.New(e.rt, inspect.WithLogger(e.logger), inspect.WithGatherer(e.registry))
		defer srv.Close()
		success(cmd.OutOrStdout(), "Inspector on %s", e.cfg.InspectorURL())
		g.Go(func() error {
			return srv.ListenAndServe(ctx, e.cfg.InspectorAddress())
		})
	}

	g.Go(func() error {
		err := e.rt.Run(ctx, e.cfg.Runtime.Passes, interval, counter.Render)
		if stderrors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})

	err = g.Wait()
	st := e.rt.Stats()
	fmt.Fprintln(cmd.OutOrStdout())
	info(cmd.OutOrStdout(), "%d frames, %d failed, %d reused, %d rebuilt", st.Frames, st.Failures, st.Hits, st.Misses)
	return err
}
