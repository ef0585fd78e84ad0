package main

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vango-dev/scene/internal/config"
	"github.com/vango-dev/scene/internal/errors"
)

func configCmd(dir *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the scene configuration",
	}
	cmd.AddCommand(configInitCmd(dir), configShowCmd(dir))
	return cmd
}

func configInitCmd(dir *string) *cobra.Command {
	var (
		useYAML bool
		force   bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file",
		Long: `Write scene.json (or scene.yaml with --yaml) with default values.

Examples:
  scene config init
  scene config init --yaml
  scene -C ./demo config init --force`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if config.Exists(*dir) && !force {
				return errors.New("E122").
					WithDetail("a configuration already exists in " + *dir).
					WithSuggestion("Pass --force to overwrite it")
			}
			name := config.ConfigFileName
			if useYAML {
				name = config.YAMLConfigFileName
			}
			path := filepath.Join(*dir, name)
			if err := config.New().SaveTo(path); err != nil {
				return err
			}
			success(cmd.OutOrStdout(), "Wrote %s", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&useYAML, "yaml", false, "Write scene.yaml instead of scene.json")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing configuration")

	return cmd
}

func configShowCmd(dir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadOrDefault(*dir)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			src := cfg.Path()
			if src == "" {
				src = "defaults"
			}
			info(out, "source:    %s", src)
			info(out, "root:      text %g, %s", cfg.Root.TextSize, cfg.Root.Direction)
			info(out, "log:       %s (%s)", cfg.Log.Level, cfg.Log.Format)
			info(out, "inspector: %s (enabled %t)", cfg.InspectorURL(), cfg.Inspector.Enabled)
			info(out, "metrics:   %s (enabled %t)", cfg.Metrics.Namespace, cfg.Metrics.Enabled)
			info(out, "tracing:   %s (enabled %t)", cfg.Tracing.TracerName, cfg.Tracing.Enabled)
			info(out, "runtime:   %d passes every %s", cfg.Runtime.Passes, cfg.Runtime.Interval)
			return nil
		},
	}
}
