package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/salmonumbrella/grid-cli/internal/config"
	clierrors "github.com/salmonumbrella/grid-cli/internal/errors"
	"github.com/salmonumbrella/grid-cli/internal/output"
	"github.com/salmonumbrella/grid-cli/internal/validate"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Aliases: []string{"cfg"},
		Short:   "Manage CLI configuration",
		Long: `Manage the grid configuration file at ~/.config/grid-cli/config.yaml.

Set GRID_CONFIG to use a different file.`,
	}
	cmd.AddCommand(newConfigShowCmd())
	cmd.AddCommand(newConfigSetCmd())
	cmd.AddCommand(newConfigUnsetCmd())
	cmd.AddCommand(newConfigPathCmd())
	return cmd
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Display current configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := stdoutFromContext(ctx)
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			if output.FormatFromContext(ctx).IsStructured() {
				return printerForContext(ctx).Print(ctx, cfg.Values())
			}

			data, err := yaml.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("failed to format config: %w", err)
			}

			// If config is empty, show a helpful message
			if len(data) == 0 || string(data) == "{}\n" {
				path, _ := config.DefaultConfigPath()
				_, _ = fmt.Fprintf(out, "No configuration file found at %s\n", path)
				_, _ = fmt.Fprintln(out, "\nTo create a config file, use:")
				_, _ = fmt.Fprintln(out, "  grid config set output grid")
				return nil
			}

			_, _ = fmt.Fprint(out, string(data))
			return nil
		},
	}
}

func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Long: `Set a configuration value.

Supported keys:
  output      - Default output format (text, table, grid, csv, json, ndjson/jsonl, yaml)
  color       - Default color mode (auto, always, never)
  dataset     - Dataset file used when --file is not given
  padding     - Blank rows appended below the data
  log_format  - Debug log format (text, json)`,
		Example: `  grid config set output grid
  grid config set dataset ~/jobs/q3.yaml
  grid config set padding 0`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := stdoutFromContext(cmd.Context())
			key := args[0]
			value := args[1]

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			switch key {
			case "output":
				format, err := output.ParseFormat(value)
				if err != nil {
					return clierrors.NewUserError(fmt.Sprintf("invalid output format %q", value), "Use one of: text, table, grid, csv, json, ndjson, yaml")
				}
				value = string(format)
			case "padding":
				if n, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
					if err := validate.Padding(n); err != nil {
						return clierrors.NewUserError(err.Error(), "")
					}
				}
			}
			if err := cfg.Set(key, value); err != nil {
				return clierrors.WrapUserError(err, "cannot set "+key, "Supported keys: "+strings.Join(config.Keys, ", "))
			}

			if err := cfg.Save(); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			path, _ := config.DefaultConfigPath()
			stored, _ := cfg.Get(key)
			_, _ = fmt.Fprintf(out, "Set %s = %s in %s\n", key, stored, path)
			return nil
		},
	}
}

func newConfigUnsetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unset <key>",
		Short: "Remove a configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := stdoutFromContext(cmd.Context())
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if err := cfg.Set(args[0], ""); err != nil {
				return clierrors.WrapUserError(err, "cannot unset "+args[0], "Supported keys: "+strings.Join(config.Keys, ", "))
			}
			if err := cfg.Save(); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}
			_, _ = fmt.Fprintf(out, "Unset %s\n", args[0])
			return nil
		},
	}
}

func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := stdoutFromContext(cmd.Context())
			path, err := config.DefaultConfigPath()
			if err != nil {
				return fmt.Errorf("failed to determine config path: %w", err)
			}

			_, _ = fmt.Fprintln(out, path)

			// Show if file exists
			if _, err := os.Stat(path); err == nil {
				_, _ = fmt.Fprintln(out, "(file exists)")
			} else if os.IsNotExist(err) {
				_, _ = fmt.Fprintln(out, "(file does not exist)")
			}

			return nil
		},
	}
}
