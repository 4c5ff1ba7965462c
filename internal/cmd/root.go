package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/salmonumbrella/grid-cli/internal/config"
	clierrors "github.com/salmonumbrella/grid-cli/internal/errors"
	"github.com/salmonumbrella/grid-cli/internal/logging"
	"github.com/salmonumbrella/grid-cli/internal/ui"
)

func newRootCmd(app *App) *cobra.Command {
	// Global flags
	var (
		debugMode     bool
		queryFlag     string
		jqFlag        string
		fieldsFlag    string
		jsonPathFlag  string
		queryFile     string
		colorFlag     string
		logFormatFlag string
		errorFormat   string
		quietFlag     bool
		failEmptyFlag bool
		compactJSON   bool
	)

	rootCmd := &cobra.Command{
		Use:   "grid",
		Short: "Build and render job-request tables",
		Long: `grid builds a table from job-request records and renders it as an aligned
sheet, a boxed grid, CSV, JSON, NDJSON or YAML.

Without --file the bundled sample sheet is used.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Ensure Cobra doesn't emit its own error/usage text; we handle error output centrally.
			cmd.SilenceErrors = true
			cmd.SilenceUsage = true

			// Load config file (skip for config commands so a broken file can be fixed)
			var cfg *config.Config
			if !isConfigCommand(cmd) {
				loadedCfg, err := config.Load()
				if err != nil {
					return clierrors.WrapUserError(err, "failed to load config", "Run 'grid config path' to locate the file and fix or remove it")
				}
				cfg = loadedCfg
			} else {
				cfg = &config.Config{}
			}

			logFormatStr := logFormatFlag
			if !cmd.Flags().Changed("log-format") && cfg.LogFormat != "" {
				logFormatStr = cfg.LogFormat
			}
			logFormat, err := logging.ParseFormat(logFormatStr)
			if err != nil {
				return clierrors.NewUserError(err.Error(), "Use --log-format text or --log-format json")
			}
			logging.SetupFormat(debugMode, app.Stderr, logFormat)

			opts, err := parseGlobalOptions(cmd, cfg, app.Stdout, globalFlagInput{
				queryFlag:     queryFlag,
				jqFlag:        jqFlag,
				fieldsFlag:    fieldsFlag,
				jsonPathFlag:  jsonPathFlag,
				colorFlag:     colorFlag,
				quietFlag:     quietFlag,
				failEmptyFlag: failEmptyFlag,
				compactJSON:   compactJSON,
				errorFormat:   errorFormat,
			})
			if err != nil {
				return err
			}
			if err := validateGlobalOptions(&opts); err != nil {
				return err
			}

			// Inject parsed global options into context so subcommands can access them.
			ctx := buildRootContext(cmd.Context(), app, cfg, debugMode, opts)
			if opts.queryNormalized && !opts.quiet {
				ui.FromContext(ctx).Warning("Normalized --query by removing \\! (shell escape); use ! without backslash.")
			}
			cmd.SetContext(ctx)
			return nil
		},
	}

	// Set version info
	rootCmd.Version = app.Version
	rootCmd.SetVersionTemplate(fmt.Sprintf("grid %s (commit: %s, built: %s)\n", app.Version, app.Commit, app.BuildTime))

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return clierrors.WrapUserError(err, "invalid flag", fmt.Sprintf("Run '%s --help' for usage", cmd.CommandPath()))
	})

	// Global flags
	rootCmd.PersistentFlags().StringP("output", "o", "text", "Output format: text|table|grid|csv|json|ndjson|jsonl|yaml")
	// Alias --format to --output
	rootCmd.PersistentFlags().String("format", "text", "Alias for --output")
	_ = rootCmd.PersistentFlags().MarkHidden("format")
	// Shorthand: --json is equivalent to -o json
	rootCmd.PersistentFlags().BoolP("json", "j", false, "Shorthand for --output json")
	rootCmd.PersistentFlags().StringVarP(&queryFlag, "query", "q", "", "JQ expression to filter JSON output")
	// Alias --jq to --query for discoverability
	rootCmd.PersistentFlags().StringVar(&jqFlag, "jq", "", "Alias for --query")
	_ = rootCmd.PersistentFlags().MarkHidden("jq")
	rootCmd.PersistentFlags().StringVar(&queryFile, "query-file", "", "Read JQ expression from file ('-' for stdin)")
	rootCmd.PersistentFlags().StringVar(&fieldsFlag, "fields", "", "Project fields (comma-separated paths, use key=path to rename)")
	rootCmd.PersistentFlags().StringVar(&jsonPathFlag, "jsonpath", "", "Extract a value using JSONPath (e.g. $.rows[0].cells[1].display)")
	rootCmd.PersistentFlags().StringVar(&colorFlag, "color", "", "Color mode: auto|always|never")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug output (logs load/build/render stages)")
	rootCmd.PersistentFlags().StringVar(&logFormatFlag, "log-format", "text", "Debug log format (text|json)")
	rootCmd.PersistentFlags().StringVar(&errorFormat, "error-format", "auto", "Error output format (auto|text|json|yaml)")
	rootCmd.PersistentFlags().BoolVar(&quietFlag, "quiet", false, "Suppress non-essential output")
	rootCmd.PersistentFlags().BoolVar(&failEmptyFlag, "fail-empty", false, "Exit with error when the table has no rows")
	rootCmd.PersistentFlags().BoolVar(&compactJSON, "compact-json", false, "Output compact JSON (single-line) instead of pretty JSON")

	// Flag aliases
	flagAlias(rootCmd.PersistentFlags(), "output", "out")
	flagAlias(rootCmd.PersistentFlags(), "fail-empty", "fe")
	flagAlias(rootCmd.PersistentFlags(), "query-file", "qf")
	flagAlias(rootCmd.PersistentFlags(), "compact-json", "cj")

	// Register subcommands
	rootCmd.AddCommand(newShowCmd())
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newSchemaCmd())
	rootCmd.AddCommand(newValidateCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newMCPCmd(app))
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}

func isConfigCommand(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Name() == "config" {
			return true
		}
	}
	return false
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
