package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/salmonumbrella/grid-cli/internal/cmdutil"
	"github.com/salmonumbrella/grid-cli/internal/config"
	"github.com/salmonumbrella/grid-cli/internal/debug"
	clierrors "github.com/salmonumbrella/grid-cli/internal/errors"
	"github.com/salmonumbrella/grid-cli/internal/iocontext"
	"github.com/salmonumbrella/grid-cli/internal/output"
	"github.com/salmonumbrella/grid-cli/internal/ui"
)

// EnvOutput overrides the default output format.
const EnvOutput = "GRID_OUTPUT"

type globalFlagInput struct {
	queryFlag     string
	jqFlag        string
	fieldsFlag    string
	jsonPathFlag  string
	colorFlag     string
	quietFlag     bool
	failEmptyFlag bool
	compactJSON   bool
	errorFormat   string
}

type globalOptions struct {
	format          output.Format
	color           ui.ColorMode
	query           string
	queryNormalized bool
	fieldsRaw       string
	jsonPathRaw     string
	quiet           bool
	failEmpty       bool
	compactJSON     bool
	errorFormat     string

	queryFlagSet     bool
	jqFlagSet        bool
	queryFileFlagSet bool
	outputFlagSet    bool
	formatFlagSet    bool
}

func parseGlobalOptions(cmd *cobra.Command, cfg *config.Config, stdout io.Writer, flags globalFlagInput) (globalOptions, error) {
	opts := globalOptions{
		quiet:       flags.quietFlag,
		failEmpty:   flags.failEmptyFlag,
		compactJSON: flags.compactJSON,
		errorFormat: flags.errorFormat,

		queryFlagSet:  strings.TrimSpace(flags.queryFlag) != "",
		jqFlagSet:     strings.TrimSpace(flags.jqFlag) != "",
		outputFlagSet: commandFlagChanged(cmd, "output") || commandFlagChanged(cmd, "out"),
		formatFlagSet: commandFlagChanged(cmd, "format"),
	}

	formatStr, _ := cmd.Flags().GetString("output")
	jsonFlag, _ := cmd.Flags().GetBool("json")
	if jsonFlag {
		formatStr = "json"
	} else if opts.formatFlagSet {
		formatStr, _ = cmd.Flags().GetString("format")
	} else if !opts.outputFlagSet && strings.TrimSpace(os.Getenv(EnvOutput)) != "" {
		formatStr = os.Getenv(EnvOutput)
	} else if !opts.outputFlagSet && cfg.GetOutput() != "" {
		formatStr = cfg.GetOutput()
	} else if !opts.outputFlagSet && !isTerminal(stdout) {
		formatStr = string(output.FormatJSON)
	}

	format, err := output.ParseFormat(formatStr)
	if err != nil {
		return globalOptions{}, clierrors.NewUserError(err.Error(), "Run 'grid --help' to list output formats")
	}
	opts.format = format

	colorStr := flags.colorFlag
	if !commandFlagChanged(cmd, "color") {
		colorStr = cfg.GetColor()
	}
	color, err := ui.ParseColorMode(colorStr)
	if err != nil {
		return globalOptions{}, clierrors.NewUserError(err.Error(), "Use --color auto, always or never")
	}
	opts.color = color

	if !cmd.Flags().Changed("quiet") && !isTerminal(stdout) && opts.format.IsStructured() {
		opts.quiet = true
	}

	opts.query = flags.queryFlag
	if opts.query == "" {
		opts.query = flags.jqFlag
	}

	queryFileFlag, _ := cmd.Flags().GetString("query-file")
	opts.queryFileFlagSet = strings.TrimSpace(queryFileFlag) != ""
	if opts.queryFileFlagSet {
		loaded, err := cmdutil.ReadInput(queryFileFlag, stdinFromContext(cmd.Context()))
		if err != nil {
			return globalOptions{}, err
		}
		opts.query = loaded
	}

	opts.query, opts.queryNormalized = output.NormalizeQuery(opts.query)

	opts.fieldsRaw = strings.TrimSpace(flags.fieldsFlag)
	opts.jsonPathRaw = strings.TrimSpace(flags.jsonPathFlag)

	return opts, nil
}

func validateGlobalOptions(opts *globalOptions) error {
	if opts.jqFlagSet && opts.queryFlagSet {
		return errOnlyOne("--query", "--jq")
	}
	if opts.queryFileFlagSet && (opts.jqFlagSet || opts.queryFlagSet) {
		return errOnlyOne("--query/--jq", "--query-file")
	}
	if opts.fieldsRaw != "" {
		if err := output.ValidateFields(opts.fieldsRaw); err != nil {
			return err
		}
	}
	if opts.query != "" && (opts.fieldsRaw != "" || opts.jsonPathRaw != "") {
		return errOnlyOne("--query/--jq/--query-file", "--fields or --jsonpath")
	}
	if opts.fieldsRaw != "" && opts.jsonPathRaw != "" {
		return errOnlyOne("--fields", "--jsonpath")
	}
	if err := validateErrorFormat(opts.errorFormat); err != nil {
		return err
	}
	return nil
}

func buildRootContext(ctx context.Context, app *App, cfg *config.Config, debugMode bool, opts globalOptions) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = iocontext.WithIO(ctx, app.Stdout, app.Stderr)
	if app.Stdin != nil {
		ctx = iocontext.WithStdin(ctx, app.Stdin)
	}
	ctx = output.WithFormat(ctx, opts.format)
	ctx = output.WithQuery(ctx, opts.query)
	ctx = debug.WithDebug(ctx, debugMode)
	ctx = WithConfig(ctx, cfg)

	ctx = output.WithQuiet(ctx, opts.quiet)
	ctx = output.WithFields(ctx, opts.fieldsRaw)
	ctx = output.WithJSONPath(ctx, opts.jsonPathRaw)
	ctx = output.WithFailEmpty(ctx, opts.failEmpty)
	ctx = output.WithCompactJSON(ctx, opts.compactJSON)
	ctx = WithErrorFormat(ctx, opts.errorFormat)
	ctx = ui.WithUI(ctx, ui.NewWithWriter(app.Stderr, opts.color))
	return ctx
}

func errOnlyOne(left, right string) error {
	return clierrors.NewUserError(fmt.Sprintf("use only one of %s or %s", left, right), "")
}

func commandFlagChanged(cmd *cobra.Command, name string) bool {
	if cmd == nil {
		return false
	}

	for current := cmd; current != nil; current = current.Parent() {
		if flag := current.Flags().Lookup(name); flag != nil && flag.Changed {
			return true
		}
		if flag := current.PersistentFlags().Lookup(name); flag != nil && flag.Changed {
			return true
		}
	}
	return false
}
