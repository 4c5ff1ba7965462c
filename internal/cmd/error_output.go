package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	clierrors "github.com/salmonumbrella/grid-cli/internal/errors"
	"github.com/salmonumbrella/grid-cli/internal/output"
	"github.com/salmonumbrella/grid-cli/internal/table"
)

func validateErrorFormat(format string) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "auto", "text", "json", "yaml":
		return nil
	default:
		return clierrors.NewUserError(
			fmt.Sprintf("invalid --error-format %q", format),
			"Use one of: auto, text, json, yaml",
		)
	}
}

func effectiveErrorFormat(ctx context.Context) string {
	format := strings.ToLower(strings.TrimSpace(ErrorFormatFromContext(ctx)))
	if format == "" || format == "auto" {
		switch output.FormatFromContext(ctx) {
		case output.FormatJSON, output.FormatNDJSON:
			return "json"
		case output.FormatYAML:
			return "yaml"
		default:
			return "text"
		}
	}
	return format
}

func printCommandError(ctx context.Context, err error) {
	if err == nil {
		return
	}

	switch effectiveErrorFormat(ctx) {
	case "json":
		enc := json.NewEncoder(stderrFromContext(ctx))
		enc.SetEscapeHTML(false)
		_ = enc.Encode(buildErrorEnvelope(err))
		return
	case "yaml":
		enc := yaml.NewEncoder(stderrFromContext(ctx))
		enc.SetIndent(2)
		_ = enc.Encode(buildErrorEnvelope(err))
		_ = enc.Close()
		return
	}

	_, _ = fmt.Fprintln(stderrFromContext(ctx), err)
	if suggestion := clierrors.UserSuggestion(err); suggestion != "" {
		_, _ = fmt.Fprintf(stderrFromContext(ctx), "Hint: %s\n", suggestion)
	}
}

func buildErrorEnvelope(err error) map[string]interface{} {
	errMap := map[string]interface{}{
		"message": err.Error(),
	}

	category := "system"
	if ExitCode(err) == ExitUser {
		category = "user"
	}
	errMap["category"] = category

	if suggestion := clierrors.UserSuggestion(err); suggestion != "" {
		errMap["suggestion"] = suggestion
	}

	var schemaErr *table.SchemaError
	if errors.As(err, &schemaErr) {
		errMap["type"] = "schema"
		if schemaErr.ColumnID != "" {
			errMap["column"] = schemaErr.ColumnID
		}
		if schemaErr.Position >= 0 {
			errMap["position"] = schemaErr.Position
		}
	}

	var accErr *table.AccessorError
	if errors.As(err, &accErr) {
		errMap["type"] = "accessor"
		errMap["column"] = accErr.ColumnID
		errMap["row"] = accErr.RowIndex
	}

	var fmtErr *table.FormatterError
	if errors.As(err, &fmtErr) {
		errMap["type"] = "formatter"
		errMap["column"] = fmtErr.ColumnID
		errMap["row"] = fmtErr.RowIndex
	}

	var validationErr *clierrors.ValidationError
	if errors.As(err, &validationErr) {
		errMap["type"] = "validation"
		errMap["field"] = validationErr.Field
		if validationErr.Row >= 0 {
			errMap["row"] = validationErr.Row
		}
	}

	return map[string]interface{}{"error": errMap}
}
