package output

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/PaesslerAG/jsonpath"

	clierrors "github.com/salmonumbrella/grid-cli/internal/errors"
)

const jsonPathExample = "Example: --jsonpath '$.rows[0].cells[1].display'"

// applyOutputTransforms applies --fields then --jsonpath to data.
func applyOutputTransforms(ctx context.Context, data interface{}, format Format) (interface{}, error) {
	fieldsRaw := strings.TrimSpace(FieldsFromContext(ctx))
	jsonPathRaw := strings.TrimSpace(JSONPathFromContext(ctx))
	if fieldsRaw == "" && jsonPathRaw == "" {
		return data, nil
	}

	if format == FormatCSV && jsonPathRaw != "" {
		return nil, clierrors.NewUserError(
			"--jsonpath is not supported with csv output",
			"Use --output json|ndjson|yaml|text instead",
		)
	}

	var err error
	if fieldsRaw != "" {
		if data, err = projectFields(data, fieldsRaw); err != nil {
			return nil, err
		}
	}
	if jsonPathRaw != "" {
		if data, err = applyJSONPath(data, jsonPathRaw); err != nil {
			return nil, err
		}
	}
	return data, nil
}

func applyJSONPath(data interface{}, raw string) (interface{}, error) {
	path := normalizeJSONPath(raw)
	if path == "" {
		return nil, clierrors.NewUserError("invalid --jsonpath value", jsonPathExample)
	}
	normalized, err := normalizeToInterface(data)
	if err != nil {
		return nil, err
	}
	value, err := jsonpath.Get(path, normalized)
	if err != nil {
		return nil, clierrors.WrapUserError(err, "invalid --jsonpath value", jsonPathExample)
	}
	return value, nil
}

// normalizeJSONPath roots a relative path at "$" and expands aliases.
func normalizeJSONPath(path string) string {
	path = strings.TrimSpace(path)
	switch {
	case path == "":
		return ""
	case strings.HasPrefix(path, "$"), strings.HasPrefix(path, "@"):
	case strings.HasPrefix(path, "."), strings.HasPrefix(path, "["):
		path = "$" + path
	default:
		path = "$." + path
	}
	expanded, _ := expandDotPathAliases(path)
	return expanded
}

// normalizeToInterface round-trips typed values through JSON so queries and
// projections see plain maps and slices.
func normalizeToInterface(data interface{}) (interface{}, error) {
	switch data.(type) {
	case map[string]interface{}, []interface{}:
		return data, nil
	}
	buf, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to encode data: %w", err)
	}
	var out interface{}
	if err := json.Unmarshal(buf, &out); err != nil {
		return nil, fmt.Errorf("failed to decode data: %w", err)
	}
	return out, nil
}

// isEmptyResult reports whether data holds no rows, for --fail-empty.
func isEmptyResult(data interface{}) bool {
	switch v := data.(type) {
	case nil:
		return true
	case Table:
		return len(v.Rows) == 0
	case Document:
		return len(v.Rows) == 0
	case []map[string]any:
		return len(v) == 0
	case []interface{}:
		return len(v) == 0
	case map[string]interface{}:
		if len(v) == 0 {
			return true
		}
		rows, ok := v["rows"].([]interface{})
		return ok && len(rows) == 0
	}
	return false
}
