package output

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	clierrors "github.com/salmonumbrella/grid-cli/internal/errors"
)

// field is one --fields entry: the output key and the path it reads.
type field struct {
	name string
	path fieldPath
}

// fieldPath addresses a value in decoded JSON. Each step is a map key
// (string) or a list index (int).
type fieldPath []any

// ValidateFields validates --fields syntax.
func ValidateFields(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	_, err := parseFields(raw)
	return err
}

// fieldNames returns the output keys of a --fields value in order, or nil
// when it is empty or invalid.
func fieldNames(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	fields, err := parseFields(raw)
	if err != nil {
		return nil
	}
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.name
	}
	return names
}

// projectFields keeps only the requested fields of each record (or of the
// single object when data is not a list). Missing paths yield null.
func projectFields(data any, raw string) (any, error) {
	fields, err := parseFields(raw)
	if err != nil {
		return nil, clierrors.WrapUserError(err, "invalid --fields value", "Example: --fields job,owner=assigned")
	}

	normalized, err := normalizeToInterface(data)
	if err != nil {
		return nil, err
	}

	pick := func(item any) map[string]any {
		out := make(map[string]any, len(fields))
		for _, f := range fields {
			out[f.name] = f.path.lookup(item)
		}
		return out
	}

	list, ok := normalized.([]any)
	if !ok {
		return pick(normalized), nil
	}
	out := make([]any, len(list))
	for i, item := range list {
		out[i] = pick(item)
	}
	return out, nil
}

// parseFields parses "a,b.c,name=path[0]" entries. Without "=" the path
// doubles as the output key.
func parseFields(raw string) ([]field, error) {
	var fields []field
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, expr, renamed := strings.Cut(part, "=")
		if !renamed {
			expr = part
		}
		name, expr = strings.TrimSpace(name), strings.TrimSpace(expr)
		if name == "" || expr == "" {
			return nil, fmt.Errorf("invalid field spec %q", part)
		}
		path, err := parseFieldPath(expr)
		if err != nil {
			return nil, fmt.Errorf("invalid field path %q: %w", expr, err)
		}
		fields = append(fields, field{name: name, path: path})
	}
	if len(fields) == 0 {
		return nil, errors.New("no fields provided")
	}
	return fields, nil
}

// parseFieldPath accepts dot segments, [n] indexes and ["quoted"] keys.
// Numeric dot segments (cells.0) are indexes too. Aliases apply to dot
// segments only; quoted keys stay literal.
func parseFieldPath(expr string) (fieldPath, error) {
	var path fieldPath
	rest := expr
	for rest != "" {
		switch rest[0] {
		case '.':
			rest = rest[1:]
		case '[':
			end := strings.IndexByte(rest, ']')
			if end < 0 {
				return nil, errors.New("missing closing ]")
			}
			step, err := bracketStep(strings.TrimSpace(rest[1:end]))
			if err != nil {
				return nil, err
			}
			path = append(path, step)
			rest = rest[end+1:]
		default:
			end := strings.IndexAny(rest, ".[")
			if end < 0 {
				end = len(rest)
			}
			seg := strings.TrimSpace(rest[:end])
			rest = rest[end:]
			if seg == "" {
				return nil, errors.New("empty segment")
			}
			if idx, err := strconv.Atoi(seg); err == nil {
				path = append(path, idx)
			} else {
				path = append(path, canonicalizeAliasToken(seg))
			}
		}
	}
	return path, nil
}

func bracketStep(content string) (any, error) {
	if content == "" {
		return nil, errors.New("empty bracket")
	}
	if content[0] == '"' || content[0] == '\'' {
		return unquoteKey(content)
	}
	idx, err := strconv.Atoi(content)
	if err != nil {
		return nil, fmt.Errorf("invalid index %q", content)
	}
	return idx, nil
}

func unquoteKey(s string) (string, error) {
	if len(s) < 2 || s[len(s)-1] != s[0] {
		return "", errors.New("unterminated quoted segment")
	}
	body := s[1 : len(s)-1]
	var b strings.Builder
	b.Grow(len(body))
	for i := 0; i < len(body); i++ {
		if body[i] == '\\' {
			i++
			if i == len(body) {
				return "", errors.New("unterminated escape")
			}
		}
		b.WriteByte(body[i])
	}
	return b.String(), nil
}

func (p fieldPath) lookup(v any) any {
	for _, step := range p {
		switch s := step.(type) {
		case string:
			m, ok := v.(map[string]any)
			if !ok {
				return nil
			}
			v = m[s]
		case int:
			list, ok := v.([]any)
			if !ok || s < 0 || s >= len(list) {
				return nil
			}
			v = list[s]
		}
	}
	return v
}
