package dataset

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/salmonumbrella/grid-cli/internal/table"
)

const (
	// MaxLineSize is the longest NDJSON record line accepted (1MB).
	MaxLineSize = 1024 * 1024
	// MaxRecords is the maximum number of NDJSON records in one dataset.
	MaxRecords = 10000
)

// decodeNDJSON reads one JSON object per line. Blank lines are skipped and
// record indexes count only non-blank lines.
func decodeNDJSON(r io.Reader) (table.Dataset, error) {
	ds := table.Dataset{}
	seen := map[string]bool{}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), MaxLineSize)

	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		if !strings.HasPrefix(text, "{") {
			return table.Dataset{}, fmt.Errorf("invalid ndjson on line %d: expected an object", line)
		}

		// JSON is a subset of YAML; decoding through a node keeps key order.
		var doc yaml.Node
		if err := yaml.Unmarshal([]byte(text), &doc); err != nil {
			return table.Dataset{}, fmt.Errorf("invalid ndjson on line %d: %w", line, err)
		}
		item := &doc
		if item.Kind == yaml.DocumentNode && len(item.Content) > 0 {
			item = item.Content[0]
		}
		if err := appendRecord(&ds, seen, len(ds.Rows), item); err != nil {
			return table.Dataset{}, err
		}
		if len(ds.Rows) > MaxRecords {
			return table.Dataset{}, fmt.Errorf("dataset exceeds maximum record count of %d", MaxRecords)
		}
	}
	if err := scanner.Err(); err != nil {
		return table.Dataset{}, fmt.Errorf("invalid ndjson: %w", err)
	}
	return ds, nil
}
