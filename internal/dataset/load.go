package dataset

import (
	"io"
	"strings"

	"github.com/salmonumbrella/grid-cli/internal/cmdutil"
	"github.com/salmonumbrella/grid-cli/internal/table"
)

// Load reads a dataset from path ("-" for stdin). An empty kind is inferred
// from the file extension.
func Load(path string, kind Kind, stdin io.Reader) (table.Dataset, error) {
	if kind == "" {
		kind = KindFromPath(path)
	}
	raw, err := cmdutil.ReadInput(path, stdin)
	if err != nil {
		return table.Dataset{}, err
	}
	return Decode(strings.NewReader(raw), kind)
}
