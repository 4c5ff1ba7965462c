package jobs

import (
	"io"

	"github.com/salmonumbrella/grid-cli/internal/dataset"
	"github.com/salmonumbrella/grid-cli/internal/table"
)

// Open loads the dataset at path, or the bundled sample when path is empty.
// An empty kind is inferred from the path.
func Open(path string, kind dataset.Kind, stdin io.Reader) (table.Dataset, error) {
	if path == "" {
		return Sample(), nil
	}
	return dataset.Load(path, kind, stdin)
}

// PaddingFor returns the blank rows appended when none are requested: the
// sample keeps its empty sheet rows, loaded files get none.
func PaddingFor(path string) int {
	if path == "" {
		return DefaultPadding
	}
	return 0
}

// Options select the schema variant and the hidden columns for a build.
type Options struct {
	Grouped bool
	Hide    []string
}

// SchemaFor returns the schema described by opts.
func SchemaFor(opts Options) (*table.Schema, error) {
	s := Schema()
	if opts.Grouped {
		s = GroupedSchema()
	}
	if len(opts.Hide) == 0 {
		return s, nil
	}
	return s.Without(opts.Hide...)
}

// Build builds ds against the schema described by opts.
func Build(ds table.Dataset, opts Options) (*table.Model, error) {
	s, err := SchemaFor(opts)
	if err != nil {
		return nil, err
	}
	return table.Build(s, ds)
}

var formatterNames = map[string]string{
	FieldStatus:   "status badge",
	FieldURL:      "link",
	FieldPriority: "priority badge",
}

// Describe lists the columns of s, naming the job formatters.
func Describe(s *table.Schema) []table.ColumnInfo {
	infos := s.Describe()
	for i := range infos {
		if name, ok := formatterNames[infos[i].ID]; ok {
			infos[i].Formatter = name
		}
	}
	return infos
}
