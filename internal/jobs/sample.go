package jobs

import (
	"bytes"
	_ "embed"
	"fmt"

	"github.com/salmonumbrella/grid-cli/internal/dataset"
	"github.com/salmonumbrella/grid-cli/internal/table"
)

// DefaultPadding is the number of blank rows appended to the sample sheet.
const DefaultPadding = 16

//go:embed sample.yaml
var sampleYAML []byte

// Sample returns the bundled job requests. Each call decodes a fresh copy.
func Sample() table.Dataset {
	ds, err := dataset.Decode(bytes.NewReader(sampleYAML), dataset.KindYAML)
	if err != nil {
		panic(fmt.Sprintf("jobs: embedded sample is invalid: %v", err))
	}
	return ds
}

// SampleSheet returns the sample job requests followed by padding blank rows.
func SampleSheet(padding int) table.Dataset {
	return dataset.Pad(Sample(), padding)
}
