package output

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPathAliasesNeverShadowCanonicalKeys(t *testing.T) {
	for _, spec := range pathAliasSpecs {
		if target, ok := pathAliasLookup[spec.Canonical]; ok {
			t.Errorf("canonical key %q is also an alias for %q", spec.Canonical, target)
		}
	}
}

func TestParseFieldPath(t *testing.T) {
	tests := []struct {
		expr string
		want fieldPath
	}{
		{expr: "rs[0].cs.1.d", want: fieldPath{"rows", 0, "cells", 1, "display"}},
		{expr: `["Odd key"].st`, want: fieldPath{"Odd key", "status"}},
		{expr: `['a\'b']`, want: fieldPath{"a'b"}},
		{expr: "Rs", want: fieldPath{"Rs"}},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := parseFieldPath(tt.expr)
			if err != nil {
				t.Fatalf("parseFieldPath(%q) error = %v", tt.expr, err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("path mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFieldPathLookup(t *testing.T) {
	doc := map[string]any{
		"rows": []any{
			map[string]any{"cells": []any{map[string]any{"display": "1"}}},
		},
	}
	if got := (fieldPath{"rows", 0, "cells", 0, "display"}).lookup(doc); got != "1" {
		t.Errorf("lookup = %v, want 1", got)
	}
	for _, p := range []fieldPath{{"rows", 3}, {"rows", "x"}, {"missing", "deeper"}} {
		if got := p.lookup(doc); got != nil {
			t.Errorf("lookup(%v) = %v, want nil", p, got)
		}
	}
}
