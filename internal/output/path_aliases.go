package output

import "strings"

// pathAliasSpecs lists shorthand keys accepted in --query/--jq, --fields and
// --jsonpath paths for document and record keys.
var pathAliasSpecs = []struct {
	Canonical string
	Aliases   []string
}{
	{Canonical: "header_groups", Aliases: []string{"hg"}},
	{Canonical: "headers", Aliases: []string{"hs"}},
	{Canonical: "header", Aliases: []string{"hd"}},
	{Canonical: "rows", Aliases: []string{"rs"}},
	{Canonical: "cells", Aliases: []string{"cs"}},
	{Canonical: "column_id", Aliases: []string{"cid", "col"}},
	{Canonical: "col_span", Aliases: []string{"span"}},
	{Canonical: "placeholder", Aliases: []string{"ph"}},
	{Canonical: "display", Aliases: []string{"disp", "d"}},
	{Canonical: "breadcrumb", Aliases: []string{"bc"}},
	{Canonical: "row_count", Aliases: []string{"rc"}},
	{Canonical: "column_count", Aliases: []string{"cc"}},
	{Canonical: "generated_at", Aliases: []string{"ga"}},
	{Canonical: "_meta", Aliases: []string{"meta"}},
	{Canonical: "submitted", Aliases: []string{"sub"}},
	{Canonical: "submitter", Aliases: []string{"by"}},
	{Canonical: "assigned", Aliases: []string{"asg"}},
	{Canonical: "priority", Aliases: []string{"pri"}},
	{Canonical: "status", Aliases: []string{"st"}},
	{Canonical: "title", Aliases: []string{"ti"}},
}

var pathAliasLookup = buildPathAliasLookup()

func buildPathAliasLookup() map[string]string {
	out := make(map[string]string)
	for _, spec := range pathAliasSpecs {
		for _, alias := range spec.Aliases {
			if existing, ok := out[alias]; ok && existing != spec.Canonical {
				panic("duplicate path alias: " + alias)
			}
			out[alias] = spec.Canonical
		}
	}
	return out
}

// canonicalizeAliasToken maps a lowercase alias to its canonical key. Tokens
// with capitals are column IDs or literal keys and pass through.
func canonicalizeAliasToken(token string) string {
	if token != strings.ToLower(token) {
		return token
	}
	if canonical, ok := pathAliasLookup[token]; ok {
		return canonical
	}
	return token
}
