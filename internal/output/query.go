package output

import (
	"regexp"
	"strings"
)

// NormalizeQuery cleans up a jq filter typed at a shell. A "\!" outside
// string literals becomes "!" and shorthand dot-path aliases (.rs, .cs, .d)
// are expanded. The bool reports whether a "\!" was rewritten so the caller
// can warn about shell escaping.
func NormalizeQuery(query string) (string, bool) {
	unescaped := rewriteCode(query, func(code string) string {
		return strings.ReplaceAll(code, `\!`, "!")
	})
	expanded, _ := expandDotPathAliases(unescaped)
	return expanded, unescaped != query
}

var dotIdent = regexp.MustCompile(`\.[A-Za-z_][A-Za-z0-9_]*`)

// expandDotPathAliases rewrites lowercase dot-path segments to their
// canonical names: ".rs[0].cs[2].d" becomes ".rows[0].cells[2].display".
func expandDotPathAliases(expr string) (string, bool) {
	out := rewriteCode(expr, func(code string) string {
		return dotIdent.ReplaceAllStringFunc(code, func(m string) string {
			return "." + canonicalizeAliasToken(m[1:])
		})
	})
	return out, out != expr
}

// rewriteCode applies fn to the runs of expr outside string literals and
// comments. Quoted strings (double or single) and "#" comments are copied
// verbatim.
func rewriteCode(expr string, fn func(code string) string) string {
	var b strings.Builder
	b.Grow(len(expr))

	start := 0
	for i := 0; i < len(expr); i++ {
		var end int
		switch expr[i] {
		case '"', '\'':
			end = closingQuote(expr, i)
		case '#':
			end = len(expr)
			if nl := strings.IndexByte(expr[i:], '\n'); nl >= 0 {
				end = i + nl + 1
			}
		default:
			continue
		}
		b.WriteString(fn(expr[start:i]))
		b.WriteString(expr[i:end])
		start = end
		i = end - 1
	}
	b.WriteString(fn(expr[start:]))
	return b.String()
}

// closingQuote returns the index just past the quote closing the literal
// opened at expr[open], or len(expr) when the literal is unterminated.
func closingQuote(expr string, open int) int {
	quote := expr[open]
	for i := open + 1; i < len(expr); i++ {
		switch expr[i] {
		case '\\':
			i++
		case quote:
			return i + 1
		}
	}
	return len(expr)
}
