package engine

import (
	"strings"
	"unicode"
)

const quoteChar = '"'

// Canonicalizer turns formula text into the form the translator expects: upper case
// everywhere except inside string literals, where `""` stays an escaped quote.
type Canonicalizer struct{}

func NewCanonicalizer() *Canonicalizer {
	return &Canonicalizer{}
}

func (c *Canonicalizer) Canonicalize(s string) string {
	var builder strings.Builder
	builder.Grow(len(s))

	inQuotes := false
	for _, r := range s {
		if r == quoteChar {
			inQuotes = !inQuotes
			builder.WriteRune(r)
			continue
		}

		if inQuotes {
			builder.WriteRune(r)
		} else {
			builder.WriteRune(unicode.ToUpper(r))
		}
	}

	return builder.String()
}

// forEachUnquoted calls fn with every maximal run of text lying outside string literals
func forEachUnquoted(s string, fn func(part string)) {
	inQuotes := false
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] != quoteChar {
			continue
		}
		if !inQuotes && i > start {
			fn(s[start:i])
		}
		inQuotes = !inQuotes
		start = i + 1
	}
	if !inQuotes && start < len(s) {
		fn(s[start:])
	}
}
