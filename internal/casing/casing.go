// Package casing derives the alternative spellings of an error kind name that
// are tried as discriminant values.
package casing

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Words splits a name written in camelCase, PascalCase, snake_case,
// kebab-case, or with spaces. Acronyms stay together: "userID" -> [user ID].
func Words(s string) []string {
	var words []string
	var cur []rune
	flush := func() {
		if len(cur) > 0 {
			words = append(words, string(cur))
			cur = cur[:0]
		}
	}
	rs := []rune(s)
	for i, r := range rs {
		switch {
		case r == '_' || r == '-' || r == '.' || unicode.IsSpace(r):
			flush()
			continue
		case unicode.IsUpper(r) && len(cur) > 0:
			prev := rs[i-1]
			nextLower := i+1 < len(rs) && unicode.IsLower(rs[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				flush()
			}
		}
		cur = append(cur, r)
	}
	flush()
	return words
}

// Pascal joins the words of s title-cased: "not_found" -> "NotFound".
func Pascal(s string) string {
	// Casers are stateful and must not be shared between goroutines.
	title := cases.Title(language.Und)
	var b strings.Builder
	for _, w := range Words(s) {
		b.WriteString(title.String(w))
	}
	return b.String()
}

// UpperSnake joins the words of s upper-cased with underscores:
// "notFound" -> "NOT_FOUND".
func UpperSnake(s string) string {
	upper := cases.Upper(language.Und)
	ws := Words(s)
	for i, w := range ws {
		ws[i] = upper.String(w)
	}
	return strings.Join(ws, "_")
}

// Discriminants returns the candidate discriminant values for an error kind
// name in the order they are tried: the name verbatim, PascalCase with an
// "Error" suffix, and UPPER_SNAKE with an "_ERROR" suffix. The suffix is not
// doubled when the name already ends in "error". Duplicates are dropped.
func Discriminants(name string) []string {
	pascal, snake := Pascal(name), UpperSnake(name)
	ws := Words(name)
	if len(ws) == 0 || !strings.EqualFold(ws[len(ws)-1], "error") {
		pascal += "Error"
		snake += "_ERROR"
	}
	out := make([]string, 0, 3)
	for _, c := range []string{name, pascal, snake} {
		if c == "" || contains(out, c) {
			continue
		}
		out = append(out, c)
	}
	return out
}

func contains(ss []string, s string) bool {
	for _, x := range ss {
		if x == s {
			return true
		}
	}
	return false
}
