package extract

import (
	"regexp"
	"strings"
)

func indexOf(s, sub string) int {
	if sub == "" {
		return -1
	}
	return strings.Index(s, sub)
}

func trimSpace(s string) string { return strings.TrimSpace(s) }

func ptr(s string) *string { return &s }

// firstGroup tries patterns in order and returns the first non-blank capture of group 1.
func firstGroup(text string, patterns []*regexp.Regexp) *string {
	for _, re := range patterns {
		m := re.FindStringSubmatch(text)
		if m == nil || len(m) < 2 {
			continue
		}
		if v := strings.TrimSpace(m[1]); v != "" {
			return ptr(v)
		}
	}
	return nil
}

// FirstMatch is firstGroup for callers outside the package (the specialized parsers).
func FirstMatch(text string, patterns []*regexp.Regexp) *string {
	return firstGroup(text, patterns)
}

// MustCompileAll compiles an ordered pattern list.
func MustCompileAll(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(exprs))
	for i, e := range exprs {
		out[i] = regexp.MustCompile(e)
	}
	return out
}
