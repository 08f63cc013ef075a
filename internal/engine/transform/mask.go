package transform

import (
	"regexp"
	"strings"
)

// mask returns a copy of src in which the contents of string literals,
// template literals and comments are blanked out. Offsets are preserved, so
// matches found in the mask can be applied to src.
func mask(src string) string {
	out := []byte(src)
	blank := func(from, to int) {
		for i := from; i < to; i++ {
			if out[i] != '\n' {
				out[i] = ' '
			}
		}
	}

	for i := 0; i < len(src); {
		c := src[i]
		switch {
		case c == '\'' || c == '"' || c == '`':
			end := skipString(src, i)
			// Quotes stay visible so statement shapes remain recognizable.
			blank(i+1, max(i+1, end-1))
			i = end
		case c == '/' && i+1 < len(src) && src[i+1] == '/':
			end := strings.IndexByte(src[i:], '\n')
			if end < 0 {
				end = len(src)
			} else {
				end += i
			}
			blank(i, end)
			i = end
		case c == '/' && i+1 < len(src) && src[i+1] == '*':
			end := strings.Index(src[i+2:], "*/")
			if end < 0 {
				end = len(src)
			} else {
				end += i + 4
			}
			blank(i, end)
			i = end
		default:
			i++
		}
	}

	return string(out)
}

// skipString returns the offset just past the literal opened at src[start].
// Quote and double-quote literals end at a line break if unterminated.
func skipString(src string, start int) int {
	quote := src[start]
	for i := start + 1; i < len(src); i++ {
		switch src[i] {
		case '\\':
			i++
		case quote:
			return i + 1
		case '\n':
			if quote != '`' {
				return i
			}
		}
	}
	return len(src)
}

// replaceCode rewrites every match of re found outside literals and comments.
// The replacement is computed from the original text.
func replaceCode(src string, re *regexp.Regexp, fn func(src string, m []int) string) string {
	masked := mask(src)
	matches := re.FindAllStringSubmatchIndex(masked, -1)
	if len(matches) == 0 {
		return src
	}

	var b strings.Builder
	b.Grow(len(src))
	last := 0
	for _, m := range matches {
		b.WriteString(src[last:m[0]])
		b.WriteString(fn(src, m))
		last = m[1]
	}
	b.WriteString(src[last:])
	return b.String()
}

// removeCode deletes every match of re found outside literals and comments.
func removeCode(src string, re *regexp.Regexp) string {
	return replaceCode(src, re, func(string, []int) string { return "" })
}

// expandCode rewrites matches using a regexp template such as "${1}".
func expandCode(src string, re *regexp.Regexp, template string) string {
	return replaceCode(src, re, func(src string, m []int) string {
		return string(re.ExpandString(nil, template, src, m))
	})
}

// group returns submatch n of m in src, or "" when it did not participate.
func group(src string, m []int, n int) string {
	if m[2*n] < 0 {
		return ""
	}
	return src[m[2*n]:m[2*n+1]]
}
