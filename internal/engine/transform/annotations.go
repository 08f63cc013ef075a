package transform

import (
	"regexp"
	"strings"
)

var (
	leftoverDeclRe   = regexp.MustCompile(`\b(?:const|let|var)\s+` + identPattern + `\s*:`)
	arrowReturnRe    = regexp.MustCompile(`^\s*:[^;{}()=?\n]*=>`)
	methodReturnRe   = regexp.MustCompile(`^\s*:[^;{}()=?\n]*\{`)
	functionReturnRe = regexp.MustCompile(`^\s*:`)
)

// Keywords that are followed by a parenthesized expression rather than a
// parameter list.
var expressionKeywords = map[string]bool{
	"if": true, "for": true, "while": true, "switch": true, "with": true,
	"return": true, "typeof": true, "await": true, "yield": true, "new": true,
	"in": true, "of": true, "void": true, "delete": true, "case": true,
}

// leftoverAnnotation returns the offset of the first type annotation left in
// the masked code, or -1. It inspects variable declarations, parameter lists
// of functions, methods, catch clauses and arrow functions, and return
// annotations.
func leftoverAnnotation(masked string) int {
	first := -1
	report := func(pos int) {
		if first < 0 || pos < first {
			first = pos
		}
	}

	if loc := leftoverDeclRe.FindStringIndex(masked); loc != nil {
		report(loc[0])
	}

	var stack []int
	for i := 0; i < len(masked); i++ {
		switch masked[i] {
		case '(':
			stack = append(stack, i)
		case ')':
			if len(stack) == 0 {
				continue
			}
			open := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if pos := checkParens(masked, open, i); pos >= 0 {
				report(pos)
			}
		}
	}

	return first
}

// checkParens inspects the parenthesized group masked[open:close+1].
func checkParens(masked string, open, closing int) int {
	word, wordStart := wordBefore(masked, open)
	rest := masked[closing+1:]
	after := strings.TrimLeft(rest, " \t\r\n")

	var params, function bool
	switch {
	case word == "function" || precedingWord(masked, wordStart) == "function":
		params, function = true, true
	case strings.HasPrefix(after, "=>"):
		params = true
	case word != "" && !expressionKeywords[word] && declarationPosition(masked, wordStart):
		params = strings.HasPrefix(after, "{") || methodReturnRe.MatchString(rest)
	}

	if params {
		if pos := annotatedParam(masked, open+1, closing); pos >= 0 {
			return pos
		}
	}

	switch {
	case function && functionReturnRe.MatchString(rest):
		return closing + 1
	case params && word != "" && methodReturnRe.MatchString(rest):
		return closing + 1
	case !function && (word == "" || word == "async") && prevChar(masked, open) != '?' && arrowReturnRe.MatchString(rest):
		return closing + 1
	}
	return -1
}

// annotatedParam returns the offset of a ':' that annotates one of the
// parameters in masked[from:to], or -1. Default values are not inspected.
func annotatedParam(masked string, from, to int) int {
	depth := 0
	inDefault := false
	for i := from; i < to; i++ {
		switch masked[i] {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case ',':
			if depth == 0 {
				inDefault = false
			}
		case '=':
			if depth == 0 {
				inDefault = true
			}
		case ':':
			if depth == 0 && !inDefault {
				return i
			}
		}
	}
	return -1
}

// wordBefore returns the identifier that ends just before pos, skipping
// blanks, and its start offset.
func wordBefore(masked string, pos int) (string, int) {
	end := pos
	for end > 0 && isBlank(masked[end-1]) {
		end--
	}
	start := end
	for start > 0 && isIdentByte(masked[start-1]) {
		start--
	}
	return masked[start:end], start
}

func precedingWord(masked string, pos int) string {
	word, _ := wordBefore(masked, pos)
	return word
}

// declarationPosition reports whether the token before pos starts a statement
// or class member.
func declarationPosition(masked string, pos int) bool {
	switch prevChar(masked, pos) {
	case 0, '{', '}', ';':
		return true
	default:
		word, _ := wordBefore(masked, pos)
		return word == "async" || word == "static" || word == "get" || word == "set"
	}
}

// prevChar returns the first non-blank byte before pos, or 0.
func prevChar(masked string, pos int) byte {
	for i := pos - 1; i >= 0; i-- {
		if !isBlank(masked[i]) {
			return masked[i]
		}
	}
	return 0
}

func isBlank(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

func isIdentByte(c byte) bool {
	return c == '_' || c == '$' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
