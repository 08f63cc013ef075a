// Package transform turns the typed worker template into a plain script.
//
// The template is processed in a fixed order: version substitution,
// registration segment removal, module statement removal and type syntax
// removal. Each step only touches code; string literals, template literals and
// comments pass through unchanged.
package transform

import (
	"regexp"
	"strings"

	"go.trai.ch/stamp/internal/core/domain"
	"go.trai.ch/zerr"
)

// typePattern matches the annotation shapes the template may use: an
// identifier path with an optional single array suffix.
const typePattern = `[A-Za-z_$][\w$]*(?:\.[A-Za-z_$][\w$]*)*(?:\[\])?`

const identPattern = `[A-Za-z_$][\w$]*`

var (
	referenceRe = regexp.MustCompile(`(?m)^[ \t]*///[ \t]*<reference\b[^\n]*(?:\n|$)`)

	importRe        = regexp.MustCompile(`(?m)^[ \t]*import(?:\s+|\s*[{*'"])[^;]*;[ \t]*(?:\r?\n)?`)
	exportListRe    = regexp.MustCompile(`(?m)^[ \t]*export\s*(?:\{[^}]*\}|\*)[^;\n]*;?[ \t]*(?:\r?\n)?`)
	exportDefaultRe = regexp.MustCompile(`(?m)^[ \t]*export\s+default\s+` + identPattern + `\s*;[ \t]*(?:\r?\n)?`)
	exportModRe     = regexp.MustCompile(`(?m)^([ \t]*)export\s+(?:default\s+)?((?:async\s+)?function\b|const\b|let\b|var\b|class\b)`)
	declareRe       = regexp.MustCompile(`(?m)^[ \t]*declare\s+(?:const|let|var|function)\b[^;{]*;[ \t]*(?:\r?\n)?`)
	typeAliasRe     = regexp.MustCompile(`(?m)^[ \t]*type\s+` + identPattern + `\s*=[^;]*;[ \t]*(?:\r?\n)?`)

	castRe     = regexp.MustCompile(`\(\s*(` + identPattern + `(?:\.` + identPattern + `)*)\s+as\s+` + typePattern + `\s*\)`)
	declRe     = regexp.MustCompile(`\b((?:const|let|var)\s+` + identPattern + `)\s*:\s*` + typePattern + `(\s*[=;,)\n])`)
	functionRe = regexp.MustCompile(`\bfunction\b\s*\*?\s*(?:` + identPattern + `)?\s*\(([^()]*)\)(\s*:\s*` + typePattern + `)?(\s*\{)`)
	arrowRe    = regexp.MustCompile(`\(([^()]*)\)(\s*:\s*` + typePattern + `)?(\s*=>)`)
	methodRe   = regexp.MustCompile(`(` + identPattern + `\s*)\(([^()]*)\)(\s*:\s*` + typePattern + `)?(\s*\{)`)
	paramRe    = regexp.MustCompile(`^(\s*(?:\.\.\.)?` + identPattern + `)\s*\??\s*:\s*` + typePattern + `(\s*=[\s\S]*|\s*)$`)

	leftoverModuleRe = regexp.MustCompile(`(?m)^[ \t]*(?:import|export)\b`)
	leftoverTypeRe   = regexp.MustCompile(`(?m)^[ \t]*(?:declare\s|interface\s|type\s+` + identPattern + `\s*=)`)
	leftoverCastRe   = regexp.MustCompile(`[\w$)\]]\s+as\s+[A-Za-z_$]`)
)

// Generate applies the full pipeline to template and returns the worker script.
// It fails without producing output when the placeholder does not occur
// exactly once or when syntax survives that a browser would reject.
func Generate(template []byte, version string) ([]byte, error) {
	src, err := Substitute(string(template), version)
	if err != nil {
		return nil, err
	}

	src = StripRegistration(src)
	src = StripModuleSyntax(src)
	src = StripTypes(src)

	if err := Verify(src); err != nil {
		return nil, err
	}

	return []byte(src), nil
}

// Substitute replaces the single placeholder occurrence with version.
func Substitute(src, version string) (string, error) {
	if !domain.ValidateVersion(version) {
		err := zerr.Wrap(domain.ErrInvalidVersion, "cannot substitute version")
		return "", zerr.With(err, "version", version)
	}

	switch n := strings.Count(src, domain.PlaceholderToken); {
	case n == 0:
		err := zerr.Wrap(domain.ErrPlaceholderMissing, "cannot substitute version")
		return "", zerr.With(err, "placeholder", domain.PlaceholderToken)
	case n > 1:
		err := zerr.Wrap(domain.ErrPlaceholderAmbiguous, "cannot substitute version")
		err = zerr.With(err, "placeholder", domain.PlaceholderToken)
		return "", zerr.With(err, "count", n)
	}

	return strings.Replace(src, domain.PlaceholderToken, version, 1), nil
}

// StripRegistration removes everything from the line holding the registration
// marker to the end of the text. Text without the marker is returned as is.
func StripRegistration(src string) string {
	idx := strings.Index(src, domain.RegistrationMarker)
	if idx < 0 {
		return src
	}
	lineStart := strings.LastIndexByte(src[:idx], '\n') + 1
	return strings.TrimRight(src[:lineStart], " \t\r\n") + "\n"
}

// StripModuleSyntax removes import statements, export lists, default exports
// of names, ambient declarations and type aliases. Export modifiers on
// declarations are dropped while the declaration itself is kept.
func StripModuleSyntax(src string) string {
	src = referenceRe.ReplaceAllString(src, "")
	src = removeCode(src, importRe)
	src = removeCode(src, exportListRe)
	src = removeCode(src, exportDefaultRe)
	src = expandCode(src, exportModRe, "${1}${2}")
	src = removeCode(src, declareRe)
	src = removeCode(src, typeAliasRe)
	return src
}

// StripTypes removes type annotations and "as" casts.
func StripTypes(src string) string {
	src = replaceCode(src, castRe, func(src string, m []int) string {
		ident := group(src, m, 1)
		if callsOrGroups(src, m[0]) {
			return "(" + ident + ")"
		}
		return ident
	})
	src = expandCode(src, declRe, "${1}${2}")
	src = replaceCode(src, functionRe, func(src string, m []int) string {
		return src[m[0]:m[2]] + stripParams(src, m[2], m[3]) + ")" + group(src, m, 3)
	})
	src = replaceCode(src, arrowRe, func(src string, m []int) string {
		return "(" + stripParams(src, m[2], m[3]) + ")" + group(src, m, 3)
	})
	src = replaceCode(src, methodRe, func(src string, m []int) string {
		return group(src, m, 1) + "(" + stripParams(src, m[4], m[5]) + ")" + group(src, m, 4)
	})
	return src
}

// Verify reports module or type syntax left in code after stripping.
func Verify(src string) error {
	masked := mask(src)
	checks := []struct {
		re   *regexp.Regexp
		kind string
	}{
		{leftoverModuleRe, "module statement"},
		{leftoverTypeRe, "type declaration"},
		{leftoverCastRe, "type assertion"},
	}
	for _, c := range checks {
		if loc := c.re.FindStringIndex(masked); loc != nil {
			return unsupported(src, loc[0], c.kind)
		}
	}
	if pos := leftoverAnnotation(masked); pos >= 0 {
		return unsupported(src, pos, "type annotation")
	}
	return nil
}

func unsupported(src string, pos int, kind string) error {
	err := zerr.Wrap(domain.ErrUnsupportedSyntax, "worker script is not plain JavaScript")
	err = zerr.With(err, "kind", kind)
	return zerr.With(err, "line", strings.Count(src[:pos], "\n")+1)
}

// callsOrGroups reports whether the parenthesis at pos follows an expression
// or keyword, in which case it must be kept.
func callsOrGroups(src string, pos int) bool {
	i := pos - 1
	for i >= 0 && (src[i] == ' ' || src[i] == '\t') {
		i--
	}
	if i < 0 {
		return false
	}
	c := src[i]
	return c == ')' || c == ']' || c == '_' || c == '$' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

// stripParams removes annotations from the parameter list src[from:to].
// Parameters that do not have a supported shape are left untouched.
func stripParams(src string, from, to int) string {
	list := src[from:to]
	masked := mask(src)[from:to]

	var b strings.Builder
	start, depth := 0, 0
	flush := func(end int) {
		param := list[start:end]
		m := paramRe.FindStringSubmatchIndex(masked[start:end])
		if m == nil {
			b.WriteString(param)
			return
		}
		b.WriteString(group(param, m, 1))
		b.WriteString(group(param, m, 2))
	}

	for i := 0; i < len(masked); i++ {
		switch masked[i] {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case ',':
			if depth == 0 {
				flush(i)
				b.WriteByte(',')
				start = i + 1
			}
		}
	}
	flush(len(list))

	return b.String()
}
