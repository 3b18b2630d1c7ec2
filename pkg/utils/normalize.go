package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// unitsMarker introduces a trailing unit annotation, e.g. "12\text{ cm}".
const unitsMarker = `\text{ `

// Normalize canonicalizes a math answer string so that surface variants of
// the same answer compare equal. The steps run in a fixed order; later steps
// assume the cleanup done by earlier ones. The only failure mode is an
// ambiguous unit annotation (more than one unitsMarker), which callers should
// treat as non-equivalence rather than a hard error.
func Normalize(s string) (string, error) {
	// linebreaks and inverse spaces
	s = strings.ReplaceAll(s, "\n", "")
	s = strings.ReplaceAll(s, `\!`, "")

	// collapse doubled backslashes
	s = strings.ReplaceAll(s, `\\`, `\`)

	// tfrac and dfrac are display variants of frac
	s = strings.ReplaceAll(s, "tfrac", "frac")
	s = strings.ReplaceAll(s, "dfrac", "frac")

	// sizing decorations
	s = strings.ReplaceAll(s, `\left`, "")
	s = strings.ReplaceAll(s, `\right`, "")

	// degrees
	s = strings.ReplaceAll(s, `^{\circ}`, "")
	s = strings.ReplaceAll(s, `^\circ`, "")

	// escaped dollar signs
	s = strings.ReplaceAll(s, `\$`, "")

	var err error
	s, err = stripUnits(s)
	if err != nil {
		return "", err
	}

	// escaped percent signs
	s = strings.ReplaceAll(s, `\\%`, "")
	s = strings.ReplaceAll(s, `\%`, "")

	// " .5" and "{.5" are missing a leading zero, as is ".5" at the start
	s = strings.ReplaceAll(s, " .", " 0.")
	s = strings.ReplaceAll(s, "{.", "{0.")
	if s == "" {
		return s, nil
	}
	if s[0] == '.' {
		s = "0" + s
	}

	// drop short variable-assignment prefixes like "x = "
	if parts := strings.Split(s, "="); len(parts) == 2 && len(parts[0]) <= 2 {
		s = parts[1]
	}

	s = fixSqrt(s)

	s = strings.ReplaceAll(s, " ", "")

	s = fixFracs(s)

	if s == "0.5" {
		s = `\frac{1}{2}`
	}

	s = fixSlash(s)

	return s, nil
}

// stripUnits truncates a trailing unit annotation. A well-formed answer
// carries at most one annotation; two or more is malformed input.
func stripUnits(s string) (string, error) {
	switch strings.Count(s, unitsMarker) {
	case 0:
		return s, nil
	case 1:
		return s[:strings.Index(s, unitsMarker)], nil
	default:
		return "", fmt.Errorf("ambiguous unit annotation in %q", s)
	}
}

// fixSqrt wraps the argument of bare "\sqrt3" forms in braces. Only the
// single character following the macro is wrapped.
func fixSqrt(s string) string {
	if !strings.Contains(s, `\sqrt`) {
		return s
	}
	parts := strings.Split(s, `\sqrt`)
	var b strings.Builder
	b.WriteString(parts[0])
	for _, p := range parts[1:] {
		if p == "" || p[0] == '{' {
			b.WriteString(`\sqrt`)
			b.WriteString(p)
			continue
		}
		b.WriteString(`\sqrt{`)
		b.WriteString(p[:1])
		b.WriteString(`}`)
		b.WriteString(p[1:])
	}
	return b.String()
}

// fixFracs expands "\frac12" and "\frac1{23}" shorthand into fully
// brace-delimited "\frac{1}{2}" forms. Shorthand with fewer than two
// remaining characters cannot be expanded; the input is returned unchanged.
func fixFracs(s string) string {
	parts := strings.Split(s, `\frac`)
	if len(parts) == 1 {
		return s
	}
	var b strings.Builder
	b.WriteString(parts[0])
	for _, p := range parts[1:] {
		b.WriteString(`\frac`)
		if p != "" && p[0] == '{' {
			b.WriteString(p)
			continue
		}
		if len(p) < 2 {
			return s
		}
		if p[1] != '{' {
			b.WriteString("{")
			b.WriteByte(p[0])
			b.WriteString("}{")
			b.WriteByte(p[1])
			b.WriteString("}")
			b.WriteString(p[2:])
		} else {
			b.WriteString("{")
			b.WriteByte(p[0])
			b.WriteString("}")
			b.WriteString(p[1:])
		}
	}
	return b.String()
}

// fixSlash rewrites a bare "a/b" integer fraction as "\frac{a}{b}". Anything
// that does not re-render exactly as "a/b" is left alone.
func fixSlash(s string) string {
	parts := strings.Split(s, "/")
	if len(parts) != 2 {
		return s
	}
	a, errA := strconv.Atoi(parts[0])
	b, errB := strconv.Atoi(parts[1])
	if errA != nil || errB != nil {
		return s
	}
	if s != fmt.Sprintf("%d/%d", a, b) {
		return s
	}
	return fmt.Sprintf(`\frac{%d}{%d}`, a, b)
}
