package parsers

import (
	"context"
	"fmt"
	"strings"
)

const (
	boxedBrace  = `\boxed{`
	fboxBrace   = `\fbox{`
	boxedMarker = `\boxed`
	fboxMarker  = `\fbox`
	spacePrefix = `\boxed `
)

// BoxedParser extracts boxed final-answer expressions from a transcript.
// Three surface forms are recognized: \boxed{...}, \fbox{...} (both with at
// most one level of nested braces), and the space-delimited "\boxed ..."
// form whose content runs to the next dollar sign or the end of the string.
type BoxedParser struct {
	BaseParser
}

// NewBoxedParser creates a new boxed-expression parser
func NewBoxedParser() *BoxedParser {
	return &BoxedParser{}
}

// Parse returns the innermost content of the last boxed expression, or the
// empty string if the transcript contains none.
func (p *BoxedParser) Parse(ctx context.Context, response string) (string, error) {
	expr, ok := p.LastBoxed(response)
	if !ok {
		return "", nil
	}
	return p.Innermost(expr), nil
}

// ExtractAll returns every boxed expression in the transcript, ordered by
// the position of its first character.
func (p *BoxedParser) ExtractAll(transcript string) []string {
	var out []string
	for i := 0; i < len(transcript); {
		j := strings.IndexByte(transcript[i:], '\\')
		if j < 0 {
			break
		}
		pos := i + j
		rest := transcript[pos:]
		switch {
		case strings.HasPrefix(rest, boxedBrace):
			if expr, ok := scanBraced(transcript, pos, len(boxedBrace)); ok {
				out = append(out, expr)
				i = pos + len(expr)
				continue
			}
			i = pos + len(boxedBrace)
		case strings.HasPrefix(rest, fboxBrace):
			if expr, ok := scanBraced(transcript, pos, len(fboxBrace)); ok {
				out = append(out, expr)
				i = pos + len(expr)
				continue
			}
			i = pos + len(fboxBrace)
		case hasSpaceForm(rest):
			expr := scanSpaceForm(rest)
			out = append(out, expr)
			i = pos + len(expr)
		default:
			i = pos + 1
		}
	}
	return out
}

// Unwrap strips exactly one wrapper layer from a boxed expression. It fails
// on anything that is not a complete recognized form.
func (p *BoxedParser) Unwrap(expr string) (string, error) {
	switch {
	case strings.HasPrefix(expr, spacePrefix):
		return expr[len(spacePrefix):], nil
	case strings.HasPrefix(expr, boxedBrace) && strings.HasSuffix(expr, "}"):
		return expr[len(boxedBrace) : len(expr)-1], nil
	case strings.HasPrefix(expr, fboxBrace) && strings.HasSuffix(expr, "}"):
		return expr[len(fboxBrace) : len(expr)-1], nil
	}
	return "", fmt.Errorf("not a recognized boxed expression: %q", expr)
}

// Innermost repeatedly unwraps a boxed expression until no recognized layer
// remains. Malformed inner wrappers stop the unwrapping and stay in the
// result.
func (p *BoxedParser) Innermost(expr string) string {
	content := expr
	for {
		next, err := p.Unwrap(content)
		if err != nil || next == content {
			return content
		}
		content = next
	}
}

// LastBoxed returns the final boxed expression of the transcript. The
// space-delimited form takes priority: if "\boxed " occurs anywhere, the
// result is everything after its last occurrence up to the next dollar sign,
// even when a brace form appears later. For brace forms the expression runs
// from the last marker to its balanced closing brace; an unbalanced
// expression counts as absent.
func (p *BoxedParser) LastBoxed(transcript string) (string, bool) {
	if strings.Contains(transcript, spacePrefix) {
		parts := strings.Split(transcript, spacePrefix)
		tail := parts[len(parts)-1]
		if i := strings.IndexByte(tail, '$'); i >= 0 {
			tail = tail[:i]
		}
		return spacePrefix + tail, true
	}

	idx := strings.LastIndex(transcript, boxedMarker)
	if idx < 0 {
		idx = strings.LastIndex(transcript, fboxMarker)
		if idx < 0 {
			return "", false
		}
	}

	depth := 0
	for i := idx; i < len(transcript); i++ {
		switch transcript[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return transcript[idx : i+1], true
			}
		}
	}
	return "", false
}

// scanBraced matches marker{...} starting at start, allowing exactly one
// level of nested braces and closing at the first brace that returns the
// depth to zero.
func scanBraced(s string, start, markerLen int) (string, bool) {
	depth := 1
	for i := start + markerLen; i < len(s); i++ {
		switch s[i] {
		case '{':
			if depth == 2 {
				return "", false
			}
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}

// hasSpaceForm reports whether s starts with the space-delimited marker.
func hasSpaceForm(s string) bool {
	if !strings.HasPrefix(s, boxedMarker) || len(s) == len(boxedMarker) {
		return false
	}
	switch s[len(boxedMarker)] {
	case ' ', '\t', '\n', '\r':
		return true
	}
	return false
}

// scanSpaceForm captures a space-delimited boxed expression: content runs to
// the next dollar sign or the end of the string, trailing whitespace trimmed.
func scanSpaceForm(s string) string {
	end := strings.IndexByte(s, '$')
	if end < 0 {
		end = len(s)
	}
	return strings.TrimRight(s[:end], " \t\n\r")
}
