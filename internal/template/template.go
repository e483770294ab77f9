package template

import (
	"fmt"
	"sort"
	"strings"
)

// A Template is a parsed configuration template: literal text segments
// interleaved with named placeholders written as {{name}}.
//
// Only exact {{name}} tokens are recognized, where name is an identifier
// ([A-Za-z_][A-Za-z0-9_]*). Anything else, including "{{ spaced }}", "${var}"
// and unbalanced braces, is preserved as literal text.
type Template struct {
	source   string
	segments []segment
}

// segment is one piece of a parsed template. A placeholder segment has
// placeholder=true and text holding the placeholder name.
type segment struct {
	text        string
	placeholder bool
}

// MissingFieldError is returned by Render when a placeholder in the template
// has no bound value.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("template placeholder %q has no bound value", e.Field)
}

// Parse parses template text into a Template. Parsing never fails: malformed
// placeholder-like sequences are kept as literal text.
func Parse(text string) *Template {
	t := &Template{source: text}

	rest := text
	for {
		open := strings.Index(rest, "{{")
		if open < 0 {
			break
		}
		close := strings.Index(rest[open:], "}}")
		if close < 0 {
			break
		}
		name := rest[open+2 : open+close]
		if !validName(name) {
			// Not a placeholder; emit up to and including the first "{"
			// so overlapping candidates like "{{{name}}" still parse.
			t.appendLiteral(rest[:open+1])
			rest = rest[open+1:]
			continue
		}
		t.appendLiteral(rest[:open])
		t.segments = append(t.segments, segment{text: name, placeholder: true})
		rest = rest[open+close+2:]
	}
	t.appendLiteral(rest)

	return t
}

func (t *Template) appendLiteral(text string) {
	if text == "" {
		return
	}
	n := len(t.segments)
	if n > 0 && !t.segments[n-1].placeholder {
		t.segments[n-1].text += text
		return
	}
	t.segments = append(t.segments, segment{text: text})
}

func validName(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// Source returns the original template text.
func (t *Template) Source() string {
	return t.source
}

// Placeholders returns the distinct placeholder names in order of first
// appearance.
func (t *Template) Placeholders() []string {
	seen := make(map[string]bool)
	var names []string
	for _, seg := range t.segments {
		if seg.placeholder && !seen[seg.text] {
			seen[seg.text] = true
			names = append(names, seg.text)
		}
	}
	return names
}

// Render substitutes every placeholder with its value from vars and returns
// the result. Substitution is exact-match and case-sensitive, literal text is
// preserved byte for byte, and substituted values are never re-expanded.
//
// A placeholder bound to no value, or to an empty value, fails with
// *MissingFieldError and no partial output. Vars not referenced by the
// template are ignored; use Unused to report them.
func (t *Template) Render(vars map[string]string) (string, error) {
	var b strings.Builder
	b.Grow(len(t.source))
	for _, seg := range t.segments {
		if !seg.placeholder {
			b.WriteString(seg.text)
			continue
		}
		value, ok := vars[seg.text]
		if !ok || value == "" {
			return "", &MissingFieldError{Field: seg.text}
		}
		b.WriteString(value)
	}
	return b.String(), nil
}

// Unused returns the keys of vars that the template never references, sorted
// lexically. Unused vars are advisory only; Render ignores them.
func (t *Template) Unused(vars map[string]string) []string {
	referenced := make(map[string]bool)
	for _, seg := range t.segments {
		if seg.placeholder {
			referenced[seg.text] = true
		}
	}
	var unused []string
	for key := range vars {
		if !referenced[key] {
			unused = append(unused, key)
		}
	}
	sort.Strings(unused)
	return unused
}
