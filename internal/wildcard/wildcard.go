// Package wildcard implements the * pattern matching used by request matchers.
// A * matches any run of characters, including none; everything else is
// literal. Patterns are compiled once so the common shapes (exact, prefix,
// suffix, contains) skip the general segment scan.
package wildcard

import "strings"

type kind int

const (
	kindExact kind = iota
	kindAny
	kindPrefix
	kindSuffix
	kindContains
	kindSegments
)

// Pattern is a compiled * pattern. The zero value matches only the empty string.
type Pattern struct {
	raw      string
	kind     kind
	lit      string
	segments []string
}

// Compile parses pattern into a Pattern.
func Compile(pattern string) Pattern {
	p := Pattern{raw: pattern}

	stars := strings.Count(pattern, "*")
	switch {
	case stars == 0:
		p.kind = kindExact
		p.lit = pattern
	case pattern == strings.Repeat("*", stars):
		p.kind = kindAny
	case stars == 1 && strings.HasSuffix(pattern, "*"):
		p.kind = kindPrefix
		p.lit = pattern[:len(pattern)-1]
	case stars == 1 && strings.HasPrefix(pattern, "*"):
		p.kind = kindSuffix
		p.lit = pattern[1:]
	case stars == 2 && strings.HasPrefix(pattern, "*") && strings.HasSuffix(pattern, "*"):
		p.kind = kindContains
		p.lit = pattern[1 : len(pattern)-1]
	default:
		p.kind = kindSegments
		p.segments = strings.Split(pattern, "*")
	}
	return p
}

// Match reports whether value matches the pattern.
func (p Pattern) Match(value string) bool {
	switch p.kind {
	case kindExact:
		return value == p.lit
	case kindAny:
		return true
	case kindPrefix:
		return strings.HasPrefix(value, p.lit)
	case kindSuffix:
		return strings.HasSuffix(value, p.lit)
	case kindContains:
		return strings.Contains(value, p.lit)
	default:
		return matchSegments(p.segments, value)
	}
}

// IsLiteral reports whether the pattern contains no wildcards.
func (p Pattern) IsLiteral() bool {
	return p.kind == kindExact
}

// String returns the original pattern text.
func (p Pattern) String() string {
	return p.raw
}

// Match is a convenience for one-shot matching without keeping the compiled
// pattern around.
func Match(pattern, value string) bool {
	return Compile(pattern).Match(value)
}

// matchSegments scans value for the literal segments of a multi-star pattern
// in order. The first segment must be a prefix and the last a suffix (unless
// the pattern starts/ends with *); middle segments are placed leftmost, which
// leaves maximal room for the remainder.
func matchSegments(segments []string, value string) bool {
	pos := 0
	for i, seg := range segments {
		if seg == "" {
			continue
		}
		switch {
		case i == 0:
			if !strings.HasPrefix(value, seg) {
				return false
			}
			pos = len(seg)
		case i == len(segments)-1:
			return strings.HasSuffix(value[pos:], seg)
		default:
			idx := strings.Index(value[pos:], seg)
			if idx < 0 {
				return false
			}
			pos += idx + len(seg)
		}
	}
	return true
}
