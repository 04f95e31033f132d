package runtime

import "unicode/utf8"

// Str is text with Unicode codepoint semantics: length is the
// codepoint count and indexing addresses the i-th codepoint. Purely
// ASCII text takes a fast path where byte and codepoint positions
// coincide; the two paths are behaviorally indistinguishable.
type Str struct {
	data  string
	ascii bool
	// count caches the codepoint count for non-ASCII text.
	count int
}

// StrOf wraps a UTF-8 string in the codepoint model.
func StrOf(s string) Str {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return Str{data: s, count: utf8.RuneCountInString(s)}
		}
	}
	return Str{data: s, ascii: true, count: len(s)}
}

// Len returns the codepoint count. A multi-codepoint grapheme such as
// the family emoji counts each codepoint, joiners included.
func (s Str) Len() int { return s.count }

// Index returns the i-th codepoint.
func (s Str) Index(i int) (rune, error) {
	if i < 0 || i >= s.count {
		return 0, indexFault(i, s.count)
	}
	if s.ascii {
		return rune(s.data[i]), nil
	}
	pos := 0
	for _, r := range s.data {
		if pos == i {
			return r, nil
		}
		pos++
	}
	// Unreachable: i < count.
	return 0, indexFault(i, s.count)
}

// Concat joins two strings; lengths add codepoint-wise.
func (s Str) Concat(other Str) Str {
	return Str{
		data:  s.data + other.data,
		ascii: s.ascii && other.ascii,
		count: s.count + other.count,
	}
}

// String returns the underlying UTF-8 text.
func (s Str) String() string { return s.data }
