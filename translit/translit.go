// Package translit rewrites text into the private-use code points of a
// stroke font.
//
// A Table assigns consecutive code points to a set of symbols (typically
// romanized phonemes) and replaces every occurrence of a symbol in a string
// with its code point, always preferring the longest symbol that matches at
// the current position. Characters that match no symbol pass through
// unchanged. Input is normalized to NFC first, as are the symbols.
package translit

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// DefaultStart is the first code point of the Unicode Private Use Area.
const DefaultStart rune = 0xE000

// Sentinel errors for translit package.
var (
	// ErrEmptySymbol is returned for an empty symbol string.
	ErrEmptySymbol = errors.New("translit: empty symbol")

	// ErrDuplicateSymbol is returned when a symbol appears twice.
	ErrDuplicateSymbol = errors.New("translit: duplicate symbol")

	// ErrCodePointRange is returned when an assigned code point is not a
	// valid Unicode scalar value.
	ErrCodePointRange = errors.New("translit: code point out of range")
)

// Table maps symbols to code points. A Table is immutable and safe for
// concurrent use.
type Table struct {
	// symbols in assignment order: longest first.
	symbols []string
	runes   map[string]rune
	// prefixes holds every proper byte prefix of every symbol.
	prefixes map[string]bool
	maxLen   int
}

// NewTable assigns start, start+1, ... to symbols ordered by length in
// characters, longest first. Symbols of equal length keep their given order.
func NewTable(symbols []string, start rune) (*Table, error) {
	ordered := make([]string, len(symbols))
	for i, s := range symbols {
		ordered[i] = norm.NFC.String(s)
	}
	slices.SortStableFunc(ordered, func(a, b string) int {
		return utf8.RuneCountInString(b) - utf8.RuneCountInString(a)
	})

	m := make(map[string]rune, len(ordered))
	for i, s := range ordered {
		m[s] = start + rune(i)
	}
	if len(m) != len(ordered) {
		// Find the offending symbol for the message.
		seen := make(map[string]bool, len(ordered))
		for _, s := range ordered {
			if seen[s] {
				return nil, fmt.Errorf("%w: %q", ErrDuplicateSymbol, s)
			}
			seen[s] = true
		}
	}
	return newTable(m)
}

// FromMapping builds a table from an explicit symbol to code point map.
func FromMapping(mapping map[string]rune) (*Table, error) {
	m := make(map[string]rune, len(mapping))
	for s, r := range mapping {
		n := norm.NFC.String(s)
		if _, ok := m[n]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateSymbol, n)
		}
		m[n] = r
	}
	return newTable(m)
}

func newTable(m map[string]rune) (*Table, error) {
	t := &Table{
		symbols:  make([]string, 0, len(m)),
		runes:    m,
		prefixes: make(map[string]bool),
	}
	used := make(map[rune]string, len(m))
	for s, r := range m {
		if s == "" {
			return nil, ErrEmptySymbol
		}
		if !utf8.ValidRune(r) {
			return nil, fmt.Errorf("%w: %q -> U+%04X", ErrCodePointRange, s, r)
		}
		if other, ok := used[r]; ok {
			return nil, fmt.Errorf("translit: %q and %q both map to U+%04X", other, s, r)
		}
		used[r] = s
		t.symbols = append(t.symbols, s)
		t.maxLen = max(t.maxLen, len(s))
		for i := 1; i < len(s); i++ {
			t.prefixes[s[:i]] = true
		}
	}
	slices.SortFunc(t.symbols, func(a, b string) int {
		return int(m[a] - m[b])
	})
	return t, nil
}

// Symbols returns the symbols in code point order.
func (t *Table) Symbols() []string {
	return slices.Clone(t.symbols)
}

// Mapping returns a copy of the symbol to code point map.
func (t *Table) Mapping() map[string]rune {
	out := make(map[string]rune, len(t.runes))
	for s, r := range t.runes {
		out[s] = r
	}
	return out
}

// CodePoints returns the assigned code points in ascending order.
func (t *Table) CodePoints() []rune {
	out := make([]rune, 0, len(t.symbols))
	for _, s := range t.symbols {
		out = append(out, t.runes[s])
	}
	return out
}

// Lookup returns the code point assigned to symbol.
func (t *Table) Lookup(symbol string) (rune, bool) {
	r, ok := t.runes[norm.NFC.String(symbol)]
	return r, ok
}

// String returns s with every symbol replaced by its code point.
func (t *Table) String(s string) string {
	s = norm.NFC.String(s)
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); {
		if r, n := t.match(s[i:]); n > 0 {
			sb.WriteRune(r)
			i += n
			continue
		}
		_, size := utf8.DecodeRuneInString(s[i:])
		sb.WriteString(s[i : i+size])
		i += size
	}
	return sb.String()
}

// match returns the code point and byte length of the longest symbol that
// prefixes s, or n == 0 when none does.
func (t *Table) match(s string) (r rune, n int) {
	for l := min(t.maxLen, len(s)); l > 0; l-- {
		if r, ok := t.runes[s[:l]]; ok {
			return r, l
		}
	}
	return 0, 0
}

// needMore reports whether s is a proper prefix of some symbol, so a longer
// match may follow once more input arrives.
func (t *Table) needMore(s string) bool {
	return len(s) < t.maxLen && t.prefixes[s]
}
