package translit

import (
	"unicode/utf8"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Transformer returns a streaming transformer that normalizes input to NFC
// and then applies the table. It produces the same output as String.
func (t *Table) Transformer() transform.Transformer {
	return transform.Chain(norm.NFC, &matcher{t: t})
}

// matcher applies a table to NFC input.
type matcher struct {
	transform.NopResetter
	t *Table
}

func (m *matcher) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	for nSrc < len(src) {
		rest := src[nSrc:]
		head := string(rest[:min(len(rest), m.t.maxLen)])
		if !atEOF && m.t.needMore(head) {
			return nDst, nSrc, transform.ErrShortSrc
		}

		if r, n := m.t.match(head); n > 0 {
			size := utf8.RuneLen(r)
			if nDst+size > len(dst) {
				return nDst, nSrc, transform.ErrShortDst
			}
			utf8.EncodeRune(dst[nDst:], r)
			nDst += size
			nSrc += n
			continue
		}

		size := 1
		if rest[0] >= utf8.RuneSelf {
			if !atEOF && !utf8.FullRune(rest) {
				return nDst, nSrc, transform.ErrShortSrc
			}
			_, size = utf8.DecodeRune(rest)
		}
		if nDst+size > len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		nDst += copy(dst[nDst:], rest[:size])
		nSrc += size
	}
	return nDst, nSrc, nil
}
