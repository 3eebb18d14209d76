package ttf

import (
	"bytes"
	"fmt"

	gotext "github.com/go-text/typesetting/font"
)

// Coverage returns the runes of text that the font in data has no glyph
// for, in order of first appearance and without duplicates. Whitespace and
// control characters are reported like any other rune.
func Coverage(data []byte, text string) ([]rune, error) {
	face, err := gotext.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("ttf: coverage: %w", err)
	}

	var missing []rune
	seen := make(map[rune]bool)
	for _, r := range text {
		if seen[r] {
			continue
		}
		seen[r] = true
		if _, ok := face.NominalGlyph(r); !ok {
			missing = append(missing, r)
		}
	}
	return missing, nil
}
