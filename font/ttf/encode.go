// Package ttf serializes an assembled font.Font into a TrueType (sfnt)
// binary and reads it back for verification.
//
// The encoder performs the single rounding pass of the pipeline: every
// coordinate, advance and side bearing is rounded to the integer design grid
// here and nowhere else. Output is deterministic: the same Font always
// encodes to the same bytes.
//
// Tables written: OS/2, cmap, glyf, head, hhea, hmtx, loca, maxp, name, post.
package ttf

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/gogpu/strokefont/font"
)

// Option configures encoding.
type Option func(*encodeOptions)

// encodeOptions holds optional configuration for Encode.
type encodeOptions struct {
	created time.Time
}

// WithTimestamp sets the created and modified dates stored in the head
// table. By default both are zero (1904-01-01), which keeps output
// byte-identical across runs.
func WithTimestamp(t time.Time) Option {
	return func(o *encodeOptions) {
		o.created = t
	}
}

// table is one sfnt table before assembly.
type table struct {
	tag  string
	data []byte
}

// Encode serializes f into a TrueType font file.
func Encode(f *font.Font, opts ...Option) ([]byte, error) {
	var o encodeOptions
	for _, opt := range opts {
		opt(&o)
	}

	if err := checkModel(f); err != nil {
		return nil, err
	}

	glyphs, err := toGrid(f)
	if err != nil {
		return nil, err
	}
	entries := cmapEntries(f)

	m, err := computeMetrics(f, glyphs, entries, o.created)
	if err != nil {
		return nil, err
	}

	glyf, loca, stats, err := buildGlyf(glyphs)
	if err != nil {
		return nil, err
	}
	name, err := buildName(f)
	if err != nil {
		return nil, err
	}

	tables := []table{
		{"OS/2", buildOS2(f, m)},
		{"cmap", buildCmap(entries)},
		{"glyf", glyf},
		{"head", buildHead(f, m)},
		{"hhea", buildHhea(m)},
		{"hmtx", buildHmtx(glyphs)},
		{"loca", loca},
		{"maxp", buildMaxp(m, stats)},
		{"name", name},
		{"post", buildPost(m)},
	}

	data := assemble(tables)
	Logger().Debug("ttf: encoded",
		"family", f.Family,
		"glyphs", m.numGlyphs,
		"bytes", len(data))
	return data, nil
}

// Write encodes f and writes it to w.
func Write(w io.Writer, f *font.Font, opts ...Option) error {
	data, err := Encode(f, opts...)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// WriteFile encodes f and writes it to path atomically: the data goes to a
// temporary file in the same directory which is synced and renamed over
// path. On failure the temporary file is removed and path is untouched.
// Filesystem failures are reported as *IOError.
func WriteFile(path string, f *font.Font, opts ...Option) error {
	data, err := Encode(f, opts...)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return &IOError{Op: "create", Path: path, Err: err}
	}
	tmpName := tmp.Name()

	fail := func(op string, err error) error {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		Logger().Warn("ttf: write failed", "path", path, "op", op, "err", err)
		return &IOError{Op: op, Path: path, Err: err}
	}

	if _, err := tmp.Write(data); err != nil {
		return fail("write", err)
	}
	if err := tmp.Sync(); err != nil {
		return fail("sync", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return &IOError{Op: "close", Path: path, Err: err}
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		_ = os.Remove(tmpName)
		return &IOError{Op: "chmod", Path: path, Err: err}
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return &IOError{Op: "rename", Path: path, Err: err}
	}

	Logger().Info("ttf: font written", "path", path, "bytes", len(data), "glyphs", len(f.Glyphs))
	return nil
}

// checkModel rejects fonts whose counts cannot be consistent on disk.
func checkModel(f *font.Font) error {
	if f == nil || len(f.Glyphs) == 0 {
		return ErrNoGlyphs
	}
	if len(f.Glyphs) > math.MaxUint16 {
		return fmt.Errorf("%w: %d", ErrTooManyGlyphs, len(f.Glyphs))
	}
	if f.UnitsPerEm < 16 || f.UnitsPerEm > 16384 {
		return fmt.Errorf("ttf: unitsPerEm %d out of range [16, 16384]", f.UnitsPerEm)
	}
	for cp, idx := range f.CharMap {
		if idx <= 0 || idx >= len(f.Glyphs) {
			return fmt.Errorf("ttf: code point U+%04X maps to invalid glyph %d", cp, idx)
		}
	}
	return nil
}

// assemble lays out the table directory and table data, then patches the
// head checksum adjustment.
func assemble(tables []table) []byte {
	slices.SortFunc(tables, func(a, b table) int { return strings.Compare(a.tag, b.tag) })

	numTables := len(tables)
	entrySelector := log2floor(numTables)
	searchRange := 16 << entrySelector

	headerLen := 12 + 16*numTables
	size := headerLen
	for _, t := range tables {
		size += (len(t.data) + 3) &^ 3
	}

	var buf bytes.Buffer
	buf.Grow(size)

	hdr := make([]byte, 0, headerLen)
	hdr = appendU32(hdr, sfntVersionTrueType)
	hdr = appendU16(hdr, numTables)
	hdr = appendU16(hdr, searchRange)
	hdr = appendU16(hdr, entrySelector)
	hdr = appendU16(hdr, 16*numTables-searchRange)

	offset := headerLen
	headOffset := -1
	for _, t := range tables {
		if t.tag == "head" {
			headOffset = offset
		}
		hdr = appendTag(hdr, t.tag)
		hdr = appendU32(hdr, checksum(t.data))
		hdr = appendU32(hdr, uint32(offset))
		hdr = appendU32(hdr, uint32(len(t.data)))
		offset += (len(t.data) + 3) &^ 3
	}
	buf.Write(hdr)
	for _, t := range tables {
		buf.Write(pad4(slices.Clone(t.data)))
	}

	out := buf.Bytes()
	if headOffset >= 0 {
		adj := checksumMagic - checksum(out)
		binary.BigEndian.PutUint32(out[headOffset+8:], adj)
	}
	return out
}
