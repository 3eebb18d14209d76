package ttf

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/encoding/charmap"
	xunicode "golang.org/x/text/encoding/unicode"

	"github.com/gogpu/strokefont/font"
)

// Fixed header values.
const (
	sfntVersionTrueType = 0x00010000
	headMagic           = 0x5F0F3CF5
	checksumMagic       = 0xB1B0AFBA
	macEpochOffset      = 2082844800 // seconds from 1904-01-01 to 1970-01-01
	headFlags           = 0x000B     // baseline y=0, lsb x=0, integer ppem
	indexToLocLong      = 1
	usWeightRegular     = 400
	usWidthMedium       = 5
	fsSelectionRegular  = 0x0040
	fsSelectionBold     = 0x0020
	fsSelectionItalic   = 0x0001
	unicodeRangePUABit  = 60
	unicodeRangeLatin   = 0
)

// metrics collects the font-wide values derived from the rounded glyphs.
type metrics struct {
	upem        int
	ascent      int
	descent     int
	xMin        int
	yMin        int
	xMax        int
	yMax        int
	advanceMax  int
	avgAdvance  int
	minLSB      int
	minRSB      int
	xMaxExtent  int
	numGlyphs   int
	created     int64
	firstChar   int
	lastChar    int
	unicodeBits [4]uint32
}

func computeMetrics(f *font.Font, glyphs []gridGlyph, entries []cmapEntry, created time.Time) (metrics, error) {
	m := metrics{upem: f.UnitsPerEm, numGlyphs: len(glyphs)}

	var err error
	if m.ascent, err = round(f.Ascent); err != nil {
		return m, fmt.Errorf("ascent: %w", err)
	}
	if m.descent, err = round(f.Descent); err != nil {
		return m, fmt.Errorf("descent: %w", err)
	}

	first := true
	total, counted := 0, 0
	for i := range glyphs {
		g := &glyphs[i]
		m.advanceMax = max(m.advanceMax, g.advance)
		if g.advance > 0 {
			total += g.advance
			counted++
		}
		if g.empty() {
			continue
		}
		rsb := g.advance - g.xMax
		if first {
			m.xMin, m.yMin, m.xMax, m.yMax = g.xMin, g.yMin, g.xMax, g.yMax
			m.minLSB, m.minRSB, m.xMaxExtent = g.xMin, rsb, g.xMax
			first = false
			continue
		}
		m.xMin = min(m.xMin, g.xMin)
		m.yMin = min(m.yMin, g.yMin)
		m.xMax = max(m.xMax, g.xMax)
		m.yMax = max(m.yMax, g.yMax)
		m.minLSB = min(m.minLSB, g.xMin)
		m.minRSB = min(m.minRSB, rsb)
		m.xMaxExtent = max(m.xMaxExtent, g.xMax)
	}
	if counted > 0 {
		m.avgAdvance = int(math.Round(float64(total) / float64(counted)))
	}
	if m.advanceMax > math.MaxUint16 {
		return m, fmt.Errorf("%w: advance %d", ErrCoordinateRange, m.advanceMax)
	}

	if !created.IsZero() {
		m.created = created.Unix() + macEpochOffset
	}

	if len(entries) > 0 {
		m.firstChar = int(min(entries[0].cp, 0xFFFF))
		m.lastChar = int(min(entries[len(entries)-1].cp, 0xFFFF))
	}
	for _, e := range entries {
		switch {
		case unicode.Is(unicode.Co, e.cp):
			m.unicodeBits[unicodeRangePUABit/32] |= 1 << (unicodeRangePUABit % 32)
		case e.cp < 0x80:
			m.unicodeBits[unicodeRangeLatin/32] |= 1 << (unicodeRangeLatin % 32)
		}
	}
	return m, nil
}

// fontRevision extracts the numeric part of a "Version 1.000" string.
func fontRevision(version string) float64 {
	s := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(version), "Version"))
	if i := strings.IndexFunc(s, func(r rune) bool { return r != '.' && (r < '0' || r > '9') }); i >= 0 {
		s = s[:i]
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 {
		return 1
	}
	return v
}

func buildHead(f *font.Font, m metrics) []byte {
	b := make([]byte, 0, 54)
	b = appendU32(b, sfntVersionTrueType)
	b = appendU32(b, fixed16(fontRevision(f.Version)))
	b = appendU32(b, 0) // checkSumAdjustment, patched after assembly
	b = appendU32(b, headMagic)
	b = appendU16(b, headFlags)
	b = appendU16(b, m.upem)
	b = appendI64(b, m.created)
	b = appendI64(b, m.created)
	b = appendI16(b, m.xMin)
	b = appendI16(b, m.yMin)
	b = appendI16(b, m.xMax)
	b = appendI16(b, m.yMax)
	b = appendU16(b, macStyle(f.Style))
	b = appendU16(b, 8) // lowestRecPPEM
	b = appendI16(b, 2) // fontDirectionHint
	b = appendI16(b, indexToLocLong)
	b = appendI16(b, 0) // glyphDataFormat
	return b
}

func macStyle(style string) int {
	s := strings.ToLower(style)
	v := 0
	if strings.Contains(s, "bold") {
		v |= 1
	}
	if strings.Contains(s, "italic") || strings.Contains(s, "oblique") {
		v |= 2
	}
	return v
}

func buildHhea(m metrics) []byte {
	b := make([]byte, 0, 36)
	b = appendU32(b, 0x00010000)
	b = appendI16(b, m.ascent)
	b = appendI16(b, m.descent)
	b = appendI16(b, 0) // lineGap
	b = appendU16(b, m.advanceMax)
	b = appendI16(b, m.minLSB)
	b = appendI16(b, m.minRSB)
	b = appendI16(b, m.xMaxExtent)
	b = appendI16(b, 1) // caretSlopeRise
	b = appendI16(b, 0) // caretSlopeRun
	b = appendI16(b, 0) // caretOffset
	for range 4 {
		b = appendI16(b, 0) // reserved
	}
	b = appendI16(b, 0) // metricDataFormat
	b = appendU16(b, m.numGlyphs)
	return b
}

// buildHmtx writes one long metric per glyph; the left side bearing is the
// glyph's xMin, or 0 for empty glyphs.
func buildHmtx(glyphs []gridGlyph) []byte {
	b := make([]byte, 0, 4*len(glyphs))
	for i := range glyphs {
		b = appendU16(b, glyphs[i].advance)
		lsb := 0
		if !glyphs[i].empty() {
			lsb = glyphs[i].xMin
		}
		b = appendI16(b, lsb)
	}
	return b
}

func buildMaxp(m metrics, stats glyfStats) []byte {
	b := make([]byte, 0, 32)
	b = appendU32(b, 0x00010000)
	b = appendU16(b, m.numGlyphs)
	b = appendU16(b, stats.maxPoints)
	b = appendU16(b, stats.maxContours)
	b = appendU16(b, 0) // maxCompositePoints
	b = appendU16(b, 0) // maxCompositeContours
	b = appendU16(b, 2) // maxZones
	for range 8 {
		// maxTwilightPoints through maxComponentDepth: no hinting, no composites.
		b = appendU16(b, 0)
	}
	return b
}

func buildOS2(f *font.Font, m metrics) []byte {
	upem := float64(m.upem)
	scaled := func(r float64) int { return int(math.Round(upem * r)) }

	b := make([]byte, 0, 96)
	b = appendU16(b, 4) // version
	b = appendI16(b, m.avgAdvance)
	b = appendU16(b, usWeightRegular+300*(macStyle(f.Style)&1))
	b = appendU16(b, usWidthMedium)
	b = appendU16(b, 0) // fsType: installable
	b = appendI16(b, scaled(0.65))  // ySubscriptXSize
	b = appendI16(b, scaled(0.6))   // ySubscriptYSize
	b = appendI16(b, 0)             // ySubscriptXOffset
	b = appendI16(b, scaled(0.075)) // ySubscriptYOffset
	b = appendI16(b, scaled(0.65))  // ySuperscriptXSize
	b = appendI16(b, scaled(0.6))   // ySuperscriptYSize
	b = appendI16(b, 0)             // ySuperscriptXOffset
	b = appendI16(b, scaled(0.35))  // ySuperscriptYOffset
	b = appendI16(b, scaled(0.05))  // yStrikeoutSize
	b = appendI16(b, scaled(0.3))   // yStrikeoutPosition
	b = appendI16(b, 0)             // sFamilyClass
	for range 10 {
		b = appendU8(b, 0) // panose
	}
	for _, bits := range m.unicodeBits {
		b = appendU32(b, bits)
	}
	b = append(b, "NONE"...) // achVendID
	b = appendU16(b, fsSelection(f.Style))
	b = appendU16(b, m.firstChar)
	b = appendU16(b, m.lastChar)
	b = appendI16(b, m.ascent)
	b = appendI16(b, m.descent)
	b = appendI16(b, 0) // sTypoLineGap
	b = appendU16(b, max(m.ascent, m.yMax, 0))
	b = appendU16(b, max(-m.descent, -m.yMin, 0))
	b = appendU32(b, 1) // ulCodePageRange1: Latin 1
	b = appendU32(b, 0)
	b = appendI16(b, 0) // sxHeight
	b = appendI16(b, m.ascent)
	b = appendU16(b, 0)    // usDefaultChar
	b = appendU16(b, 0x20) // usBreakChar
	b = appendU16(b, 0)    // usMaxContext
	return b
}

func fsSelection(style string) int {
	v := macStyle(style)
	sel := 0
	if v&1 != 0 {
		sel |= fsSelectionBold
	}
	if v&2 != 0 {
		sel |= fsSelectionItalic
	}
	if sel == 0 {
		sel = fsSelectionRegular
	}
	return sel
}

func buildPost(m metrics) []byte {
	b := make([]byte, 0, 32)
	b = appendU32(b, 0x00030000)
	b = appendU32(b, 0) // italicAngle
	b = appendI16(b, -m.upem/10)
	b = appendI16(b, m.upem/20)
	b = appendU32(b, 0) // isFixedPitch
	for range 4 {
		b = appendU32(b, 0) // memory usage hints
	}
	return b
}

// cmapEntry is one code point to glyph index mapping.
type cmapEntry struct {
	cp  rune
	gid int
}

// cmapEntries returns the character map of f sorted by code point.
func cmapEntries(f *font.Font) []cmapEntry {
	entries := make([]cmapEntry, 0, len(f.CharMap))
	for cp, gid := range f.CharMap {
		entries = append(entries, cmapEntry{cp: cp, gid: gid})
	}
	slices.SortFunc(entries, func(a, b cmapEntry) int { return int(a.cp - b.cp) })
	return entries
}

// cmapRun is a range of consecutive code points mapped to consecutive glyphs.
type cmapRun struct {
	start, end rune
	gid        int
}

func cmapRuns(entries []cmapEntry) []cmapRun {
	var runs []cmapRun
	for _, e := range entries {
		if n := len(runs); n > 0 {
			last := &runs[n-1]
			if e.cp == last.end+1 && e.gid == last.gid+int(e.cp-last.start) {
				last.end = e.cp
				continue
			}
		}
		runs = append(runs, cmapRun{start: e.cp, end: e.cp, gid: e.gid})
	}
	return runs
}

// buildCmap writes a format 4 subtable for the Basic Multilingual Plane and
// a format 12 subtable covering every code point, referenced from the
// Unicode (0,4) and Windows (3,1), (3,10) encoding records.
func buildCmap(entries []cmapEntry) []byte {
	var bmp []cmapEntry
	for _, e := range entries {
		if e.cp < 0xFFFF {
			bmp = append(bmp, e)
		}
	}
	f4 := buildCmapFormat4(cmapRuns(bmp))
	f12 := buildCmapFormat12(cmapRuns(entries))

	const numRecords = 3
	offF4 := 4 + 8*numRecords
	offF12 := offF4 + len(f4)

	b := make([]byte, 0, offF12+len(f12))
	b = appendU16(b, 0) // version
	b = appendU16(b, numRecords)
	b = appendU16(b, 0) // Unicode
	b = appendU16(b, 4) // Unicode full repertoire
	b = appendU32(b, uint32(offF12))
	b = appendU16(b, 3) // Windows
	b = appendU16(b, 1) // Unicode BMP
	b = appendU32(b, uint32(offF4))
	b = appendU16(b, 3)  // Windows
	b = appendU16(b, 10) // Unicode full repertoire
	b = appendU32(b, uint32(offF12))
	b = append(b, f4...)
	b = append(b, f12...)
	return b
}

func buildCmapFormat4(runs []cmapRun) []byte {
	// The mandatory 0xFFFF terminator segment maps to glyph 0.
	runs = append(runs, cmapRun{start: 0xFFFF, end: 0xFFFF, gid: 0})
	segCount := len(runs)
	entrySelector := log2floor(segCount)
	searchRange := 2 << entrySelector

	b := make([]byte, 0, 16+8*segCount)
	b = appendU16(b, 4)
	b = appendU16(b, 16+8*segCount)
	b = appendU16(b, 0) // language
	b = appendU16(b, 2*segCount)
	b = appendU16(b, searchRange)
	b = appendU16(b, entrySelector)
	b = appendU16(b, 2*segCount-searchRange)
	for _, r := range runs {
		b = appendU16(b, int(r.end))
	}
	b = appendU16(b, 0) // reservedPad
	for _, r := range runs {
		b = appendU16(b, int(r.start))
	}
	for _, r := range runs {
		delta := r.gid - int(r.start)
		if r.start == 0xFFFF {
			delta = 1
		}
		b = appendU16(b, delta) // idDelta, modulo 65536
	}
	for range runs {
		b = appendU16(b, 0) // idRangeOffset
	}
	return b
}

func buildCmapFormat12(runs []cmapRun) []byte {
	b := make([]byte, 0, 16+12*len(runs))
	b = appendU16(b, 12)
	b = appendU16(b, 0) // reserved
	b = appendU32(b, uint32(16+12*len(runs)))
	b = appendU32(b, 0) // language
	b = appendU32(b, uint32(len(runs)))
	for _, r := range runs {
		b = appendU32(b, uint32(r.start))
		b = appendU32(b, uint32(r.end))
		b = appendU32(b, uint32(r.gid))
	}
	return b
}

// Name table identifiers.
const (
	nameIDFamily     = 1
	nameIDSubfamily  = 2
	nameIDUniqueID   = 3
	nameIDFull       = 4
	nameIDVersion    = 5
	nameIDPostScript = 6

	platformMac     = 1
	platformWindows = 3
	encodingRoman   = 0
	encodingUCS2    = 1
	languageEnUS    = 0x0409
)

type nameRecord struct {
	platform, encoding, language, id int
	data                             []byte
}

// buildName writes the naming table. Every string gets a Windows UTF-16BE
// record; strings representable in Mac Roman also get a Macintosh record.
func buildName(f *font.Font) ([]byte, error) {
	strs := []struct {
		id int
		s  string
	}{
		{nameIDFamily, f.Family},
		{nameIDSubfamily, f.Style},
		{nameIDUniqueID, f.UniqueID},
		{nameIDFull, f.FullName()},
		{nameIDVersion, f.Version},
		{nameIDPostScript, PostScriptName(f.Family, f.Style)},
	}

	utf16 := xunicode.UTF16(xunicode.BigEndian, xunicode.IgnoreBOM).NewEncoder()
	macRoman := charmap.Macintosh.NewEncoder()

	var mac, win []nameRecord
	for _, e := range strs {
		if e.s == "" {
			continue
		}
		if data, err := macRoman.Bytes([]byte(e.s)); err == nil {
			mac = append(mac, nameRecord{platformMac, encodingRoman, 0, e.id, data})
		}
		data, err := utf16.Bytes([]byte(e.s))
		if err != nil {
			return nil, fmt.Errorf("name %d: %w", e.id, err)
		}
		win = append(win, nameRecord{platformWindows, encodingUCS2, languageEnUS, e.id, data})
	}
	records := append(mac, win...)

	storageOffset := 6 + 12*len(records)
	b := make([]byte, 0, storageOffset)
	b = appendU16(b, 0) // format
	b = appendU16(b, len(records))
	b = appendU16(b, storageOffset)

	var storage []byte
	for _, r := range records {
		if len(storage)+len(r.data) > math.MaxUint16 {
			return nil, fmt.Errorf("%w: name table too large", ErrCoordinateRange)
		}
		b = appendU16(b, r.platform)
		b = appendU16(b, r.encoding)
		b = appendU16(b, r.language)
		b = appendU16(b, r.id)
		b = appendU16(b, len(r.data))
		b = appendU16(b, len(storage))
		storage = append(storage, r.data...)
	}
	return append(b, storage...), nil
}

// PostScriptName derives a PostScript font name from family and style:
// printable ASCII without spaces or the characters []{}()<>/%, at most 63
// bytes, joined by a hyphen.
func PostScriptName(family, style string) string {
	clean := func(s string) string {
		var sb strings.Builder
		for _, r := range s {
			if r < 33 || r > 126 || strings.ContainsRune("[](){}<>/%", r) {
				continue
			}
			sb.WriteRune(r)
		}
		return sb.String()
	}
	name := clean(family)
	if st := clean(style); st != "" {
		name += "-" + st
	}
	if name == "" {
		name = "Untitled"
	}
	if len(name) > 63 {
		name = name[:63]
	}
	return name
}
