// Command strokefont builds TrueType fonts from glyph sheets and rewrites
// text into their private-use code points.
//
// Usage:
//
//	strokefont build -sheet glyphs.yaml -o font.ttf [-verify] [-v]
//	strokefont inspect font.ttf
//	strokefont translit -symbols symbols.yaml [-start 0xE000] [-font font.ttf] [-table] doc.json
package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/strokefont"
	"github.com/gogpu/strokefont/font/ttf"
	"github.com/gogpu/strokefont/translit"
)

var errUsage = errors.New("usage: strokefont build|inspect|translit [flags]")

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "strokefont:", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}
	switch args[0] {
	case "build":
		return runBuild(args[1:], stdout, stderr)
	case "inspect":
		return runInspect(args[1:], stdout, stderr)
	case "translit":
		return runTranslit(args[1:], stdout, stderr)
	default:
		return fmt.Errorf("unknown command %q\n%w", args[0], errUsage)
	}
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// runBuild replays a glyph sheet through an authoring session and exports
// the result.
func runBuild(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("build", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		sheetPath = fs.String("sheet", "", "glyph sheet (YAML)")
		output    = fs.String("o", "font.ttf", "output font file")
		verify    = fs.Bool("verify", false, "parse the written font back and check it")
		samples   = fs.Int("samples", 0, "curve sample count (0 keeps the default)")
		verbose   = fs.Bool("v", false, "debug logging")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *sheetPath == "" {
		return errors.New("build: -sheet is required")
	}
	strokefont.SetLogger(newLogger(stderr, *verbose))
	defer strokefont.SetLogger(nil)

	f, err := os.Open(*sheetPath)
	if err != nil {
		return err
	}
	sheet, err := strokefont.LoadSheet(f)
	f.Close()
	if err != nil {
		return err
	}
	specs, err := sheet.Specs()
	if err != nil {
		return err
	}

	opts := sheet.Options()
	if *samples > 0 {
		opts = append(opts, strokefont.WithSamples(*samples))
	}
	b, err := strokefont.NewBuilder(opts...)
	if err != nil {
		return err
	}

	plan := make([]rune, len(specs))
	for i, s := range specs {
		plan[i] = s.CodePoint
	}
	sess := strokefont.NewSession(plan, b)
	for _, spec := range specs {
		for _, st := range spec.Strokes {
			if err := sess.Apply(strokefont.AddStroke{Stroke: st}); err != nil {
				return err
			}
		}
		if err := sess.Apply(strokefont.CommitGlyph{CodePoint: spec.CodePoint}); err != nil {
			return err
		}
	}
	font, err := sess.Export(*output)
	if err != nil {
		return err
	}

	if *verify {
		data, err := os.ReadFile(*output)
		if err != nil {
			return err
		}
		if _, err := ttf.Verify(data, font); err != nil {
			return err
		}
	}
	fmt.Fprintf(stdout, "%s: %d glyphs\n", *output, font.NumGlyphs())
	return nil
}

// runInspect prints the glyph table of a font file.
func runInspect(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("inspect", flag.ContinueOnError)
	fs.SetOutput(stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("inspect: need exactly one font file")
	}
	data, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		return err
	}
	r, err := ttf.Verify(data, nil)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "family %q, %d glyphs, %d units per em\n", r.Family, r.NumGlyphs, r.UnitsPerEm)
	return nil
}

// runTranslit rewrites the strings of a JSON or YAML document and reports
// private-use characters the font lacks. A .json document is written back
// as JSON and anything else as YAML.
func runTranslit(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("translit", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		symbolsPath = fs.String("symbols", "", "symbol list (YAML sequence)")
		start       = fs.String("start", "0xE000", "first assigned code point")
		fontPath    = fs.String("font", "", "font to check the output against")
		showTable   = fs.Bool("table", false, "print the symbol table instead of converting")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *symbolsPath == "" {
		return errors.New("translit: -symbols is required")
	}
	first, err := strconv.ParseInt(*start, 0, 32)
	if err != nil {
		return fmt.Errorf("translit: -start: %w", err)
	}

	sf, err := os.Open(*symbolsPath)
	if err != nil {
		return err
	}
	symbols, err := translit.LoadSymbols(sf)
	sf.Close()
	if err != nil {
		return err
	}
	tbl, err := translit.NewTable(symbols, rune(first))
	if err != nil {
		return err
	}

	if *showTable {
		return encodeYAML(stdout, tbl)
	}

	if fs.NArg() != 1 {
		return errors.New("translit: need exactly one document")
	}
	src, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		return err
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(src, &doc); err != nil {
		return fmt.Errorf("translit: %s: %w", fs.Arg(0), err)
	}
	tbl.Document(&doc)

	if *fontPath != "" {
		if err := checkCoverage(*fontPath, &doc, stderr); err != nil {
			return err
		}
	}
	if strings.EqualFold(filepath.Ext(fs.Arg(0)), ".json") {
		return encodeJSON(stdout, &doc)
	}
	return encodeYAML(stdout, &doc)
}

func encodeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// encodeJSON writes a JSON document back as indented JSON with object keys
// sorted.
func encodeJSON(w io.Writer, doc *yaml.Node) error {
	var v any
	if err := doc.Decode(&v); err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// checkCoverage warns about private-use characters in doc that the font
// has no glyph for.
func checkCoverage(path string, doc *yaml.Node, stderr io.Writer) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var text bytes.Buffer
	collectStrings(doc, &text)

	missing, err := ttf.Coverage(data, text.String())
	if err != nil {
		return err
	}
	logger := newLogger(stderr, false)
	for _, r := range missing {
		if unicode.Is(unicode.Co, r) {
			logger.Warn("no glyph for private-use character", "codepoint", fmt.Sprintf("U+%04X", r), "font", path)
		}
	}
	return nil
}

func collectStrings(n *yaml.Node, buf *bytes.Buffer) {
	if n.Kind == yaml.ScalarNode && n.ShortTag() == "!!str" {
		buf.WriteString(n.Value)
		return
	}
	for _, c := range n.Content {
		collectStrings(c, buf)
	}
}
