// SPDX-FileCopyrightText : © 2026 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package fonttex

import (
	"testing"

	"github.com/galvanized/forge/font"
)

// squareFont builds a minimal font.Font with two glyphs: .notdef (empty)
// and a unit square outline at index 1, mapped from codepoint cp.
func squareFont(cp rune) *font.Font {
	points := []font.Point{
		{X: 0, Y: 0},
		{X: 1, Y: 0},
		{X: 1, Y: 1},
		{X: 0, Y: 1},
		{X: 0, Y: 0},
	}
	segments := []font.Segment{
		{Type: font.SegmentLine, PointIndex: 0},
		{Type: font.SegmentLine, PointIndex: 1},
		{Type: font.SegmentLine, PointIndex: 2},
		{Type: font.SegmentLine, PointIndex: 3},
	}
	glyphs := []font.Glyph{
		{Advance: 1, Size: 1},
		{Advance: 1, Size: 1, SegmentIndex: 0, SegmentCount: 4},
	}
	return &font.Font{
		Characters: []font.Char{{Code: uint16(cp), Glyph: 1}},
		Points:     points,
		Segments:   segments,
		Glyphs:     glyphs,
	}
}

// TestGenerateProducesSortedLookupTable verifies that baking a small
// request set yields an atlas whose glyph table is sorted, includes the
// notdef cell at index 0, and exactly matches the requests.
func TestGenerateProducesSortedLookupTable(t *testing.T) {
	f := squareFont('A')
	atlas, err := Generate([]*font.Font{f}, []Request{{Code: 'A'}}, DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(atlas.Glyphs) != 2 {
		t.Fatalf("expected notdef plus one baked glyph, got %d", len(atlas.Glyphs))
	}
	if atlas.Glyphs[0].Code != 0 || atlas.Glyphs[0].GlyphIndex != 0 {
		t.Errorf("expected index 0 to be the notdef entry, got %+v", atlas.Glyphs[0])
	}
	if atlas.Glyphs[1].Code != 'A' || atlas.Glyphs[1].GlyphIndex != 1 {
		t.Errorf("expected code 'A' at cell 1, got %+v", atlas.Glyphs[1])
	}
}

func TestGenerateRejectsEmptyRequestSet(t *testing.T) {
	if _, err := Generate([]*font.Font{squareFont('A')}, nil, DefaultOptions()); err != ErrNoCharacters {
		t.Errorf("expected ErrNoCharacters, got %v", err)
	}
}

func TestGenerateRejectsEmptyFontSet(t *testing.T) {
	if _, err := Generate(nil, []Request{{Code: 'A'}}, DefaultOptions()); err != ErrNoFonts {
		t.Errorf("expected ErrNoFonts, got %v", err)
	}
}

func TestGenerateRejectsNonPowerOfTwoSizes(t *testing.T) {
	opts := Options{Size: 100, GlyphSize: 32, Border: 0.125}
	if _, err := Generate([]*font.Font{squareFont('A')}, []Request{{Code: 'A'}}, opts); err != ErrCellTooSmall {
		t.Errorf("expected ErrCellTooSmall, got %v", err)
	}
}

// TestGenerateBakesEachRequestAgainstItsOwnFont reproduces a bundle that
// references two distinct font assets: each request must be rasterized
// against the outlines of the font named by its own FontIndex, not
// always the first font in the slice.
func TestGenerateBakesEachRequestAgainstItsOwnFont(t *testing.T) {
	fontA := squareFont('A')
	fontB := squareFont('B') // 'B' maps to the same square glyph, but a distinct font instance

	requests := []Request{
		{FontIndex: 0, Code: 'A'},
		{FontIndex: 1, Code: 'B'},
	}
	atlas, err := Generate([]*font.Font{fontA, fontB}, requests, DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	gA, ok := atlas.Lookup('A', VariationRegular)
	if !ok {
		t.Fatal("expected 'A' to be baked")
	}
	gB, ok := atlas.Lookup('B', VariationRegular)
	if !ok {
		t.Fatal("expected 'B' to be baked")
	}
	if gA.GlyphIndex == gB.GlyphIndex {
		t.Fatal("expected distinct cells for the two font's glyphs")
	}

	// fontB has no glyph mapped for 'A' at all; requesting it must fail
	// rather than silently resolve against fontA.
	onlyB := []Request{{FontIndex: 0, Code: 'A'}}
	if _, err := Generate([]*font.Font{fontB}, onlyB, DefaultOptions()); err != ErrGlyphNotFound {
		t.Errorf("expected ErrGlyphNotFound when the named font has no mapping, got %v", err)
	}
}

func TestGenerateRecordsWhitespaceAsSentinel(t *testing.T) {
	f := squareFont('A')
	requests := []Request{{Code: ' '}, {Code: 'A'}}
	atlas, err := Generate([]*font.Font{f}, requests, DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	space, ok := atlas.Lookup(' ', VariationRegular)
	if !ok {
		t.Fatal("expected whitespace entry in the glyph table")
	}
	if space.GlyphIndex != GlyphSentinel {
		t.Errorf("expected whitespace entry to carry the sentinel index, got %d", space.GlyphIndex)
	}
}

func TestGenerateLinearMajorLayout(t *testing.T) {
	f := squareFont('A')
	opts := Options{Size: 64, GlyphSize: 32, Border: 0.125}
	atlas, err := Generate([]*font.Font{f}, []Request{{Code: 'A'}}, opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	g, ok := atlas.Lookup('A', VariationRegular)
	if !ok {
		t.Fatal("expected 'A' to be baked")
	}
	// glyphsPerDim = 2; cell index 1 sits at (32,0).
	if g.X != 32 || g.Y != 0 {
		t.Errorf("expected cell 1 at (32,0), got (%d,%d)", g.X, g.Y)
	}
}

func TestGenerateRejectsOverflowingAtlas(t *testing.T) {
	f := squareFont('A')
	opts := Options{Size: 32, GlyphSize: 32, Border: 0.125} // glyphsPerDim=1, only room for the notdef cell
	if _, err := Generate([]*font.Font{f}, []Request{{Code: 'A'}}, opts); err != ErrAtlasTooSmall {
		t.Errorf("expected ErrAtlasTooSmall, got %v", err)
	}
}

func TestLookupFallsBackToRegularVariation(t *testing.T) {
	f := squareFont('A')
	atlas, err := Generate([]*font.Font{f}, []Request{{Code: 'A', Variation: VariationRegular}}, DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := atlas.Lookup('A', VariationBold); !ok {
		t.Error("expected fallback from Bold to Regular to succeed")
	}
	if g, ok := atlas.Lookup('Z', VariationRegular); !ok || g.GlyphIndex != 0 {
		t.Error("expected lookup of an unbaked codepoint to fall back to the notdef cell")
	}
}

// TestSignedDistanceSignConvention verifies that outside the outline is
// positive, inside is negative.
func TestSignedDistanceSignConvention(t *testing.T) {
	segs := []lineSeg{
		{x0: 0, y0: 0, x1: 1, y1: 0},
		{x0: 1, y0: 0, x1: 1, y1: 1},
		{x0: 1, y0: 1, x1: 0, y1: 1},
		{x0: 0, y0: 1, x1: 0, y1: 0},
	}
	if d := signedDistance(0.5, 0.5, segs); d >= 0 {
		t.Errorf("expected negative distance inside the square, got %v", d)
	}
	if d := signedDistance(2.0, 2.0, segs); d <= 0 {
		t.Errorf("expected positive distance outside the square, got %v", d)
	}
}

func TestInsideEvenOddDetectsContainment(t *testing.T) {
	segs := []lineSeg{
		{x0: 0, y0: 0, x1: 1, y1: 0},
		{x0: 1, y0: 0, x1: 1, y1: 1},
		{x0: 1, y0: 1, x1: 0, y1: 1},
		{x0: 0, y0: 1, x1: 0, y1: 0},
	}
	if !insideEvenOdd(0.5, 0.5, segs) {
		t.Error("expected center point to be inside")
	}
	if insideEvenOdd(-0.5, 0.5, segs) {
		t.Error("expected point left of the square to be outside")
	}
}
