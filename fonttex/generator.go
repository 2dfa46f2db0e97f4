// SPDX-FileCopyrightText : © 2026 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

// Package fonttex rasterizes one or more parsed font.Font values into a
// single signed-distance-field atlas texture, replacing the model
// codebase's old bmfont-oriented SDF tool with a generator driven
// directly off the bespoke TTF parser in package font. Each requested
// glyph is laid out into a fixed-size cell; every texel stores the
// signed distance (in the glyph's normalized outline units, see
// font.Point) from the texel center to the nearest outline edge,
// clamped to Options.Border and mapped onto 0..255, positive outside
// the glyph and negative inside,
// matching this module's sign convention (see DESIGN.md's Open
// Question decision).
package fonttex

import (
	"errors"
	"math"
	"sort"
	"unicode"

	"github.com/galvanized/forge/font"
	"github.com/galvanized/forge/texture"
)

var (
	ErrNoFonts       = errors.New("fonttex: no fonts supplied")
	ErrNoCharacters  = errors.New("fonttex: no characters requested")
	ErrCellTooSmall  = errors.New("fonttex: size and glyph size must be positive powers of two")
	ErrAtlasTooSmall = errors.New("fonttex: atlas has no room for another glyph cell")
	ErrFontIndex     = errors.New("fonttex: request names a font index outside the supplied font list")
	ErrGlyphNotFound = errors.New("fonttex: font has no glyph for codepoint and no fallback available")
)

// GlyphSentinel marks an AtlasGlyph that carries advance metrics only —
// a whitespace character with no baked cell.
const GlyphSentinel = ^uint32(0)

// Variation distinguishes alternate renderings of the same codepoint,
// e.g. bold/italic faces baked into one atlas.
type Variation uint8

const (
	VariationRegular Variation = iota
	VariationBold
	VariationItalic
)

// AtlasGlyph is one baked cell's placement and metrics within the
// generated atlas, or — when GlyphIndex is GlyphSentinel — a whitespace
// entry carrying only advance metrics.
type AtlasGlyph struct {
	Code       uint16
	Variation  Variation
	GlyphIndex uint32 // cell index in the atlas, or GlyphSentinel
	X, Y       uint32 // cell origin in texels; meaningless when GlyphIndex is the sentinel
	Width      uint32 // cell size, in texels
	Advance    float32
	OffsetX    float32
	OffsetY    float32
	GlyphSize  float32
	Border     float32
}

// Request names one (font, codepoint, variation) triple to bake, plus
// the per-font layout adjustments (yOffset, spacing) the bundle applies
// to every character it contributes.
type Request struct {
	FontIndex int
	Code      rune
	Variation Variation
	YOffset   float32
	Spacing   float32
}

// Atlas is the generator's output: a single-channel distance-field
// texture plus a sorted lookup table from (code, variation) to cell.
type Atlas struct {
	Texture *texture.Texture
	Glyphs  []AtlasGlyph
}

// Lookup finds the baked glyph for (code, variation), falling back to
// VariationRegular if the exact variation was not baked, and to index 0
// (the missing-glyph cell) on a complete miss.
func (a *Atlas) Lookup(code rune, v Variation) (AtlasGlyph, bool) {
	if g, ok := a.find(uint16(code), v); ok {
		return g, true
	}
	if v != VariationRegular {
		if g, ok := a.find(uint16(code), VariationRegular); ok {
			return g, true
		}
	}
	return a.find(0, VariationRegular)
}

func (a *Atlas) find(code uint16, v Variation) (AtlasGlyph, bool) {
	i := sort.Search(len(a.Glyphs), func(i int) bool {
		if a.Glyphs[i].Code != code {
			return a.Glyphs[i].Code >= code
		}
		return a.Glyphs[i].Variation >= v
	})
	if i < len(a.Glyphs) && a.Glyphs[i].Code == code && a.Glyphs[i].Variation == v {
		return a.Glyphs[i], true
	}
	return AtlasGlyph{}, false
}

// Options configures atlas generation. Size and GlyphSize must be
// powers of two; GlyphsPerDim recovers the cell grid as Size/GlyphSize.
type Options struct {
	Size      uint32  // atlas width and height, in texels
	GlyphSize uint32  // texels per glyph cell, including border
	Border    float32 // distance beyond the glyph a cell represents, in the glyph's normalized outline units; also the clamp magnitude for the stored distance
}

// DefaultOptions mirrors the reference generator's bmfont-era defaults.
func DefaultOptions() Options {
	return Options{Size: 512, GlyphSize: 32, Border: 0.125}
}

func isPowerOfTwo(v uint32) bool { return v != 0 && v&(v-1) == 0 }

// Generate rasterizes one SDF cell per requested (font, code, variation)
// into a single u8, single-channel atlas texture. Cells are assigned
// linear-major: cell index n sits at (n*GlyphSize mod Size,
// (n*GlyphSize/Size)*GlyphSize). Unused texels are pre-initialized to
// 0xFF (maximum distance) before any cell is rasterized. Index 0 is
// always the first font's .notdef glyph, baked unconditionally whether
// or not requests name it explicitly. Whitespace codepoints are
// recorded with GlyphSentinel and contribute no cell.
func Generate(fonts []*font.Font, requests []Request, opts Options) (*Atlas, error) {
	if len(fonts) == 0 {
		return nil, ErrNoFonts
	}
	if len(requests) == 0 {
		return nil, ErrNoCharacters
	}
	if opts.Size == 0 || opts.GlyphSize == 0 || !isPowerOfTwo(opts.Size) || !isPowerOfTwo(opts.GlyphSize) {
		return nil, ErrCellTooSmall
	}
	glyphsPerDim := opts.Size / opts.GlyphSize
	maxCells := uint32(glyphsPerDim) * uint32(glyphsPerDim)

	pixels := make([]byte, int(opts.Size)*int(opts.Size))
	for i := range pixels {
		pixels[i] = 0xFF
	}

	glyphs := make([]AtlasGlyph, 0, len(requests)+1)

	notdef := fonts[0].Glyphs[0]
	nextIndex := uint32(0)
	notdefX, notdefY := cellOrigin(nextIndex, opts)
	rasterizeCell(pixels, int(opts.Size), int(notdefX), int(notdefY), int(opts.GlyphSize), fonts[0], notdef, opts)
	glyphs = append(glyphs, cellGlyph(0, VariationRegular, nextIndex, opts, notdef, 0, 0))
	nextIndex++

	for _, req := range requests {
		if req.FontIndex < 0 || req.FontIndex >= len(fonts) {
			return nil, ErrFontIndex
		}
		f := fonts[req.FontIndex]
		glyph, found := f.Lookup(req.Code)

		if unicode.IsSpace(req.Code) {
			glyphs = append(glyphs, AtlasGlyph{
				Code:       uint16(req.Code),
				Variation:  req.Variation,
				GlyphIndex: GlyphSentinel,
				Advance:    glyph.Advance + req.Spacing,
				OffsetX:    glyph.OffsetX,
				OffsetY:    glyph.OffsetY + req.YOffset,
				GlyphSize:  glyph.Size,
				Border:     opts.Border,
			})
			continue
		}
		if !found && req.Code != 0 {
			return nil, ErrGlyphNotFound
		}

		if nextIndex >= maxCells {
			return nil, ErrAtlasTooSmall
		}
		idx := nextIndex
		nextIndex++
		cellX, cellY := cellOrigin(idx, opts)
		rasterizeCell(pixels, int(opts.Size), int(cellX), int(cellY), int(opts.GlyphSize), f, glyph, opts)
		glyphs = append(glyphs, cellGlyph(uint16(req.Code), req.Variation, idx, opts, glyph, req.YOffset, req.Spacing))
	}

	sort.Slice(glyphs, func(i, j int) bool {
		if glyphs[i].Code != glyphs[j].Code {
			return glyphs[i].Code < glyphs[j].Code
		}
		return glyphs[i].Variation < glyphs[j].Variation
	})

	tex := texture.Create(pixels, opts.Size, opts.Size, 1, 1, 1, texture.U8, 0)
	return &Atlas{Texture: tex, Glyphs: glyphs}, nil
}

func cellGlyph(code uint16, v Variation, idx uint32, opts Options, g font.Glyph, yOffset, spacing float32) AtlasGlyph {
	cellX, cellY := cellOrigin(idx, opts)
	return AtlasGlyph{
		Code:       code,
		Variation:  v,
		GlyphIndex: idx,
		X:          cellX,
		Y:          cellY,
		Width:      opts.GlyphSize,
		Advance:    g.Advance + spacing,
		OffsetX:    g.OffsetX,
		OffsetY:    g.OffsetY + yOffset,
		GlyphSize:  g.Size,
		Border:     opts.Border,
	}
}

func cellOrigin(idx uint32, opts Options) (x, y uint32) {
	x = (idx * opts.GlyphSize) % opts.Size
	y = (idx * opts.GlyphSize / opts.Size) * opts.GlyphSize
	return x, y
}

// rasterizeCell fills one GlyphSize x GlyphSize square of pixels (within
// an atlasSize-wide single-channel u8 buffer, origin at cellX,cellY)
// with the glyph's signed distance field: the distance is the only
// payload, stored directly as the texel value.
func rasterizeCell(pixels []byte, atlasSize, cellX, cellY, cellSize int, f *font.Font, g font.Glyph, opts Options) {
	segs := flattenSegments(f, g)

	for py := 0; py < cellSize; py++ {
		for px := 0; px < cellSize; px++ {
			u := (float32(px)+0.5)/float32(cellSize)*(1+2*opts.Border) - opts.Border
			v := (float32(py)+0.5)/float32(cellSize)*(1+2*opts.Border) - opts.Border

			dist := signedDistance(u, v, segs)
			normalized := clampF32(dist/opts.Border, -1, 1)
			value := (normalized + 1) * 0.5 // remap [-1,1] -> [0,1] for u8 storage

			off := (cellY+py)*atlasSize + (cellX + px)
			pixels[off] = byte(value * 255)
		}
	}
}

type lineSeg struct{ x0, y0, x1, y1 float32 }

// flattenSegments expands a glyph's line/quadratic outline into
// straight-line segments for distance and winding computation,
// subdividing each quadratic curve into a fixed number of steps. A
// segment's points start at its PointIndex (see font.Segment).
func flattenSegments(f *font.Font, g font.Glyph) []lineSeg {
	const quadSteps = 8
	var out []lineSeg

	for _, seg := range f.GlyphSegments(g) {
		start := f.Points[seg.PointIndex]
		switch seg.Type {
		case font.SegmentLine:
			end := f.Points[seg.PointIndex+1]
			out = append(out, lineSeg{start.X, start.Y, end.X, end.Y})
		case font.SegmentQuadraticBezier:
			ctrl := f.Points[seg.PointIndex+1]
			end := f.Points[seg.PointIndex+2]
			cur := start
			for s := 1; s <= quadSteps; s++ {
				t := float32(s) / float32(quadSteps)
				pt := quadPoint(start, ctrl, end, t)
				out = append(out, lineSeg{cur.X, cur.Y, pt.X, pt.Y})
				cur = pt
			}
		}
	}
	return out
}

func quadPoint(p0, p1, p2 font.Point, t float32) font.Point {
	mt := 1 - t
	x := mt*mt*p0.X + 2*mt*t*p1.X + t*t*p2.X
	y := mt*mt*p0.Y + 2*mt*t*p1.Y + t*t*p2.Y
	return font.Point{X: x, Y: y}
}

// signedDistance returns the distance from (u,v) to the nearest edge in
// segs, negated when (u,v) is inside the outline under the even-odd
// fill rule.
func signedDistance(u, v float32, segs []lineSeg) float32 {
	if len(segs) == 0 {
		return 1e9
	}
	best := float32(math.MaxFloat32)
	for _, s := range segs {
		d := distToSegment(u, v, s)
		if d < best {
			best = d
		}
	}
	if insideEvenOdd(u, v, segs) {
		return -best
	}
	return best
}

func distToSegment(px, py float32, s lineSeg) float32 {
	dx, dy := s.x1-s.x0, s.y1-s.y0
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		ddx, ddy := px-s.x0, py-s.y0
		return float32(math.Sqrt(float64(ddx*ddx + ddy*ddy)))
	}
	t := ((px-s.x0)*dx + (py-s.y0)*dy) / lenSq
	t = clampF32(t, 0, 1)
	cx := s.x0 + t*dx
	cy := s.y0 + t*dy
	ddx, ddy := px-cx, py-cy
	return float32(math.Sqrt(float64(ddx*ddx + ddy*ddy)))
}

// insideEvenOdd casts a ray along +X from (px,py) and counts outline
// crossings; an odd count means the point is inside.
func insideEvenOdd(px, py float32, segs []lineSeg) bool {
	crossings := 0
	for _, s := range segs {
		y0, y1 := s.y0, s.y1
		if (y0 > py) == (y1 > py) {
			continue
		}
		t := (py - y0) / (y1 - y0)
		x := s.x0 + t*(s.x1-s.x0)
		if x > px {
			crossings++
		}
	}
	return crossings%2 == 1
}

func clampF32(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
