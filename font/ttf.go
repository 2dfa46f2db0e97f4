// SPDX-FileCopyrightText : © 2026 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

// Package font implements a from-scratch TrueType outline parser (spec
// §4.3). It never delegates to the standard library's font packages:
// the point is to reproduce the reference loader_font_ttf.c's exact
// offset-table/head/maxp/cmap(format 4)/hhea+hmtx/loca/glyf walk,
// including its implicit-on-curve-point synthesis for quadratic
// contours, translated into idiomatic Go.
//
// Only simple (non-composite) glyph outlines are supported, matching
// the reference. A composite glyph is not an error: it resolves to an
// empty, zero-segment glyph, same as the C loader.
package font

import (
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"
	"sort"
)

const (
	magic               = 0x5F0F3CF5
	supportedSfntVer    = 0x10000
	maxTables           = 32
	maxEncodings        = 16
	maxGlyphs           = 15000
	maxContoursPerGlyph = 128
	maxPointsPerGlyph   = 512
)

// Sentinel errors, one per reference TtfError_* value that can surface
// independent of a specific table/offset (others are wrapped with
// fmt.Errorf for context, same information, less enum boilerplate).
var (
	ErrMalformed             = errors.New("font: malformed truetype data")
	ErrTooManyTables         = errors.New("font: too many tables")
	ErrTooManyEncodings      = errors.New("font: too many cmap encodings")
	ErrTooManyGlyphs         = errors.New("font: too many glyphs")
	ErrTooManyContours       = errors.New("font: glyph has too many contours")
	ErrTooManyPoints         = errors.New("font: glyph has too many points")
	ErrUnsupportedSfntVer    = errors.New("font: unsupported sfnt version, only truetype outlines are supported")
	ErrUnalignedTable        = errors.New("font: unaligned table")
	ErrTableChecksumFailed   = errors.New("font: table checksum failed")
	ErrTableDataMissing      = errors.New("font: table data missing")
	ErrHeadTableMissing      = errors.New("font: head table missing")
	ErrHeadTableMalformed    = errors.New("font: head table malformed")
	ErrHeadTableUnsupported  = errors.New("font: head table version unsupported")
	ErrMaxpTableMissing      = errors.New("font: maxp table missing")
	ErrCmapTableMissing      = errors.New("font: cmap table missing")
	ErrCmapNoSupportedFormat = errors.New("font: cmap table has no supported encoding")
	ErrCmapFormat4Malformed  = errors.New("font: cmap format4 encoding malformed")
	ErrHheaTableMissing      = errors.New("font: hhea table missing")
	ErrHmtxTableMissing      = errors.New("font: hmtx table missing")
	ErrHmtxTableMalformed    = errors.New("font: hmtx table malformed")
	ErrNoCharacters          = errors.New("font: contains no characters")
	ErrNoGlyphPoints         = errors.New("font: contains no glyph points")
	ErrNoGlyphSegments       = errors.New("font: contains no glyph segments")
	ErrLocaTableMissing      = errors.New("font: loca table missing")
	ErrLocaTableIncomplete   = errors.New("font: loca table missing entries for all glyphs")
	ErrLocaOutOfBounds       = errors.New("font: loca table references out-of-bounds glyph data")
	ErrGlyfTableMissing      = errors.New("font: glyf table missing")
	ErrGlyfEntryMalformed    = errors.New("font: glyf table entry malformed")
)

// SegmentType distinguishes straight edges from quadratic curves.
type SegmentType uint8

const (
	SegmentLine SegmentType = iota
	SegmentQuadraticBezier
)

// Char maps a unicode codepoint to a glyph index.
type Char struct {
	Code  uint16
	Glyph uint16
}

// Point is a contour point in the glyph's normalized outline space: the
// glyph's bounding box is shifted to the origin and scaled so its larger
// side spans 0..1.
type Point struct {
	X, Y float32
}

// Segment is one edge of a glyph's outline; PointIndex is the index of
// its first point in Font.Points. A line runs from PointIndex to
// PointIndex+1; a quadratic curve starts at PointIndex, has its control
// point at PointIndex+1 and ends at PointIndex+2.
type Segment struct {
	Type       SegmentType
	PointIndex uint32
}

// Glyph is one glyph's outline metadata; its segments are
// Font.Segments[SegmentIndex : SegmentIndex+SegmentCount].
type Glyph struct {
	Advance                          float32
	Size, OffsetX, OffsetY           float32
	SegmentIndex, SegmentCount       uint32
}

// Font is the fully decoded, renderer-agnostic result of parsing a TTF
// file: its character map, point pool, segment pool, and glyph table.
type Font struct {
	Characters []Char
	Points     []Point
	Segments   []Segment
	Glyphs     []Glyph
}

type reader struct {
	b []byte
}

func (r *reader) size() int { return len(r.b) }

func (r *reader) u8() (byte, error) {
	if len(r.b) < 1 {
		return 0, ErrMalformed
	}
	v := r.b[0]
	r.b = r.b[1:]
	return v, nil
}

func (r *reader) u16() (uint16, error) {
	if len(r.b) < 2 {
		return 0, ErrMalformed
	}
	v := binary.BigEndian.Uint16(r.b)
	r.b = r.b[2:]
	return v, nil
}

func (r *reader) u32() (uint32, error) {
	if len(r.b) < 4 {
		return 0, ErrMalformed
	}
	v := binary.BigEndian.Uint32(r.b)
	r.b = r.b[4:]
	return v, nil
}

func (r *reader) skip(n int) error {
	if len(r.b) < n {
		return ErrMalformed
	}
	r.b = r.b[n:]
	return nil
}

// fixed reads a 32 bit 16.16 signed fixed-point number.
func (r *reader) fixed() (float32, error) {
	u, err := r.u32()
	if err != nil {
		return 0, err
	}
	return float32(int32(u)) / (1 << 16), nil
}

type tableRecord struct {
	tag      string
	checksum uint32
	data     []byte
}

type offsetTable struct {
	sfntVersion uint32
	records     []tableRecord
}

func (t *offsetTable) find(tag string) ([]byte, bool) {
	for _, r := range t.records {
		if r.tag == tag {
			return r.data, true
		}
	}
	return nil, false
}

func readOffsetTable(data []byte) (offsetTable, error) {
	r := reader{data}
	var out offsetTable
	if r.size() < 12 {
		return out, ErrMalformed
	}
	sfntVersion, _ := r.u32()
	numTables, _ := r.u16()
	_, _ = r.u16() // searchRange
	_, _ = r.u16() // entrySelector
	_, _ = r.u16() // rangeShift
	out.sfntVersion = sfntVersion

	if numTables > maxTables {
		return out, ErrTooManyTables
	}
	if r.size() < int(numTables)*16 {
		return out, ErrMalformed
	}
	out.records = make([]tableRecord, numTables)
	for i := range out.records {
		if r.size() < 4 {
			return out, ErrMalformed
		}
		tag := string(r.b[:4])
		_ = r.skip(4)
		checksum, _ := r.u32()
		offset, _ := r.u32()
		length, _ := r.u32()
		if offset%4 != 0 {
			return out, ErrUnalignedTable
		}
		alignedLen := (length + 3) &^ 3 // align to 4 bytes, same as bits_align.
		if uint64(offset)+uint64(alignedLen) > uint64(len(data)) {
			return out, ErrTableDataMissing
		}
		out.records[i] = tableRecord{tag: tag, checksum: checksum, data: data[offset : offset+alignedLen]}
	}
	return out, nil
}

func tableChecksum(data []byte) uint32 {
	if len(data)%4 != 0 {
		return 0
	}
	r := reader{data}
	var sum uint32
	for r.size() > 0 {
		v, _ := r.u32()
		sum += v
	}
	return sum
}

func validateChecksums(t *offsetTable) error {
	for _, rec := range t.records {
		if rec.tag == "head" {
			// The head table's own checksum covers a whole-font
			// adjustment value; skip it like the reference does.
			continue
		}
		if tableChecksum(rec.data) != rec.checksum {
			return fmt.Errorf("%w: table %q", ErrTableChecksumFailed, rec.tag)
		}
	}
	return nil
}

type headTable struct {
	majorVersion     uint16
	magicNumber      uint32
	unitsPerEm       uint16
	invUnitsPerEm    float32
	indexToLocFormat int16
}

func readHeadTable(t *offsetTable) (headTable, error) {
	var out headTable
	data, ok := t.find("head")
	if !ok {
		return out, ErrHeadTableMissing
	}
	if len(data) < 54 {
		return out, ErrMalformed
	}
	r := reader{data}
	out.majorVersion, _ = r.u16()
	_, _ = r.u16() // minorVersion
	_, _ = r.fixed()
	_, _ = r.u32() // checksumAdjustment
	out.magicNumber, _ = r.u32()
	_, _ = r.u16() // flags
	out.unitsPerEm, _ = r.u16()
	_ = r.skip(16) // dateCreated, dateModified (i64 each)
	_, _ = r.u16() // glyphMinX
	_, _ = r.u16() // glyphMinY
	_, _ = r.u16() // glyphMaxX
	_, _ = r.u16() // glyphMaxY
	_, _ = r.u16() // macStyle
	_, _ = r.u16() // lowestRecPpem
	_, _ = r.u16() // fontDirectionHint
	indexToLoc, _ := r.u16()
	out.indexToLocFormat = int16(indexToLoc)
	// glyphDataFormat intentionally unread; not needed downstream.

	if out.unitsPerEm == 0 {
		return out, ErrHeadTableMalformed
	}
	out.invUnitsPerEm = 1.0 / float32(out.unitsPerEm)
	return out, nil
}

type maxpTable struct {
	numGlyphs uint16
}

func readMaxpTable(t *offsetTable) (maxpTable, error) {
	var out maxpTable
	data, ok := t.find("maxp")
	if !ok {
		return out, ErrMaxpTableMissing
	}
	if len(data) < 32 {
		return out, ErrMalformed
	}
	r := reader{data}
	_, _ = r.fixed()
	out.numGlyphs, _ = r.u16()
	return out, nil
}

type cmapEncoding struct {
	platformID, encodingID uint16
	data                   []byte
}

func readCmapTable(t *offsetTable) ([]cmapEncoding, error) {
	data, ok := t.find("cmap")
	if !ok {
		return nil, ErrCmapTableMissing
	}
	if len(data) < 4 {
		return nil, ErrMalformed
	}
	r := reader{data}
	_, _ = r.u16() // version
	numEncodings, _ := r.u16()
	if numEncodings > maxEncodings {
		return nil, ErrTooManyEncodings
	}
	if r.size() < int(numEncodings)*8 {
		return nil, ErrMalformed
	}
	out := make([]cmapEncoding, numEncodings)
	for i := range out {
		out[i].platformID, _ = r.u16()
		out[i].encodingID, _ = r.u16()
		offset, _ := r.u32()
		if int(offset) > len(data) {
			return nil, ErrMalformed
		}
		out[i].data = data[offset:]
	}
	return out, nil
}

func readCharactersFormat4(data []byte, numGlyphs uint16, out *[]Char) error {
	r := reader{data}
	if r.size() < 10 {
		return ErrCmapFormat4Malformed
	}
	_, _ = r.u16() // language
	doubleSegCount, _ := r.u16()
	segCount := int(doubleSegCount / 2)
	_, _ = r.u16() // searchRange
	_, _ = r.u16() // entrySelector
	_, _ = r.u16() // rangeShift
	if r.size() < segCount*8+2 {
		return ErrCmapFormat4Malformed
	}

	endCodes := make([]uint16, segCount)
	for i := range endCodes {
		endCodes[i], _ = r.u16()
	}
	_ = r.skip(2) // reservedPad
	startCodes := make([]uint16, segCount)
	for i := range startCodes {
		startCodes[i], _ = r.u16()
	}
	deltas := make([]uint16, segCount)
	for i := range deltas {
		deltas[i], _ = r.u16()
	}
	// rangeOffsets are relative to their own position in the file.
	rangeOffsetPos := make([]int, segCount)
	for i := range rangeOffsetPos {
		pos := len(data) - r.size()
		rangeOffset, _ := r.u16()
		if rangeOffset == 0 {
			rangeOffsetPos[i] = -1
		} else {
			rangeOffsetPos[i] = pos + int(rangeOffset)
		}
	}

	for seg := 0; seg < segCount; seg++ {
		start, end, delta := startCodes[seg], endCodes[seg], deltas[seg]
		if start == 0xFFFF || end == 0xFFFF {
			continue
		}
		for code := uint32(start); code <= uint32(end); code++ {
			var glyphIndex uint16
			if rangeOffsetPos[seg] >= 0 {
				idx := rangeOffsetPos[seg] + int(code-uint32(start))*2
				if idx+2 > len(data) {
					return ErrCmapFormat4Malformed
				}
				glyphIndex = binary.BigEndian.Uint16(data[idx:])
			} else {
				glyphIndex = uint16((code + uint32(delta)) % 65536)
			}
			if glyphIndex < numGlyphs {
				*out = append(*out, Char{Code: uint16(code), Glyph: glyphIndex})
			}
		}
	}
	return nil
}

func readCharacters(encodings []cmapEncoding, numGlyphs uint16) ([]Char, error) {
	var out []Char
	for _, enc := range encodings {
		if len(enc.data) < 4 {
			continue
		}
		formatNumber := binary.BigEndian.Uint16(enc.data)
		if formatNumber != 4 {
			continue
		}
		formatDataSize := binary.BigEndian.Uint16(enc.data[2:])
		if int(formatDataSize) < 4 || int(formatDataSize)-4 > len(enc.data)-4 {
			return nil, ErrCmapFormat4Malformed
		}
		if err := readCharactersFormat4(enc.data[4:4+int(formatDataSize)-4], numGlyphs, &out); err != nil {
			return nil, err
		}
		return out, nil
	}
	return nil, ErrCmapNoSupportedFormat
}

type hheaTable struct {
	numOfLongHorMetrics uint16
}

func readHheaTable(t *offsetTable) (hheaTable, error) {
	var out hheaTable
	data, ok := t.find("hhea")
	if !ok {
		return out, ErrHheaTableMissing
	}
	if len(data) < 36 {
		return out, ErrMalformed
	}
	r := reader{data}
	_, _ = r.fixed()
	_ = r.skip(3 * 2) // ascent, descent, lineGap
	_, _ = r.u16()    // advanceWidthMax
	_ = r.skip(3 * 2) // minLSB, maxLSB, xMaxExtent
	_ = r.skip(3 * 2) // caretSlopeRise/Run/Offset
	_ = r.skip(8)     // reserved
	_, _ = r.u16()    // metricDataFormat
	out.numOfLongHorMetrics, _ = r.u16()
	return out, nil
}

type horMetric struct {
	advanceWidth    uint16
	leftSideBearing int16
}

func readHorMetrics(t *offsetTable, numGlyphs uint16, hhea hheaTable) ([]horMetric, error) {
	data, ok := t.find("hmtx")
	if !ok {
		return nil, ErrHmtxTableMissing
	}
	r := reader{data}
	if r.size() < int(hhea.numOfLongHorMetrics)*4 {
		return nil, ErrHmtxTableMalformed
	}
	if hhea.numOfLongHorMetrics > numGlyphs {
		return nil, ErrMalformed
	}
	out := make([]horMetric, numGlyphs)
	for i := 0; i < int(hhea.numOfLongHorMetrics); i++ {
		aw, _ := r.u16()
		lsb, _ := r.u16()
		out[i] = horMetric{advanceWidth: aw, leftSideBearing: int16(lsb)}
	}
	remaining := int(numGlyphs) - int(hhea.numOfLongHorMetrics)
	if r.size() < remaining*2 {
		return nil, ErrHmtxTableMalformed
	}
	lastLong := 0
	if hhea.numOfLongHorMetrics > 0 {
		lastLong = int(hhea.numOfLongHorMetrics) - 1
	}
	for i := 0; i < remaining; i++ {
		lsb, _ := r.u16()
		out[lastLong+i] = horMetric{advanceWidth: out[lastLong].advanceWidth, leftSideBearing: int16(lsb)}
	}
	return out, nil
}

// glyphLocations resolves the loca+glyf tables into a []byte slice per
// glyph, per the reference's long/short loca variants.
func glyphLocations(t *offsetTable, numGlyphs uint16, head headTable) ([][]byte, error) {
	loca, ok := t.find("loca")
	if !ok {
		return nil, ErrLocaTableMissing
	}
	glyf, ok := t.find("glyf")
	if !ok {
		return nil, ErrGlyfTableMissing
	}
	out := make([][]byte, numGlyphs)
	r := reader{loca}
	if head.indexToLocFormat == 1 {
		if r.size() < int(numGlyphs)*4+4 {
			return nil, ErrLocaTableIncomplete
		}
		offsets := make([]uint32, int(numGlyphs)+1)
		for i := range offsets {
			offsets[i], _ = r.u32()
		}
		for i := 0; i < int(numGlyphs); i++ {
			start, end := offsets[i], offsets[i+1]
			if end < start || int(end) > len(glyf) {
				return nil, ErrLocaOutOfBounds
			}
			out[i] = glyf[start:end]
		}
		return out, nil
	}
	if r.size() < int(numGlyphs)*2+2 {
		return nil, ErrLocaTableIncomplete
	}
	offsets := make([]uint32, int(numGlyphs)+1)
	for i := range offsets {
		v, _ := r.u16()
		offsets[i] = uint32(v) * 2
	}
	for i := 0; i < int(numGlyphs); i++ {
		start, end := offsets[i], offsets[i+1]
		if end < start || int(end) > len(glyf) {
			return nil, ErrLocaOutOfBounds
		}
		out[i] = glyf[start:end]
	}
	return out, nil
}

const (
	flagOnCurvePoint             = 1 << 0
	flagXShortVector             = 1 << 1
	flagYShortVector             = 1 << 2
	flagRepeat                   = 1 << 3
	flagXIsSameOrPositiveVector  = 1 << 4
	flagYIsSameOrPositiveVector  = 1 << 5
)

type glyphHeader struct {
	numContours int16
	gridOriginX, gridOriginY float32
	gridScale                float32
	size, offsetX, offsetY   float32
}

func readGlyphHeader(r *reader, head headTable) (glyphHeader, error) {
	var out glyphHeader
	if r.size() < 10 {
		return out, ErrGlyfEntryMalformed
	}
	nc, _ := r.u16()
	out.numContours = int16(nc)
	minXu, _ := r.u16()
	minYu, _ := r.u16()
	maxXu, _ := r.u16()
	maxYu, _ := r.u16()
	minX, minY, maxX, maxY := int16(minXu), int16(minYu), int16(maxXu), int16(maxYu)

	gridWidth := int32(maxX) - int32(minX)
	gridHeight := int32(maxY) - int32(minY)
	gridSize := gridWidth
	if gridHeight > gridSize {
		gridSize = gridHeight
	}
	out.gridOriginX = float32(minX)
	out.gridOriginY = float32(minY)
	if gridSize != 0 {
		out.gridScale = 1.0 / float32(gridSize)
	}
	out.size = float32(gridSize) * head.invUnitsPerEm
	out.offsetX = float32(minX) * head.invUnitsPerEm
	out.offsetY = float32(minY) * head.invUnitsPerEm
	return out, nil
}

func readGlyphFlags(r *reader, count int) ([]byte, error) {
	out := make([]byte, 0, count)
	for len(out) < count {
		if r.size() == 0 {
			return nil, ErrGlyfEntryMalformed
		}
		flag, _ := r.u8()
		repeat := 0
		if flag&flagRepeat != 0 {
			rc, err := r.u8()
			if err != nil || rc == 0 {
				return nil, ErrGlyfEntryMalformed
			}
			repeat = int(rc)
		}
		out = append(out, flag)
		for ; repeat > 0 && len(out) < count; repeat-- {
			out = append(out, flag)
		}
	}
	if len(out) != count {
		return nil, ErrGlyfEntryMalformed
	}
	return out, nil
}

func readGlyphPoints(r *reader, header glyphHeader, flags []byte) ([]Point, error) {
	count := len(flags)
	xs := make([]int32, count)
	var xPos int32
	for i := 0; i < count; i++ {
		switch {
		case flags[i]&flagXShortVector != 0:
			if r.size() < 1 {
				return nil, ErrGlyfEntryMalformed
			}
			off, _ := r.u8()
			if flags[i]&flagXIsSameOrPositiveVector == 0 {
				xPos -= int32(off)
			} else {
				xPos += int32(off)
			}
		case flags[i]&flagXIsSameOrPositiveVector == 0:
			if r.size() < 2 {
				return nil, ErrGlyfEntryMalformed
			}
			off, _ := r.u16()
			xPos += int32(int16(off))
		}
		xs[i] = xPos
	}

	out := make([]Point, count)
	var yPos int32
	for i := 0; i < count; i++ {
		switch {
		case flags[i]&flagYShortVector != 0:
			if r.size() < 1 {
				return nil, ErrGlyfEntryMalformed
			}
			off, _ := r.u8()
			if flags[i]&flagYIsSameOrPositiveVector == 0 {
				yPos -= int32(off)
			} else {
				yPos += int32(off)
			}
		case flags[i]&flagYIsSameOrPositiveVector == 0:
			if r.size() < 2 {
				return nil, ErrGlyfEntryMalformed
			}
			off, _ := r.u16()
			yPos += int32(int16(off))
		}
		out[i] = Point{
			X: (float32(xs[i]) - header.gridOriginX) * header.gridScale,
			Y: (float32(yPos) - header.gridOriginY) * header.gridScale,
		}
	}
	return out, nil
}

// buildGlyph turns raw contour points/flags into explicit line and
// quadratic-bezier segments, synthesizing the implicit on-curve point
// between two consecutive off-curve points, ported verbatim from the
// reference's ttf_glyph_build.
func buildGlyph(endpoints []int, flags []byte, points []Point, outPoints *[]Point, outSegments *[]Segment) (segIndex, segCount uint32, err error) {
	segIndex = uint32(len(*outSegments))
	for c, end := range endpoints {
		start := 0
		if c > 0 {
			start = endpoints[c-1]
		}
		if end-start < 2 {
			continue
		}
		if start > end || end > len(points) {
			return segIndex, segCount, ErrGlyfEntryMalformed
		}

		*outPoints = append(*outPoints, points[start])

		for cur := start; cur != end; cur++ {
			isLast := cur+1 == end
			next := cur + 1
			if isLast {
				next = start
			}
			curOn := flags[cur]&flagOnCurvePoint != 0
			nextOn := flags[next]&flagOnCurvePoint != 0

			if nextOn {
				if curOn {
					*outSegments = append(*outSegments, Segment{Type: SegmentLine, PointIndex: uint32(len(*outPoints)) - 1})
					segCount++
				}
			} else {
				if !curOn {
					*outPoints = append(*outPoints, Point{
						X: (points[cur].X + points[next].X) * 0.5,
						Y: (points[cur].Y + points[next].Y) * 0.5,
					})
				}
				*outSegments = append(*outSegments, Segment{Type: SegmentQuadraticBezier, PointIndex: uint32(len(*outPoints)) - 1})
				segCount++
				if isLast {
					return segIndex, segCount, ErrGlyfEntryMalformed
				}
			}
			*outPoints = append(*outPoints, points[next])
		}
	}
	return segIndex, segCount, nil
}

func readGlyph(data []byte, metric horMetric, head headTable, outPoints *[]Point, outSegments *[]Segment) (Glyph, error) {
	g := Glyph{Advance: float32(metric.advanceWidth) * head.invUnitsPerEm}
	if len(data) == 0 {
		return g, nil // a space-like glyph with no outline data is valid.
	}
	r := reader{data}
	header, err := readGlyphHeader(&r, head)
	if err != nil {
		return g, err
	}
	g.Size, g.OffsetX, g.OffsetY = header.size, header.offsetX, header.offsetY

	if header.numContours == 0 {
		return g, nil
	}
	if header.numContours < 0 {
		// Composite glyph: unsupported, resolves to an empty outline
		// rather than a hard error (matches the reference).
		slog.Warn("font: composite glyph skipped, emitted without segments")
		return Glyph{}, nil
	}
	if header.numContours > maxContoursPerGlyph {
		return g, ErrTooManyContours
	}

	if r.size() < int(header.numContours)*2 {
		return g, ErrGlyfEntryMalformed
	}
	endpoints := make([]int, header.numContours)
	for i := range endpoints {
		v, _ := r.u16()
		endpoints[i] = int(v) + 1 // one-past-the-last, matching the reference's "+1".
	}

	if r.size() < 2 {
		return g, ErrGlyfEntryMalformed
	}
	instructionsLength, _ := r.u16()
	if err := r.skip(int(instructionsLength)); err != nil {
		return g, ErrGlyfEntryMalformed
	}

	numPoints := endpoints[len(endpoints)-1]
	if numPoints > maxPointsPerGlyph {
		return g, ErrTooManyPoints
	}

	flags, err := readGlyphFlags(&r, numPoints)
	if err != nil {
		return g, err
	}
	points, err := readGlyphPoints(&r, header, flags)
	if err != nil {
		return g, err
	}

	segIndex, segCount, err := buildGlyph(endpoints, flags, points, outPoints, outSegments)
	if err != nil {
		return g, err
	}
	g.SegmentIndex, g.SegmentCount = segIndex, segCount
	return g, nil
}

// Parse decodes a TrueType font from raw file bytes.
func Parse(data []byte) (*Font, error) {
	table, err := readOffsetTable(data)
	if err != nil {
		return nil, err
	}
	if table.sfntVersion != supportedSfntVer {
		return nil, ErrUnsupportedSfntVer
	}
	if err := validateChecksums(&table); err != nil {
		return nil, err
	}

	head, err := readHeadTable(&table)
	if err != nil {
		return nil, err
	}
	if head.magicNumber != magic {
		return nil, ErrHeadTableMalformed
	}
	if head.majorVersion != 0 && head.majorVersion != 1 {
		return nil, ErrHeadTableUnsupported
	}

	maxp, err := readMaxpTable(&table)
	if err != nil {
		return nil, err
	}
	if maxp.numGlyphs > maxGlyphs {
		return nil, ErrTooManyGlyphs
	}

	encodings, err := readCmapTable(&table)
	if err != nil {
		return nil, err
	}
	characters, err := readCharacters(encodings, maxp.numGlyphs)
	if err != nil {
		return nil, err
	}
	if len(characters) == 0 {
		return nil, ErrNoCharacters
	}
	sort.Slice(characters, func(i, j int) bool { return characters[i].Code < characters[j].Code })

	hhea, err := readHheaTable(&table)
	if err != nil {
		return nil, err
	}
	locations, err := glyphLocations(&table, maxp.numGlyphs, head)
	if err != nil {
		return nil, err
	}
	metrics, err := readHorMetrics(&table, maxp.numGlyphs, hhea)
	if err != nil {
		return nil, err
	}

	font := &Font{Characters: characters}
	glyphs := make([]Glyph, maxp.numGlyphs)
	for i := range glyphs {
		g, err := readGlyph(locations[i], metrics[i], head, &font.Points, &font.Segments)
		if err != nil {
			return nil, fmt.Errorf("%w: glyph %d", err, i)
		}
		glyphs[i] = g
	}
	font.Glyphs = glyphs

	if len(font.Points) == 0 {
		return nil, ErrNoGlyphPoints
	}
	if len(font.Segments) == 0 {
		return nil, ErrNoGlyphSegments
	}
	return font, nil
}

// Lookup resolves a unicode codepoint to its glyph, falling back to
// glyph 0 (the conventional ".notdef"/"missing" glyph) when cp is not
// mapped, same as the reference's asset_font_lookup/asset_font_missing
// pair.
func (f *Font) Lookup(cp rune) (Glyph, bool) {
	i := sort.Search(len(f.Characters), func(i int) bool { return f.Characters[i].Code >= uint16(cp) })
	if i < len(f.Characters) && uint16(cp) >= 0 && f.Characters[i].Code == uint16(cp) {
		return f.Glyphs[f.Characters[i].Glyph], true
	}
	return f.Glyphs[0], false
}

// GlyphSegments returns the segments belonging to g.
func (f *Font) GlyphSegments(g Glyph) []Segment {
	return f.Segments[g.SegmentIndex : g.SegmentIndex+g.SegmentCount]
}
