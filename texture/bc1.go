// SPDX-FileCopyrightText : © 2026 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package texture

// bc1.go ports the reference BC1/S3TC block compressor (core_bc.h /
// bc.c): per 4x4 block, fit a line through the block's color extent in
// RGB565 space, inset the endpoints to counter outlier pull, derive the
// standard four-color interpolated palette, and pack the nearest
// palette index per texel into 2 bits.

// bc1Block is the 8-byte encoded form of one 4x4 texel block: two
// RGB565 endpoints followed by sixteen 2-bit palette indices.
type bc1Block [8]byte

// EncodeBC1 compresses an RGBA8 image (widthxheight, 4 bytes per texel,
// row-major) into BC1 blocks. Width and height need not be multiples of
// 4; partial edge blocks repeat their last valid texel to pad (core_bc
// block_extract's edge-clamp behavior).
func EncodeBC1(rgba []byte, width, height int) []byte {
	blocksX := (width + 3) / 4
	blocksY := (height + 3) / 4
	out := make([]byte, 0, blocksX*blocksY*8)

	for by := 0; by < blocksY; by++ {
		for bx := 0; bx < blocksX; bx++ {
			block := extractBlock(rgba, width, height, bx*4, by*4)
			enc := encodeBlock(block)
			out = append(out, enc[:]...)
		}
	}
	return out
}

// extractBlock reads the 16 texels of the block at (x0,y0), clamping
// reads past the image edge to the last valid row/column.
func extractBlock(rgba []byte, width, height, x0, y0 int) [16][3]uint8 {
	var block [16][3]uint8
	for j := 0; j < 4; j++ {
		y := y0 + j
		if y >= height {
			y = height - 1
		}
		for i := 0; i < 4; i++ {
			x := x0 + i
			if x >= width {
				x = width - 1
			}
			off := (y*width + x) * 4
			block[j*4+i] = [3]uint8{rgba[off], rgba[off+1], rgba[off+2]}
		}
	}
	return block
}

// encodeBlock fits and packs one 4x4 block (bc1_block_compress).
func encodeBlock(block [16][3]uint8) bc1Block {
	minC, maxC := boundingBox(block)
	if minC == maxC {
		// Flat block: both endpoints identical, every index 0.
		c := to565(minC)
		var out bc1Block
		out[0], out[1] = byte(c), byte(c>>8)
		out[2], out[3] = byte(c), byte(c>>8)
		return out
	}

	c0, c1 := insetEndpoints(minC, maxC)
	e0, e1 := to565(c0), to565(c1)
	if e0 < e1 {
		e0, e1 = e1, e0
	}

	palette := buildPalette(e0, e1)
	var out bc1Block
	out[0], out[1] = byte(e0), byte(e0>>8)
	out[2], out[3] = byte(e1), byte(e1>>8)

	var indices uint32
	for i := 15; i >= 0; i-- {
		idx := nearestPaletteIndex(block[i], palette)
		indices = indices<<2 | uint32(idx)
	}
	out[4] = byte(indices)
	out[5] = byte(indices >> 8)
	out[6] = byte(indices >> 16)
	out[7] = byte(indices >> 24)
	return out
}

func boundingBox(block [16][3]uint8) (min, max [3]uint8) {
	min, max = block[0], block[0]
	for _, c := range block[1:] {
		for k := 0; k < 3; k++ {
			if c[k] < min[k] {
				min[k] = c[k]
			}
			if c[k] > max[k] {
				max[k] = c[k]
			}
		}
	}
	return min, max
}

// insetEndpoints shrinks the bounding-box diagonal by 1/16th toward its
// center, the "inset" trick that counters the pull of single-texel
// outliers on the fitted line (core_bc's BC1_INSET_SHIFT).
func insetEndpoints(min, max [3]uint8) (c0, c1 [3]uint8) {
	for k := 0; k < 3; k++ {
		lo, hi := int(min[k]), int(max[k])
		inset := (hi - lo) >> 4
		lo2 := lo + inset
		hi2 := hi - inset
		if lo2 > hi2 {
			lo2, hi2 = hi2, lo2
		}
		c0[k] = clampByte(lo2)
		c1[k] = clampByte(hi2)
	}
	return c0, c1
}

func clampByte(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// to565 quantizes an 8-bit RGB triple to a packed RGB565 word.
func to565(c [3]uint8) uint16 {
	r := uint16(c[0]) >> 3
	g := uint16(c[1]) >> 2
	b := uint16(c[2]) >> 3
	return r<<11 | g<<5 | b
}

func from565(c uint16) [3]uint8 {
	r := uint8((c>>11)&0x1F) << 3
	g := uint8((c>>5)&0x3F) << 2
	b := uint8(c&0x1F) << 3
	return [3]uint8{r, g, b}
}

// buildPalette derives the standard BC1 four-color palette for ordered
// endpoints e0 > e1: the endpoints themselves plus two interpolated
// midpoints at 1/3 and 2/3.
func buildPalette(e0, e1 uint16) [4][3]uint8 {
	c0, c1 := from565(e0), from565(e1)
	var p [4][3]uint8
	p[0] = c0
	p[1] = c1
	for k := 0; k < 3; k++ {
		p[2][k] = clampByte((2*int(c0[k]) + int(c1[k])) / 3)
		p[3][k] = clampByte((int(c0[k]) + 2*int(c1[k])) / 3)
	}
	return p
}

func nearestPaletteIndex(c [3]uint8, palette [4][3]uint8) uint8 {
	best := 0
	bestDist := colorDistSq(c, palette[0])
	for i := 1; i < 4; i++ {
		d := colorDistSq(c, palette[i])
		if d < bestDist {
			bestDist = d
			best = i
		}
	}
	return uint8(best)
}

func colorDistSq(a, b [3]uint8) int {
	dr := int(a[0]) - int(b[0])
	dg := int(a[1]) - int(b[1])
	db := int(a[2]) - int(b[2])
	return dr*dr + dg*dg + db*db
}

// DecodeBC1 expands BC1 blocks back to an RGBA8 image, used by tests to
// verify the encoder's round-trip error stays bounded.
func DecodeBC1(blocks []byte, width, height int) []byte {
	blocksX := (width + 3) / 4
	blocksY := (height + 3) / 4
	out := make([]byte, width*height*4)

	for by := 0; by < blocksY; by++ {
		for bx := 0; bx < blocksX; bx++ {
			off := (by*blocksX + bx) * 8
			block := blocks[off : off+8]
			e0 := uint16(block[0]) | uint16(block[1])<<8
			e1 := uint16(block[2]) | uint16(block[3])<<8
			palette := buildPalette(e0, e1)
			indices := uint32(block[4]) | uint32(block[5])<<8 | uint32(block[6])<<16 | uint32(block[7])<<24

			for j := 0; j < 4; j++ {
				y := by*4 + j
				if y >= height {
					continue
				}
				for i := 0; i < 4; i++ {
					x := bx*4 + i
					if x >= width {
						continue
					}
					idx := (indices >> uint((j*4+i)*2)) & 0x3
					c := palette[idx]
					o := (y*width + x) * 4
					out[o], out[o+1], out[o+2], out[o+3] = c[0], c[1], c[2], 255
				}
			}
		}
	}
	return out
}
