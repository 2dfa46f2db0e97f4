// SPDX-FileCopyrightText : © 2026 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package texture

import "testing"

// TestEncodeBC1FlatBlockRoundTrips verifies that a block of one uniform
// color round-trips to within RGB565 quantization error, since both
// endpoints collapse to the same 565 value and every index selects it.
func TestEncodeBC1FlatBlockRoundTrips(t *testing.T) {
	rgba := make([]byte, 4*4*4)
	for i := 0; i < 16; i++ {
		rgba[i*4], rgba[i*4+1], rgba[i*4+2], rgba[i*4+3] = 100, 150, 200, 255
	}
	blocks := EncodeBC1(rgba, 4, 4)
	if len(blocks) != 8 {
		t.Fatalf("expected one 8-byte block, got %d bytes", len(blocks))
	}
	decoded := DecodeBC1(blocks, 4, 4)
	for i := 0; i < 16; i++ {
		r, g, b := decoded[i*4], decoded[i*4+1], decoded[i*4+2]
		if diff(r, 100) > 4 || diff(g, 150) > 4 || diff(b, 200) > 4 {
			t.Errorf("texel %d: got (%d,%d,%d), want ~(100,150,200)", i, r, g, b)
		}
	}
}

// TestEncodeBC1BoundedError verifies BC1's error bound: it is lossy,
// but each channel should stay within a coarse tolerance of the source
// since the endpoints are fit directly from the block's extent. For this
// 0..240 gradient the inset endpoints 15 and 225 quantize to a red
// palette of 8, 80, 152 and 224, so the worst texel is 32 away.
func TestEncodeBC1BoundedError(t *testing.T) {
	rgba := make([]byte, 4*4*4)
	for i := 0; i < 16; i++ {
		v := byte(i * 16)
		rgba[i*4], rgba[i*4+1], rgba[i*4+2], rgba[i*4+3] = v, v, v, 255
	}
	blocks := EncodeBC1(rgba, 4, 4)
	decoded := DecodeBC1(blocks, 4, 4)
	for i := 0; i < 16; i++ {
		want := byte(i * 16)
		if diff(decoded[i*4], want) > 32 {
			t.Errorf("texel %d: channel error too large, got %d want ~%d", i, decoded[i*4], want)
		}
	}
}

// TestEncodeBC1PartialEdgeBlock covers non-multiple-of-4 dimensions,
// exercising the edge-clamp in extractBlock.
func TestEncodeBC1PartialEdgeBlock(t *testing.T) {
	rgba := make([]byte, 3*3*4)
	for i := range rgba {
		rgba[i] = 200
	}
	blocks := EncodeBC1(rgba, 3, 3)
	if len(blocks) != 8 {
		t.Fatalf("expected a single padded block, got %d bytes", len(blocks))
	}
}

func diff(a, b byte) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}
