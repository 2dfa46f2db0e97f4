// SPDX-FileCopyrightText : © 2026 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package texture

import (
	"encoding/binary"
	"testing"
)

func TestDecodeHeight16RequiresPerfectSquare(t *testing.T) {
	data := make([]byte, 2*3) // 3 samples, not a perfect square
	if _, _, err := DecodeHeight16(data); err != ErrHeightNotSquare {
		t.Errorf("expected ErrHeightNotSquare, got %v", err)
	}
}

func TestDecodeHeight16NormalizesToUnitRange(t *testing.T) {
	data := make([]byte, 2*4) // 4 samples -> 2x2
	binary.BigEndian.PutUint16(data[0:2], 0)
	binary.BigEndian.PutUint16(data[2:4], 0xFFFF)
	binary.BigEndian.PutUint16(data[4:6], 0x8000)
	binary.BigEndian.PutUint16(data[6:8], 0x4000)

	pixels, side, err := DecodeHeight16(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if side != 2 {
		t.Fatalf("expected side 2, got %d", side)
	}
	if v := bytesToFloat32(pixels[0:4]); v != 0 {
		t.Errorf("expected 0.0 for zero sample, got %v", v)
	}
	if v := bytesToFloat32(pixels[4:8]); v < 0.999 || v > 1.0 {
		t.Errorf("expected ~1.0 for max sample, got %v", v)
	}
}

func TestDecodeHeight32RejectsShortBuffer(t *testing.T) {
	if _, _, err := DecodeHeight32([]byte{1, 2, 3}); err != ErrHeightBadLength {
		t.Errorf("expected ErrHeightBadLength, got %v", err)
	}
}
