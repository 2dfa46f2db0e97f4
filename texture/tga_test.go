// SPDX-FileCopyrightText : © 2026 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package texture

import (
	"encoding/binary"
	"testing"
)

func buildTgaHeader(width, height int, imageType, bpp, descriptor byte) []byte {
	h := make([]byte, tgaHeaderSize)
	h[2] = imageType
	binary.LittleEndian.PutUint16(h[12:14], uint16(width))
	binary.LittleEndian.PutUint16(h[14:16], uint16(height))
	h[16] = bpp
	h[17] = descriptor
	return h
}

// TestDecodeTgaUncompressedTopOrigin verifies that an uncompressed
// 32bpp image with the top-origin descriptor bit set decodes with BGRA
// reordered to RGBA and rows left as-is.
func TestDecodeTgaUncompressedTopOrigin(t *testing.T) {
	header := buildTgaHeader(2, 1, tgaTypeTrueColor, 32, 1<<5)
	pixels := []byte{
		255, 0, 0, 255, // BGRA blue-opaque -> RGBA (0,0,255,255)
		0, 255, 0, 128,
	}
	data := append(header, pixels...)

	out, w, h, err := DecodeTGA(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w != 2 || h != 1 {
		t.Fatalf("unexpected dims %dx%d", w, h)
	}
	if out[0] != 0 || out[1] != 0 || out[2] != 255 || out[3] != 255 {
		t.Errorf("pixel 0 not reordered to RGBA: %v", out[:4])
	}
	if out[4] != 0 || out[5] != 255 || out[6] != 0 || out[7] != 128 {
		t.Errorf("pixel 1 not reordered to RGBA: %v", out[4:8])
	}
}

// TestDecodeTgaBottomOriginFlipsRows covers the default (bottom-left
// origin) descriptor convention.
func TestDecodeTgaBottomOriginFlipsRows(t *testing.T) {
	header := buildTgaHeader(1, 2, tgaTypeTrueColor, 24, 0)
	pixels := []byte{
		0, 0, 255, // on-disk row 0 (bottom, BGR red), becomes output row 1
		0, 255, 0, // on-disk row 1 (top), becomes output row 0
	}
	data := append(header, pixels...)

	out, _, _, err := DecodeTGA(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out[0] != 0 || out[1] != 255 || out[2] != 0 {
		t.Errorf("expected output row 0 to be green, got %v", out[:3])
	}
	if out[4] != 255 || out[5] != 0 || out[6] != 0 {
		t.Errorf("expected output row 1 to be red, got %v", out[4:7])
	}
}

// TestDecodeTgaRLERoundTrip verifies that a run packet followed by a
// raw packet expands to the exact source pixels.
func TestDecodeTgaRLERoundTrip(t *testing.T) {
	header := buildTgaHeader(4, 1, tgaTypeRLETrueColor, 32, 1<<5)
	rle := []byte{
		0x80 | 2, 10, 20, 30, 40, // run of 3 identical pixels
		0x00, 1, 2, 3, 4, // raw packet of 1 pixel
	}
	data := append(header, rle...)

	out, w, h, err := DecodeTGA(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w != 4 || h != 1 {
		t.Fatalf("unexpected dims")
	}
	for i := 0; i < 3; i++ {
		px := out[i*4 : i*4+4]
		if px[0] != 30 || px[1] != 20 || px[2] != 10 || px[3] != 40 {
			t.Errorf("run pixel %d mismatched: %v", i, px)
		}
	}
	last := out[12:16]
	if last[0] != 3 || last[1] != 2 || last[2] != 1 || last[3] != 4 {
		t.Errorf("raw pixel mismatched: %v", last)
	}
}

func TestDecodeTgaRejectsUnsupportedType(t *testing.T) {
	header := buildTgaHeader(1, 1, tgaTypeColorMapped, 24, 0)
	data := append(header, 1, 2, 3)
	if _, _, _, err := DecodeTGA(data); err != ErrTgaUnsupported {
		t.Errorf("expected ErrTgaUnsupported, got %v", err)
	}
}

func TestDecodeTgaTruncatedHeader(t *testing.T) {
	if _, _, _, err := DecodeTGA([]byte{1, 2, 3}); err != ErrTgaTooSmall {
		t.Errorf("expected ErrTgaTooSmall, got %v", err)
	}
}
