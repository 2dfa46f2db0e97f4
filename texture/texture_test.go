// SPDX-FileCopyrightText : © 2026 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package texture

import "testing"

func TestPickSelectsFourChannelForMultiChannel(t *testing.T) {
	if f := Pick(U8, 4); f != FormatU8RGBA {
		t.Errorf("expected FormatU8RGBA, got %v", f)
	}
	if f := Pick(U8, 1); f != FormatU8R {
		t.Errorf("expected FormatU8R, got %v", f)
	}
}

func TestMipSizeFloorsAtOne(t *testing.T) {
	if got := MipSize(1, 1, 1, 4); got != 1 {
		t.Errorf("expected mip of a 1x1 texture to floor at 1 pixel, got %d", got)
	}
}

func TestCreateDetectsAlpha(t *testing.T) {
	opaque := []byte{255, 0, 0, 255}
	tex := Create(opaque, 1, 1, 4, 1, 1, U8, 0)
	if tex.Flags&FlagAlpha != 0 {
		t.Error("opaque pixel should not set FlagAlpha")
	}

	transparent := []byte{255, 0, 0, 128}
	tex = Create(transparent, 1, 1, 4, 1, 1, U8, 0)
	if tex.Flags&FlagAlpha == 0 {
		t.Error("expected FlagAlpha for a non-opaque pixel")
	}
}

func TestCreateFillsMissingAlphaOpaque(t *testing.T) {
	rgb := []byte{10, 20, 30}
	tex := Create(rgb, 1, 1, 3, 1, 1, U8, 0)
	px := tex.At(0, 0, 0)
	if px[3] != 1.0 {
		t.Errorf("expected filled alpha of 1.0, got %v", px[3])
	}
}

func TestCreatePanicsOnSrgbWithTooFewChannels(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for Srgb with single-channel input")
		}
	}()
	Create([]byte{1}, 1, 1, 1, 1, 1, U8, FlagSrgb)
}

func TestSrgbToLinearBoundary(t *testing.T) {
	if v := SrgbToLinear(0); v != 0 {
		t.Errorf("expected 0 at 0, got %v", v)
	}
	if v := SrgbToLinear(255); v < 0.999 || v > 1.0 {
		t.Errorf("expected ~1.0 at 255, got %v", v)
	}
}

func TestSampleNearestClampsOutOfRange(t *testing.T) {
	data := []byte{
		10, 10, 10, 255, 20, 20, 20, 255,
		30, 30, 30, 255, 40, 40, 40, 255,
	}
	tex := Create(data, 2, 2, 4, 1, 1, U8, 0)
	c := tex.SampleNearest(1.5, 1.5, 0)
	if c[0] != 40.0/255.0 {
		t.Errorf("expected clamp to the bottom-right texel, got %v", c)
	}
}

func TestIsNormalMapMatchesSuffixes(t *testing.T) {
	cases := map[string]bool{
		"rock_nrm.tga":     true,
		"rock_normal.tga":  true,
		"rock_nrm_01.tga":  true,
		"rock_diffuse.tga": false,
	}
	for id, want := range cases {
		if got := IsNormalMap(id); got != want {
			t.Errorf("IsNormalMap(%q) = %v, want %v", id, got, want)
		}
	}
}
