// SPDX-FileCopyrightText : © 2026 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package texture

import "math"

// srgbLUT maps an 8-bit sRGB-encoded channel value to its linear
// float32 equivalent. The reference hardcodes 256 literal constants;
// those constants are exactly the standard sRGB OETF inverse, so this
// table is computed once at init time instead of typed out by hand.
var srgbLUT [256]float32

func init() {
	for i := range srgbLUT {
		c := float64(i) / 255.0
		if c <= 0.04045 {
			srgbLUT[i] = float32(c / 12.92)
		} else {
			srgbLUT[i] = float32(math.Pow((c+0.055)/1.055, 2.4))
		}
	}
}

// SrgbToLinear converts one u8 sRGB channel sample to linear space via
// the precomputed LUT (asset_texture_srgb_to_linear).
func SrgbToLinear(c uint8) float32 { return srgbLUT[c] }

// pixelOffset returns the byte offset of pixel (x,y) within mip 0 of
// layer, or -1 if out of bounds.
func (t *Texture) pixelOffset(x, y int, layer uint32) int {
	if x < 0 || y < 0 || uint32(x) >= t.Width || uint32(y) >= t.Height || layer >= t.Layers {
		return -1
	}
	stride := t.Format.Stride()
	rowPixels := int(t.Width)
	return (int(layer)*rowPixels*int(t.Height) + y*rowPixels + x) * stride
}

// At returns the four linear-space channel values of pixel (x,y) in
// layer, applying the sRGB LUT when Flags has FlagSrgb set (tex_at).
// Out-of-range coordinates return all zeros.
func (t *Texture) At(x, y int, layer uint32) [4]float32 {
	off := t.pixelOffset(x, y, layer)
	if off < 0 {
		return [4]float32{}
	}
	channels := t.Format.Channels()
	px := t.Pixels[off : off+t.Format.Stride()]

	var out [4]float32
	switch t.Format.Type() {
	case U8:
		for c := 0; c < channels; c++ {
			v := px[c]
			if t.Flags&FlagSrgb != 0 && c < 3 {
				out[c] = SrgbToLinear(v)
			} else {
				out[c] = float32(v) / 255.0
			}
		}
	case U16:
		for c := 0; c < channels; c++ {
			v := uint16(px[c*2]) | uint16(px[c*2+1])<<8
			out[c] = float32(v) / 65535.0
		}
	case F32:
		for c := 0; c < channels; c++ {
			out[c] = bytesToFloat32(px[c*4 : c*4+4])
		}
	}
	if channels == 1 {
		out[1], out[2] = out[0], out[0]
	}
	if channels < 4 {
		out[3] = 1.0
	}
	return out
}

// SampleNearest returns At() at the pixel nearest to normalized
// coordinates (u,v) in [0,1), clamped to the texture edges
// (asset_texture_sample_nearest).
func (t *Texture) SampleNearest(u, v float32, layer uint32) [4]float32 {
	x := clampInt(int(u*float32(t.Width)), 0, int(t.Width)-1)
	y := clampInt(int(v*float32(t.Height)), 0, int(t.Height)-1)
	return t.At(x, y, layer)
}

// Sample performs bilinear interpolation of the four pixels surrounding
// normalized coordinates (u,v) (asset_texture_sample).
func (t *Texture) Sample(u, v float32, layer uint32) [4]float32 {
	fx := u*float32(t.Width) - 0.5
	fy := v*float32(t.Height) - 0.5
	x0 := int(math.Floor(float64(fx)))
	y0 := int(math.Floor(float64(fy)))
	tx := fx - float32(x0)
	ty := fy - float32(y0)

	c00 := t.At(clampInt(x0, 0, int(t.Width)-1), clampInt(y0, 0, int(t.Height)-1), layer)
	c10 := t.At(clampInt(x0+1, 0, int(t.Width)-1), clampInt(y0, 0, int(t.Height)-1), layer)
	c01 := t.At(clampInt(x0, 0, int(t.Width)-1), clampInt(y0+1, 0, int(t.Height)-1), layer)
	c11 := t.At(clampInt(x0+1, 0, int(t.Width)-1), clampInt(y0+1, 0, int(t.Height)-1), layer)

	var out [4]float32
	for c := 0; c < 4; c++ {
		top := lerp(c00[c], c10[c], tx)
		bottom := lerp(c01[c], c11[c], tx)
		out[c] = lerp(top, bottom, ty)
	}
	return out
}

func lerp(a, b, t float32) float32 { return a + (b-a)*t }

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
