// SPDX-FileCopyrightText : © 2026 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

// Package texture implements the texture core: the closed
// {u8,u16,f32}x{1ch,4ch} format set, mip/pixel-count arithmetic,
// construction with channel normalization and alpha detection, bilinear
// and nearest sampling through a precomputed sRGB LUT, and the
// normal-map id heuristic. It also holds the format-specific decoders
// (TGA, PPM, height, PNG-stub) that funnel into Create, and the BC1
// block encoder (bc1.go). Ported from the reference loader_texture.c /
// core_bc.h, generalized from the model codebase's own GPU-bound
// texture type (which assumes a render-thread upload path out of this
// module's scope) to a plain in-memory value.
package texture

import (
	"errors"
	"path"
	"strings"
)

// Type is the pixel component type: u8, u16, or f32.
type Type uint8

const (
	U8 Type = iota
	U16
	F32
)

func (t Type) size() int {
	switch t {
	case U8:
		return 1
	case U16:
		return 2
	case F32:
		return 4
	}
	panic("texture: unknown type")
}

// Format is the closed cross-product of Type x channel count (spec
// §4.5's "six" formats).
type Format uint8

const (
	FormatU8R Format = iota
	FormatU8RGBA
	FormatU16R
	FormatU16RGBA
	FormatF32R
	FormatF32RGBA
)

// Pick selects the format for type/channels, channels<=1 mapping to the
// single-channel variant and everything else to the four-channel one
// (tex_format_pick).
func Pick(t Type, channels int) Format {
	four := channels > 1
	switch t {
	case U8:
		if four {
			return FormatU8RGBA
		}
		return FormatU8R
	case U16:
		if four {
			return FormatU16RGBA
		}
		return FormatU16R
	case F32:
		if four {
			return FormatF32RGBA
		}
		return FormatF32R
	}
	panic("texture: unknown type")
}

// Channels returns the channel count of f (tex_format_channels).
func (f Format) Channels() int {
	switch f {
	case FormatU8R, FormatU16R, FormatF32R:
		return 1
	default:
		return 4
	}
}

// Type returns the component type of f.
func (f Format) Type() Type {
	switch f {
	case FormatU8R, FormatU8RGBA:
		return U8
	case FormatU16R, FormatU16RGBA:
		return U16
	default:
		return F32
	}
}

// Stride returns the per-pixel byte size of f (tex_format_stride).
func (f Format) Stride() int {
	return f.Type().size() * f.Channels()
}

// Flags carries the cross-cutting texture properties: at least Srgb,
// Alpha, GenerateMips, CubeMap, NormalMap, and Lossless.
type Flags uint16

const (
	FlagSrgb Flags = 1 << iota
	FlagAlpha
	FlagGenerateMips
	FlagCubeMap
	FlagNormalMap
	FlagLossless
)

// Texture is the cross-format runtime value.
type Texture struct {
	Format       Format
	Flags        Flags
	Width        uint32
	Height       uint32
	Layers       uint32
	SrcMipLevels uint32
	Pixels       []byte
}

// MipSize returns the pixel count (not byte size) of one mip level
// across all layers (tex_pixel_count_mip's mip_size).
func MipSize(width, height, layers uint32, mip uint32) uint64 {
	w := width >> mip
	if w == 0 {
		w = 1
	}
	h := height >> mip
	if h == 0 {
		h = 1
	}
	return uint64(w) * uint64(h) * uint64(layers)
}

// TotalCount sums MipSize across every mip level (tex_pixel_count).
func TotalCount(width, height, layers, mips uint32) uint64 {
	var total uint64
	for mip := uint32(0); mip < mips; mip++ {
		total += MipSize(width, height, layers, mip)
	}
	return total
}

// DataSize returns the byte size of t's full pixel buffer.
func (t *Texture) DataSize() uint64 {
	return TotalCount(t.Width, t.Height, t.Layers, t.SrcMipLevels) * uint64(t.Format.Stride())
}

// ErrSrgbRequiresChannels is a programmer-contract violation: Srgb
// requires channels >= 3. Create panics rather than returning it,
// matching the reference's diag_crash.
var ErrSrgbRequiresChannels = errors.New("texture: srgb requires channels >= 3")

const f32AlphaThreshold = 1.0 - 1e-7

// hasAlpha scans every texel of every mip/layer for a non-opaque alpha,
// matching tex_has_alpha; only called when inChannels == 4.
func hasAlpha(in []byte, width, height, layers, mips uint32, t Type) bool {
	stride := 4 * t.size()
	offset := 0
	for mip := uint32(0); mip < mips; mip++ {
		w := width >> mip
		if w == 0 {
			w = 1
		}
		h := height >> mip
		if h == 0 {
			h = 1
		}
		count := int(w) * int(h) * int(layers)
		for i := 0; i < count; i++ {
			px := in[offset : offset+stride]
			switch t {
			case U8:
				if px[3] != 0xFF {
					return true
				}
			case U16:
				if uint16(px[6])|uint16(px[7])<<8 != 0xFFFF {
					return true
				}
			case F32:
				a := bytesToFloat32(px[12:16])
				if a < f32AlphaThreshold {
					return true
				}
			}
			offset += stride
		}
	}
	return false
}

// Create builds a Texture from raw pixel data in (width*height*layers*
// mips pixels of inChannels component each, of type t), normalizing
// channel count to the target format and detecting alpha. Panics if
// flags requests Srgb with fewer than 3 input channels, per the
// reference's diag_crash contract.
func Create(in []byte, width, height uint32, inChannels int, layers, mips uint32, t Type, flags Flags) *Texture {
	if flags&FlagSrgb != 0 && inChannels < 3 {
		panic(ErrSrgbRequiresChannels)
	}
	if inChannels == 4 && hasAlpha(in, width, height, layers, mips, t) {
		flags |= FlagAlpha
	}

	format := Pick(t, inChannels)
	outChannels := format.Channels()
	pixels := make([]byte, TotalCount(width, height, layers, mips)*uint64(format.Stride()))

	inStride := inChannels * t.size()
	outStride := outChannels * t.size()
	inOff, outOff := 0, 0
	for mip := uint32(0); mip < mips; mip++ {
		w := width >> mip
		if w == 0 {
			w = 1
		}
		h := height >> mip
		if h == 0 {
			h = 1
		}
		count := int(w) * int(h) * int(layers)
		for i := 0; i < count; i++ {
			copyPixel(pixels[outOff:outOff+outStride], in[inOff:inOff+inStride], inChannels, outChannels, t)
			inOff += inStride
			outOff += outStride
		}
	}

	return &Texture{Format: format, Flags: flags, Width: width, Height: height, Layers: layers, SrcMipLevels: mips, Pixels: pixels}
}

// copyPixel normalizes one pixel from inChannels to outChannels,
// filling RGB with 0 and alpha with the type's maximum (1.0 for f32)
// when the input lacked that channel, matching the Vulkan-style
// conversion-to-RGBA rule this format set follows.
func copyPixel(dst, src []byte, inChannels, outChannels int, t Type) {
	compSize := t.size()
	for c := 0; c < outChannels; c++ {
		var value []byte
		if c < inChannels {
			value = src[c*compSize : (c+1)*compSize]
		} else {
			value = fillValue(c, t)
		}
		copy(dst[c*compSize:(c+1)*compSize], value)
	}
}

func fillValue(channel int, t Type) []byte {
	isAlpha := channel == 3
	switch t {
	case U8:
		if isAlpha {
			return []byte{0xFF}
		}
		return []byte{0}
	case U16:
		if isAlpha {
			return []byte{0xFF, 0xFF}
		}
		return []byte{0, 0}
	case F32:
		if isAlpha {
			return float32ToBytes(1.0)
		}
		return float32ToBytes(0)
	}
	panic("texture: unknown type")
}

// IsNormalMap reports whether id matches one of the reference's
// case-insensitive normal-map glob patterns (asset_texture_is_normalmap).
func IsNormalMap(id string) bool {
	base := strings.ToLower(path.Base(id))
	patterns := []string{"*_nrm.*", "*_normal.*", "*_nrm_*.*", "*_normal_*.*"}
	for _, p := range patterns {
		if ok, _ := path.Match(p, base); ok {
			return true
		}
	}
	return false
}
