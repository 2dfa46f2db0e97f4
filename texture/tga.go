// SPDX-FileCopyrightText : © 2026 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package texture

import (
	"encoding/binary"
	"errors"
)

// tga.go ports the reference TGA decoder (loader_texture_tga.c):
// uncompressed and RLE-compressed true-color images, 24 or 32 bits per
// pixel, BGRA-on-disk reordered to RGBA, honoring the image descriptor
// byte's origin bit to normalize to top-left-origin rows.

var (
	ErrTgaTooSmall     = errors.New("texture: tga file too small for header")
	ErrTgaUnsupported  = errors.New("texture: tga image type not supported")
	ErrTgaBadDepth     = errors.New("texture: tga bit depth not supported")
	ErrTgaTruncated    = errors.New("texture: tga pixel data truncated")
	ErrTgaBadRLEPacket = errors.New("texture: tga rle packet overruns buffer")
)

const tgaHeaderSize = 18

const (
	tgaTypeNoImage      = 0
	tgaTypeColorMapped  = 1
	tgaTypeTrueColor    = 2
	tgaTypeGrayscale    = 3
	tgaTypeRLEColorMap  = 9
	tgaTypeRLETrueColor = 10
	tgaTypeRLEGray      = 11
)

// DecodeTGA parses a Targa file into raw top-left-origin RGBA8 pixels
// plus its dimensions (asset_data_tga_load).
func DecodeTGA(data []byte) (pixels []byte, width, height int, err error) {
	if len(data) < tgaHeaderSize {
		return nil, 0, 0, ErrTgaTooSmall
	}

	idLength := data[0]
	imageType := data[2]
	width = int(binary.LittleEndian.Uint16(data[12:14]))
	height = int(binary.LittleEndian.Uint16(data[14:16]))
	bitsPerPixel := data[16]
	descriptor := data[17]

	switch imageType {
	case tgaTypeTrueColor, tgaTypeRLETrueColor:
	default:
		return nil, 0, 0, ErrTgaUnsupported
	}
	if bitsPerPixel != 24 && bitsPerPixel != 32 {
		return nil, 0, 0, ErrTgaBadDepth
	}
	bytesPerPixel := int(bitsPerPixel) / 8

	cursor := tgaHeaderSize + int(idLength)
	if cursor > len(data) {
		return nil, 0, 0, ErrTgaTruncated
	}

	raw := make([]byte, width*height*bytesPerPixel)
	rle := imageType == tgaTypeRLETrueColor
	if rle {
		if err := decodeTgaRLE(data[cursor:], raw, bytesPerPixel); err != nil {
			return nil, 0, 0, err
		}
	} else {
		if cursor+len(raw) > len(data) {
			return nil, 0, 0, ErrTgaTruncated
		}
		copy(raw, data[cursor:cursor+len(raw)])
	}

	out := make([]byte, width*height*4)
	topOrigin := descriptor&(1<<5) != 0
	for y := 0; y < height; y++ {
		srcRow := y
		if !topOrigin {
			srcRow = height - 1 - y
		}
		for x := 0; x < width; x++ {
			src := raw[(srcRow*width+x)*bytesPerPixel : (srcRow*width+x)*bytesPerPixel+bytesPerPixel]
			dst := out[(y*width+x)*4 : (y*width+x)*4+4]
			dst[0], dst[1], dst[2] = src[2], src[1], src[0] // BGR -> RGB
			if bytesPerPixel == 4 {
				dst[3] = src[3]
			} else {
				dst[3] = 0xFF
			}
		}
	}
	return out, width, height, nil
}

// decodeTgaRLE expands run-length packets into raw, each packet either
// a run of one repeated pixel or a raw literal run (the TGA RLE format).
func decodeTgaRLE(src []byte, raw []byte, bytesPerPixel int) error {
	out := 0
	in := 0
	for out < len(raw) {
		if in >= len(src) {
			return ErrTgaBadRLEPacket
		}
		header := src[in]
		in++
		count := int(header&0x7F) + 1

		if header&0x80 != 0 {
			if in+bytesPerPixel > len(src) || out+count*bytesPerPixel > len(raw) {
				return ErrTgaBadRLEPacket
			}
			pixel := src[in : in+bytesPerPixel]
			in += bytesPerPixel
			for i := 0; i < count; i++ {
				copy(raw[out:out+bytesPerPixel], pixel)
				out += bytesPerPixel
			}
		} else {
			n := count * bytesPerPixel
			if in+n > len(src) || out+n > len(raw) {
				return ErrTgaBadRLEPacket
			}
			copy(raw[out:out+n], src[in:in+n])
			in += n
			out += n
		}
	}
	return nil
}
