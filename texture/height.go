// SPDX-FileCopyrightText : © 2026 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package texture

import (
	"encoding/binary"
	"errors"
	"math"
)

// height.go ports the reference height-map decoder
// (loader_texture_height.c): a raw, headerless array of big-endian
// unsigned samples (16 or 32 bit) whose count must be a perfect square,
// the implicit width/height of the map. r16 and r32 share one decoder
// parameterized on sample width, per SPEC_FULL.md's unification of the
// reference's two near-duplicate loaders.

var (
	ErrHeightNotSquare = errors.New("texture: height map sample count is not a perfect square")
	ErrHeightBadLength = errors.New("texture: height map length is not a multiple of the sample size")
)

// DecodeHeight16 parses a raw big-endian uint16 height map into
// single-channel F32 pixel data normalized to [0,1].
func DecodeHeight16(data []byte) (pixels []byte, side int, err error) {
	return decodeHeight(data, 2, func(b []byte) float32 {
		return float32(binary.BigEndian.Uint16(b)) / float32(math.MaxUint16)
	})
}

// DecodeHeight32 parses a raw big-endian uint32 height map into
// single-channel F32 pixel data normalized to [0,1].
func DecodeHeight32(data []byte) (pixels []byte, side int, err error) {
	return decodeHeight(data, 4, func(b []byte) float32 {
		return float32(binary.BigEndian.Uint32(b)) / float32(math.MaxUint32)
	})
}

func decodeHeight(data []byte, sampleSize int, convert func([]byte) float32) ([]byte, int, error) {
	if len(data)%sampleSize != 0 {
		return nil, 0, ErrHeightBadLength
	}
	count := len(data) / sampleSize
	side := int(math.Sqrt(float64(count)))
	if side*side != count {
		return nil, 0, ErrHeightNotSquare
	}

	out := make([]byte, count*4)
	for i := 0; i < count; i++ {
		sample := data[i*sampleSize : i*sampleSize+sampleSize]
		copy(out[i*4:i*4+4], float32ToBytes(convert(sample)))
	}
	return out, side, nil
}
