// SPDX-FileCopyrightText : © 2026 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package texture

import (
	"bufio"
	"bytes"
	"errors"
	"strconv"
)

// ppm.go ports the reference PPM (P6 binary) decoder
// (loader_texture_ppm.c): a whitespace-delimited header of width,
// height and maxval followed by raw big-endian (8 or 16 bit) samples,
// three channels per pixel, row-major top-to-bottom.

var (
	ErrPpmBadMagic   = errors.New("texture: ppm missing P6 magic")
	ErrPpmBadHeader  = errors.New("texture: ppm header malformed")
	ErrPpmBadMaxval  = errors.New("texture: ppm maxval out of range")
	ErrPpmTruncated  = errors.New("texture: ppm pixel data truncated")
)

// DecodePPM parses a binary (P6) PPM file into row-major RGBA8 pixels.
// maxval > 255 selects 16-bit big-endian samples on disk, downsampled
// to 8 bits per channel.
func DecodePPM(data []byte) (pixels []byte, width, height int, err error) {
	r := bufio.NewReader(bytes.NewReader(data))

	magic, err := readPpmToken(r)
	if err != nil || magic != "P6" {
		return nil, 0, 0, ErrPpmBadMagic
	}
	width, err = readPpmInt(r)
	if err != nil {
		return nil, 0, 0, ErrPpmBadHeader
	}
	height, err = readPpmInt(r)
	if err != nil {
		return nil, 0, 0, ErrPpmBadHeader
	}
	maxval, err := readPpmInt(r)
	if err != nil {
		return nil, 0, 0, ErrPpmBadHeader
	}
	if maxval <= 0 || maxval > 65535 {
		return nil, 0, 0, ErrPpmBadMaxval
	}

	bytesPerSample := 1
	if maxval > 255 {
		bytesPerSample = 2
	}
	rowBytes := width * 3 * bytesPerSample
	raw := make([]byte, rowBytes*height)
	if _, err := readFull(r, raw); err != nil {
		return nil, 0, 0, ErrPpmTruncated
	}

	out := make([]byte, width*height*4)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			srcOff := (y*width + x) * 3 * bytesPerSample
			dstOff := (y*width + x) * 4
			for c := 0; c < 3; c++ {
				if bytesPerSample == 1 {
					out[dstOff+c] = raw[srcOff+c]
				} else {
					hi := raw[srcOff+c*2]
					out[dstOff+c] = scaleSample16(hi, raw[srcOff+c*2+1], maxval)
				}
			}
			out[dstOff+3] = 0xFF
		}
	}
	return out, width, height, nil
}

func scaleSample16(hi, lo byte, maxval int) byte {
	v := int(hi)<<8 | int(lo)
	return byte(v * 255 / maxval)
}

// readPpmToken reads one whitespace-delimited token, skipping '#'
// comments that run to end of line, matching the PPM plain-header
// grammar.
func readPpmToken(r *bufio.Reader) (string, error) {
	var tok []byte
	for {
		b, err := r.ReadByte()
		if err != nil {
			return "", err
		}
		if b == '#' {
			for {
				c, err := r.ReadByte()
				if err != nil || c == '\n' {
					break
				}
			}
			continue
		}
		if isPpmSpace(b) {
			if len(tok) > 0 {
				return string(tok), nil
			}
			continue
		}
		tok = append(tok, b)
	}
}

func readPpmInt(r *bufio.Reader) (int, error) {
	tok, err := readPpmToken(r)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(tok)
}

func isPpmSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

func readFull(r *bufio.Reader, buf []byte) (int, error) {
	n := 0
	for n < len(buf) {
		m, err := r.Read(buf[n:])
		n += m
		if err != nil {
			return n, err
		}
	}
	return n, nil
}
