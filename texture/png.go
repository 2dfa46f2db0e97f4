// SPDX-FileCopyrightText : © 2026 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package texture

import "errors"

// png.go is a deliberate stub: PNG decoding is out of this module's
// scope, so DecodePNG only validates the 8-byte PNG signature and
// otherwise always reports failure. It exists so the format table has
// a registered, well-defined (if unsupported) entry for FormatPNG
// rather than silently falling through to ErrUnsupportedFormat.

var (
	ErrPngNotImplemented = errors.New("texture: png decoding is not implemented")
	ErrPngBadSignature   = errors.New("texture: png signature invalid")
)

var pngSignature = [8]byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}

// DecodePNG always fails: it checks the file signature to distinguish
// "not a PNG at all" from "a PNG we refuse to decode," then returns
// ErrPngNotImplemented either way.
func DecodePNG(data []byte) (pixels []byte, width, height int, err error) {
	if len(data) < 8 || [8]byte(data[:8]) != pngSignature {
		return nil, 0, 0, ErrPngBadSignature
	}
	return nil, 0, 0, ErrPngNotImplemented
}
