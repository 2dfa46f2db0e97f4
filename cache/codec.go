// SPDX-FileCopyrightText : © 2026 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

// Package cache implements the cached-binary file format: a small
// "VOLO"-magic header (version, type-name hash, type-structural hash)
// followed by a deterministic primitive encoding, written field by field
// by each cached type's own EncodeCache/DecodeCache methods rather than
// by a general-purpose binary codec library — no library in the example
// corpus exposes a
// field-order-preserving struct walker matching this exact wire shape
// (union tag + optional name, external-memory padding), and the format
// must be matched bit-exact, which rules out adopting one with its own
// framing. Grounded on the model codebase's own save/load conventions
// in load/shd.go (little-endian primitive streaming) generalized to a
// richer wire grammar covering unions, arrays, and external memory.
package cache

import (
	"encoding/binary"
	"errors"
	"math"
)

var (
	ErrMagicMismatch    = errors.New("cache: magic mismatch")
	ErrVersionMismatch  = errors.New("cache: version mismatch")
	ErrTypeMismatch     = errors.New("cache: type name hash mismatch")
	ErrTypeHashMismatch = errors.New("cache: type structural hash mismatch")
	ErrTruncated        = errors.New("cache: buffer truncated")
	ErrUnionTagUnknown  = errors.New("cache: union tag unknown")
)

var magic = [4]byte{'V', 'O', 'L', 'O'}

const formatVersion uint32 = 1

// Header is the fixed prefix of every cached blob.
type Header struct {
	Version        uint32
	TypeNameHash   uint32
	TypeStructHash uint32
}

// Writer accumulates a blob's bytes in the type's declared field order.
type Writer struct {
	buf []byte
}

// NewWriter starts a fresh blob for meta, writing the header immediately.
func NewWriter(meta Meta) *Writer {
	w := &Writer{}
	w.buf = append(w.buf, magic[:]...)
	w.putU32(formatVersion)
	w.putU32(meta.NameHash)
	w.putU32(meta.StructHash)
	return w
}

// Bytes returns the accumulated blob.
func (w *Writer) Bytes() []byte { return w.buf }

func (w *Writer) putU32(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

func (w *Writer) WriteBool(v bool) {
	if v {
		w.buf = append(w.buf, 1)
	} else {
		w.buf = append(w.buf, 0)
	}
}

func (w *Writer) WriteU8(v uint8)   { w.buf = append(w.buf, v) }
func (w *Writer) WriteI8(v int8)    { w.WriteU8(uint8(v)) }

func (w *Writer) WriteU16(v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	w.buf = append(w.buf, b[:]...)
}
func (w *Writer) WriteI16(v int16) { w.WriteU16(uint16(v)) }

func (w *Writer) WriteU32(v uint32) { w.putU32(v) }
func (w *Writer) WriteI32(v int32)  { w.putU32(uint32(v)) }

func (w *Writer) WriteU64(v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	w.buf = append(w.buf, b[:]...)
}
func (w *Writer) WriteI64(v int64) { w.WriteU64(uint64(v)) }

func (w *Writer) WriteF32(v float32) { w.putU32(math.Float32bits(v)) }
func (w *Writer) WriteF64(v float64) { w.WriteU64(math.Float64bits(v)) }

// WriteString encodes a u64 length prefix followed by the raw UTF-8 bytes.
func (w *Writer) WriteString(s string) {
	w.WriteU64(uint64(len(s)))
	w.buf = append(w.buf, s...)
}

// WriteMemory encodes an opaque byte blob: a u64 length prefix, then the
// raw bytes. When external is true, a single alignment-padding byte
// precedes the bytes.
func (w *Writer) WriteMemory(data []byte, external bool) {
	w.WriteU64(uint64(len(data)))
	if external {
		w.buf = append(w.buf, 0)
	}
	w.buf = append(w.buf, data...)
}

// WritePresent encodes the pointer(T) present flag; the caller writes T
// itself afterward only when present is true.
func (w *Writer) WritePresent(present bool) { w.WriteBool(present) }

// WriteCount encodes an array(T)'s element count; the caller writes each
// element afterward.
func (w *Writer) WriteCount(n int) { w.WriteU64(uint64(n)) }

// WriteUnionTag encodes a union's selector, and its optional name field
// when the union declares one (name == "" omits it, matching types that
// have no name field).
func (w *Writer) WriteUnionTag(tag uint32, name string) {
	w.WriteU32(tag)
	if name != "" {
		w.WriteString(name)
	}
}

// WriteEnum encodes an enum's underlying constant.
func (w *Writer) WriteEnum(v uint32) { w.WriteU32(v) }

// Reader walks a blob in the same order Writer produced it.
type Reader struct {
	buf []byte
	pos int
}

// NewReader validates the header against meta and returns a Reader
// positioned just past it, or an error identifying which header field
// mismatched. A mismatch is a hard error, never a silent fallback.
func NewReader(data []byte, meta Meta) (*Reader, error) {
	if len(data) < 16 {
		return nil, ErrTruncated
	}
	if [4]byte(data[0:4]) != magic {
		return nil, ErrMagicMismatch
	}
	version := binary.LittleEndian.Uint32(data[4:8])
	if version != formatVersion {
		return nil, ErrVersionMismatch
	}
	nameHash := binary.LittleEndian.Uint32(data[8:12])
	if nameHash != meta.NameHash {
		return nil, ErrTypeMismatch
	}
	structHash := binary.LittleEndian.Uint32(data[12:16])
	if structHash != meta.StructHash {
		return nil, ErrTypeHashMismatch
	}
	return &Reader{buf: data, pos: 16}, nil
}

// PeekHeader reads a blob's header without validating it against any
// particular Meta, for tooling that inspects a cache file without
// knowing the producing type ahead of time.
func PeekHeader(data []byte) (Header, error) {
	if len(data) < 16 {
		return Header{}, ErrTruncated
	}
	if [4]byte(data[0:4]) != magic {
		return Header{}, ErrMagicMismatch
	}
	return Header{
		Version:        binary.LittleEndian.Uint32(data[4:8]),
		TypeNameHash:   binary.LittleEndian.Uint32(data[8:12]),
		TypeStructHash: binary.LittleEndian.Uint32(data[12:16]),
	}, nil
}

func (r *Reader) need(n int) error {
	if r.pos+n > len(r.buf) {
		return ErrTruncated
	}
	return nil
}

func (r *Reader) ReadBool() (bool, error) {
	v, err := r.ReadU8()
	return v != 0, err
}

func (r *Reader) ReadU8() (uint8, error) {
	if err := r.need(1); err != nil {
		return 0, err
	}
	v := r.buf[r.pos]
	r.pos++
	return v, nil
}
func (r *Reader) ReadI8() (int8, error) { v, err := r.ReadU8(); return int8(v), err }

func (r *Reader) ReadU16() (uint16, error) {
	if err := r.need(2); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint16(r.buf[r.pos:])
	r.pos += 2
	return v, nil
}
func (r *Reader) ReadI16() (int16, error) { v, err := r.ReadU16(); return int16(v), err }

func (r *Reader) ReadU32() (uint32, error) {
	if err := r.need(4); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint32(r.buf[r.pos:])
	r.pos += 4
	return v, nil
}
func (r *Reader) ReadI32() (int32, error) { v, err := r.ReadU32(); return int32(v), err }

func (r *Reader) ReadU64() (uint64, error) {
	if err := r.need(8); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint64(r.buf[r.pos:])
	r.pos += 8
	return v, nil
}
func (r *Reader) ReadI64() (int64, error) { v, err := r.ReadU64(); return int64(v), err }

func (r *Reader) ReadF32() (float32, error) {
	v, err := r.ReadU32()
	return math.Float32frombits(v), err
}
func (r *Reader) ReadF64() (float64, error) {
	v, err := r.ReadU64()
	return math.Float64frombits(v), err
}

func (r *Reader) ReadString() (string, error) {
	n, err := r.ReadU64()
	if err != nil {
		return "", err
	}
	if err := r.need(int(n)); err != nil {
		return "", err
	}
	s := string(r.buf[r.pos : r.pos+int(n)])
	r.pos += int(n)
	return s, nil
}

func (r *Reader) ReadMemory(external bool) ([]byte, error) {
	n, err := r.ReadU64()
	if err != nil {
		return nil, err
	}
	if external {
		if _, err := r.ReadU8(); err != nil {
			return nil, err
		}
	}
	if err := r.need(int(n)); err != nil {
		return nil, err
	}
	data := make([]byte, n)
	copy(data, r.buf[r.pos:r.pos+int(n)])
	r.pos += int(n)
	return data, nil
}

func (r *Reader) ReadPresent() (bool, error) { return r.ReadBool() }

func (r *Reader) ReadCount() (int, error) {
	n, err := r.ReadU64()
	return int(n), err
}

func (r *Reader) ReadUnionTag(named bool) (tag uint32, name string, err error) {
	tag, err = r.ReadU32()
	if err != nil {
		return 0, "", err
	}
	if named {
		name, err = r.ReadString()
	}
	return tag, name, err
}

func (r *Reader) ReadEnum() (uint32, error) { return r.ReadU32() }
