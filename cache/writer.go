// SPDX-FileCopyrightText : © 2026 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package cache

// writer.go is the loader-facing half of the codec: a loader that
// finishes building a runtime value implements Value for it, calls
// Encode to get a blob, and queues that blob with Manager.RequestCache.
// Decode restores a value from such a blob into a freshly zeroed value
// of the same type. The manager registers no binary-variant loader, so
// it never reads a cache blob back itself.

// Value is implemented by the runtime types this module persists to the
// binary cache: decl.PrefabMap, decl.WeaponMap, decl.InputMap, and the
// root package's wrapper around fonttex.Atlas.
type Value interface {
	// CacheMeta returns the type's fixed Meta, built once at package
	// init via NewMeta.
	CacheMeta() Meta
	// EncodeCache appends the value's fields to w in declaration order.
	EncodeCache(w *Writer)
	// DecodeCache populates the value's fields by reading from r in the
	// same order EncodeCache wrote them.
	DecodeCache(r *Reader) error
}

// Encode serializes v into a complete, header-prefixed blob.
func Encode(v Value) []byte {
	w := NewWriter(v.CacheMeta())
	v.EncodeCache(w)
	return w.Bytes()
}

// Decode validates data's header against v's Meta and populates v.
// A header mismatch returns one of the cache-level sentinel errors
// (ErrMagicMismatch, ErrVersionMismatch, ErrTypeMismatch,
// ErrTypeHashMismatch). The caller decides what to do with a rejected
// blob; no code in this module falls back from a blob to its source.
func Decode(data []byte, v Value) error {
	r, err := NewReader(data, v.CacheMeta())
	if err != nil {
		return err
	}
	return v.DecodeCache(r)
}
