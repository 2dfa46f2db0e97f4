// SPDX-FileCopyrightText : © 2026 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package cache

import "testing"

// widget is a small test-only cacheable type exercising each primitive
// construct the codec supports.
type widget struct {
	Name    string
	Count   uint32
	Scale   float32
	Enabled bool
	Tags    []string
}

var widgetMeta = NewMeta("cache.widget", KindString, KindU32, KindF32, KindBool, KindArray)

func (w *widget) CacheMeta() Meta { return widgetMeta }

func (w *widget) EncodeCache(wr *Writer) {
	wr.WriteString(w.Name)
	wr.WriteU32(w.Count)
	wr.WriteF32(w.Scale)
	wr.WriteBool(w.Enabled)
	wr.WriteCount(len(w.Tags))
	for _, t := range w.Tags {
		wr.WriteString(t)
	}
}

func (w *widget) DecodeCache(r *Reader) error {
	var err error
	if w.Name, err = r.ReadString(); err != nil {
		return err
	}
	if w.Count, err = r.ReadU32(); err != nil {
		return err
	}
	if w.Scale, err = r.ReadF32(); err != nil {
		return err
	}
	if w.Enabled, err = r.ReadBool(); err != nil {
		return err
	}
	n, err := r.ReadCount()
	if err != nil {
		return err
	}
	w.Tags = make([]string, n)
	for i := range w.Tags {
		if w.Tags[i], err = r.ReadString(); err != nil {
			return err
		}
	}
	return nil
}

// TestCacheRoundTrip verifies that encoding then decoding a value
// reproduces it field for field.
func TestCacheRoundTrip(t *testing.T) {
	in := &widget{Name: "sword", Count: 3, Scale: 1.5, Enabled: true, Tags: []string{"sharp", "blue"}}
	blob := Encode(in)

	out := &widget{}
	if err := Decode(blob, out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Name != in.Name || out.Count != in.Count || out.Scale != in.Scale ||
		out.Enabled != in.Enabled || len(out.Tags) != len(in.Tags) {
		t.Fatalf("round trip mismatch: got %+v, want %+v", out, in)
	}
	for i := range in.Tags {
		if out.Tags[i] != in.Tags[i] {
			t.Fatalf("tag %d mismatch: got %q want %q", i, out.Tags[i], in.Tags[i])
		}
	}
}

func TestCacheRejectsBadMagic(t *testing.T) {
	blob := Encode(&widget{Name: "x"})
	blob[0] = 'X'
	if err := Decode(blob, &widget{}); err != ErrMagicMismatch {
		t.Errorf("expected ErrMagicMismatch, got %v", err)
	}
}

func TestCacheRejectsTypeMismatch(t *testing.T) {
	otherMeta := NewMeta("cache.otherType", KindU32)
	w := NewWriter(otherMeta)
	w.WriteU32(7)

	if err := Decode(w.Bytes(), &widget{}); err != ErrTypeMismatch {
		t.Errorf("expected ErrTypeMismatch, got %v", err)
	}
}

func TestCacheRejectsTruncated(t *testing.T) {
	blob := Encode(&widget{Name: "abcdefgh"})
	if err := Decode(blob[:len(blob)-2], &widget{}); err != ErrTruncated {
		t.Errorf("expected ErrTruncated, got %v", err)
	}
}

func TestCacheRejectsStructuralMismatch(t *testing.T) {
	sameNameMeta := NewMeta("cache.widget", KindU32)
	w := NewWriter(sameNameMeta)
	w.WriteU32(7)

	if err := Decode(w.Bytes(), &widget{}); err != ErrTypeHashMismatch {
		t.Errorf("expected ErrTypeHashMismatch, got %v", err)
	}
}
