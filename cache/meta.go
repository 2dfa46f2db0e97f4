// SPDX-FileCopyrightText : © 2026 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package cache

import "hash/fnv"

// Kind tags one field's wire construct, used only to fold into the
// structural hash; it carries no field name or id, so the hash covers
// shape alone.
type Kind uint8

const (
	KindBool Kind = iota
	KindI8
	KindU8
	KindI16
	KindU16
	KindI32
	KindU32
	KindI64
	KindU64
	KindF32
	KindF64
	KindString
	KindMemory
	KindPointer
	KindArray
	KindStruct
	KindUnion
	KindEnum
)

// Meta describes one cacheable Go type: its wire type name and a
// structural fingerprint of its field kinds, in declaration order. Every
// type that round-trips through this package defines a package-level
// Meta built once with NewMeta; callers outside this package never
// construct a Meta field-by-field via reflection.
type Meta struct {
	TypeName   string
	NameHash   uint32
	StructHash uint32
}

// NewMeta computes NameHash from typeName and StructHash by folding
// each field's Kind (not its name) through FNV-1a, so two types with
// identically shaped fields under different names still collide on
// StructHash but never on NameHash: the name hash identifies the type,
// the struct hash validates its layout hasn't drifted.
func NewMeta(typeName string, fields ...Kind) Meta {
	nameH := fnv.New32a()
	nameH.Write([]byte(typeName))

	structH := fnv.New32a()
	for _, f := range fields {
		structH.Write([]byte{byte(f)})
	}

	return Meta{
		TypeName:   typeName,
		NameHash:   nameH.Sum32(),
		StructHash: structH.Sum32(),
	}
}
