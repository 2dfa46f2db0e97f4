// SPDX-FileCopyrightText : © 2026 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

// Package decl implements the JSON-backed declarative loaders (spec
// §4.8): prefab, weapon, and input maps, each following the same
// pattern — parse a JSON definition array, transform it into sorted
// packed arrays for binary-search lookup, and surface a closed,
// domain-specific error enumeration. Grounded on the reference's
// loader_prefab.c / loader_weapon.c / loader_inputmap.c, generalized
// from the model codebase's flat-array-of-definitions JSON style (see
// load/shd.go's yaml-tagged struct parsing for the sibling convention
// this package mirrors in JSON).
package decl

import "hash/fnv"

// NameHash is the sort/lookup key every declarative map indexes by
// (asset_prefab_name_hash and its weapon/input siblings, all the same
// FNV-1a-over-name scheme the manager itself uses for ids).
func NameHash(name string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(name))
	return h.Sum32()
}
