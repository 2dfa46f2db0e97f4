// SPDX-FileCopyrightText : © 2026 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package decl

import (
	"encoding/json"
	"errors"
	"sort"
)

var (
	ErrDuplicatePrefab       = errors.New("decl: duplicate prefab name")
	ErrDuplicateTrait        = errors.New("decl: duplicate trait on the same prefab")
	ErrPrefabCountExceedsMax = errors.New("decl: prefab count exceeds maximum")
	ErrPrefabVariantNotFound = errors.New("decl: prefab variant references an unknown base prefab")
	ErrPrefabVariantCycle    = errors.New("decl: prefab variant chain is cyclic")
)

// MaxPrefabs bounds one map's prefab count (loader_prefab.c's
// asset_prefab_max, preserved as a closed limit rather than left open).
const MaxPrefabs = 4096

// PrefabTraitDef is one trait entry as it appears in the source JSON:
// a name plus an opaque payload whose shape is specific to that trait
// (render, collision, script, ...) and out of this module's scope to
// interpret; those domain-specific transforms belong to the consuming
// application, not the asset layer.
type PrefabTraitDef struct {
	Name  string          `json:"name"`
	Value json.RawMessage `json:"value"`
}

// PrefabDef is one prefab as parsed straight from JSON. Variant names a
// base prefab definition whose traits this one inherits, with its own
// traits overriding any trait of the same name (a supplemental
// prototype/variant relationship — see DESIGN.md).
type PrefabDef struct {
	Name    string           `json:"name"`
	Variant string           `json:"variant,omitempty"`
	Traits  []PrefabTraitDef `json:"traits"`
}

// Prefab is one flattened, sorted entry in a PrefabMap.
type Prefab struct {
	NameHash   uint32
	Name       string
	TraitIndex uint32
	TraitCount uint32
}

// PrefabMap is the runtime-friendly transform of a prefab definition
// array: prefabs sorted by name hash, traits packed per prefab, plus a
// lookup preserving the definitions' original file order.
type PrefabMap struct {
	Prefabs         []Prefab
	Traits          []PrefabTraitDef
	UserIndexLookup []uint32
}

// BuildPrefabMap resolves every definition's variant chain, flattens
// inherited-then-overridden traits, and packs the result into sorted
// arrays.
func BuildPrefabMap(defs []PrefabDef) (*PrefabMap, error) {
	if len(defs) > MaxPrefabs {
		return nil, ErrPrefabCountExceedsMax
	}

	byName := make(map[string]int, len(defs))
	for i, d := range defs {
		if _, exists := byName[d.Name]; exists {
			return nil, ErrDuplicatePrefab
		}
		byName[d.Name] = i
	}

	resolved := make([][]PrefabTraitDef, len(defs))
	for i := range defs {
		traits, err := resolvePrefabTraits(defs, byName, i, nil)
		if err != nil {
			return nil, err
		}
		resolved[i] = traits
	}

	m := &PrefabMap{UserIndexLookup: make([]uint32, len(defs))}
	entries := make([]Prefab, len(defs))
	for i, d := range defs {
		traitIndex := uint32(len(m.Traits))
		m.Traits = append(m.Traits, resolved[i]...)
		entries[i] = Prefab{
			NameHash:   NameHash(d.Name),
			Name:       d.Name,
			TraitIndex: traitIndex,
			TraitCount: uint32(len(resolved[i])),
		}
	}

	order := make([]int, len(entries))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool { return entries[order[a]].NameHash < entries[order[b]].NameHash })

	m.Prefabs = make([]Prefab, len(entries))
	for sortedIdx, origIdx := range order {
		m.Prefabs[sortedIdx] = entries[origIdx]
		m.UserIndexLookup[origIdx] = uint32(sortedIdx)
	}
	return m, nil
}

// resolvePrefabTraits walks def[i]'s variant chain from base to
// derived, folding each level's traits into a name-keyed table so a
// derived prefab's trait overrides its base's trait of the same name,
// then returns the flattened result in first-seen (base-first) order.
// visiting tracks the chain to detect cycles.
func resolvePrefabTraits(defs []PrefabDef, byName map[string]int, i int, visiting map[int]bool) ([]PrefabTraitDef, error) {
	d := defs[i]
	var base []PrefabTraitDef
	if d.Variant != "" {
		baseIdx, ok := byName[d.Variant]
		if !ok {
			return nil, ErrPrefabVariantNotFound
		}
		if visiting == nil {
			visiting = map[int]bool{}
		}
		if visiting[i] {
			return nil, ErrPrefabVariantCycle
		}
		visiting[i] = true
		var err error
		base, err = resolvePrefabTraits(defs, byName, baseIdx, visiting)
		if err != nil {
			return nil, err
		}
	}

	order := make([]string, 0, len(base)+len(d.Traits))
	byTraitName := make(map[string]PrefabTraitDef, len(base)+len(d.Traits))
	for _, t := range base {
		order = append(order, t.Name)
		byTraitName[t.Name] = t
	}

	seenOwn := make(map[string]bool, len(d.Traits))
	for _, t := range d.Traits {
		if seenOwn[t.Name] {
			return nil, ErrDuplicateTrait
		}
		seenOwn[t.Name] = true
		if _, inherited := byTraitName[t.Name]; !inherited {
			order = append(order, t.Name)
		}
		byTraitName[t.Name] = t
	}

	out := make([]PrefabTraitDef, len(order))
	for i, name := range order {
		out[i] = byTraitName[name]
	}
	return out, nil
}

// Lookup finds a prefab by name via binary search over the sorted hash
// table, the common case the packed layout exists to serve.
func (m *PrefabMap) Lookup(name string) (Prefab, bool) {
	hash := NameHash(name)
	i := sort.Search(len(m.Prefabs), func(i int) bool { return m.Prefabs[i].NameHash >= hash })
	if i < len(m.Prefabs) && m.Prefabs[i].NameHash == hash && m.Prefabs[i].Name == name {
		return m.Prefabs[i], true
	}
	return Prefab{}, false
}

// TraitsOf returns the flattened trait slice for p.
func (m *PrefabMap) TraitsOf(p Prefab) []PrefabTraitDef {
	return m.Traits[p.TraitIndex : p.TraitIndex+p.TraitCount]
}
