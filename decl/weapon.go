// SPDX-FileCopyrightText : © 2026 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package decl

import (
	"encoding/json"
	"errors"
	"sort"
)

var (
	ErrDuplicateWeapon = errors.New("decl: duplicate weapon name")
	ErrEmptyEffectSet  = errors.New("decl: weapon declares no effects")
)

// WeaponEffectDef is one effect entry, analogous to PrefabTraitDef: a
// name plus an opaque domain-specific payload.
type WeaponEffectDef struct {
	Name  string          `json:"name"`
	Value json.RawMessage `json:"value"`
}

// WeaponDef is one weapon as parsed straight from JSON.
type WeaponDef struct {
	Name    string            `json:"name"`
	Effects []WeaponEffectDef `json:"effects"`
}

// Weapon is one flattened, sorted entry in a WeaponMap.
type Weapon struct {
	NameHash    uint32
	Name        string
	EffectIndex uint32
	EffectCount uint32
}

// WeaponMap packs a weapon definition array into the same
// sorted-array/packed-slice shape as PrefabMap: weapons sorted by name
// hash, effects packed by weapon.
type WeaponMap struct {
	Weapons []Weapon
	Effects []WeaponEffectDef
}

// BuildWeaponMap transforms defs into a sorted WeaponMap, rejecting
// duplicate names and weapons with no effects.
func BuildWeaponMap(defs []WeaponDef) (*WeaponMap, error) {
	seen := make(map[string]bool, len(defs))
	for _, d := range defs {
		if seen[d.Name] {
			return nil, ErrDuplicateWeapon
		}
		seen[d.Name] = true
		if len(d.Effects) == 0 {
			return nil, ErrEmptyEffectSet
		}
	}

	m := &WeaponMap{}
	entries := make([]Weapon, len(defs))
	for i, d := range defs {
		idx := uint32(len(m.Effects))
		m.Effects = append(m.Effects, d.Effects...)
		entries[i] = Weapon{NameHash: NameHash(d.Name), Name: d.Name, EffectIndex: idx, EffectCount: uint32(len(d.Effects))}
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].NameHash < entries[j].NameHash })
	m.Weapons = entries
	return m, nil
}

// Lookup finds a weapon by name via binary search.
func (m *WeaponMap) Lookup(name string) (Weapon, bool) {
	hash := NameHash(name)
	i := sort.Search(len(m.Weapons), func(i int) bool { return m.Weapons[i].NameHash >= hash })
	if i < len(m.Weapons) && m.Weapons[i].NameHash == hash && m.Weapons[i].Name == name {
		return m.Weapons[i], true
	}
	return Weapon{}, false
}

// EffectsOf returns the flattened effect slice for w.
func (m *WeaponMap) EffectsOf(w Weapon) []WeaponEffectDef {
	return m.Effects[w.EffectIndex : w.EffectIndex+w.EffectCount]
}
