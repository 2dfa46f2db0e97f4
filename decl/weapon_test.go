// SPDX-FileCopyrightText : © 2026 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package decl

import "testing"

func TestBuildWeaponMapPacksEffects(t *testing.T) {
	defs := []WeaponDef{
		{Name: "sword", Effects: []WeaponEffectDef{{Name: "slash", Value: []byte(`1`)}}},
		{Name: "bow", Effects: []WeaponEffectDef{
			{Name: "pierce", Value: []byte(`2`)},
			{Name: "knockback", Value: []byte(`3`)},
		}},
	}
	m, err := BuildWeaponMap(defs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	bow, ok := m.Lookup("bow")
	if !ok {
		t.Fatal("expected to find bow")
	}
	if len(m.EffectsOf(bow)) != 2 {
		t.Errorf("expected 2 effects for bow, got %d", len(m.EffectsOf(bow)))
	}
}

func TestBuildWeaponMapRejectsDuplicates(t *testing.T) {
	defs := []WeaponDef{
		{Name: "a", Effects: []WeaponEffectDef{{Name: "x"}}},
		{Name: "a", Effects: []WeaponEffectDef{{Name: "y"}}},
	}
	if _, err := BuildWeaponMap(defs); err != ErrDuplicateWeapon {
		t.Errorf("expected ErrDuplicateWeapon, got %v", err)
	}
}

func TestBuildWeaponMapRejectsEmptyEffects(t *testing.T) {
	defs := []WeaponDef{{Name: "a"}}
	if _, err := BuildWeaponMap(defs); err != ErrEmptyEffectSet {
		t.Errorf("expected ErrEmptyEffectSet, got %v", err)
	}
}
