// SPDX-FileCopyrightText : © 2026 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package decl

import "testing"

func TestBuildPrefabMapSortsByNameHash(t *testing.T) {
	defs := []PrefabDef{
		{Name: "zombie"},
		{Name: "archer"},
		{Name: "knight"},
	}
	m, err := BuildPrefabMap(defs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 1; i < len(m.Prefabs); i++ {
		if m.Prefabs[i-1].NameHash > m.Prefabs[i].NameHash {
			t.Fatal("prefabs not sorted by name hash")
		}
	}
	for _, name := range []string{"zombie", "archer", "knight"} {
		if _, ok := m.Lookup(name); !ok {
			t.Errorf("expected to find prefab %q", name)
		}
	}
}

func TestBuildPrefabMapRejectsDuplicates(t *testing.T) {
	defs := []PrefabDef{{Name: "a"}, {Name: "a"}}
	if _, err := BuildPrefabMap(defs); err != ErrDuplicatePrefab {
		t.Errorf("expected ErrDuplicatePrefab, got %v", err)
	}
}

func TestBuildPrefabMapVariantInheritsAndOverrides(t *testing.T) {
	defs := []PrefabDef{
		{Name: "base", Traits: []PrefabTraitDef{
			{Name: "health", Value: []byte(`100`)},
			{Name: "speed", Value: []byte(`5`)},
		}},
		{Name: "fast", Variant: "base", Traits: []PrefabTraitDef{
			{Name: "speed", Value: []byte(`10`)},
		}},
	}
	m, err := BuildPrefabMap(defs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fast, ok := m.Lookup("fast")
	if !ok {
		t.Fatal("expected to find derived prefab")
	}
	traits := m.TraitsOf(fast)
	if len(traits) != 2 {
		t.Fatalf("expected 2 inherited+overridden traits, got %d", len(traits))
	}
	var speed, health *PrefabTraitDef
	for i := range traits {
		switch traits[i].Name {
		case "speed":
			speed = &traits[i]
		case "health":
			health = &traits[i]
		}
	}
	if speed == nil || string(speed.Value) != "10" {
		t.Errorf("expected overridden speed of 10, got %+v", speed)
	}
	if health == nil || string(health.Value) != "100" {
		t.Errorf("expected inherited health of 100, got %+v", health)
	}
}

func TestBuildPrefabMapRejectsUnknownVariant(t *testing.T) {
	defs := []PrefabDef{{Name: "a", Variant: "ghost"}}
	if _, err := BuildPrefabMap(defs); err != ErrPrefabVariantNotFound {
		t.Errorf("expected ErrPrefabVariantNotFound, got %v", err)
	}
}

func TestBuildPrefabMapRejectsVariantCycle(t *testing.T) {
	defs := []PrefabDef{
		{Name: "a", Variant: "b"},
		{Name: "b", Variant: "a"},
	}
	if _, err := BuildPrefabMap(defs); err != ErrPrefabVariantCycle {
		t.Errorf("expected ErrPrefabVariantCycle, got %v", err)
	}
}

func TestBuildPrefabMapRejectsDuplicateTraitOnSamePrefab(t *testing.T) {
	defs := []PrefabDef{{Name: "a", Traits: []PrefabTraitDef{
		{Name: "x", Value: []byte(`1`)},
		{Name: "x", Value: []byte(`2`)},
	}}}
	if _, err := BuildPrefabMap(defs); err != ErrDuplicateTrait {
		t.Errorf("expected ErrDuplicateTrait, got %v", err)
	}
}

func TestBuildPrefabMapRejectsCountOverMax(t *testing.T) {
	defs := make([]PrefabDef, MaxPrefabs+1)
	for i := range defs {
		defs[i] = PrefabDef{Name: string(rune('a' + i%26))}
	}
	if _, err := BuildPrefabMap(defs); err != ErrPrefabCountExceedsMax {
		t.Errorf("expected ErrPrefabCountExceedsMax, got %v", err)
	}
}
