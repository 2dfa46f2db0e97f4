// SPDX-FileCopyrightText : © 2026 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package asset

import (
	"testing"

	"github.com/galvanized/forge/decl"
	"github.com/galvanized/forge/fonttex"
	"github.com/galvanized/forge/repo"
	"github.com/galvanized/forge/texture"
)

func tickUntil(t *testing.T, m *Manager, h Handle, want Flags, max int) {
	t.Helper()
	for i := 0; i < max; i++ {
		m.Tick()
		if m.Flags(h)&want != 0 {
			return
		}
	}
	t.Fatalf("handle never reached flag %v after %d ticks, flags=%v", want, max, m.Flags(h))
}

// ppmFixture builds a minimal 2x2 binary PPM (P6) image.
func ppmFixture() []byte {
	return []byte("P6\n2 2\n255\n" +
		"\xff\x00\x00\x00\xff\x00" +
		"\x00\x00\xff\xff\xff\xff")
}

func TestLoadTextureAttachesTexture(t *testing.T) {
	mem := repo.NewMemory(map[string][]byte{"tex.ppm": ppmFixture()})
	m := NewManager(mem, DefaultConfig(), nil)
	RegisterStandardLoaders(m)

	h := m.Lookup("tex.ppm")
	m.Acquire(h)
	tickUntil(t, m, h, FlagLoaded|FlagFailed, 4)
	if m.Flags(h)&FlagFailed != 0 {
		t.Fatalf("expected PPM decode to succeed, got Failed")
	}

	tex, ok := Component[*texture.Texture](m, h)
	if !ok {
		t.Fatal("expected a *texture.Texture component to be attached")
	}
	if tex.Width != 2 || tex.Height != 2 {
		t.Errorf("expected a 2x2 texture, got %dx%d", tex.Width, tex.Height)
	}
}

func TestLoadPrefabMapRoundTripsThroughLoader(t *testing.T) {
	body := `[
		{"name":"base","traits":[{"name":"health","value":100}]},
		{"name":"guard","variant":"base","traits":[{"name":"script","value":"guard.lua"}]}
	]`
	mem := repo.NewMemory(map[string][]byte{"mobs.prefab": []byte(body)})
	m := NewManager(mem, DefaultConfig(), nil)
	RegisterStandardLoaders(m)

	h := m.Lookup("mobs.prefab")
	m.Acquire(h)
	tickUntil(t, m, h, FlagLoaded|FlagFailed, 4)
	if m.Flags(h)&FlagFailed != 0 {
		t.Fatalf("expected prefab map build to succeed, got Failed")
	}

	pm, ok := Component[*decl.PrefabMap](m, h)
	if !ok {
		t.Fatal("expected a *decl.PrefabMap component to be attached")
	}
	guard, ok := pm.Lookup("guard")
	if !ok {
		t.Fatal("expected to find the guard prefab")
	}
	traits := pm.TraitsOf(guard)
	if len(traits) != 2 {
		t.Fatalf("expected guard to inherit base's trait plus its own, got %d", len(traits))
	}
}

func TestLoadWeaponAndInputsRejectMalformedJSON(t *testing.T) {
	mem := repo.NewMemory(map[string][]byte{
		"bad.weapon": []byte("not json"),
		"bad.inputs": []byte("not json"),
	})
	m := NewManager(mem, DefaultConfig(), nil)
	RegisterStandardLoaders(m)

	for _, id := range []string{"bad.weapon", "bad.inputs"} {
		h := m.Lookup(id)
		m.Acquire(h)
		tickUntil(t, m, h, FlagLoaded|FlagFailed, 4)
		if m.Flags(h)&FlagFailed == 0 {
			t.Errorf("expected %s to fail on malformed JSON", id)
		}
	}
}

func TestLoadFontTextureFailsWhenFontDependencyFails(t *testing.T) {
	body := `{
		"glyphSize": 16,
		"border": 2,
		"fonts": [{"fontAsset":"bad.ttf","characters":"A"}]
	}`
	mem := repo.NewMemory(map[string][]byte{
		"bad.ttf":      []byte("not a ttf file"),
		"ui.fonttex":   []byte(body),
	})
	m := NewManager(mem, DefaultConfig(), nil)
	RegisterStandardLoaders(m)

	h := m.Lookup("ui.fonttex")
	m.Acquire(h)
	tickUntil(t, m, h, FlagFailed, 10)
	if m.Flags(h)&FlagFailed == 0 {
		t.Fatal("expected the font-texture bundle to fail when its font dependency fails to parse")
	}
	if _, ok := Component[*fonttex.Atlas](m, h); ok {
		t.Error("a failed font-texture bundle should not have an attached atlas")
	}
}
