// SPDX-FileCopyrightText : © 2026 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package decl

import "testing"

func TestParseBindingExtractsModifiers(t *testing.T) {
	b, err := ParseBinding("Ctrl+Shift+K")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Key != "K" {
		t.Errorf("expected key K, got %q", b.Key)
	}
	if b.Modifiers&ModCtrl == 0 || b.Modifiers&ModShift == 0 {
		t.Errorf("expected Ctrl and Shift set, got %v", b.Modifiers)
	}
	if b.Modifiers&ModAlt != 0 {
		t.Error("did not expect Alt set")
	}
}

func TestParseBindingBareKey(t *testing.T) {
	b, err := ParseBinding("Space")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Key != "Space" || b.Modifiers != 0 {
		t.Errorf("expected bare Space binding, got %+v", b)
	}
}

func TestParseBindingRejectsUnknownModifier(t *testing.T) {
	if _, err := ParseBinding("Hyper+K"); err != ErrUnknownModifier {
		t.Errorf("expected ErrUnknownModifier, got %v", err)
	}
}

func TestBuildInputMapFlattensAndSorts(t *testing.T) {
	defs := []ActionDef{
		{Name: "jump", Bindings: []string{"Space", "Ctrl+J"}},
		{Name: "attack", Bindings: []string{"Ctrl+Click"}},
	}
	m, err := BuildInputMap(defs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	jump, ok := m.Lookup("jump")
	if !ok {
		t.Fatal("expected to find jump action")
	}
	if len(m.BindingsOf(jump)) != 2 {
		t.Errorf("expected 2 bindings for jump, got %d", len(m.BindingsOf(jump)))
	}
	for i := 1; i < len(m.Actions); i++ {
		if m.Actions[i-1].NameHash > m.Actions[i].NameHash {
			t.Fatal("actions not sorted by name hash")
		}
	}
}

func TestBuildInputMapRejectsDuplicateAction(t *testing.T) {
	defs := []ActionDef{
		{Name: "a", Bindings: []string{"X"}},
		{Name: "a", Bindings: []string{"Y"}},
	}
	if _, err := BuildInputMap(defs); err != ErrDuplicateAction {
		t.Errorf("expected ErrDuplicateAction, got %v", err)
	}
}

func TestBuildInputMapRejectsEmptyBindings(t *testing.T) {
	defs := []ActionDef{{Name: "a"}}
	if _, err := BuildInputMap(defs); err != ErrEmptyBindingSet {
		t.Errorf("expected ErrEmptyBindingSet, got %v", err)
	}
}
