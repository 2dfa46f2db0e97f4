// SPDX-FileCopyrightText : © 2026 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package decl

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrDuplicateAction  = errors.New("decl: duplicate input action name")
	ErrEmptyBindingSet  = errors.New("decl: action declares no bindings")
	ErrUnknownModifier  = errors.New("decl: binding names an unrecognized modifier key")
)

// Modifier is a bitmask of held modifier keys, recovered from
// loader_inputmap.c: an action may bind Ctrl+Shift+K, not just a
// bare key.
type Modifier uint8

const (
	ModCtrl Modifier = 1 << iota
	ModShift
	ModAlt
	ModSuper
)

var modifierNames = map[string]Modifier{
	"ctrl":  ModCtrl,
	"shift": ModShift,
	"alt":   ModAlt,
	"super": ModSuper,
}

// Binding is one parsed key combination, e.g. "Ctrl+Shift+K".
type Binding struct {
	Key       string
	Modifiers Modifier
}

// ParseBinding splits a "Mod+Mod+...+Key" spec into a Binding, keys
// case-insensitive on the modifier names but preserving the key's own
// case (keys are compared against the platform's own key name table
// elsewhere, out of this package's scope).
func ParseBinding(spec string) (Binding, error) {
	parts := strings.Split(spec, "+")
	b := Binding{Key: parts[len(parts)-1]}
	for _, p := range parts[:len(parts)-1] {
		mod, ok := modifierNames[strings.ToLower(p)]
		if !ok {
			return Binding{}, ErrUnknownModifier
		}
		b.Modifiers |= mod
	}
	return b, nil
}

// ActionDef is one input action as parsed straight from JSON.
type ActionDef struct {
	Name     string   `json:"name"`
	Bindings []string `json:"bindings"`
}

// Action is one flattened, sorted entry in an InputMap.
type Action struct {
	NameHash     uint32
	Name         string
	BindingIndex uint32
	BindingCount uint32
}

// InputMap flattens an action definition array into bindings packed by
// action, actions sorted by name hash, and enforces uniqueness of
// action names.
type InputMap struct {
	Actions  []Action
	Bindings []Binding
}

// BuildInputMap parses every action's binding specs and packs the
// result, rejecting duplicate action names and actions with no bindings.
func BuildInputMap(defs []ActionDef) (*InputMap, error) {
	seen := make(map[string]bool, len(defs))
	for _, d := range defs {
		if seen[d.Name] {
			return nil, ErrDuplicateAction
		}
		seen[d.Name] = true
		if len(d.Bindings) == 0 {
			return nil, ErrEmptyBindingSet
		}
	}

	m := &InputMap{}
	entries := make([]Action, len(defs))
	for i, d := range defs {
		idx := uint32(len(m.Bindings))
		for _, spec := range d.Bindings {
			b, err := ParseBinding(spec)
			if err != nil {
				return nil, err
			}
			m.Bindings = append(m.Bindings, b)
		}
		entries[i] = Action{NameHash: NameHash(d.Name), Name: d.Name, BindingIndex: idx, BindingCount: uint32(len(d.Bindings))}
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].NameHash < entries[j].NameHash })
	m.Actions = entries
	return m, nil
}

// Lookup finds an action by name via binary search.
func (m *InputMap) Lookup(name string) (Action, bool) {
	hash := NameHash(name)
	i := sort.Search(len(m.Actions), func(i int) bool { return m.Actions[i].NameHash >= hash })
	if i < len(m.Actions) && m.Actions[i].NameHash == hash && m.Actions[i].Name == name {
		return m.Actions[i], true
	}
	return Action{}, false
}

// BindingsOf returns the flattened binding slice for a.
func (m *InputMap) BindingsOf(a Action) []Binding {
	return m.Bindings[a.BindingIndex : a.BindingIndex+a.BindingCount]
}
