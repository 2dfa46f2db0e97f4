// SPDX-FileCopyrightText : © 2026 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package decl

import "github.com/galvanized/forge/cache"

// cache.go implements cache.Value for every declarative map this
// package produces, so a loader can persist the packed result and skip
// re-parsing JSON on a subsequent load when the cache is fresher than
// the source.

var prefabMapMeta = cache.NewMeta("decl.PrefabMap", cache.KindArray, cache.KindArray, cache.KindArray)

func (m *PrefabMap) CacheMeta() cache.Meta { return prefabMapMeta }

func (m *PrefabMap) EncodeCache(w *cache.Writer) {
	w.WriteCount(len(m.Prefabs))
	for _, p := range m.Prefabs {
		w.WriteU32(p.NameHash)
		w.WriteString(p.Name)
		w.WriteU32(p.TraitIndex)
		w.WriteU32(p.TraitCount)
	}
	w.WriteCount(len(m.Traits))
	for _, t := range m.Traits {
		w.WriteString(t.Name)
		w.WriteMemory(t.Value, false)
	}
	w.WriteCount(len(m.UserIndexLookup))
	for _, idx := range m.UserIndexLookup {
		w.WriteU32(idx)
	}
}

func (m *PrefabMap) DecodeCache(r *cache.Reader) error {
	n, err := r.ReadCount()
	if err != nil {
		return err
	}
	m.Prefabs = make([]Prefab, n)
	for i := range m.Prefabs {
		if m.Prefabs[i].NameHash, err = r.ReadU32(); err != nil {
			return err
		}
		if m.Prefabs[i].Name, err = r.ReadString(); err != nil {
			return err
		}
		if m.Prefabs[i].TraitIndex, err = r.ReadU32(); err != nil {
			return err
		}
		if m.Prefabs[i].TraitCount, err = r.ReadU32(); err != nil {
			return err
		}
	}

	tn, err := r.ReadCount()
	if err != nil {
		return err
	}
	m.Traits = make([]PrefabTraitDef, tn)
	for i := range m.Traits {
		if m.Traits[i].Name, err = r.ReadString(); err != nil {
			return err
		}
		if m.Traits[i].Value, err = r.ReadMemory(false); err != nil {
			return err
		}
	}

	un, err := r.ReadCount()
	if err != nil {
		return err
	}
	m.UserIndexLookup = make([]uint32, un)
	for i := range m.UserIndexLookup {
		if m.UserIndexLookup[i], err = r.ReadU32(); err != nil {
			return err
		}
	}
	return nil
}

var weaponMapMeta = cache.NewMeta("decl.WeaponMap", cache.KindArray, cache.KindArray)

func (m *WeaponMap) CacheMeta() cache.Meta { return weaponMapMeta }

func (m *WeaponMap) EncodeCache(w *cache.Writer) {
	w.WriteCount(len(m.Weapons))
	for _, wp := range m.Weapons {
		w.WriteU32(wp.NameHash)
		w.WriteString(wp.Name)
		w.WriteU32(wp.EffectIndex)
		w.WriteU32(wp.EffectCount)
	}
	w.WriteCount(len(m.Effects))
	for _, e := range m.Effects {
		w.WriteString(e.Name)
		w.WriteMemory(e.Value, false)
	}
}

func (m *WeaponMap) DecodeCache(r *cache.Reader) error {
	n, err := r.ReadCount()
	if err != nil {
		return err
	}
	m.Weapons = make([]Weapon, n)
	for i := range m.Weapons {
		if m.Weapons[i].NameHash, err = r.ReadU32(); err != nil {
			return err
		}
		if m.Weapons[i].Name, err = r.ReadString(); err != nil {
			return err
		}
		if m.Weapons[i].EffectIndex, err = r.ReadU32(); err != nil {
			return err
		}
		if m.Weapons[i].EffectCount, err = r.ReadU32(); err != nil {
			return err
		}
	}

	en, err := r.ReadCount()
	if err != nil {
		return err
	}
	m.Effects = make([]WeaponEffectDef, en)
	for i := range m.Effects {
		if m.Effects[i].Name, err = r.ReadString(); err != nil {
			return err
		}
		if m.Effects[i].Value, err = r.ReadMemory(false); err != nil {
			return err
		}
	}
	return nil
}

var inputMapMeta = cache.NewMeta("decl.InputMap", cache.KindArray, cache.KindArray)

func (m *InputMap) CacheMeta() cache.Meta { return inputMapMeta }

func (m *InputMap) EncodeCache(w *cache.Writer) {
	w.WriteCount(len(m.Actions))
	for _, a := range m.Actions {
		w.WriteU32(a.NameHash)
		w.WriteString(a.Name)
		w.WriteU32(a.BindingIndex)
		w.WriteU32(a.BindingCount)
	}
	w.WriteCount(len(m.Bindings))
	for _, b := range m.Bindings {
		w.WriteString(b.Key)
		w.WriteU8(uint8(b.Modifiers))
	}
}

func (m *InputMap) DecodeCache(r *cache.Reader) error {
	n, err := r.ReadCount()
	if err != nil {
		return err
	}
	m.Actions = make([]Action, n)
	for i := range m.Actions {
		if m.Actions[i].NameHash, err = r.ReadU32(); err != nil {
			return err
		}
		if m.Actions[i].Name, err = r.ReadString(); err != nil {
			return err
		}
		if m.Actions[i].BindingIndex, err = r.ReadU32(); err != nil {
			return err
		}
		if m.Actions[i].BindingCount, err = r.ReadU32(); err != nil {
			return err
		}
	}

	bn, err := r.ReadCount()
	if err != nil {
		return err
	}
	m.Bindings = make([]Binding, bn)
	for i := range m.Bindings {
		if m.Bindings[i].Key, err = r.ReadString(); err != nil {
			return err
		}
		mod, err := r.ReadU8()
		if err != nil {
			return err
		}
		m.Bindings[i].Modifiers = Modifier(mod)
	}
	return nil
}
