// SPDX-FileCopyrightText : © 2026 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package asset

// components.go is the minimal per-handle runtime-value store a loader
// uses to attach its parsed result: a *font.Font, *texture.Texture,
// *fonttex.Atlas, *decl.PrefabMap, and so on. The manager itself stays
// agnostic of every concrete asset type; domain-specific transforms are
// a loader's business, not the manager's.

// Component fetches h's attached runtime value as T, reporting false if
// nothing is attached or the attached value is a different type.
func Component[T any](m *Manager, h Handle) (T, bool) {
	var zero T
	if m.components == nil {
		return zero, false
	}
	v, ok := m.components[h]
	if !ok {
		return zero, false
	}
	t, ok := v.(T)
	return t, ok
}

// attach records v as h's runtime component, overwriting any previous
// value. Called by a loader once its build succeeds.
func (m *Manager) attach(h Handle, v any) {
	if m.components == nil {
		m.components = make(map[Handle]any)
	}
	m.components[h] = v
}

// detach drops h's runtime component, called once the handle settles
// back to Idle after Cleanup: the runtime component never outlives the
// asset's loaded lifetime.
func (m *Manager) detach(h Handle) {
	delete(m.components, h)
	delete(m.loaderState, h)
}

// fetchLoadState fetches a loader's own transient per-handle
// bookkeeping, if any was attached with setLoadState.
func fetchLoadState[T any](m *Manager, h Handle) (T, bool) {
	var zero T
	if m.loaderState == nil {
		return zero, false
	}
	v, ok := m.loaderState[h]
	if !ok {
		return zero, false
	}
	t, ok := v.(T)
	return t, ok
}

// setLoadState records a loader's own transient per-handle bookkeeping
// across suspended ticks.
func (m *Manager) setLoadState(h Handle, v any) {
	if m.loaderState == nil {
		m.loaderState = make(map[Handle]any)
	}
	m.loaderState[h] = v
}

// clearLoadState drops a loader's transient bookkeeping for h, called
// once the loader reaches a terminal (done) result.
func (m *Manager) clearLoadState(h Handle) {
	delete(m.loaderState, h)
}
