// SPDX-FileCopyrightText : © 2026 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package config

import (
	"testing"
	"time"

	asset "github.com/galvanized/forge"
)

func TestLoadAppliesDefaultsForMissingFields(t *testing.T) {
	cfg, err := Load([]byte(`track_changes: false`))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := asset.DefaultConfig()
	want.TrackChanges = false
	if cfg != want {
		t.Errorf("expected defaults with only track_changes overridden, got %+v", cfg)
	}
}

func TestLoadOverridesEveryField(t *testing.T) {
	doc := `
track_changes: false
delay_unload: false
unload_delay_ticks: 10
load_budget_ms: 5
max_query_results: 64
`
	cfg, err := Load([]byte(doc))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.TrackChanges || cfg.DelayUnload {
		t.Error("expected both bool flags to be false")
	}
	if cfg.UnloadDelayTicks != 10 {
		t.Errorf("expected UnloadDelayTicks 10, got %d", cfg.UnloadDelayTicks)
	}
	if cfg.LoadBudget != 5*time.Millisecond {
		t.Errorf("expected LoadBudget 5ms, got %v", cfg.LoadBudget)
	}
	if cfg.MaxQueryResults != 64 {
		t.Errorf("expected MaxQueryResults 64, got %d", cfg.MaxQueryResults)
	}
}

func TestLoadRejectsNegativeTicks(t *testing.T) {
	if _, err := Load([]byte(`unload_delay_ticks: -1`)); err == nil {
		t.Fatal("expected an error for a negative unload_delay_ticks")
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	if _, err := Load([]byte(`track_changes: [this is not a bool`)); err == nil {
		t.Fatal("expected a yaml parse error")
	}
}
