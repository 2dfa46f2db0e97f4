// SPDX-FileCopyrightText : © 2026 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

// Package config loads the asset manager's tunables from a YAML
// document, in the same style as the model codebase's load.Shd: unmarshal
// into a package-private, yaml-tagged struct, then translate into the
// public type the rest of the program consumes.
package config

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	asset "github.com/galvanized/forge"
)

// document is the on-disk shape. Every field is optional; an absent
// field falls back to asset.DefaultConfig()'s value.
type document struct {
	TrackChanges     *bool `yaml:"track_changes"`
	DelayUnload      *bool `yaml:"delay_unload"`
	UnloadDelayTicks *int  `yaml:"unload_delay_ticks"`
	LoadBudgetMS     *int  `yaml:"load_budget_ms"`
	MaxQueryResults  *int  `yaml:"max_query_results"`
}

func msToDuration(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}

// Load parses a YAML document into an asset.Config, seeding every unset
// field from asset.DefaultConfig().
func Load(data []byte) (asset.Config, error) {
	cfg := asset.DefaultConfig()

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return cfg, fmt.Errorf("config: yaml %w", err)
	}

	if doc.TrackChanges != nil {
		cfg.TrackChanges = *doc.TrackChanges
	}
	if doc.DelayUnload != nil {
		cfg.DelayUnload = *doc.DelayUnload
	}
	if doc.UnloadDelayTicks != nil {
		if *doc.UnloadDelayTicks < 0 {
			return cfg, fmt.Errorf("config: unload_delay_ticks must not be negative, got %d", *doc.UnloadDelayTicks)
		}
		cfg.UnloadDelayTicks = uint16(*doc.UnloadDelayTicks)
	}
	if doc.LoadBudgetMS != nil {
		if *doc.LoadBudgetMS < 0 {
			return cfg, fmt.Errorf("config: load_budget_ms must not be negative, got %d", *doc.LoadBudgetMS)
		}
		cfg.LoadBudget = msToDuration(*doc.LoadBudgetMS)
	}
	if doc.MaxQueryResults != nil {
		if *doc.MaxQueryResults <= 0 {
			return cfg, fmt.Errorf("config: max_query_results must be positive, got %d", *doc.MaxQueryResults)
		}
		cfg.MaxQueryResults = *doc.MaxQueryResults
	}
	return cfg, nil
}
