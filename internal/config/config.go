// stampplace - content-aware stamp placement engine for paginated documents
// Copyright (C) 2026  stampplace contributors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package config loads stampplace's ambient configuration: the engine
// tunables spec.md §3 enumerates, plus the CLI's own log level. It
// follows the same Defaults/Load/Save shape as
// dfbb-im2code's internal/config.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk shape of the placement engine's tunables and
// the CLI's ambient settings.
type Config struct {
	StampMax           int     `yaml:"stamp_max"`
	StampMin           int     `yaml:"stamp_min"`
	MinMargin          int     `yaml:"min_margin"`
	WhiteThreshold     int     `yaml:"white_threshold"`
	OverlapBudgetFinal float64 `yaml:"overlap_budget_final"`
	KernelCacheSize    int     `yaml:"kernel_cache_size"`
	LogLevel           string  `yaml:"loglevel"`
}

// Defaults returns a Config populated with spec.md's documented
// defaults. StampMin has none in the spec ("90 or 200 depending on
// caller"); 200 is used here since it is the value the concrete
// scenarios in spec.md §8 exercise.
func Defaults() *Config {
	return &Config{
		StampMax:           300,
		StampMin:           200,
		MinMargin:          5,
		WhiteThreshold:     245,
		OverlapBudgetFinal: 0.10,
		KernelCacheSize:    32,
		LogLevel:           "info",
	}
}

// Load reads path and overlays it onto Defaults(). A missing file is
// not an error: the caller gets defaults back so a first run without
// a config file still works.
func Load(path string) (*Config, error) {
	cfg := Defaults()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}
	if len(data) == 0 {
		return cfg, nil
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes cfg to path in YAML, creating parent directories as
// needed.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
