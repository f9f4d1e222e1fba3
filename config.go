// Copyright 2020-2021 Dolthub, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package betree

import (
	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// Config holds the engine-level knobs a rule set is built with.
type Config struct {
	// Epsilon overrides the default float-equality tolerance (see
	// value.go's Epsilon) when non-zero. Consulted by Equality's float
	// comparison via betree.FEqTol.
	Epsilon float64 `toml:"epsilon"`
	// EarthRadiusKM is used by the geo-within-radius special predicate
	// (spec.md §4.7); defaults to 6372.8 when zero.
	EarthRadiusKM float64 `toml:"earth_radius_km"`
	// PredicateCountHint sizes the initial Memo bitset allocation; purely
	// an optimization, never required for correctness.
	PredicateCountHint int `toml:"predicate_count_hint"`
}

// DefaultConfig returns the engine defaults used when no Config is
// supplied.
func DefaultConfig() Config {
	return Config{
		Epsilon:       Epsilon,
		EarthRadiusKM: 6372.8,
	}
}

// DecodeConfig parses a TOML-encoded Config, filling unset fields with
// DefaultConfig's values. Grounded on engine.go's Config struct, which
// the teacher also treats as an optional override of engine defaults.
func DecodeConfig(tomlSrc string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.Decode(tomlSrc, &cfg); err != nil {
		return Config{}, errors.Wrap(err, "betree: decoding toml config")
	}
	if cfg.Epsilon == 0 {
		cfg.Epsilon = Epsilon
	}
	if cfg.EarthRadiusKM == 0 {
		cfg.EarthRadiusKM = 6372.8
	}
	return cfg, nil
}

// DefaultFrequencyTypes is the drop-in-compatible default table for the
// frequency-cap type ids the original source hard-coded as placeholders
// (spec.md §9 REDESIGN FLAG): advertiser/campaign/flight/product.
var DefaultFrequencyTypes = FrequencyTypeConfig{
	"advertiser": 20,
	"campaign":   30,
	"flight":     10,
	"product":    40,
}

// FrequencyTypeConfig is a name -> numeric frequency-cap type id table,
// externalizing what the original implementation hard-coded as
// constants.
type FrequencyTypeConfig map[string]uint32

// DecodeFrequencyTypeConfig parses a YAML-encoded FrequencyTypeConfig.
func DecodeFrequencyTypeConfig(yamlSrc []byte) (FrequencyTypeConfig, error) {
	var cfg FrequencyTypeConfig
	if err := yaml.Unmarshal(yamlSrc, &cfg); err != nil {
		return nil, errors.Wrap(err, "betree: decoding yaml frequency type config")
	}
	if len(cfg) == 0 {
		return DefaultFrequencyTypes, nil
	}
	return cfg, nil
}
