/*
 * Copyright 2024 CloudWeGo Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package codegen

import (
	"fmt"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"

	"github.com/hertz-contrib/swagger-generate/thriftgen/ir"
)

const defaultNamespaceScope = "go"

// Config is the fixed configuration shared by every emission unit.
type Config struct {
	// Container bindings as qualified type names ("import/path.Name").
	// Empty selects the builtin list, set and map.
	ListContainer string `yaml:"list_container"`
	SetContainer  string `yaml:"set_container"`
	MapContainer  string `yaml:"map_container"`

	EmitDefensiveAnnotations bool `yaml:"emit_defensive_annotations"`
	EmitSerializationHelpers bool `yaml:"emit_serialization_helpers"`

	// NamespaceScope selects which declared namespace places a type.
	NamespaceScope string `yaml:"namespace_scope"`

	// Workers bounds how many units are generated at once.
	Workers int `yaml:"workers"`
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() *Config {
	return &Config{
		NamespaceScope: defaultNamespaceScope,
		Workers:        runtime.GOMAXPROCS(0),
	}
}

// LoadConfig reads a YAML configuration file. Settings absent from the file
// keep their defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the container bindings and fills zero settings with
// their defaults.
func (c *Config) Validate() error {
	if c.NamespaceScope == "" {
		c.NamespaceScope = defaultNamespaceScope
	}
	if c.Workers <= 0 {
		c.Workers = runtime.GOMAXPROCS(0)
	}
	_, err := c.bindings()
	return err
}

type containerBindings struct {
	list, set, mapping ir.Binding
}

func (c *Config) bindings() (containerBindings, error) {
	var b containerBindings
	for _, s := range []struct {
		setting string
		value   string
		dst     *ir.Binding
	}{
		{"list_container", c.ListContainer, &b.list},
		{"set_container", c.SetContainer, &b.set},
		{"map_container", c.MapContainer, &b.mapping},
	} {
		binding, err := ir.ParseBinding(s.value)
		if err != nil {
			return b, &ConfigError{Setting: s.setting, Msg: err.Error()}
		}
		*s.dst = binding
	}
	return b, nil
}
