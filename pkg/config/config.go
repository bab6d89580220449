// Copyright 2025 walteh LLC
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

package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/patchrc/pkg/patch"
	"gitlab.com/tozd/go/errors"
)

// 🔄 RuleDefinition is one find/replace rule as written in a manifest
type RuleDefinition struct {
	Name     string `json:"name" yaml:"name" hcl:"name,label"`
	Pattern  string `json:"pattern,omitempty" yaml:"pattern,omitempty" hcl:"pattern,optional"`
	Literal  string `json:"literal,omitempty" yaml:"literal,omitempty" hcl:"literal,optional"`
	Replace  string `json:"replace" yaml:"replace" hcl:"replace,optional"`
	MaxCount int    `json:"max_count,omitempty" yaml:"max_count,omitempty" hcl:"max_count,optional"`
	Files    string `json:"files,omitempty" yaml:"files,omitempty" hcl:"files,optional"`
}

// 🔧 Rule converts the definition into an engine rule
func (r RuleDefinition) Rule() patch.Rule {
	return patch.Rule{
		Name:           r.Name,
		Pattern:        r.Pattern,
		Literal:        r.Literal,
		Replace:        r.Replace,
		MaxCount:       r.MaxCount,
		FileFilterGlob: r.Files,
	}
}

// 📚 PatchrcConfig represents a complete ruleset manifest
type PatchrcConfig struct {
	Targets []string         `json:"targets" yaml:"targets" hcl:"targets"`
	Strict  bool             `json:"strict,omitempty" yaml:"strict,omitempty" hcl:"strict,optional"`
	Backup  bool             `json:"backup,omitempty" yaml:"backup,omitempty" hcl:"backup,optional"`
	Async   bool             `json:"async,omitempty" yaml:"async,omitempty" hcl:"async,optional"`
	Rules   []RuleDefinition `json:"rules" yaml:"rules" hcl:"rule,block"`

	location string
}

// 📍 Location returns the path the manifest was loaded from
func (cfg *PatchrcConfig) Location() string {
	return cfg.location
}

// 🔧 PatchRules converts every definition into an engine rule, in order
func (cfg *PatchrcConfig) PatchRules() []patch.Rule {
	rules := make([]patch.Rule, 0, len(cfg.Rules))
	for _, def := range cfg.Rules {
		rules = append(rules, def.Rule())
	}
	return rules
}

// 📝 String returns a short description of the manifest
func (cfg *PatchrcConfig) String() string {
	return fmt.Sprintf("%d rule(s) over %s", len(cfg.Rules), strings.Join(cfg.Targets, ", "))
}

// 🔍 Validate checks that the manifest is usable
func Validate(ctx context.Context, cfg *PatchrcConfig) error {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Int("rules", len(cfg.Rules)).Int("targets", len(cfg.Targets)).Msg("validating manifest")

	if len(cfg.Targets) == 0 {
		return errors.Errorf("at least one target is required")
	}
	for _, target := range cfg.Targets {
		if !doublestar.ValidatePattern(target) {
			return errors.Errorf("invalid target glob %q", target)
		}
	}
	if len(cfg.Rules) == 0 {
		return errors.Errorf("at least one rule is required")
	}
	if err := patch.ValidateRules(cfg.PatchRules()); err != nil {
		return errors.Errorf("validating rules: %w", err)
	}
	return nil
}
