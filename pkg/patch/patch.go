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

package patch

import (
	"context"
	"regexp"

	"github.com/bmatcuk/doublestar/v4"
	"gitlab.com/tozd/go/errors"
)

// 🔄 Rule defines a single find/replace operation
type Rule struct {
	// Name identifies the rule in summaries and error messages
	Name string

	// Pattern is an RE2 regular expression to match. Mutually exclusive with Literal.
	Pattern string

	// Literal is a plain substring to match. Mutually exclusive with Pattern.
	Literal string

	// Replace is the replacement text. For Pattern rules it is a template and
	// may reference capture groups ($1, ${name}).
	Replace string

	// MaxCount limits how many matches are replaced. Zero means all.
	MaxCount int

	// FileFilterGlob restricts the rule to paths matching the glob. Empty
	// means the rule applies to every path.
	FileFilterGlob string
}

// 📊 RuleOutcome records what a single rule did during one application
type RuleOutcome struct {
	// Name is the rule's name
	Name string

	// Matches is the number of matches replaced
	Matches int

	// Applied is true when the rule replaced at least one match
	Applied bool

	// Filtered is true when the rule was skipped by its file filter
	Filtered bool
}

// 📦 Result contains the output of applying a rule list to content
type Result struct {
	// OriginalContent is the content before any rule ran
	OriginalContent []byte

	// PatchedContent is the content after all rules ran
	PatchedContent []byte

	// WasModified indicates whether any rule replaced anything
	WasModified bool

	// TotalReplacements is the sum of replacements across all rules
	TotalReplacements int

	// Outcomes holds one entry per rule, in rule order
	Outcomes []RuleOutcome
}

// 🔌 Patcher applies an ordered rule list to content
type Patcher interface {
	// Apply runs each rule in order over the cumulative result of prior
	// rules. A rule that matches nothing is a no-op, not an error, unless
	// the patcher is strict.
	Apply(ctx context.Context, path string, content []byte, rules []Rule) (*Result, error)

	// ValidateRules checks that every rule is well formed
	ValidateRules(rules []Rule) error
}

// 🔍 ValidateRules checks that every rule is well formed
func ValidateRules(rules []Rule) error {
	for i, rule := range rules {
		if rule.Name == "" {
			return errors.Errorf("rule %d: name is required", i)
		}
		if rule.Pattern == "" && rule.Literal == "" {
			return errors.Errorf("rule %q: one of pattern or literal is required", rule.Name)
		}
		if rule.Pattern != "" && rule.Literal != "" {
			return errors.Errorf("rule %q: pattern and literal are mutually exclusive", rule.Name)
		}
		if rule.Pattern != "" {
			if _, err := regexp.Compile(rule.Pattern); err != nil {
				return errors.Errorf("rule %q: compiling pattern: %w", rule.Name, err)
			}
		}
		if rule.MaxCount < 0 {
			return errors.Errorf("rule %q: max_count must not be negative", rule.Name)
		}
		if rule.FileFilterGlob != "" && !doublestar.ValidatePattern(rule.FileFilterGlob) {
			return errors.Errorf("rule %q: invalid file filter glob %q", rule.Name, rule.FileFilterGlob)
		}
	}
	return nil
}
