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
	"path/filepath"
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🔧 Engine implements Patcher with sequential rule application
type Engine struct {
	strict bool
}

// 🏭 NewEngine creates an engine with the default best-effort behavior:
// a rule whose anchor does not match is silently skipped.
func NewEngine() *Engine {
	return &Engine{}
}

// 🏭 NewStrictEngine creates an engine that fails when a rule matches nothing
func NewStrictEngine() *Engine {
	return &Engine{strict: true}
}

// 🏃 Apply implements Patcher.Apply
func (e *Engine) Apply(ctx context.Context, path string, content []byte, rules []Rule) (*Result, error) {
	logger := zerolog.Ctx(ctx)

	if err := ValidateRules(rules); err != nil {
		return nil, errors.Errorf("validating rules: %w", err)
	}

	result := &Result{
		OriginalContent: content,
		PatchedContent:  content,
		Outcomes:        make([]RuleOutcome, 0, len(rules)),
	}

	// Each rule sees the cumulative output of the rules before it
	current := string(content)
	for _, rule := range rules {
		outcome := RuleOutcome{Name: rule.Name}

		if skip, err := e.filteredOut(rule, path); err != nil {
			return nil, err
		} else if skip {
			logger.Debug().Str("rule", rule.Name).Str("path", path).Msg("rule filtered out by glob")
			outcome.Filtered = true
			result.Outcomes = append(result.Outcomes, outcome)
			continue
		}

		next, count, err := e.applyRule(current, rule)
		if err != nil {
			return nil, errors.Errorf("applying rule %q: %w", rule.Name, err)
		}

		if count == 0 && e.strict {
			return nil, errors.Errorf("rule %q: anchor pattern did not match", rule.Name)
		}

		outcome.Matches = count
		outcome.Applied = count > 0
		if count > 0 {
			result.WasModified = true
			result.TotalReplacements += count
		}

		logger.Debug().
			Str("rule", rule.Name).
			Int("matches", count).
			Msg("rule applied")

		current = next
		result.Outcomes = append(result.Outcomes, outcome)
	}

	result.PatchedContent = []byte(current)
	return result, nil
}

// ValidateRules implements Patcher.ValidateRules
func (e *Engine) ValidateRules(rules []Rule) error {
	return ValidateRules(rules)
}

// 🔍 filteredOut reports whether the rule's glob excludes the given path
func (e *Engine) filteredOut(rule Rule, path string) (bool, error) {
	if rule.FileFilterGlob == "" || path == "" {
		return false, nil
	}
	matched, err := doublestar.Match(rule.FileFilterGlob, filepath.ToSlash(path))
	if err != nil {
		return false, errors.Errorf("rule %q: matching file filter: %w", rule.Name, err)
	}
	return !matched, nil
}

// 🔄 applyRule applies one rule and returns the new content and match count
func (e *Engine) applyRule(current string, rule Rule) (string, int, error) {
	if rule.Literal != "" {
		return replaceLiteral(current, rule), countLiteral(current, rule), nil
	}
	return replaceRegex(current, rule)
}

func countLiteral(current string, rule Rule) int {
	count := strings.Count(current, rule.Literal)
	if rule.MaxCount > 0 && count > rule.MaxCount {
		count = rule.MaxCount
	}
	return count
}

func replaceLiteral(current string, rule Rule) string {
	limit := -1
	if rule.MaxCount > 0 {
		limit = rule.MaxCount
	}
	return strings.Replace(current, rule.Literal, rule.Replace, limit)
}

// replaceRegex applies a regex rule, expanding capture-group references in
// the replacement template for each match.
func replaceRegex(current string, rule Rule) (string, int, error) {
	re, err := regexp.Compile(rule.Pattern)
	if err != nil {
		return "", 0, errors.Errorf("compiling pattern: %w", err)
	}

	limit := -1
	if rule.MaxCount > 0 {
		limit = rule.MaxCount
	}

	src := []byte(current)
	matches := re.FindAllSubmatchIndex(src, limit)
	if len(matches) == 0 {
		return current, 0, nil
	}

	var buf []byte
	last := 0
	template := []byte(rule.Replace)
	for _, m := range matches {
		buf = append(buf, src[last:m[0]]...)
		buf = re.Expand(buf, template, src, m)
		last = m[1]
	}
	buf = append(buf, src[last:]...)

	return string(buf), len(matches), nil
}
