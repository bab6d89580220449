package patch

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_Apply(t *testing.T) {
	tests := []struct {
		name         string
		path         string
		content      string
		rules        []Rule
		strict       bool
		want         string
		wantCount    int
		wantModified bool
		wantError    string
	}{
		{
			name:    "literal_replacement",
			content: "Hello World",
			rules: []Rule{
				{Name: "greet", Literal: "World", Replace: "Universe"},
			},
			want:         "Hello Universe",
			wantCount:    1,
			wantModified: true,
		},
		{
			name:    "literal_replaces_all_occurrences",
			content: "a b a b a",
			rules: []Rule{
				{Name: "swap", Literal: "a", Replace: "c"},
			},
			want:         "c b c b c",
			wantCount:    3,
			wantModified: true,
		},
		{
			name:    "literal_respects_max_count",
			content: "a a a",
			rules: []Rule{
				{Name: "first-only", Literal: "a", Replace: "b", MaxCount: 1},
			},
			want:         "b a a",
			wantCount:    1,
			wantModified: true,
		},
		{
			name:    "regex_with_capture_groups",
			content: "func process(x int) {",
			rules: []Rule{
				{
					Name:    "add-param",
					Pattern: `(func process\(x int)(\) \{)`,
					Replace: "${1}, y string${2}",
				},
			},
			want:         "func process(x int, y string) {",
			wantCount:    1,
			wantModified: true,
		},
		{
			name:    "regex_respects_max_count",
			content: "v1 v2 v3",
			rules: []Rule{
				{Name: "bump", Pattern: `v(\d)`, Replace: "version${1}", MaxCount: 2},
			},
			want:         "version1 version2 v3",
			wantCount:    2,
			wantModified: true,
		},
		{
			name:    "rules_apply_sequentially",
			content: "alpha",
			rules: []Rule{
				{Name: "first", Literal: "alpha", Replace: "beta"},
				// Only matches because the first rule already ran
				{Name: "second", Literal: "beta", Replace: "gamma"},
			},
			want:         "gamma",
			wantCount:    2,
			wantModified: true,
		},
		{
			name:    "non_matching_rule_is_silent_noop",
			content: "Hello World",
			rules: []Rule{
				{Name: "absent", Literal: "Goodbye", Replace: "Hi"},
			},
			want:         "Hello World",
			wantCount:    0,
			wantModified: false,
		},
		{
			name:    "non_matching_rule_fails_in_strict_mode",
			content: "Hello World",
			rules: []Rule{
				{Name: "absent", Literal: "Goodbye", Replace: "Hi"},
			},
			strict:    true,
			wantError: `rule "absent": anchor pattern did not match`,
		},
		{
			name:    "glob_filter_skips_rule",
			path:    "docs/readme.md",
			content: "Hello World",
			rules: []Rule{
				{Name: "go-only", Literal: "World", Replace: "Universe", FileFilterGlob: "**/*.go"},
			},
			want:         "Hello World",
			wantCount:    0,
			wantModified: false,
		},
		{
			name:    "glob_filter_allows_rule",
			path:    "pkg/util/util.go",
			content: "Hello World",
			rules: []Rule{
				{Name: "go-only", Literal: "World", Replace: "Universe", FileFilterGlob: "**/*.go"},
			},
			want:         "Hello Universe",
			wantCount:    1,
			wantModified: true,
		},
		{
			name:         "empty_rules",
			content:      "Hello World",
			rules:        []Rule{},
			want:         "Hello World",
			wantCount:    0,
			wantModified: false,
		},
		{
			name:    "invalid_rule_rejected",
			content: "Hello World",
			rules: []Rule{
				{Name: "bad", Pattern: "(", Replace: "x"},
			},
			wantError: "compiling pattern",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := NewEngine()
			if tt.strict {
				engine = NewStrictEngine()
			}

			result, err := engine.Apply(context.Background(), tt.path, []byte(tt.content), tt.rules)

			if tt.wantError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantError)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, result)
			assert.Equal(t, tt.content, string(result.OriginalContent))
			assert.Equal(t, tt.want, string(result.PatchedContent))
			assert.Equal(t, tt.wantCount, result.TotalReplacements)
			assert.Equal(t, tt.wantModified, result.WasModified)
			assert.Len(t, result.Outcomes, len(tt.rules))
		})
	}
}

func TestEngine_Apply_UntouchedContentIsPreserved(t *testing.T) {
	content := "prefix\nmiddle anchor middle\nsuffix with trailing spaces   \n\ttabbed\n"
	rules := []Rule{
		{Name: "anchor", Literal: "anchor", Replace: "ANCHOR"},
	}

	result, err := NewEngine().Apply(context.Background(), "", []byte(content), rules)
	require.NoError(t, err)

	// Everything outside the matched region is byte-for-byte identical
	assert.Equal(t, "prefix\nmiddle ANCHOR middle\nsuffix with trailing spaces   \n\ttabbed\n", string(result.PatchedContent))
}

func TestEngine_Apply_OutcomesReportSkippedRules(t *testing.T) {
	rules := []Rule{
		{Name: "fires", Literal: "a", Replace: "b"},
		{Name: "misses", Literal: "zzz", Replace: "y"},
	}

	result, err := NewEngine().Apply(context.Background(), "", []byte("a"), rules)
	require.NoError(t, err)

	require.Len(t, result.Outcomes, 2)
	assert.True(t, result.Outcomes[0].Applied)
	assert.Equal(t, 1, result.Outcomes[0].Matches)
	assert.False(t, result.Outcomes[1].Applied)
	assert.Equal(t, 0, result.Outcomes[1].Matches)
}

func TestValidateRules(t *testing.T) {
	tests := []struct {
		name      string
		rules     []Rule
		wantError string
	}{
		{
			name: "valid_rules",
			rules: []Rule{
				{Name: "a", Literal: "x", Replace: "y"},
				{Name: "b", Pattern: `x(\d+)`, Replace: "${1}"},
			},
		},
		{
			name:      "missing_name",
			rules:     []Rule{{Literal: "x"}},
			wantError: "name is required",
		},
		{
			name:      "missing_match",
			rules:     []Rule{{Name: "a"}},
			wantError: "one of pattern or literal is required",
		},
		{
			name:      "both_pattern_and_literal",
			rules:     []Rule{{Name: "a", Pattern: "x", Literal: "y"}},
			wantError: "mutually exclusive",
		},
		{
			name:      "invalid_pattern",
			rules:     []Rule{{Name: "a", Pattern: "("}},
			wantError: "compiling pattern",
		},
		{
			name:      "negative_max_count",
			rules:     []Rule{{Name: "a", Literal: "x", MaxCount: -1}},
			wantError: "max_count must not be negative",
		},
		{
			name:      "invalid_glob",
			rules:     []Rule{{Name: "a", Literal: "x", FileFilterGlob: "["}},
			wantError: "invalid file filter glob",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRules(tt.rules)
			if tt.wantError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantError)
				return
			}
			require.NoError(t, err)
		})
	}
}
