package log

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger(t *testing.T) (*Logger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	return New(&buf, zerolog.InfoLevel), &buf
}

func TestLogger_Context(t *testing.T) {
	logger, _ := newTestLogger(t)

	ctx := NewContext(context.Background(), logger)
	assert.Same(t, logger, FromContext(ctx))

	assert.Panics(t, func() {
		FromContext(context.Background())
	})
}

func TestLogger_LogRuleOperation(t *testing.T) {
	tests := []struct {
		name string
		op   RuleOperation
		want []string
	}{
		{
			name: "applied_rule",
			op: RuleOperation{
				Rule:    "add-helper",
				Path:    "target.go",
				Status:  "applied",
				Matches: 1,
				Applied: true,
			},
			want: []string{"✓", "add-helper", "1 match(es)", "applied"},
		},
		{
			name: "skipped_rule",
			op: RuleOperation{
				Rule:   "rewrite-call",
				Path:   "target.go",
				Status: "no match",
			},
			want: []string{"•", "rewrite-call", "0 match(es)", "no match"},
		},
		{
			name: "filtered_rule",
			op: RuleOperation{
				Rule:     "go-only",
				Path:     "readme.md",
				Status:   "filtered",
				Filtered: true,
			},
			want: []string{"-", "go-only", "filtered"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, buf := newTestLogger(t)
			logger.LogRuleOperation(context.Background(), tt.op)
			for _, want := range tt.want {
				assert.Contains(t, buf.String(), want)
			}
		})
	}
}

func TestLogger_RunOperationLifecycle(t *testing.T) {
	logger, buf := newTestLogger(t)
	ctx := context.Background()

	logger.StartRunOperation(ctx, RunOperation{
		Target: "tfprovidertest.go",
		Rules:  3,
	})

	out := buf.String()
	assert.Contains(t, out, "[patching")
	assert.Contains(t, out, "tfprovidertest.go")
	assert.Contains(t, out, "3 rule(s)")

	logger.LogRuleOperation(ctx, RuleOperation{Rule: "add-helper", Applied: true, Matches: 1})
	logger.EndRunOperation(ctx)

	// Ending twice is harmless
	logger.EndRunOperation(ctx)
}

func TestLogger_Messages(t *testing.T) {
	logger, buf := newTestLogger(t)

	logger.Header("applying builtin migration")
	logger.Success("done")
	logger.Warning("rule skipped")
	logger.Error("write failed")
	logger.Infof("patched %d file(s)", 2)

	out := buf.String()
	require.NotEmpty(t, out)
	assert.Contains(t, out, "patchrc")
	assert.Contains(t, out, "applying builtin migration")
	assert.Contains(t, out, "✅")
	assert.Contains(t, out, "done")
	assert.Contains(t, out, "⚠️")
	assert.Contains(t, out, "❌")
	assert.Contains(t, out, "patched 2 file(s)")
}
