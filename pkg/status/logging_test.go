package status

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"gitlab.com/tozd/go/errors"
)

func newTestReporter(t *testing.T) (*Reporter, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	ctx := logger.WithContext(context.Background())
	return NewReporter(ctx), &buf
}

func TestReporter_LogRuleChange(t *testing.T) {
	tests := []struct {
		name    string
		change  RuleChange
		wantLog string
	}{
		{
			name: "applied",
			change: RuleChange{
				Type:    RuleApplied,
				Rule:    "add-helper",
				Path:    "target.go",
				Matches: 1,
			},
			wantLog: "Applied add-helper on target.go (1 match(es))",
		},
		{
			name: "skipped",
			change: RuleChange{
				Type: RuleSkipped,
				Rule: "add-helper",
				Path: "target.go",
			},
			wantLog: "Skipped add-helper on target.go",
		},
		{
			name: "errored",
			change: RuleChange{
				Type:  RuleErrored,
				Rule:  "add-helper",
				Path:  "target.go",
				Error: errors.New("boom"),
			},
			wantLog: "Error add-helper on target.go",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reporter, buf := newTestReporter(t)
			reporter.LogRuleChange(tt.change)
			assert.Contains(t, buf.String(), tt.wantLog)
		})
	}
}

func TestReporter_LogRunSummary(t *testing.T) {
	reporter, buf := newTestReporter(t)
	reporter.LogRunSummary("patched 2 of 3 files")
	assert.Contains(t, buf.String(), "patched 2 of 3 files")
}

func TestReporter_LogValidation(t *testing.T) {
	reporter, buf := newTestReporter(t)

	reporter.LogValidation(true, "manifest ok", nil)
	assert.Contains(t, buf.String(), "manifest ok")

	reporter.LogValidation(false, "manifest broken", errors.New("bad rule"))
	assert.Contains(t, buf.String(), "manifest broken")
}
