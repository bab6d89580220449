package operation

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/patchrc/pkg/config"
	"github.com/walteh/patchrc/pkg/status"
)

func newTestOptions(t *testing.T, cfg *config.PatchrcConfig) (Options, string) {
	t.Helper()
	dir := t.TempDir()
	logger := zerolog.New(zerolog.NewTestWriter(t))
	ctx := logger.WithContext(context.Background())
	return Options{
		BaseDir:   dir,
		Config:    cfg,
		StatusMgr: status.New(dir, &logger),
		Reporter:  status.NewReporter(ctx),
	}, dir
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func readFile(t *testing.T, dir, name string) string {
	t.Helper()
	content, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	return string(content)
}

func renameConfig() *config.PatchrcConfig {
	return &config.PatchrcConfig{
		Targets: []string{"**/*.go"},
		Rules: []config.RuleDefinition{
			{Name: "rename", Literal: "oldName", Replace: "newName"},
		},
	}
}

func TestPatchOperation_PatchesMatchingFiles(t *testing.T) {
	opts, dir := newTestOptions(t, renameConfig())
	writeFile(t, dir, "a.go", "var oldName int")
	writeFile(t, dir, "sub/b.go", "func oldName() {}")
	writeFile(t, dir, "readme.md", "oldName is not a target")

	op, err := NewPatchOperation(opts)
	require.NoError(t, err)
	require.NoError(t, op.Execute(context.Background()))

	assert.Equal(t, "var newName int", readFile(t, dir, "a.go"))
	assert.Equal(t, "func newName() {}", readFile(t, dir, "sub/b.go"))

	// Non-target files are never read or written
	assert.Equal(t, "oldName is not a target", readFile(t, dir, "readme.md"))
}

func TestPatchOperation_TracksUnchangedFiles(t *testing.T) {
	opts, dir := newTestOptions(t, renameConfig())
	writeFile(t, dir, "a.go", "nothing to do here")

	op, err := NewPatchOperation(opts)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, op.Execute(ctx))

	info, err := opts.StatusMgr.GetFileInfo(ctx, "a.go")
	require.NoError(t, err)
	assert.Equal(t, status.StatusUnchanged, info.Status)
	assert.Equal(t, "nothing to do here", readFile(t, dir, "a.go"))
}

func TestPatchOperation_BackupBeforeOverwrite(t *testing.T) {
	cfg := renameConfig()
	cfg.Backup = true
	opts, dir := newTestOptions(t, cfg)
	writeFile(t, dir, "a.go", "var oldName int")

	op, err := NewPatchOperation(opts)
	require.NoError(t, err)
	require.NoError(t, op.Execute(context.Background()))

	assert.Equal(t, "var newName int", readFile(t, dir, "a.go"))
	assert.Equal(t, "var oldName int", readFile(t, dir, "a.go.bak"))
}

func TestPatchOperation_StrictFailsOnMiss(t *testing.T) {
	cfg := renameConfig()
	cfg.Strict = true
	opts, dir := newTestOptions(t, cfg)
	writeFile(t, dir, "a.go", "no anchors here")

	op, err := NewPatchOperation(opts)
	require.NoError(t, err)

	err = op.Execute(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "anchor pattern did not match")

	// The file was never rewritten
	assert.Equal(t, "no anchors here", readFile(t, dir, "a.go"))
}

func TestPatchOperation_AsyncPatchesAllFiles(t *testing.T) {
	cfg := renameConfig()
	cfg.Async = true
	opts, dir := newTestOptions(t, cfg)
	for _, name := range []string{"a.go", "b.go", "c.go", "d.go", "e.go", "f.go"} {
		writeFile(t, dir, name, "use oldName everywhere")
	}

	op, err := NewPatchOperation(opts)
	require.NoError(t, err)
	require.NoError(t, op.Execute(context.Background()))

	for _, name := range []string{"a.go", "b.go", "c.go", "d.go", "e.go", "f.go"} {
		assert.Equal(t, "use newName everywhere", readFile(t, dir, name))
	}
}

func TestPatchOperation_RuleFileFilter(t *testing.T) {
	cfg := &config.PatchrcConfig{
		Targets: []string{"**/*.go"},
		Rules: []config.RuleDefinition{
			{Name: "cmd-only", Literal: "oldName", Replace: "newName", Files: "cmd/**"},
		},
	}
	opts, dir := newTestOptions(t, cfg)
	writeFile(t, dir, "cmd/main.go", "var oldName int")
	writeFile(t, dir, "pkg/util.go", "var oldName int")

	op, err := NewPatchOperation(opts)
	require.NoError(t, err)
	require.NoError(t, op.Execute(context.Background()))

	assert.Equal(t, "var newName int", readFile(t, dir, "cmd/main.go"))
	assert.Equal(t, "var oldName int", readFile(t, dir, "pkg/util.go"))
}

func TestStatusOperation_DryRunWritesNothing(t *testing.T) {
	opts, dir := newTestOptions(t, renameConfig())
	writeFile(t, dir, "a.go", "var oldName int")
	writeFile(t, dir, "b.go", "untouched")

	op, err := NewStatusOperation(opts)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, op.Execute(ctx))

	// Nothing on disk changed
	assert.Equal(t, "var oldName int", readFile(t, dir, "a.go"))
	assert.Equal(t, "untouched", readFile(t, dir, "b.go"))

	// But the would-be outcome is tracked
	info, err := opts.StatusMgr.GetFileInfo(ctx, "a.go")
	require.NoError(t, err)
	assert.Equal(t, status.StatusPatched, info.Status)
	assert.Equal(t, 1, info.Replacements)

	info, err = opts.StatusMgr.GetFileInfo(ctx, "b.go")
	require.NoError(t, err)
	assert.Equal(t, status.StatusUnchanged, info.Status)
}

func TestNewPatchOperation_ValidatesOptions(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Options)
		wantError string
	}{
		{
			name:      "missing_base_dir",
			mutate:    func(o *Options) { o.BaseDir = "" },
			wantError: "base dir is required",
		},
		{
			name:      "missing_config",
			mutate:    func(o *Options) { o.Config = nil },
			wantError: "config is required",
		},
		{
			name:      "missing_status_manager",
			mutate:    func(o *Options) { o.StatusMgr = nil },
			wantError: "status manager is required",
		},
		{
			name:      "missing_reporter",
			mutate:    func(o *Options) { o.Reporter = nil },
			wantError: "reporter is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, _ := newTestOptions(t, renameConfig())
			tt.mutate(&opts)

			_, err := NewPatchOperation(opts)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantError)
		})
	}
}
