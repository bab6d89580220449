package opts

import (
	"context"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/walteh/patchrc/pkg/config"
	"github.com/walteh/patchrc/pkg/operation"
	"github.com/walteh/patchrc/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	// ConfigFile is the ruleset manifest path (apply/status only)
	ConfigFile string

	// Dir is the directory targets are resolved against
	Dir string

	// Debug enables debug logging
	Debug bool
}

// AbsDir returns the absolute form of Dir
func (o *RootOpts) AbsDir() (string, error) {
	dir, err := filepath.Abs(o.Dir)
	if err != nil {
		return "", errors.Errorf("resolving directory: %w", err)
	}
	return dir, nil
}

// OperationOptions loads the manifest and builds the dependencies for a
// manifest-driven operation.
func (o *RootOpts) OperationOptions(ctx context.Context) (operation.Options, error) {
	dir, err := o.AbsDir()
	if err != nil {
		return operation.Options{}, err
	}

	cfg, err := config.LoadConfig(ctx, o.ConfigFile)
	if err != nil {
		return operation.Options{}, errors.Errorf("loading manifest: %w", err)
	}

	logger := zerolog.Ctx(ctx)
	return operation.Options{
		BaseDir:   dir,
		Config:    cfg,
		StatusMgr: status.New(dir, logger),
		Reporter:  status.NewReporter(ctx),
	}, nil
}
