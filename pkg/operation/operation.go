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

package operation

import (
	"context"
	"os"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/walteh/patchrc/pkg/config"
	"github.com/walteh/patchrc/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// 🎯 Operation is one executable patch run
type Operation interface {
	// Execute runs the operation to completion
	Execute(ctx context.Context) error

	// Name identifies the operation in logs
	Name() string
}

// 🔧 Options contains the dependencies every operation needs
type Options struct {
	// BaseDir is the directory target globs are resolved against
	BaseDir string

	// Config is the ruleset manifest
	Config *config.PatchrcConfig

	// StatusMgr manages file I/O and status tracking
	StatusMgr *status.Manager

	// Reporter provides user-facing rule outcome feedback
	Reporter *status.Reporter
}

// 🔍 validate checks that all required options are set
func (opts Options) validate() error {
	if opts.BaseDir == "" {
		return errors.Errorf("base dir is required")
	}
	if opts.Config == nil {
		return errors.Errorf("config is required")
	}
	if opts.StatusMgr == nil {
		return errors.Errorf("status manager is required")
	}
	if opts.Reporter == nil {
		return errors.Errorf("reporter is required")
	}
	return nil
}

// 📦 BaseOperation carries the shared options
type BaseOperation struct {
	Options
}

// 🏭 NewBaseOperation creates a new base operation
func NewBaseOperation(opts Options) BaseOperation {
	return BaseOperation{Options: opts}
}

// 🔍 expandTargets resolves the manifest's target globs into a sorted,
// de-duplicated list of relative file paths under BaseDir.
func (op *BaseOperation) expandTargets() ([]string, error) {
	seen := make(map[string]struct{})
	fsys := os.DirFS(op.BaseDir)

	for _, target := range op.Config.Targets {
		matches, err := doublestar.Glob(fsys, target, doublestar.WithFilesOnly())
		if err != nil {
			return nil, errors.Errorf("expanding target %q: %w", target, err)
		}
		for _, match := range matches {
			seen[match] = struct{}{}
		}
	}

	files := make([]string, 0, len(seen))
	for file := range seen {
		files = append(files, file)
	}
	sort.Strings(files)
	return files, nil
}
