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
	"fmt"

	"github.com/walteh/patchrc/pkg/patch"
	"github.com/walteh/patchrc/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// 📦 NewStatusOperation creates the dry-run operation: it reports which rules
// WOULD fire against the manifest's targets without writing anything.
func NewStatusOperation(opts Options) (Operation, error) {
	if err := opts.validate(); err != nil {
		return nil, errors.Errorf("validating options: %w", err)
	}

	// Always best-effort: the point of a dry run is to see the misses
	return &statusOperation{
		BaseOperation: NewBaseOperation(opts),
		engine:        patch.NewEngine(),
	}, nil
}

// 📦 statusOperation implements the dry-run operation
type statusOperation struct {
	BaseOperation
	engine *patch.Engine
}

// Name implements Operation.Name
func (op *statusOperation) Name() string {
	return "status"
}

// 🏃 Execute runs the dry-run
func (op *statusOperation) Execute(ctx context.Context) error {
	files, err := op.expandTargets()
	if err != nil {
		return errors.Errorf("expanding targets: %w", err)
	}

	op.StatusMgr.StartOperation(ctx, len(files))
	defer op.StatusMgr.FinishOperation(ctx)

	wouldPatch := 0
	for i, file := range files {
		content, err := op.StatusMgr.ReadFile(ctx, file)
		if err != nil {
			return errors.Errorf("reading %s: %w", file, err)
		}

		result, err := op.engine.Apply(ctx, file, content, op.Config.PatchRules())
		if err != nil {
			return errors.Errorf("evaluating %s: %w", file, err)
		}

		reportOutcomes(op.Reporter, file, result.Outcomes)

		fileStatus := status.StatusUnchanged
		if result.WasModified {
			fileStatus = status.StatusPatched
			wouldPatch++
		}
		op.StatusMgr.TrackFile(ctx, file, status.FileInfo{
			Path:         file,
			Status:       fileStatus,
			Size:         int64(len(content)),
			Checksum:     status.Checksum(content),
			Replacements: result.TotalReplacements,
		})

		op.StatusMgr.UpdateProgress(ctx, i+1)
	}

	op.Reporter.LogRunSummary(fmt.Sprintf("would patch %d of %d file(s)", wouldPatch, len(files)))

	return nil
}
