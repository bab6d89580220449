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

	"github.com/rs/zerolog"
	"github.com/walteh/patchrc/pkg/patch"
	"github.com/walteh/patchrc/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// 📦 NewPatchOperation creates the operation that applies a manifest's rules
// to its targets and writes the results back.
func NewPatchOperation(opts Options) (Operation, error) {
	if err := opts.validate(); err != nil {
		return nil, errors.Errorf("validating options: %w", err)
	}

	engine := patch.NewEngine()
	if opts.Config.Strict {
		engine = patch.NewStrictEngine()
	}

	return &patchOperation{
		BaseOperation: NewBaseOperation(opts),
		engine:        engine,
	}, nil
}

// 📦 patchOperation implements the patch operation
type patchOperation struct {
	BaseOperation
	engine *patch.Engine
}

// Name implements Operation.Name
func (op *patchOperation) Name() string {
	return "patch"
}

// 🏃 Execute runs the patch operation
func (op *patchOperation) Execute(ctx context.Context) error {
	files, err := op.expandTargets()
	if err != nil {
		return errors.Errorf("expanding targets: %w", err)
	}

	op.StatusMgr.StartOperation(ctx, len(files))
	defer op.StatusMgr.FinishOperation(ctx)

	if err := forEachFile(ctx, files, op.Config.Async, op.StatusMgr, op.processFile); err != nil {
		return err
	}

	patched := 0
	infos, err := op.StatusMgr.ListFiles(ctx)
	if err != nil {
		return errors.Errorf("listing results: %w", err)
	}
	for _, info := range infos {
		if info.Status == status.StatusPatched {
			patched++
		}
	}
	op.Reporter.LogRunSummary(fmt.Sprintf("patched %d of %d file(s)", patched, len(files)))

	return nil
}

// 📄 processFile patches a single target file
func (op *patchOperation) processFile(ctx context.Context, file string) error {
	logger := zerolog.Ctx(ctx)

	content, err := op.StatusMgr.ReadFile(ctx, file)
	if err != nil {
		return errors.Errorf("reading %s: %w", file, err)
	}

	result, err := op.engine.Apply(ctx, file, content, op.Config.PatchRules())
	if err != nil {
		op.Reporter.LogRuleChange(status.RuleChange{
			Type:  status.RuleErrored,
			Rule:  "*",
			Path:  file,
			Error: err,
		})
		return errors.Errorf("patching %s: %w", file, err)
	}

	reportOutcomes(op.Reporter, file, result.Outcomes)

	if !result.WasModified {
		logger.Debug().Str("file", file).Msg("no rule fired; file untouched")
		op.StatusMgr.TrackFile(ctx, file, status.FileInfo{
			Path:     file,
			Status:   status.StatusUnchanged,
			Size:     int64(len(content)),
			Checksum: status.Checksum(content),
		})
		return nil
	}

	if op.Config.Backup {
		if err := op.StatusMgr.BackupFile(ctx, file); err != nil {
			return errors.Errorf("backing up %s: %w", file, err)
		}
	}

	if err := op.StatusMgr.WriteFileAtomic(ctx, file, result.PatchedContent); err != nil {
		return errors.Errorf("writing %s: %w", file, err)
	}

	op.StatusMgr.TrackFile(ctx, file, status.FileInfo{
		Path:         file,
		Status:       status.StatusPatched,
		Size:         int64(len(result.PatchedContent)),
		Checksum:     status.Checksum(result.PatchedContent),
		Replacements: result.TotalReplacements,
	})

	return nil
}

// 📝 reportOutcomes forwards per-rule outcomes to the reporter
func reportOutcomes(reporter *status.Reporter, file string, outcomes []patch.RuleOutcome) {
	for _, outcome := range outcomes {
		change := status.RuleChange{
			Rule:    outcome.Name,
			Path:    file,
			Matches: outcome.Matches,
		}
		switch {
		case outcome.Applied:
			change.Type = status.RuleApplied
		case outcome.Filtered:
			change.Type = status.RuleFiltered
		default:
			change.Type = status.RuleSkipped
		}
		reporter.LogRuleChange(change)
	}
}
