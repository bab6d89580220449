package commands

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/patchrc/cmd/patchrc/opts"
	"github.com/walteh/patchrc/pkg/operation"
	"gitlab.com/tozd/go/errors"
)

// NewApplyCmd creates a new apply command
func NewApplyCmd(ro *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Apply a ruleset manifest to its target files",
		Long: `Apply loads a ruleset manifest and patches its target files. It will:
1. Load and validate the manifest
2. Expand the target globs
3. Run every rule over each file, in order
4. Write changed files back atomically (with a .bak backup when enabled)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctx = zerolog.Ctx(ctx).With().Str("command", "apply").Logger().WithContext(ctx)

			o, err := ro.OperationOptions(ctx)
			if err != nil {
				return err
			}

			op, err := operation.NewPatchOperation(o)
			if err != nil {
				return errors.Errorf("creating patch operation: %w", err)
			}

			if err := op.Execute(ctx); err != nil {
				return errors.Errorf("applying manifest: %w", err)
			}

			return nil
		},
	}

	return cmd
}
