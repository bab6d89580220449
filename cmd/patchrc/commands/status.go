package commands

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/patchrc/cmd/patchrc/opts"
	"github.com/walteh/patchrc/pkg/operation"
	"gitlab.com/tozd/go/errors"
)

// NewStatusCmd creates a new status command
func NewStatusCmd(ro *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Report which rules would fire without writing anything",
		Long: `Status is a dry run: it loads the manifest, evaluates every rule against
every target file and reports which rules would fire, without modifying any
file on disk.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctx = zerolog.Ctx(ctx).With().Str("command", "status").Logger().WithContext(ctx)

			o, err := ro.OperationOptions(ctx)
			if err != nil {
				return err
			}

			op, err := operation.NewStatusOperation(o)
			if err != nil {
				return errors.Errorf("creating status operation: %w", err)
			}

			if err := op.Execute(ctx); err != nil {
				return errors.Errorf("checking status: %w", err)
			}

			return nil
		},
	}

	return cmd
}
