package commands

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/patchrc/cmd/patchrc/opts"
	"github.com/walteh/patchrc/pkg/log"
	"github.com/walteh/patchrc/pkg/migrate"
	"gitlab.com/tozd/go/errors"
)

// NewMigrateCmd creates a new migrate command
func NewMigrateCmd(ro *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply the builtin tfprovidertest.go migration",
		Long: `Migrate applies the builtin, hard-coded migration to tfprovidertest.go in
the working directory. It will:
1. Insert the shouldExcludeFile helper after isBaseClassFile
2. Extend the parseTestFile signature with a customPatterns parameter
3. Rewrite the isTestFunction call site to pass customPatterns through

A rule whose anchor is absent is skipped silently; re-running on already
migrated output will insert the helper a second time.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctx = zerolog.Ctx(ctx).With().Str("command", "migrate").Logger().WithContext(ctx)

			dir, err := ro.AbsDir()
			if err != nil {
				return err
			}

			level := zerolog.InfoLevel
			if ro.Debug {
				level = zerolog.DebugLevel
			}
			logger := log.New(os.Stdout, level)
			logger.Header("applying builtin migration")

			if err := migrate.Run(ctx, dir, logger); err != nil {
				return errors.Errorf("running migration: %w", err)
			}

			return nil
		},
	}

	return cmd
}
