package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/patchrc/cmd/patchrc/commands"
	"github.com/walteh/patchrc/cmd/patchrc/opts"
)

// newRootCmd creates the patchrc root command
func newRootCmd() *cobra.Command {
	ro := &opts.RootOpts{}

	cmd := &cobra.Command{
		Use:   "patchrc",
		Short: "Apply ordered find/replace patch rules to source files",
		Long: `patchrc applies ordered find/replace rules (literal or regex with capture
groups) to local files. Rules come either from the builtin migration or from
a ruleset manifest (.patchrc, YAML, JSON or HCL).`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(ro.Debug)
		},
	}

	addRootFlags(cmd, ro)

	cmd.AddCommand(
		commands.NewMigrateCmd(ro),
		commands.NewApplyCmd(ro),
		commands.NewStatusCmd(ro),
	)

	return cmd
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, ro *opts.RootOpts) {
	cmd.PersistentFlags().StringVarP(&ro.ConfigFile, "config", "c", ".patchrc.hcl", "manifest file path")
	cmd.PersistentFlags().StringVarP(&ro.Dir, "dir", "C", ".", "directory to resolve targets against")
	cmd.PersistentFlags().BoolVarP(&ro.Debug, "debug", "d", false, "enable debug logging")
}

// setupLogging configures zerolog based on flags
func setupLogging(debug bool) {
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	log := zerolog.New(os.Stderr).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &log
}
