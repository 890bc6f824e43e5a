// Package commands provides the CLI commands for the invokable demos.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/zoobzio/invokable/internal/logging"
)

// Version information set at build time
var Version = "0.1.0"

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	var (
		logLevel string
		pretty   bool
	)

	root := &cobra.Command{
		Use:   "invokable",
		Short: "Demonstrations of typed synchronous events",
		Long: `invokable runs small programs built on the invokable event package.

Run 'invokable button' or 'invokable multiply' for the basic examples, or
'invokable stress' to hammer one event from many goroutines.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			logging.Init(logging.Config{
				Level:  logging.ParseLevel(logLevel),
				Output: cmd.ErrOrStderr(),
				Pretty: pretty,
			})
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	root.PersistentFlags().StringVar(&logLevel, "log-level", "INFO", "Log level (DEBUG|INFO|WARN|ERROR)")
	root.PersistentFlags().BoolVar(&pretty, "pretty", false, "Human-readable log output")

	root.AddCommand(newButtonCmd())
	root.AddCommand(newMultiplyCmd())
	root.AddCommand(newStressCmd())

	return root
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}
