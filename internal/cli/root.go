// Package cli provides the Cobra command tree of the kickstart binary.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/modu-ai/kickstart/pkg/version"
)

// NewRootCmd builds the command tree. Each call returns an independent
// tree so tests can execute commands in isolation.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "kickstart",
		Short: "Scaffold Maven and Gradle service projects",
		Long: `kickstart scaffolds backend service projects: the build descriptor,
source directories, a sample resource with tests, README, ignore file,
runtime configuration and container files.

An existing pom.xml or build.gradle is merged into rather than replaced,
and files that already exist are left alone, so running kickstart twice
is safe.`,
		Version:       version.GetVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetVersionTemplate(fmt.Sprintf("kickstart %s\n", version.GetVersion()))

	root.PersistentFlags().String("config", "", "Settings file (default: ~/.kickstart/config.yaml)")
	root.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error")
	root.PersistentFlags().String("log-file", "", "Also write JSON logs to this file, rotated by size")

	root.AddCommand(newCreateCmd(), newVersionCmd())
	return root
}

// Execute runs the root command and prints the error, if any, to stderr.
// An interrupt cancels the running command.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	root := NewRootCmd()
	err := root.ExecuteContext(ctx)
	if err != nil {
		_, _ = fmt.Fprintln(root.ErrOrStderr(), renderError(err))
	}
	return err
}
