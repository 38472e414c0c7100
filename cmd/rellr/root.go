package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// execute runs the command line and returns the exit status. It is the only
// place errors are printed.
func execute(args []string, a *app) int {
	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	err := root.Execute()
	if a.printer == nil {
		// Flag parsing failed before setup ran.
		_ = a.setup()
	}
	return exitCode(err, a.printer)
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "rellr",
		Short:         "Release orchestration for semantic-versioned git projects",
		Long:          `rellr stages versions on release branches, merges them back, rewrites package manifests and the changelog, and records each release as one commit and tag.`,
		Version:       fmt.Sprintf("%s (%s)", version, commit),
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}

	addGlobalFlags(root.PersistentFlags(), a)

	root.AddCommand(
		newInitCmd(a),
		newNextCmd(a),
		newTopicCmd(a, "feat", "Start a feature branch from the main branch", topicFeature),
		newTopicCmd(a, "fix", "Start a hotfix branch from the main branch", topicHotfix),
		newReleaseCmd(a),
		newResetCmd(a),
		newChangelogCmd(a),
		newConfigCmd(a),
	)
	return root
}

func addGlobalFlags(flags *pflag.FlagSet, a *app) {
	flags.StringVarP(&a.dir, "dir", "C", ".", "Project directory containing rellr.json")
	flags.BoolVar(&a.verbose, "verbose", false, "Enable debug logging")
	flags.BoolVar(&a.noColor, "no-color", false, "Disable colored output")
}
