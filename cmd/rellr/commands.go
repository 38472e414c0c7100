package main

import (
	"strings"

	"github.com/randalmurphal/rellr/release"
	semver "github.com/randalmurphal/rellr/version"
	"github.com/spf13/cobra"
)

const (
	topicFeature = semver.SchemeFeature
	topicHotfix  = semver.SchemeHotfix
)

func newInitCmd(a *app) *cobra.Command {
	var ver string
	cmd := &cobra.Command{
		Use:   "init <name>",
		Short: "Create rellr.json for a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.engine("")
			if err != nil {
				return err
			}
			_, err = e.Init(args[0], ver)
			return err
		},
	}
	cmd.Flags().StringVarP(&ver, "version", "v", "", "Initial version (default 0.0.0)")
	return cmd
}

func newNextCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:       "next [patch|minor|major]",
		Short:     "Stage the next version on its release branch",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"patch", "minor", "major"},
		RunE: func(cmd *cobra.Command, args []string) error {
			var kindArg string
			if len(args) == 1 {
				kindArg = args[0]
			}
			kind, err := semver.ParseKind(kindArg)
			if err != nil {
				return err
			}

			e, err := a.engine("")
			if err != nil {
				return err
			}
			_, err = e.Next(cmd.Context(), kind)
			return err
		},
	}
}

func newTopicCmd(a *app, use, short string, scheme semver.Scheme) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <name>",
		Short: short,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.engine("")
			if err != nil {
				return err
			}
			_, err = e.StartTopic(cmd.Context(), scheme, strings.Join(args, " "))
			return err
		},
	}
}

func newReleaseCmd(a *app) *cobra.Command {
	var opts release.Options
	cmd := &cobra.Command{
		Use:   "release [dir]",
		Short: "Merge the staged release and commit, tag and publish it",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var dir string
			if len(args) == 1 {
				dir = args[0]
			}
			e, err := a.engine(dir)
			if err != nil {
				return err
			}
			_, err = e.Release(cmd.Context(), opts)
			return err
		},
	}
	cmd.Flags().BoolVar(&opts.NoPublish, "no-publish", false, "Skip package publishing")
	cmd.Flags().BoolVar(&opts.Push, "push", false, "Push the main branch and release tag")
	cmd.Flags().StringSliceVar(&opts.Repos, "repo", nil, "Repositories listed in a whole-project changelog")
	return cmd
}

func newResetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "reset [version]",
		Short: "Remove the last release commit and its tag",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var ver string
			if len(args) == 1 {
				ver = strings.TrimPrefix(args[0], "v")
			}
			e, err := a.engine("")
			if err != nil {
				return err
			}
			return e.Reset(cmd.Context(), ver)
		},
	}
}

func newChangelogCmd(a *app) *cobra.Command {
	var repos []string
	cmd := &cobra.Command{
		Use:   "changelog",
		Short: "Rebuild the changelog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.engine("")
			if err != nil {
				return err
			}
			_, err = e.Changelog(cmd.Context(), repos...)
			return err
		},
	}
	cmd.Flags().StringSliceVar(&repos, "repo", nil, "Repositories listed in a whole-project changelog")
	return cmd
}
