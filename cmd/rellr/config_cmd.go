package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/randalmurphal/rellr/config"
	"github.com/spf13/cobra"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Read and write rellr settings",
	}
	cmd.AddCommand(
		newConfigGetCmd(a),
		newConfigSetCmd(a),
		newConfigListCmd(a),
		newConfigUnsetCmd(a),
	)
	return cmd
}

func newConfigGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Print the resolved value of a setting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !knownKey(args[0]) {
				return fmt.Errorf("%w: unknown key %q", config.ErrInvalidSetting, args[0])
			}
			value := a.resolver.Resolve().Get(args[0])
			_, err := fmt.Fprintln(cmd.OutOrStdout(), value)
			return err
		},
	}
}

func newConfigSetCmd(a *app) *cobra.Command {
	var global bool
	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Write a setting to .rellr.yaml, or the global file with --global",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			save := config.DefaultSaveConfig()
			if global {
				if err := save.SaveGlobal(args[0], args[1]); err != nil {
					return err
				}
				a.printer.Info("Set %s in %s", args[0], a.resolver.GlobalPath())
				return nil
			}
			if err := save.SaveLocal(a.resolver.GitRoot(), args[0], args[1]); err != nil {
				return err
			}
			a.printer.Info("Set %s in %s", args[0], config.LocalSettingsName)
			return nil
		},
	}
	cmd.Flags().BoolVar(&global, "global", false, "Write to ~/.config/rellr/config.yaml")
	return cmd
}

func newConfigListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List resolved settings and where each value comes from",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resolved := a.resolver.Resolve()
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			for _, key := range resolved.Keys() {
				value, source := resolved.GetWithSource(key)
				if key == config.KeyGitToken || key == config.KeyNotifySecret {
					value = redact(value)
				}
				fmt.Fprintf(w, "%s\t%s\t(%s)\n", key, value, source)
			}
			return w.Flush()
		},
	}
}

func newConfigUnsetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "unset <key>",
		Short: "Remove a setting from the global file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.DefaultSaveConfig().UnsetGlobal(args[0]); err != nil {
				return err
			}
			a.printer.Info("Unset %s", args[0])
			return nil
		},
	}
}

func knownKey(key string) bool {
	for _, keys := range [][]string{config.GlobalKeys, config.LocalKeys} {
		for _, k := range keys {
			if k == key {
				return true
			}
		}
	}
	return false
}

func redact(value string) string {
	if value == "" {
		return ""
	}
	return "********"
}
