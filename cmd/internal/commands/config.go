// SPDX-License-Identifier: AGPL-3.0-or-later
package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/bartekus/gitmit/internal/authors"
	"github.com/bartekus/gitmit/internal/lintconfig"
	"github.com/bartekus/gitmit/internal/lints"
	"github.com/bartekus/gitmit/internal/report"
	"github.com/bartekus/gitmit/internal/session"
	"github.com/bartekus/gitmit/internal/store"
	"github.com/bartekus/gitmit/internal/trailers"
)

// NewConfigCmd builds git-mit-config and its subcommand tree.
func NewConfigCmd(env Env) *cobra.Command {
	var scope string
	cmd := newCommand(env, "git-mit-config", "Inspect and change git-mit settings")
	addScopeFlag(cmd, &scope)

	open := func() (store.Store, error) {
		sc, err := parseScope(scope)
		if err != nil {
			return nil, err
		}
		return env.Store(env.Dir, sc), nil
	}

	cmd.AddCommand(
		newLintCmd(env, open),
		newMitCmd(env, open),
		newRelatesToConfigCmd(open),
	)
	return cmd
}

type storeOpener func() (store.Store, error)

func newLintCmd(env Env, open storeOpener) *cobra.Command {
	reg := lints.Default()
	cmd := &cobra.Command{
		Use:   "lint",
		Short: "Manage the commit message lints",
	}

	effective := func(cmd *cobra.Command) (lints.Set, error) {
		return resolveLints(cmd.Context(), env, reg)
	}

	available := &cobra.Command{
		Use:   "available",
		Short: "List every lint and whether it is enabled",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			enabled, err := effective(cmd)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(reg.Lints()))
			for _, l := range reg.Lints() {
				rows = append(rows, []string{l.Name(), statusWord(enabled.Contains(l.Code()))})
			}
			return writeTable(cmd.OutOrStdout(), []string{"Lint", "Status"}, rows)
		},
	}

	enabledCmd := &cobra.Command{
		Use:   "enabled",
		Short: "List the enabled lints",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			enabled, err := effective(cmd)
			if err != nil {
				return err
			}
			names := enabled.Names()
			rows := make([][]string, 0, len(names))
			for _, name := range names {
				rows = append(rows, []string{name})
			}
			return writeTable(cmd.OutOrStdout(), []string{"Lint"}, rows)
		},
	}

	setter := func(use, short string, value bool) *cobra.Command {
		return &cobra.Command{
			Use:   use + " <lint>...",
			Short: short,
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				st, err := open()
				if err != nil {
					return err
				}
				if _, err := reg.FromNames(args); err != nil {
					return err
				}
				for _, name := range args {
					if err := lintconfig.SetEnabled(reg, st, name, value); err != nil {
						return err
					}
				}
				return nil
			},
		}
	}

	status := &cobra.Command{
		Use:   "status <lint>...",
		Short: "Show whether the named lints are enabled",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := reg.FromNames(args); err != nil {
				return err
			}
			enabled, err := effective(cmd)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(args))
			for _, name := range args {
				l, _ := reg.Lookup(name)
				rows = append(rows, []string{name, statusWord(enabled.Contains(l.Code()))})
			}
			return writeTable(cmd.OutOrStdout(), []string{"Lint", "Status"}, rows)
		},
	}

	generate := &cobra.Command{
		Use:   "generate",
		Short: "Print a .git-mit.toml that pins the current lint settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			enabled, err := effective(cmd)
			if err != nil {
				return err
			}
			doc, err := lintconfig.Generate(reg, enabled)
			if err != nil {
				return err
			}
			_, err = io.WriteString(cmd.OutOrStdout(), doc)
			return err
		},
	}

	cmd.AddCommand(
		available,
		enabledCmd,
		setter("enable", "Enable lints in the config store", true),
		setter("disable", "Disable lints in the config store", false),
		status,
		generate,
	)
	return cmd
}

func newMitCmd(env Env, open storeOpener) *cobra.Command {
	var cat catalogueFlags
	cmd := &cobra.Command{
		Use:   "mit",
		Short: "Manage authors and session settings",
	}
	cat.register(cmd.PersistentFlags(), env)

	set := &cobra.Command{
		Use:   "set <initials> <name> <email> [signing-key]",
		Short: "Save an author in the config store",
		Args:  cobra.RangeArgs(3, 4),
		RunE: func(_ *cobra.Command, args []string) error {
			st, err := open()
			if err != nil {
				return err
			}
			a := authors.Author{Name: args[1], Email: args[2]}
			if len(args) == 4 {
				a.SigningKey = args[3]
			}
			return authors.Save(st, args[0], a)
		},
	}

	available := &cobra.Command{
		Use:   "available",
		Short: "List the authors that can be set",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := open()
			if err != nil {
				return err
			}
			catalogue, err := cat.load(cmd.Context(), env, st)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, catalogue.Len())
			for _, initial := range catalogue.Initials() {
				a, _ := catalogue.Get(initial)
				rows = append(rows, []string{initial, a.Name, a.Email, a.SigningKey})
			}
			return writeTable(cmd.OutOrStdout(), []string{"Initial", "Name", "Email", "Signing Key"}, rows)
		},
	}

	generate := &cobra.Command{
		Use:   "generate",
		Short: "Print the merged author catalogue as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := open()
			if err != nil {
				return err
			}
			catalogue, err := cat.load(cmd.Context(), env, st)
			if err != nil {
				return err
			}
			return writeCatalogue(cmd.OutOrStdout(), catalogue)
		},
	}

	example := &cobra.Command{
		Use:   "example",
		Short: "Print an example author catalogue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return writeCatalogue(cmd.OutOrStdout(), authors.Example())
		},
	}

	nonClean := &cobra.Command{
		Use:   "non-clean-behaviour [add-to|no-change]",
		Short: "Show or set what the hooks do during a merge or rebase",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := open()
			if err != nil {
				return err
			}
			sess := session.New(st, session.WithClock(env.Now))
			if len(args) == 1 {
				b, err := session.ParseNonCleanBehaviour(args[0])
				if err != nil {
					return err
				}
				return sess.SetNonCleanBehaviour(b)
			}
			b, err := sess.NonCleanBehaviour()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), b)
			return err
		},
	}

	cmd.AddCommand(set, available, generate, example, nonClean)
	return cmd
}

func newRelatesToConfigCmd(open storeOpener) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "relates-to",
		Short: "Manage how issue references are rendered",
	}

	template := &cobra.Command{
		Use:   "template [template]",
		Short: "Show or set the Relates-to template",
		Long: "Show or set the template the issue reference is rendered through.\n" +
			trailers.TemplatePlaceholder + " is replaced with the reference. An empty template removes the setting.",
		Example: "  git-mit-config relates-to template '[#" + trailers.TemplatePlaceholder + "]'",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := open()
			if err != nil {
				return err
			}
			sess := session.New(st)
			if len(args) == 1 {
				return sess.SetRelatesToTemplate(args[0])
			}
			tmpl, ok, err := sess.RelatesToTemplate()
			if err != nil || !ok {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), tmpl)
			return err
		},
	}

	cmd.AddCommand(template)
	return cmd
}

func statusWord(enabled bool) string {
	if enabled {
		return "enabled"
	}
	return "disabled"
}

func writeTable(w io.Writer, headers []string, rows [][]string) error {
	_, err := io.WriteString(w, report.Table(headers, rows))
	return err
}

func writeCatalogue(w io.Writer, c authors.Catalogue) error {
	doc, err := authors.Render(c)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, doc)
	return err
}
