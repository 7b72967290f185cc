// SPDX-License-Identifier: AGPL-3.0-or-later
package commands

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/bartekus/gitmit/internal/logger"
	"github.com/bartekus/gitmit/internal/session"
)

// NewGitMitCmd builds git-mit, which records who is working on the next
// commits.
func NewGitMitCmd(env Env) *cobra.Command {
	var (
		cat     catalogueFlags
		timeout int
		scope   string
	)

	cmd := newCommand(env, "git-mit <initials>...", "Set the authors of the next commits")
	cmd.Long = `Set the authors of the next commits from their initials.

The first initial is the committer; the rest become Co-authored-by trailers
until the session expires.`
	cmd.Example = "  git-mit ae bt\n  git-mit -t 120 ae"
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		sc, err := parseScope(scope)
		if err != nil {
			return err
		}
		st := env.Store(env.Dir, sc)

		catalogue, err := cat.load(ctx, env, st)
		if err != nil {
			return err
		}
		list, err := catalogue.Lookup(args)
		if err != nil {
			return err
		}

		sess := session.New(st, session.WithClock(env.Now))
		if err := sess.SetAuthors(list, time.Duration(timeout)*time.Minute); err != nil {
			return err
		}
		logger.FromContext(ctx).Debug("authors set", "initials", args, "timeout_minutes", timeout)
		return nil
	}

	cat.register(cmd.Flags(), env)
	cmd.Flags().IntVarP(&timeout, "timeout", "t", env.minutes(EnvAuthorsTimeout),
		"minutes until the authors expire (env "+EnvAuthorsTimeout+")")
	addScopeFlag(cmd, &scope)
	return cmd
}
