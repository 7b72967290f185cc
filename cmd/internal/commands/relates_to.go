// SPDX-License-Identifier: AGPL-3.0-or-later
package commands

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/bartekus/gitmit/internal/logger"
	"github.com/bartekus/gitmit/internal/session"
)

// NewRelatesToCmd builds git-mit-relates-to, which records the issue the
// next commits work towards.
func NewRelatesToCmd(env Env) *cobra.Command {
	var (
		timeout int
		scope   string
	)

	cmd := newCommand(env, "git-mit-relates-to <issue>", "Set the issue the next commits relate to")
	cmd.Example = "  git-mit-relates-to '[#12345678]'\n  git-mit-relates-to JIRA-123"
	cmd.Args = cobra.ExactArgs(1)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		sc, err := parseScope(scope)
		if err != nil {
			return err
		}
		sess := session.New(env.Store(env.Dir, sc), session.WithClock(env.Now))
		if err := sess.SetRelatesTo(args[0], time.Duration(timeout)*time.Minute); err != nil {
			return err
		}
		logger.FromContext(cmd.Context()).Debug("relates-to set", "issue", args[0], "timeout_minutes", timeout)
		return nil
	}

	cmd.Flags().IntVarP(&timeout, "timeout", "t", env.minutes(EnvRelatesToTimeout),
		"minutes until the issue reference expires (env "+EnvRelatesToTimeout+")")
	addScopeFlag(cmd, &scope)
	return cmd
}
