// SPDX-License-Identifier: AGPL-3.0-or-later
package commands

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/bartekus/gitmit/cmd/internal/clierr"
	"github.com/bartekus/gitmit/internal/lintconfig"
	"github.com/bartekus/gitmit/internal/lints"
	"github.com/bartekus/gitmit/internal/logger"
	"github.com/bartekus/gitmit/internal/message"
	"github.com/bartekus/gitmit/internal/repo"
	"github.com/bartekus/gitmit/internal/report"
	"github.com/bartekus/gitmit/internal/session"
	"github.com/bartekus/gitmit/internal/store"
	"github.com/bartekus/gitmit/internal/trailers"
)

const staleAuthorsHelp = `The details of the author of this commit are stale.

Confirm who is working on this commit by running:

    git mit <initials>

For example, if only you are working, use your own initials. If others are
working with you, list all of their initials.
`

// NewPrepareCommitMsgCmd builds the prepare-commit-msg hook.
func NewPrepareCommitMsgCmd(env Env) *cobra.Command {
	cmd := newCommand(env, "mit-prepare-commit-msg <message-file> [source] [sha]",
		"Add Co-authored-by and Relates-to trailers to the commit message")
	cmd.Args = cobra.RangeArgs(1, 3)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		log := logger.FromContext(ctx)
		sess := session.New(env.Store(env.Dir, store.ScopeDefault), session.WithClock(env.Now))

		skip, err := skipNonClean(ctx, env, sess)
		if err != nil {
			return err
		}
		if skip {
			log.Debug("repository is mid-operation, leaving message alone")
			return nil
		}
		return trailers.New(sess).Inject(args[0])
	}
	return cmd
}

// skipNonClean reports whether injection is switched off for the current
// repository state.
func skipNonClean(ctx context.Context, env Env, sess *session.Session) (bool, error) {
	log := logger.FromContext(ctx)
	r, err := repo.Discover(ctx, env.Dir)
	if err != nil {
		log.Debug("not inside a repository", "dir", env.Dir, "err", err)
		return false, nil
	}
	state := r.State()
	if state == repo.Clean {
		return false, nil
	}

	stored, err := sess.NonCleanBehaviour()
	if err != nil {
		return false, err
	}
	behaviour, err := session.ParseNonCleanBehaviour(string(stored))
	if err != nil {
		log.Warn("ignoring invalid setting", "err", err)
		behaviour = session.AddTo
	}
	log.Debug("repository state", "state", state, "behaviour", behaviour)
	return behaviour == session.NoChange, nil
}

// NewPreCommitCmd builds the pre-commit hook, which refuses to commit with
// an expired author session.
func NewPreCommitCmd(env Env) *cobra.Command {
	cmd := newCommand(env, "mit-pre-commit", "Check the commit authors are still current")
	cmd.Args = cobra.NoArgs
	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		sess := session.New(env.Store(env.Dir, store.ScopeDefault), session.WithClock(env.Now))
		_, err := sess.RequireCoAuthors()
		var stale *session.StaleError
		if errors.As(err, &stale) {
			logger.FromContext(cmd.Context()).Debug("stale authors", "status", stale.Status, "expired_at", stale.ExpiredAt)
			_, _ = io.WriteString(cmd.ErrOrStderr(), staleAuthorsHelp)
			return clierr.Exit(clierr.StaleAuthors)
		}
		return err
	}
	return cmd
}

// NewCommitMsgCmd builds the commit-msg hook, which lints the message.
func NewCommitMsgCmd(env Env) *cobra.Command {
	cmd := newCommand(env, "mit-commit-msg <message-file>", "Check the commit message against the enabled lints")
	cmd.Args = cobra.ExactArgs(1)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		log := logger.FromContext(ctx)

		m, err := message.ReadFile(args[0])
		if err != nil {
			return err
		}
		reg := lints.Default()
		enabled, err := resolveLints(ctx, env, reg)
		if err != nil {
			return err
		}
		log.Debug("linting", "enabled", enabled.Names())

		problems := reg.Run(m, enabled)
		if len(problems) == 0 {
			return nil
		}

		stderr := cmd.ErrOrStderr()
		var opts []report.Option
		if !env.StderrIsTerminal() {
			opts = append(opts, report.WithColor(false))
		}
		if err := report.New(stderr, opts...).Problems(problems); err != nil {
			return err
		}
		copyToClipboard(ctx, env, stderr, m)

		if len(problems) == 1 {
			return clierr.Exit(problems[0].Code.ExitCode())
		}
		return clierr.Exit(clierr.MultipleProblems)
	}
	return cmd
}

// resolveLints layers the repository's lint document over the store.
// Outside a repository only the store applies.
func resolveLints(ctx context.Context, env Env, reg *lints.Registry) (lints.Set, error) {
	doc := lintconfig.Document{}
	if r, err := repo.Discover(ctx, env.Dir); err == nil {
		doc, err = lintconfig.LoadDocument(r.Root())
		if err != nil {
			return nil, err
		}
	} else {
		logger.FromContext(ctx).Debug("not inside a repository", "dir", env.Dir, "err", err)
	}
	return lintconfig.Resolve(reg, doc, env.Store(env.Dir, store.ScopeDefault))
}

// copyToClipboard saves a rejected message so an interactive user can paste
// it into the retry.
func copyToClipboard(ctx context.Context, env Env, w io.Writer, m message.Message) {
	if !env.StdoutIsTerminal() || env.Clipboard == nil || !env.Clipboard.Supported() {
		return
	}
	if err := env.Clipboard.WriteAll(m.String()); err != nil {
		logger.FromContext(ctx).Warn("copying commit message to clipboard", "err", err)
		return
	}
	_, _ = fmt.Fprintln(w, "\nYour commit message has been copied to the clipboard.")
}
