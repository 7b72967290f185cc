// SPDX-License-Identifier: AGPL-3.0-or-later
package commands

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/bartekus/gitmit/cmd/internal/clierr"
	"github.com/bartekus/gitmit/internal/authors"
	"github.com/bartekus/gitmit/internal/lints"
	"github.com/bartekus/gitmit/internal/logger"
	"github.com/bartekus/gitmit/internal/message"
	"github.com/bartekus/gitmit/internal/session"
	"github.com/bartekus/gitmit/internal/store"
)

// newCommand returns a root command with the flags every binary shares.
func newCommand(env Env, use, short string) *cobra.Command {
	cmd := &cobra.Command{
		Use:           use,
		Short:         short,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
	cmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		verbose, _ := cmd.Flags().GetBool("verbose")
		l := logger.New(cmd.ErrOrStderr(), logger.Level(verbose, env.Getenv(logger.EnvVar)))
		cmd.SetContext(logger.WithContext(cmd.Context(), l))
	}
	return cmd
}

// Run executes cmd and returns the process exit code, printing the error
// unless the command already reported it.
func Run(cmd *cobra.Command, stderr io.Writer) int {
	err := Classify(cmd.Execute())
	if err == nil {
		return 0
	}
	if !clierr.IsSilent(err) {
		_, _ = fmt.Fprintln(stderr, err)
	}
	return clierr.ExitCodeOf(err)
}

// Classify attaches the documented exit code to the error kinds of the core
// packages. Errors that already carry a code are returned unchanged.
func Classify(err error) error {
	if err == nil {
		return nil
	}

	var (
		exitErr  *clierr.ExitError
		stale    *session.StaleError
		parseErr *authors.ParseError
		missing  *authors.MissingInitialsError
		unknown  *lints.UnknownNameError
		readErr  *message.ReadError
		storeErr *store.Error
	)
	code := clierr.Generic
	switch {
	case errors.As(err, &exitErr):
		return err
	case errors.As(err, &stale):
		code = clierr.StaleAuthors
	case errors.As(err, &parseErr):
		code = clierr.UnparsableAuthor
	case errors.As(err, &missing):
		code = clierr.MissingInitial
	case errors.As(err, &unknown):
		code = clierr.UnknownLint
	case errors.Is(err, session.ErrNoAuthorsToSet):
		code = clierr.NoAuthorsToSet
	case errors.As(err, &readErr):
		code = clierr.MessageRead
	case errors.As(err, &storeErr):
		code = clierr.ConfigStore
	}
	return clierr.Wrap(code, "", err)
}

func parseScope(s string) (store.Scope, error) {
	scope, ok := store.ParseScope(s)
	if !ok {
		return "", fmt.Errorf("invalid scope %q: expected local or global", s)
	}
	return scope, nil
}
