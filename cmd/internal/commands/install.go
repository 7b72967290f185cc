// SPDX-License-Identifier: AGPL-3.0-or-later
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bartekus/gitmit/internal/repo"
)

// NewInstallCmd builds git-mit-install, which links the hooks into the
// current repository.
func NewInstallCmd(env Env) *cobra.Command {
	cmd := newCommand(env, "git-mit-install", "Install the git-mit hooks in this repository")
	cmd.Args = cobra.NoArgs
	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		r, err := repo.Discover(ctx, env.Dir)
		if err != nil {
			return err
		}
		installed, err := r.InstallHooks(ctx, env.LookPath)
		for _, path := range installed {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "installed %s\n", path)
		}
		return err
	}
	return cmd
}
