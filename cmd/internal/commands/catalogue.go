// SPDX-License-Identifier: AGPL-3.0-or-later
package commands

import (
	"context"
	"errors"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/bartekus/gitmit/internal/authors"
	"github.com/bartekus/gitmit/internal/logger"
	"github.com/bartekus/gitmit/internal/store"
)

// catalogueFlags selects where the author catalogue document comes from.
type catalogueFlags struct {
	path    string
	command string
}

func (f *catalogueFlags) register(flags *pflag.FlagSet, env Env) {
	flags.StringVarP(&f.path, "config", "c", env.defaultCataloguePath(),
		"path to the author catalogue (env "+EnvAuthorsConfig+")")
	flags.StringVarP(&f.command, "exec", "e", env.Getenv(EnvAuthorsExec),
		"command whose output is the author catalogue (env "+EnvAuthorsExec+")")
}

// document returns the raw catalogue text. A missing file is an empty
// catalogue.
func (f *catalogueFlags) document(ctx context.Context, env Env) (string, error) {
	log := logger.FromContext(ctx)
	if f.command != "" {
		log.Debug("reading author catalogue from command", "command", f.command)
		return env.Exec(ctx, env.Dir, f.command)
	}
	if f.path == "" {
		return "", nil
	}
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Debug("no author catalogue", "path", f.path)
		return "", nil
	}
	if err != nil {
		return "", err
	}
	log.Debug("reading author catalogue", "path", f.path)
	return string(data), nil
}

// load merges the catalogue document with the authors saved in the store.
// Store entries win.
func (f *catalogueFlags) load(ctx context.Context, env Env, st store.Store) (authors.Catalogue, error) {
	doc, err := f.document(ctx, env)
	if err != nil {
		return authors.Catalogue{}, err
	}
	fromDoc, err := authors.Parse(doc)
	if err != nil {
		return authors.Catalogue{}, err
	}
	fromStore, err := authors.FromStore(st)
	if err != nil {
		return authors.Catalogue{}, err
	}
	return fromDoc.Merge(fromStore), nil
}

func addScopeFlag(cmd *cobra.Command, target *string) {
	cmd.PersistentFlags().StringVar(target, "scope", string(store.ScopeLocal), "config scope written to: local or global")
}
