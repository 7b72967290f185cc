package repo

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
)

// Hooks maps git hook names to the binaries that implement them.
var Hooks = map[string]string{
	"prepare-commit-msg": "mit-prepare-commit-msg",
	"pre-commit":         "mit-pre-commit",
	"commit-msg":         "mit-commit-msg",
}

// HookExistsError reports a hook that is already present and is not ours.
type HookExistsError struct {
	Path string
}

func (e *HookExistsError) Error() string {
	return fmt.Sprintf("hook %s already exists and is not managed by git-mit", e.Path)
}

// InstallHooks symlinks every hook in Hooks into the repository's hooks
// directory. lookPath resolves binary names; nil means exec.LookPath.
// Links that already point at the right binary are left alone.
func (r *Repo) InstallHooks(ctx context.Context, lookPath func(string) (string, error)) ([]string, error) {
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	dir, err := r.HooksDir(ctx)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating hooks directory %s: %w", dir, err)
	}

	var installed []string
	for _, hook := range sortedHooks() {
		target, err := lookPath(Hooks[hook])
		if err != nil {
			return installed, fmt.Errorf("finding %s: %w", Hooks[hook], err)
		}
		link := filepath.Join(dir, hook)

		current, err := os.Readlink(link)
		switch {
		case err == nil && current == target:
			continue
		case err == nil:
			return installed, &HookExistsError{Path: link}
		case !errors.Is(err, fs.ErrNotExist):
			if _, statErr := os.Lstat(link); statErr == nil {
				return installed, &HookExistsError{Path: link}
			}
			return installed, err
		}

		if err := os.Symlink(target, link); err != nil {
			return installed, fmt.Errorf("linking %s: %w", link, err)
		}
		installed = append(installed, link)
	}
	return installed, nil
}

func sortedHooks() []string {
	names := make([]string, 0, len(Hooks))
	for name := range Hooks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
