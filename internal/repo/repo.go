// Package repo locates the git repository a hook runs in and reports
// whether a merge, rebase, cherry-pick or revert is in progress.
package repo

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
)

// ErrNotRepository is returned when the directory is not inside a work tree.
var ErrNotRepository = errors.New("not a git repository")

// State is the operation git is in the middle of.
type State int

const (
	Clean State = iota
	Merging
	Rebasing
	CherryPicking
	Reverting
)

func (s State) String() string {
	switch s {
	case Clean:
		return "clean"
	case Merging:
		return "merge"
	case Rebasing:
		return "rebase"
	case CherryPicking:
		return "cherry-pick"
	case Reverting:
		return "revert"
	}
	return "unknown"
}

// Repo is a discovered repository.
type Repo struct {
	root   string
	gitDir string

	mu        sync.Mutex
	hooksPath string
}

// Discover finds the repository containing dir.
func Discover(ctx context.Context, dir string) (*Repo, error) {
	out, err := git(ctx, dir, "rev-parse", "--show-toplevel", "--absolute-git-dir")
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrNotRepository, dir, err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		return nil, fmt.Errorf("%w: %s: unexpected rev-parse output %q", ErrNotRepository, dir, out)
	}
	return &Repo{root: lines[0], gitDir: lines[1]}, nil
}

// Root is the top of the work tree.
func (r *Repo) Root() string { return r.root }

// GitDir is the absolute path of the .git directory.
func (r *Repo) GitDir() string { return r.gitDir }

// State inspects the marker files git leaves while an operation is paused.
func (r *Repo) State() State {
	switch {
	case r.exists("rebase-merge") || r.exists("rebase-apply"):
		return Rebasing
	case r.exists("MERGE_HEAD"):
		return Merging
	case r.exists("CHERRY_PICK_HEAD"):
		return CherryPicking
	case r.exists("REVERT_HEAD"):
		return Reverting
	}
	return Clean
}

func (r *Repo) exists(name string) bool {
	_, err := os.Stat(filepath.Join(r.gitDir, name))
	return err == nil
}

// HooksDir returns the directory git runs hooks from, honouring
// core.hooksPath. The result is cached for the lifetime of r.
func (r *Repo) HooksDir(ctx context.Context) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.hooksPath != "" {
		return r.hooksPath, nil
	}
	out, err := git(ctx, r.root, "rev-parse", "--git-path", "hooks")
	if err != nil {
		return "", err
	}
	path := strings.TrimSpace(out)
	if !filepath.IsAbs(path) {
		path = filepath.Join(r.root, path)
	}
	r.hooksPath = path
	return r.hooksPath, nil
}

func git(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
			return "", fmt.Errorf("git %s failed: %s", strings.Join(args, " "), strings.TrimSpace(string(exitErr.Stderr)))
		}
		return "", fmt.Errorf("git %s failed: %w", strings.Join(args, " "), err)
	}
	return string(out), nil
}
