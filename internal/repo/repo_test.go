package repo

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func initRepo(t *testing.T) string {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	runGit(t, dir, "init")
	return dir
}

func runGit(t *testing.T, dir string, args ...string) {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git %v failed: %v\nOutput: %s", args, err, out)
	}
}

func TestDiscover(t *testing.T) {
	dir := initRepo(t)
	sub := filepath.Join(dir, "pkg", "nested")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	r, err := Discover(context.Background(), sub)
	require.NoError(t, err)
	assert.Equal(t, dir, r.Root())
	assert.Equal(t, filepath.Join(dir, ".git"), r.GitDir())
}

func TestDiscover_NotRepository(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
	dir := t.TempDir()
	t.Setenv("GIT_CEILING_DIRECTORIES", filepath.Dir(dir))

	_, err := Discover(context.Background(), dir)
	assert.True(t, errors.Is(err, ErrNotRepository))
}

func TestState(t *testing.T) {
	dir := initRepo(t)
	r, err := Discover(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, Clean, r.State())

	tests := []struct {
		marker string
		dir    bool
		want   State
	}{
		{marker: "MERGE_HEAD", want: Merging},
		{marker: "rebase-merge", dir: true, want: Rebasing},
		{marker: "rebase-apply", dir: true, want: Rebasing},
		{marker: "CHERRY_PICK_HEAD", want: CherryPicking},
		{marker: "REVERT_HEAD", want: Reverting},
	}
	for _, tt := range tests {
		t.Run(tt.marker, func(t *testing.T) {
			path := filepath.Join(r.GitDir(), tt.marker)
			if tt.dir {
				require.NoError(t, os.Mkdir(path, 0o755))
			} else {
				require.NoError(t, os.WriteFile(path, []byte("0000\n"), 0o644))
			}
			t.Cleanup(func() { _ = os.RemoveAll(path) })

			assert.Equal(t, tt.want, r.State())
			assert.NotEqual(t, "unknown", r.State().String())
		})
	}
}

func TestInstallHooks(t *testing.T) {
	dir := initRepo(t)
	r, err := Discover(context.Background(), dir)
	require.NoError(t, err)

	bin := t.TempDir()
	lookPath := func(name string) (string, error) { return filepath.Join(bin, name), nil }

	installed, err := r.InstallHooks(context.Background(), lookPath)
	require.NoError(t, err)
	assert.Len(t, installed, 3)

	target, err := os.Readlink(filepath.Join(dir, ".git", "hooks", "commit-msg"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(bin, "mit-commit-msg"), target)

	installed, err = r.InstallHooks(context.Background(), lookPath)
	require.NoError(t, err)
	assert.Empty(t, installed)
}

func TestInstallHooks_ForeignHook(t *testing.T) {
	dir := initRepo(t)
	r, err := Discover(context.Background(), dir)
	require.NoError(t, err)

	hooks := filepath.Join(dir, ".git", "hooks")
	require.NoError(t, os.MkdirAll(hooks, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(hooks, "commit-msg"), []byte("#!/bin/sh\n"), 0o755))

	_, err = r.InstallHooks(context.Background(), func(name string) (string, error) { return "/usr/local/bin/" + name, nil })
	var exists *HookExistsError
	require.True(t, errors.As(err, &exists))
	assert.Equal(t, filepath.Join(hooks, "commit-msg"), exists.Path)
}
