package store

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runContract exercises the behaviour every Store implementation shares.
func runContract(t *testing.T, newStore func(t *testing.T) Store) {
	t.Run("absent key", func(t *testing.T) {
		s := newStore(t)

		v, ok, err := s.String("user.name")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Empty(t, v)

		_, ok, err = s.Int64("author.expires")
		require.NoError(t, err)
		assert.False(t, ok)

		_, ok, err = s.Bool("lint.not-emoji-log")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("string round trip", func(t *testing.T) {
		s := newStore(t)

		require.NoError(t, s.SetString("author.coauthors.0.name", "Billie Thompson"))
		require.NoError(t, s.SetString("relate.to", "[#12345678] and #9"))

		v, ok, err := s.String("author.coauthors.0.name")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "Billie Thompson", v)

		v, _, err = s.String("relate.to")
		require.NoError(t, err)
		assert.Equal(t, "[#12345678] and #9", v)
	})

	t.Run("overwrite", func(t *testing.T) {
		s := newStore(t)

		require.NoError(t, s.SetString("user.name", "First"))
		require.NoError(t, s.SetString("user.name", "Second"))

		v, _, err := s.String("user.name")
		require.NoError(t, err)
		assert.Equal(t, "Second", v)
	})

	t.Run("int64", func(t *testing.T) {
		s := newStore(t)

		require.NoError(t, s.SetInt64("author.expires", 1700000000))
		v, ok, err := s.Int64("author.expires")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, int64(1700000000), v)

		require.NoError(t, s.SetString("author.expires", "soon"))
		_, _, err = s.Int64("author.expires")
		var storeErr *Error
		assert.True(t, errors.As(err, &storeErr))
	})

	t.Run("bool", func(t *testing.T) {
		s := newStore(t)

		require.NoError(t, s.SetBool("lint.not-emoji-log", true))
		v, ok, err := s.Bool("lint.not-emoji-log")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.True(t, v)

		require.NoError(t, s.SetString("lint.jira-issue-key-missing", "no"))
		v, ok, err = s.Bool("lint.jira-issue-key-missing")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.False(t, v)

		require.NoError(t, s.SetString("lint.github-id-missing", "perhaps"))
		_, _, err = s.Bool("lint.github-id-missing")
		var storeErr *Error
		assert.True(t, errors.As(err, &storeErr))
	})

	t.Run("remove", func(t *testing.T) {
		s := newStore(t)

		require.NoError(t, s.Remove("user.signingkey"))

		require.NoError(t, s.SetString("user.signingkey", "0A46826A"))
		require.NoError(t, s.Remove("user.signingkey"))
		_, ok, err := s.String("user.signingkey")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("entries", func(t *testing.T) {
		s := newStore(t)

		require.NoError(t, s.SetString("user.name", "Billie"))
		require.NoError(t, s.SetString("author.coauthors.1.name", "Someone"))
		require.NoError(t, s.SetString("author.coauthors.0.name", "Anyone"))
		require.NoError(t, s.SetString("author.coauthors.0.email", "anyone@example.com"))

		keys, err := s.Entries("author.coauthors.*")
		require.NoError(t, err)
		assert.Equal(t, []string{
			"author.coauthors.0.email",
			"author.coauthors.0.name",
			"author.coauthors.1.name",
		}, keys)

		keys, err = s.Entries("author.coauthors.*.name")
		require.NoError(t, err)
		assert.Equal(t, []string{"author.coauthors.0.name", "author.coauthors.1.name"}, keys)

		keys, err = s.Entries("")
		require.NoError(t, err)
		assert.Len(t, keys, 4)

		keys, err = s.Entries("relate.*")
		require.NoError(t, err)
		assert.Empty(t, keys)
	})
}

func TestInMemory_Contract(t *testing.T) {
	runContract(t, func(t *testing.T) Store {
		return NewInMemory(nil)
	})
}

func TestGitConfig_Contract(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
	runContract(t, func(t *testing.T) Store {
		path := filepath.Join(t.TempDir(), "config")
		require.NoError(t, os.WriteFile(path, nil, 0o644))
		return NewGitConfig(WithFile(path))
	})
}
