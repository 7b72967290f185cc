package session

import (
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bartekus/gitmit/internal/authors"
	"github.com/bartekus/gitmit/internal/store"
)

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

var (
	billie  = authors.Author{Name: "Billie Thompson", Email: "billie@example.com", SigningKey: "0A46826A"}
	anyone  = authors.Author{Name: "Anyone Else", Email: "anyone@example.com"}
	someone = authors.Author{Name: "Someone Else", Email: "someone@example.com"}
)

func newSession(t *testing.T) (*Session, *store.InMemory, *fakeClock) {
	t.Helper()
	st := store.NewInMemory(nil)
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	return New(st, WithClock(clock.Now)), st, clock
}

func TestSetAuthors_WritesLayout(t *testing.T) {
	s, st, _ := newSession(t)

	require.NoError(t, s.SetAuthors([]authors.Author{billie, anyone, someone}, time.Hour))

	assert.Equal(t, map[string]string{
		"user.name":                "Billie Thompson",
		"user.email":               "billie@example.com",
		"user.signingkey":          "0A46826A",
		"author.coauthors.0.name":  "Anyone Else",
		"author.coauthors.0.email": "anyone@example.com",
		"author.coauthors.1.name":  "Someone Else",
		"author.coauthors.1.email": "someone@example.com",
		"author.expires":           "1700003600",
	}, st.Snapshot())
}

func TestSetAuthors_PurgesStaleState(t *testing.T) {
	s, st, _ := newSession(t)

	require.NoError(t, s.SetAuthors([]authors.Author{billie, anyone, someone}, time.Hour))
	require.NoError(t, s.SetAuthors([]authors.Author{anyone}, time.Hour))

	snap := st.Snapshot()
	assert.NotContains(t, snap, "author.coauthors.0.name")
	assert.NotContains(t, snap, "author.coauthors.1.email")
	assert.NotContains(t, snap, "user.signingkey")
	assert.Equal(t, "Anyone Else", snap["user.name"])

	c, err := s.CoAuthors()
	require.NoError(t, err)
	assert.Equal(t, Active, c.Status)
	assert.Empty(t, c.Authors)
}

func TestSetAuthors_Empty(t *testing.T) {
	s, st, _ := newSession(t)

	err := s.SetAuthors(nil, time.Hour)
	assert.ErrorIs(t, err, ErrNoAuthorsToSet)
	assert.Empty(t, st.Snapshot())
}

func TestCoAuthors_Expiry(t *testing.T) {
	s, _, clock := newSession(t)

	c, err := s.CoAuthors()
	require.NoError(t, err)
	assert.Equal(t, Unset, c.Status)

	require.NoError(t, s.SetAuthors([]authors.Author{billie, anyone}, time.Hour))

	for _, d := range []time.Duration{time.Second, 30 * time.Minute, time.Hour} {
		clock.now = time.Unix(1_700_000_000, 0).Add(d)
		c, err = s.CoAuthors()
		require.NoError(t, err)
		assert.Equal(t, Active, c.Status, "after %s", d)
		assert.Equal(t, []authors.Author{anyone}, c.Authors)
	}

	clock.Advance(time.Second)
	c, err = s.CoAuthors()
	require.NoError(t, err)
	assert.Equal(t, Expired, c.Status)
	assert.Equal(t, time.Unix(1_700_003_600, 0), c.ExpiresAt)
	assert.Nil(t, c.Authors)
}

func TestCoAuthors_StopsAtGap(t *testing.T) {
	st := store.NewInMemory(map[string]string{
		"author.expires":           "1700003600",
		"author.coauthors.0.name":  "Anyone Else",
		"author.coauthors.0.email": "anyone@example.com",
		"author.coauthors.1.name":  "Half Set",
		"author.coauthors.2.name":  "Someone Else",
		"author.coauthors.2.email": "someone@example.com",
	})
	s := New(st, WithClock(func() time.Time { return time.Unix(1_700_000_000, 0) }))

	c, err := s.CoAuthors()
	require.NoError(t, err)
	assert.Equal(t, []authors.Author{anyone}, c.Authors)
}

func TestRequireCoAuthors(t *testing.T) {
	s, _, clock := newSession(t)

	_, err := s.RequireCoAuthors()
	var stale *StaleError
	require.True(t, errors.As(err, &stale))
	assert.Equal(t, Unset, stale.Status)

	require.NoError(t, s.SetAuthors([]authors.Author{billie}, time.Minute))
	list, err := s.RequireCoAuthors()
	require.NoError(t, err)
	assert.Empty(t, list)

	clock.Advance(2 * time.Minute)
	_, err = s.RequireCoAuthors()
	require.True(t, errors.As(err, &stale))
	assert.Equal(t, Expired, stale.Status)
	assert.Contains(t, stale.Error(), "expired")
}

func TestPrimary(t *testing.T) {
	s, _, _ := newSession(t)

	_, ok, err := s.Primary()
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.SetAuthors([]authors.Author{billie}, time.Minute))
	p, ok, err := s.Primary()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, billie, p)
}

func TestRelatesTo(t *testing.T) {
	s, _, clock := newSession(t)

	r, err := s.RelatesTo()
	require.NoError(t, err)
	assert.Equal(t, Unset, r.Status)

	require.NoError(t, s.SetRelatesTo("[#12345678]", 10*time.Minute))
	r, err = s.RelatesTo()
	require.NoError(t, err)
	assert.Equal(t, RelatesTo{Status: Active, ExpiresAt: time.Unix(1_700_000_600, 0), Ref: "[#12345678]"}, r)

	clock.Advance(11 * time.Minute)
	r, err = s.RelatesTo()
	require.NoError(t, err)
	assert.Equal(t, Expired, r.Status)
	assert.Empty(t, r.Ref)
}

func TestNonCleanBehaviour(t *testing.T) {
	s, _, _ := newSession(t)

	b, err := s.NonCleanBehaviour()
	require.NoError(t, err)
	assert.Equal(t, AddTo, b)

	require.NoError(t, s.SetNonCleanBehaviour(NoChange))
	b, err = s.NonCleanBehaviour()
	require.NoError(t, err)
	assert.Equal(t, NoChange, b)

	_, err = ParseNonCleanBehaviour("sometimes")
	assert.Error(t, err)
}

func TestRelatesToTemplate(t *testing.T) {
	s, st, _ := newSession(t)

	require.NoError(t, s.SetRelatesToTemplate("[#{value}]"))
	tmpl, ok, err := s.RelatesToTemplate()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[#{value}]", tmpl)

	require.NoError(t, s.SetRelatesToTemplate(""))
	assert.NotContains(t, st.Snapshot(), "relate.template")
}

// layeredStore reads through a writable local layer to a read-only lower one,
// the way a repository config sits over the global file. Writes and removals
// only reach the local layer.
type layeredStore struct {
	*store.InMemory
	lower *store.InMemory
}

func (l layeredStore) Entries(glob string) ([]string, error) {
	local, err := l.InMemory.Entries(glob)
	if err != nil {
		return nil, err
	}
	lower, err := l.lower.Entries(glob)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	var keys []string
	for _, k := range append(local, lower...) {
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func (l layeredStore) String(key string) (string, bool, error) {
	if v, ok, err := l.InMemory.String(key); err != nil || ok {
		return v, ok, err
	}
	return l.lower.String(key)
}

func TestSetAuthors_MasksCoAuthorsFromWiderScope(t *testing.T) {
	lower := store.NewInMemory(map[string]string{
		"author.coauthors.0.name":  "Anyone Else",
		"author.coauthors.0.email": "anyone@example.com",
		"author.coauthors.1.name":  "Someone Else",
		"author.coauthors.1.email": "someone@example.com",
	})
	st := layeredStore{InMemory: store.NewInMemory(nil), lower: lower}
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	s := New(st, WithClock(clock.Now))

	require.NoError(t, s.SetAuthors([]authors.Author{billie, someone}, time.Hour))

	c, err := s.CoAuthors()
	require.NoError(t, err)
	assert.Equal(t, []authors.Author{someone}, c.Authors)
	assert.Len(t, lower.Snapshot(), 4)

	require.NoError(t, s.SetAuthors([]authors.Author{billie}, time.Hour))
	c, err = s.CoAuthors()
	require.NoError(t, err)
	assert.Empty(t, c.Authors)
}
