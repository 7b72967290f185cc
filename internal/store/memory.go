// SPDX-License-Identifier: AGPL-3.0-or-later
package store

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// InMemory is a map-backed Store. Values are kept as strings and converted
// on read the way git converts them.
type InMemory struct {
	mu     sync.Mutex
	values map[string]string
}

// NewInMemory creates a store seeded with initial, which may be nil.
func NewInMemory(initial map[string]string) *InMemory {
	values := make(map[string]string, len(initial))
	for k, v := range initial {
		values[k] = v
	}
	return &InMemory{values: values}
}

// Snapshot returns a copy of every stored value.
func (s *InMemory) Snapshot() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]string, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

func (s *InMemory) Entries(glob string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return filterKeys(keys, glob), nil
}

func (s *InMemory) String(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.values[key]
	return v, ok, nil
}

func (s *InMemory) Int64(key string) (int64, bool, error) {
	raw, ok, _ := s.String(key)
	if !ok {
		return 0, false, nil
	}
	v, err := parseInt(raw)
	if err != nil {
		return 0, false, &Error{Op: "get", Key: key, Err: err}
	}
	return v, true, nil
}

func (s *InMemory) Bool(key string) (bool, bool, error) {
	raw, ok, _ := s.String(key)
	if !ok {
		return false, false, nil
	}
	v, err := parseBool(raw)
	if err != nil {
		return false, false, &Error{Op: "get", Key: key, Err: err}
	}
	return v, true, nil
}

func (s *InMemory) SetString(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = value
	return nil
}

func (s *InMemory) SetInt64(key string, value int64) error {
	return s.SetString(key, strconv.FormatInt(value, 10))
}

func (s *InMemory) SetBool(key string, value bool) error {
	return s.SetString(key, strconv.FormatBool(value))
}

func (s *InMemory) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.values, key)
	return nil
}

// parseInt accepts git's integer syntax, including the k, m and g suffixes.
func parseInt(raw string) (int64, error) {
	s := strings.TrimSpace(raw)
	factor := int64(1)
	if n := len(s); n > 0 {
		switch s[n-1] {
		case 'k', 'K':
			factor, s = 1<<10, s[:n-1]
		case 'm', 'M':
			factor, s = 1<<20, s[:n-1]
		case 'g', 'G':
			factor, s = 1<<30, s[:n-1]
		}
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an integer", ErrInvalidValue, raw)
	}
	return v * factor, nil
}

// parseBool accepts git's boolean spellings.
func parseBool(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "yes", "on", "1":
		return true, nil
	case "false", "no", "off", "0", "":
		return false, nil
	}
	return false, fmt.Errorf("%w: %q is not a boolean", ErrInvalidValue, raw)
}
