// SPDX-License-Identifier: AGPL-3.0-or-later
package store

// matchGlob reports whether name matches pattern, where '*' stands for any
// (possibly empty) run of characters and every other byte matches itself.
func matchGlob(pattern, name string) bool {
	p, n := 0, 0
	star, mark := -1, 0
	for n < len(name) {
		switch {
		case p < len(pattern) && pattern[p] == '*':
			star, mark = p, n
			p++
		case p < len(pattern) && pattern[p] == name[n]:
			p++
			n++
		case star >= 0:
			p = star + 1
			mark++
			n = mark
		default:
			return false
		}
	}
	for p < len(pattern) && pattern[p] == '*' {
		p++
	}
	return p == len(pattern)
}

func filterKeys(keys []string, glob string) []string {
	if glob == "" {
		return keys
	}
	out := keys[:0:0]
	for _, k := range keys {
		if matchGlob(glob, k) {
			out = append(out, k)
		}
	}
	return out
}
