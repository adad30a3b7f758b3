// Package normalize rewrites decoded database snapshots into the shape the
// display works with: camel-style keys and dense sequences.
package normalize

import (
	"sort"
	"strconv"
	"strings"
	"unicode"
)

// Tree applies key and sequence normalization recursively. Values are
// expected to come from encoding/json (map[string]any, []any, scalars). The
// input is never modified.
func Tree(value any) any {
	switch v := value.(type) {
	case map[string]any:
		if seq, ok := sparseSequence(v); ok {
			return seq
		}
		out := make(map[string]any, len(v))
		for key, child := range v {
			out[Key(key)] = Tree(child)
		}
		return out
	case []any:
		out := make([]any, 0, len(v))
		for _, child := range v {
			if child == nil {
				continue
			}
			out = append(out, Tree(child))
		}
		return out
	default:
		return value
	}
}

// Collection normalizes a node whose top-level keys are record identifiers
// (teams keyed by id). The identifiers are kept verbatim so they still match
// references elsewhere; everything below them goes through Tree. Absent
// records are dropped. A collection with numeric ids may arrive as an array
// with holes; each record keeps its index as its id.
func Collection(value any) any {
	var m map[string]any
	switch v := value.(type) {
	case map[string]any:
		m = v
	case []any:
		m = make(map[string]any, len(v))
		for i, child := range v {
			m[strconv.Itoa(i)] = child
		}
	default:
		return Tree(value)
	}
	out := make(map[string]any, len(m))
	for id, child := range m {
		if child == nil {
			continue
		}
		out[id] = Tree(child)
	}
	return out
}

// Key removes dashes and upper-cases the letter that follows each run of
// them: "game-state" becomes "gameState".
func Key(key string) string {
	if !strings.Contains(key, "-") {
		return key
	}
	var b strings.Builder
	b.Grow(len(key))
	upper := false
	for _, r := range key {
		if r == '-' {
			upper = true
			continue
		}
		if upper {
			r = unicode.ToUpper(r)
			upper = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// sparseSequence reports whether every key of m is a non-negative integer and
// returns the children ordered by that integer with holes dropped.
func sparseSequence(m map[string]any) ([]any, bool) {
	if len(m) == 0 {
		return nil, false
	}
	type entry struct {
		index int
		value any
	}
	entries := make([]entry, 0, len(m))
	for key, child := range m {
		index, err := strconv.Atoi(key)
		if err != nil || index < 0 || strconv.Itoa(index) != key {
			return nil, false
		}
		entries = append(entries, entry{index: index, value: child})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].index < entries[j].index
	})
	out := make([]any, 0, len(entries))
	for _, e := range entries {
		if e.value == nil {
			continue
		}
		out = append(out, Tree(e.value))
	}
	return out, true
}
