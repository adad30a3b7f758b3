package rtdb

import (
	"strconv"
	"strings"
)

// The local copy of a node is rebuilt copy-on-write for every event, so a
// value handed to subscribers is never modified afterwards.

func splitPath(path string) []string {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	out := parts[:0]
	for _, part := range parts {
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func applyPut(root any, path string, data any) any {
	return setAt(root, splitPath(path), data)
}

func applyPatch(root any, path string, data map[string]any) any {
	base := splitPath(path)
	for key, value := range data {
		segs := append(append([]string(nil), base...), splitPath(key)...)
		root = setAt(root, segs, value)
	}
	return root
}

func setAt(node any, segs []string, value any) any {
	if len(segs) == 0 {
		return value
	}
	src := asMap(node)
	out := make(map[string]any, len(src)+1)
	for k, v := range src {
		out[k] = v
	}
	child := setAt(out[segs[0]], segs[1:], value)
	if child == nil {
		delete(out, segs[0])
	} else {
		out[segs[0]] = child
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// asMap views a node as children keyed by name; arrays are keyed by index.
func asMap(node any) map[string]any {
	switch v := node.(type) {
	case map[string]any:
		return v
	case []any:
		m := make(map[string]any, len(v))
		for i, child := range v {
			if child != nil {
				m[strconv.Itoa(i)] = child
			}
		}
		return m
	default:
		return nil
	}
}
