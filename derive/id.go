package derive

import "strings"

// NodeID is the object id followed by the ORDER values from the top level
// division down to the node, joined by underscores.
func NodeID(base string, path []string) string {
	if len(path) == 0 {
		return base
	}
	return base + "_" + strings.Join(path, "_")
}

// ParentID removes the last underscore separated segment.
func ParentID(id string) string {
	if i := strings.LastIndex(id, "_"); i >= 0 {
		return id[:i]
	}
	return id
}

// FallbackID replaces the last segment with 1, so xt7_2_5 becomes xt7_2_1.
// Finding aids often only reference the first leaf of a section.
func FallbackID(id string) string {
	return ParentID(id) + "_1"
}
