// Package pairtree maps opaque object identifiers to sharded directory paths.
package pairtree

import (
	"path"
	"strings"
)

// Root is the conventional name of the top level pairtree directory.
const Root = "pairtree_root"

// Path splits id into two character segments and appends the full id, e.g.
// "abcdef" becomes "ab/cd/ef/abcdef". A trailing single character is
// prepended to the full id, so "abcde" becomes "ab/cd/eabcde".
func Path(id string) string {
	var sb strings.Builder
	i := 0
	for ; i+2 <= len(id); i += 2 {
		sb.WriteString(id[i : i+2])
		sb.WriteByte('/')
	}
	sb.WriteString(id[i:])
	sb.WriteString(id)
	return sb.String()
}

// RootedPath is Path below the pairtree root directory.
func RootedPath(id string) string {
	return path.Join(Root, Path(id))
}
