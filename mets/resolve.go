package mets

import (
	"errors"
	"fmt"
	"strings"
)

// ErrDanglingPointer is returned when a file pointer names a file that does
// not exist or has no location.
var ErrDanglingPointer = errors.New("file pointer does not resolve")

// CleanHref strips every leading "./" from a relative location.
func CleanHref(href string) string {
	for strings.HasPrefix(href, "./") {
		href = href[2:]
	}
	return href
}

// Resolve returns the cleaned location of the file behind the first direct
// pointer of div with role r. The empty string with a nil error means the
// division has no such pointer.
func (d *Document) Resolve(div *Division, r Role) (string, error) {
	for _, p := range div.Pointers {
		if p.Role == r {
			return d.resolvePointer(p)
		}
	}
	return "", nil
}

// ResolveDeep is like Resolve, but looks at the pointers of div and all
// its descendants, in document order.
func (d *Document) ResolveDeep(div *Division, r Role) (string, error) {
	if p, ok := firstPointer(div, r); ok {
		return d.resolvePointer(p)
	}
	return "", nil
}

func firstPointer(div *Division, r Role) (Pointer, bool) {
	for _, p := range div.Pointers {
		if p.Role == r {
			return p, true
		}
	}
	for _, c := range div.Children {
		if p, ok := firstPointer(c, r); ok {
			return p, true
		}
	}
	return Pointer{}, false
}

func (d *Document) resolvePointer(p Pointer) (string, error) {
	f := d.File(p.FileID)
	if f == nil || f.Href == "" {
		return "", fmt.Errorf("%w: %s", ErrDanglingPointer, p.FileID)
	}
	return CleanHref(f.Href), nil
}
