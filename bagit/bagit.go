// Package bagit updates the checksum manifests of a bag after files in it
// were rewritten. Manifests are text files with lines of the form
// "<hex digest> <relative path>", one file per algorithm.
package bagit

import (
	"bufio"
	"bytes"
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/uklibraries/dipkit/atomicfile"
)

// Algorithms in the order manifests are processed.
var Algorithms = []string{"md5", "sha1", "sha256"}

var ErrUnknownAlgorithm = errors.New("unknown digest algorithm")

// NewHash returns a hash for a bag algorithm name.
func NewHash(alg string) (hash.Hash, error) {
	switch alg {
	case "md5":
		return md5.New(), nil
	case "sha1":
		return sha1.New(), nil
	case "sha256":
		return sha256.New(), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownAlgorithm, alg)
}

// FileDigest returns the hex digest of a file.
func FileDigest(alg, filename string) (string, error) {
	h, err := NewHash(alg)
	if err != nil {
		return "", err
	}
	f, err := os.Open(filename)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// ManifestName is manifest-<alg>.txt.
func ManifestName(alg string) string {
	return "manifest-" + alg + ".txt"
}

// TagManifestName is tagmanifest-<alg>.txt.
func TagManifestName(alg string) string {
	return "tagmanifest-" + alg + ".txt"
}

// Entry is one manifest line.
type Entry struct {
	Digest string
	Path   string
}

// ParseLine splits a manifest line at whitespace. ok is false for lines
// without a path.
func ParseLine(line string) (e Entry, ok bool) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return Entry{}, false
	}
	return Entry{Digest: fields[0], Path: fields[1]}, true
}

// ReadManifest returns all entries of a manifest file.
func ReadManifest(filename string) ([]Entry, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	var entries []Entry
	for _, line := range strings.Split(string(b), "\n") {
		if e, ok := ParseLine(line); ok {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

// Bag is a bag directory.
type Bag struct {
	Dir string
}

// UpdateManifests recomputes the digest of each changed file (paths
// relative to the bag, e.g. data/mets.xml) in every payload manifest, then
// recomputes the digests of the manifests listed in every tag manifest.
// Other lines are kept byte for byte. Missing manifests are skipped.
func (b *Bag) UpdateManifests(changed ...string) error {
	want := make(map[string]bool)
	for _, c := range changed {
		want[c] = true
	}
	for _, alg := range Algorithms {
		err := b.rewrite(ManifestName(alg), alg, func(p string) bool { return want[p] })
		if err != nil {
			return err
		}
	}
	for _, alg := range Algorithms {
		err := b.rewrite(TagManifestName(alg), alg, func(p string) bool {
			return strings.Contains(p, "manifest")
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (b *Bag) rewrite(name, alg string, match func(string) bool) error {
	filename := filepath.Join(b.Dir, name)
	orig, err := os.ReadFile(filename)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	var (
		buf bytes.Buffer
		br  = bufio.NewReader(bytes.NewReader(orig))
	)
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			e, ok := ParseLine(line)
			if ok && match(e.Path) {
				digest, err := FileDigest(alg, filepath.Join(b.Dir, filepath.FromSlash(e.Path)))
				if err != nil {
					return fmt.Errorf("%s: %w", name, err)
				}
				fmt.Fprintf(&buf, "%s %s\n", digest, e.Path)
			} else {
				buf.WriteString(line)
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
	}
	if bytes.Equal(orig, buf.Bytes()) {
		return nil
	}
	info, err := os.Stat(filename)
	if err != nil {
		return err
	}
	return atomicfile.WriteFile(filename, buf.Bytes(), info.Mode().Perm())
}
