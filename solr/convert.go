package solr

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/segmentio/encoding/json"
	"github.com/sirupsen/logrus"
	"github.com/uklibraries/dipkit/atomicfile"
	"github.com/uklibraries/dipkit/pproc"
)

// Converter maps every derived document of an object to a Solr document.
type Converter struct {
	Pool *pproc.Pool
	Log  *logrus.Entry
	// Bundle, if set, receives all Solr documents as JSON lines, ordered by
	// id.
	Bundle io.Writer
}

// ReadSource decodes a derived document.
func ReadSource(filename string) (*Source, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	var src Source
	if err := json.Unmarshal(b, &src); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return &src, nil
}

// sources lists the documents in dir; hidden files are skipped.
func sources(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// Convert replaces the contents of solrDir with one Solr document per
// derived document in jsonDir and returns the number written.
func (c *Converter) Convert(ctx context.Context, jsonDir, solrDir string) (int, error) {
	names, err := sources(jsonDir)
	if err != nil {
		return 0, err
	}
	if err := os.RemoveAll(solrDir); err != nil {
		return 0, err
	}
	if err := os.MkdirAll(solrDir, 0755); err != nil {
		return 0, err
	}
	encoded := make([][]byte, len(names))
	err = c.Pool.Run(ctx, len(names), func(ctx context.Context, i int) error {
		src, err := ReadSource(filepath.Join(jsonDir, names[i]))
		if err != nil {
			return err
		}
		doc := Map(src)
		b, err := json.Marshal(doc)
		if err != nil {
			return fmt.Errorf("%s: %w", names[i], err)
		}
		if err := atomicfile.WriteFile(filepath.Join(solrDir, doc.ID()), b, 0644); err != nil {
			return err
		}
		c.Log.WithField("node", doc.ID()).Debug("solr document written")
		encoded[i] = b
		return nil
	})
	var n int
	for _, b := range encoded {
		if b == nil {
			continue
		}
		n++
		if c.Bundle == nil {
			continue
		}
		if _, werr := c.Bundle.Write(append(b, '\n')); werr != nil {
			return n, werr
		}
	}
	return n, err
}
