package solr

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
	gzip "github.com/klauspost/pgzip"
)

// CreateBundle creates filename for writing JSON lines, compressed with zstd
// for .zst and gzip for .gz suffixes.
func CreateBundle(filename string) (io.WriteCloser, error) {
	f, err := os.Create(filename)
	if err != nil {
		return nil, err
	}
	switch {
	case strings.HasSuffix(filename, ".gz"):
		return &compressedFile{w: gzip.NewWriter(f), f: f}, nil
	case strings.HasSuffix(filename, ".zst"):
		zw, err := zstd.NewWriter(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("zstd: %w", err)
		}
		return &compressedFile{w: zw, f: f}, nil
	default:
		return f, nil
	}
}

// compressedFile closes the compressor before the file.
type compressedFile struct {
	w io.WriteCloser
	f *os.File
}

func (c *compressedFile) Write(p []byte) (int, error) {
	return c.w.Write(p)
}

func (c *compressedFile) Close() error {
	if err := c.w.Close(); err != nil {
		c.f.Close()
		return err
	}
	return c.f.Close()
}
