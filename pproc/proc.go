package pproc

import (
	"bufio"
	"context"
	"io"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
)

// LineFunc turns one input line, e.g. an object identifier, into output.
type LineFunc func(ctx context.Context, line string) ([]byte, error)

// Processor handles parallel processing of lines. Blank lines and lines
// starting with # are ignored. Output of a single call is written in one
// piece, output of different lines may interleave in any order.
type Processor struct {
	lineFunc   LineFunc
	numWorkers int
}

// NewProcessor creates a new Processor.
func NewProcessor(f LineFunc, opts ...Option) *Processor {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Processor{lineFunc: f, numWorkers: o.numWorkers}
}

// Process reads lines from r, processes them in parallel, and writes results
// to w. The first error stops processing.
func (p *Processor) Process(ctx context.Context, r io.Reader, w io.Writer) error {
	bw := bufio.NewWriter(w)
	defer bw.Flush()
	scanner := bufio.NewScanner(r)
	workChan := make(chan string, p.numWorkers*2)
	var writeMu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(workChan)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			select {
			case workChan <- line:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return scanner.Err()
	})
	for i := 0; i < p.numWorkers; i++ {
		g.Go(func() error {
			for line := range workChan {
				select {
				case <-ctx.Done():
					return ctx.Err()
				default:
				}
				result, err := p.lineFunc(ctx, line)
				if err != nil {
					return err
				}
				if result != nil {
					writeMu.Lock()
					_, err := bw.Write(result)
					writeMu.Unlock()
					if err != nil {
						return err
					}
				}
			}
			return nil
		})
	}
	return g.Wait()
}
