package derive

import (
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/segmentio/encoding/json"
	"github.com/uklibraries/dipkit/atomicfile"
)

// Sink stores derived documents. Put is called concurrently.
type Sink interface {
	Put(doc Document) error
}

// Encode sanitises doc and returns its JSON form.
func Encode(doc Document) ([]byte, error) {
	doc.sanitize()
	return json.Marshal(doc)
}

// DirSink writes each document to Dir/<id>, without extension.
type DirSink struct {
	Dir string
}

func (s *DirSink) Put(doc Document) error {
	b, err := Encode(doc)
	if err != nil {
		return err
	}
	return atomicfile.WriteFile(filepath.Join(s.Dir, doc.DocID()), b, 0644)
}

// Prepare creates the output directory.
func (s *DirSink) Prepare() error {
	return os.MkdirAll(s.Dir, 0755)
}

// MemorySink keeps encoded documents in memory.
type MemorySink struct {
	mu   sync.Mutex
	docs map[string][]byte
}

func (s *MemorySink) Put(doc Document) error {
	b, err := Encode(doc)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.docs == nil {
		s.docs = make(map[string][]byte)
	}
	s.docs[doc.DocID()] = b
	return nil
}

// IDs returns the stored ids in sorted order.
func (s *MemorySink) IDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var ids []string
	for id := range s.docs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Get returns the encoded document for id.
func (s *MemorySink) Get(id string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.docs[id]
	return b, ok
}
