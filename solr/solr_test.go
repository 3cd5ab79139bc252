package solr

import (
	"bufio"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/klauspost/compress/zstd"
	gzip "github.com/klauspost/pgzip"
	"github.com/segmentio/encoding/json"
	"github.com/sirupsen/logrus"
	"github.com/uklibraries/dipkit/pproc"
)

const leafJSON = `{
  "id": "xt7book_2",
  "mets_url": "https://example.org/dips/xt7book/data/mets.xml",
  "creator": ["Smith, John", "Doe, Jane"],
  "date": ["1923-05-01"],
  "format": ["text"],
  "language": ["English"],
  "source": ["  Kentucky Almanac Co. "],
  "title": ["Page 2 of The Kentucky Almanac"],
  "title_object": "The Kentucky Almanac",
  "creation_full_date": ["1923-05-01"],
  "upload_date": "2015-03-02T10:00:00Z",
  "top_level": false,
  "object_id": "xt7book",
  "parent_id": "xt7book",
  "object_type": "page",
  "reference_image_url": "https://example.org/dips/xt7book/data/0002/0002.jpg",
  "reference_image_width": 820,
  "reference_image_height": 610,
  "position": 2,
  "text": "Second page.\n"
}`

const collectionJSON = `{
  "id": "xt7coll",
  "mets_url": "https://example.org/dips/xt7coll/data/mets.xml",
  "finding_aid_url": "https://example.org/dips/xt7coll/data/findingaid.xml",
  "date": ["ca. 1860-1920"],
  "format": ["collections"],
  "title": ["Insurance Maps of Lexington"],
  "title_object": "Insurance Maps of Lexington",
  "creation_date": "1860",
  "top_level": true,
  "object_id": "xt7coll",
  "object_type": "collection",
  "digital_content_available": false
}`

func mustMap(t *testing.T, s string) Document {
	t.Helper()
	var src Source
	if err := json.Unmarshal([]byte(s), &src); err != nil {
		t.Fatal(err)
	}
	return Map(&src)
}

func TestMapLeaf(t *testing.T) {
	d := mustMap(t, leafJSON)
	want := map[string]interface{}{
		"id":                       "xt7book_2",
		"object_type_s":            "page",
		"top_level_b":              false,
		"compound_object_split_b":  false,
		"author_display":           "Smith, John.  Doe, Jane.",
		"author_t":                 "Smith, John.  Doe, Jane.",
		"dc_creator_display":       []string{"Smith, John", "Doe, Jane"},
		"dc_title_t":               []string{"Page 2 of The Kentucky Almanac"},
		"format":                   "text",
		"language_display":         "English",
		"title_display":            "Page 2 of The Kentucky Almanac",
		"title_t":                  "Page 2 of The Kentucky Almanac",
		"title_sort":               "The Kentucky Almanac",
		"title_processed_s":        "kentucky almanac",
		"sequence_number_display":  "2",
		"sequence_sort":            "00002",
		"browse_key_sort":          "k00002 kentucky almanac",
		"source_s":                 "  Kentucky Almanac Co. ",
		"source_sort_s":            "kentucky almanac co.$  Kentucky Almanac Co. ",
		"full_date_s":              "1923-05-01",
		"date_digitized_display":   "2015-03-02T10:00:00Z",
		"reference_image_width_s":  820,
		"reference_image_height_s": 610,
		"text":                     "Second page.\n",
		"text_s":                   "Second page.\n",
	}
	for k, v := range want {
		if diff := cmp.Diff(v, d[k]); diff != "" {
			t.Errorf("%s mismatch (-want +got):\n%s", k, diff)
		}
	}
	for _, k := range []string{"leaf_count_i", "finding_aid_url_s", "dc_subject_display", "pub_date", "digital_content_available_s", "container_list_s"} {
		if _, ok := d[k]; ok {
			t.Errorf("unexpected field %s: %v", k, d[k])
		}
	}
}

func TestMapCollection(t *testing.T) {
	d := mustMap(t, collectionJSON)
	want := map[string]interface{}{
		"compound_object_split_b":     true,
		"top_level_b":                 true,
		"digital_content_available_s": false,
		"finding_aid_url_s":           "https://example.org/dips/xt7coll/data/findingaid.xml",
		"pub_date":                    "1860",
		"full_date_s":                 "1860",
		"title_processed_s":           "lexington",
		"browse_key_sort":             "l lexington",
	}
	for k, v := range want {
		if diff := cmp.Diff(v, d[k]); diff != "" {
			t.Errorf("%s mismatch (-want +got):\n%s", k, diff)
		}
	}
	for _, k := range []string{"author_display", "sequence_sort", "text", "text_s"} {
		if _, ok := d[k]; ok {
			t.Errorf("unexpected field %s", k)
		}
	}
}

func TestMapTruncatesText(t *testing.T) {
	long := strings.Repeat("ä", MaxTextLength+10)
	b, err := json.Marshal(map[string]interface{}{"id": "x", "text": long})
	if err != nil {
		t.Fatal(err)
	}
	d := mustMap(t, string(b))
	if got := len([]rune(d["text_s"].(string))); got != MaxTextLength {
		t.Fatalf("text_s has %d runes, want %d", got, MaxTextLength)
	}
	if d["text"] != long {
		t.Fatal("text must not be truncated")
	}
}

func TestConvert(t *testing.T) {
	jsonDir := filepath.Join(t.TempDir(), "json")
	solrDir := filepath.Join(t.TempDir(), "solr")
	if err := os.MkdirAll(jsonDir, 0755); err != nil {
		t.Fatal(err)
	}
	inputs := map[string]string{
		"xt7book_2": leafJSON,
		"xt7coll":   collectionJSON,
		".hidden":   "not json",
	}
	for name, content := range inputs {
		if err := os.WriteFile(filepath.Join(jsonDir, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	// Stale output is removed.
	if err := os.MkdirAll(solrDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(solrDir, "stale"), []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}

	bundle := filepath.Join(t.TempDir(), "bundle.jsonl.zst")
	w, err := CreateBundle(bundle)
	if err != nil {
		t.Fatal(err)
	}
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	c := &Converter{
		Pool:   pproc.NewPool(pproc.WithWorkers(2)),
		Log:    logrus.NewEntry(logger),
		Bundle: w,
	}
	n, err := c.Convert(context.Background(), jsonDir, solrDir)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Fatalf("got %d documents, want 2", n)
	}

	entries, err := os.ReadDir(solrDir)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	if diff := cmp.Diff([]string{"xt7book_2", "xt7coll"}, names); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}

	r, err := openBundle(bundle)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	var ids []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		var doc map[string]interface{}
		if err := json.Unmarshal(scanner.Bytes(), &doc); err != nil {
			t.Fatal(err)
		}
		ids = append(ids, doc["id"].(string))
	}
	if err := scanner.Err(); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"xt7book_2", "xt7coll"}, ids); diff != "" {
		t.Fatalf("bundle mismatch (-want +got):\n%s", diff)
	}
}

func TestBundleGzip(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "bundle.jsonl.gz")
	w, err := CreateBundle(filename)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := io.WriteString(w, "{\"id\":\"a\"}\n"); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	r, err := openBundle(filename)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	b, err := io.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "{\"id\":\"a\"}\n" {
		t.Fatalf("got %q", b)
	}
}

// openBundle opens a bundle written by CreateBundle, decompressing by suffix.
func openBundle(filename string) (io.ReadCloser, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	switch {
	case strings.HasSuffix(filename, ".gz"):
		zr, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, err
		}
		return &decompressedFile{r: zr, close: zr.Close, f: f}, nil
	case strings.HasSuffix(filename, ".zst"):
		zr, err := zstd.NewReader(f)
		if err != nil {
			f.Close()
			return nil, err
		}
		return &decompressedFile{r: zr, close: func() error { zr.Close(); return nil }, f: f}, nil
	default:
		return f, nil
	}
}

type decompressedFile struct {
	r     io.Reader
	close func() error
	f     *os.File
}

func (d *decompressedFile) Read(p []byte) (int, error) {
	return d.r.Read(p)
}

func (d *decompressedFile) Close() error {
	if err := d.close(); err != nil {
		d.f.Close()
		return err
	}
	return d.f.Close()
}
