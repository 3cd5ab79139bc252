package mets

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func mustRead(t *testing.T, filename string) *Document {
	t.Helper()
	d, err := ReadFile(filename)
	if err != nil {
		t.Fatalf("read %s: %v", filename, err)
	}
	return d
}

func TestDublinCore(t *testing.T) {
	d := mustRead(t, "testdata/book.xml")
	var cases = []struct {
		field string
		want  []string
	}{
		{"title", []string{"The Kentucky Almanac", "Almanac"}},
		{"creator", []string{"Smith, John"}},
		{"subject", nil},
	}
	for _, c := range cases {
		if diff := cmp.Diff(c.want, d.DublinCore(c.field)); diff != "" {
			t.Errorf("DublinCore(%q) mismatch (-want +got):\n%s", c.field, diff)
		}
	}
}

func TestVersionStatement(t *testing.T) {
	d := mustRead(t, "testdata/book.xml")
	v, err := d.VersionStatement()
	if err != nil {
		t.Fatal(err)
	}
	if v != "2015-03-02T10:00:00Z" {
		t.Errorf("got %q", v)
	}
	d, err = Parse(strings.NewReader(`<mets xmlns="http://www.loc.gov/METS/"><amdSec/></mets>`))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := d.VersionStatement(); !errors.Is(err, ErrMissingVersion) {
		t.Errorf("got %v, want ErrMissingVersion", err)
	}
}

func TestParseNotMETS(t *testing.T) {
	_, err := Parse(strings.NewReader(`<ead xmlns="urn:isbn:1-931666-22-9"/>`))
	if !errors.Is(err, ErrNotMETS) {
		t.Errorf("got %v, want ErrNotMETS", err)
	}
}

func TestStructure(t *testing.T) {
	d := mustRead(t, "testdata/book.xml")
	divs := d.Divisions()
	if len(divs) != 2 {
		t.Fatalf("got %d top level divisions", len(divs))
	}
	if divs[0].Label != "Cover" || divs[0].Order != "1" || divs[0].IsSection() {
		t.Errorf("unexpected first division: %+v", divs[0])
	}
	if !divs[0].HasRole(RoleOcr) || divs[0].HasRole(RolePrintImage) {
		t.Errorf("unexpected roles on first division")
	}
	if diff := cmp.Diff([]string{"2"}, divs[1].Path()); diff != "" {
		t.Errorf("path mismatch (-want +got):\n%s", diff)
	}
	if got := d.ContentGroupCount(); got != 3 {
		t.Errorf("ContentGroupCount = %d, want 3", got)
	}
	if g := d.FileGroup("FileGrpMultipage"); g == nil || g.Files[0].Href != "./xt7book.pdf" {
		t.Errorf("multipage group not found")
	}
	if _, ok := d.FindingAidHref(); ok {
		t.Errorf("unexpected finding aid")
	}
}

func TestResolve(t *testing.T) {
	d := mustRead(t, "testdata/book.xml")
	divs := d.Divisions()
	var cases = []struct {
		div     *Division
		role    Role
		want    string
		wantErr error
	}{
		{divs[0], RoleReferenceImage, "0001/0001.jpg", nil},
		{divs[0], RoleFrontThumbnail, "0001/0001_ftb.jpg", nil},
		{divs[0], RolePrintImage, "", nil},
		{divs[1], RolePrintImage, "0002/0002.pdf", nil},
		{divs[1], RoleOcr, "", ErrDanglingPointer},
	}
	for _, c := range cases {
		got, err := d.Resolve(c.div, c.role)
		if !errors.Is(err, c.wantErr) {
			t.Errorf("Resolve(%s, %v) err = %v, want %v", c.div.Order, c.role, err, c.wantErr)
		}
		if got != c.want {
			t.Errorf("Resolve(%s, %v) = %q, want %q", c.div.Order, c.role, got, c.want)
		}
	}
}

func TestCleanHref(t *testing.T) {
	for in, want := range map[string]string{
		"./a/b.jpg":   "a/b.jpg",
		"././a/b.jpg": "a/b.jpg",
		"a/b.jpg":     "a/b.jpg",
		"":            "",
	} {
		if got := CleanHref(in); got != want {
			t.Errorf("CleanHref(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestValidate(t *testing.T) {
	var cases = []struct {
		about string
		doc   string
		err   error
	}{
		{
			about: "ok",
			doc: `<m:mets xmlns:m="http://www.loc.gov/METS/"><m:fileSec><m:fileGrp ID="G1"><m:file ID="F1"/></m:fileGrp></m:fileSec>
<m:structMap><m:div ORDER="1"><m:fptr FILEID="F1"/></m:div></m:structMap></m:mets>`,
			err: nil,
		},
		{
			about: "empty group",
			doc:   `<m:mets xmlns:m="http://www.loc.gov/METS/"><m:fileSec><m:fileGrp ID="G1"/></m:fileSec></m:mets>`,
			err:   ErrEmptyFileGroup,
		},
		{
			about: "missing order",
			doc:   `<m:mets xmlns:m="http://www.loc.gov/METS/"><m:structMap><m:div ORDER="1"><m:div LABEL="x"/></m:div></m:structMap></m:mets>`,
			err:   ErrMissingOrder,
		},
	}
	for _, c := range cases {
		d, err := Parse(strings.NewReader(c.doc))
		if err != nil {
			t.Fatalf("[%s] parse: %v", c.about, err)
		}
		if err := d.Validate(); !errors.Is(err, c.err) {
			t.Errorf("[%s] got %v, want %v", c.about, err, c.err)
		}
	}
}

func TestWriteFileKeepsPrefix(t *testing.T) {
	d := mustRead(t, "testdata/book.xml")
	div := d.Divisions()[0]
	e := NewElement(div.El, "fptr")
	e.CreateAttr("FILEID", "PrintImageFile0001")
	div.El.AddChild(e)
	filename := filepath.Join(t.TempDir(), "mets.xml")
	if err := d.WriteFile(filename); err != nil {
		t.Fatal(err)
	}
	b, err := os.ReadFile(filename)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), `<mets:fptr FILEID="PrintImageFile0001"/>`) {
		t.Errorf("new pointer not written with prefix")
	}
	d2 := mustRead(t, filename)
	if !d2.Divisions()[0].HasRole(RolePrintImage) {
		t.Errorf("new pointer not found after reparse")
	}
}
