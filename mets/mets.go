// Package mets gives typed access to the METS document of a dissemination
// package. The typed view (file groups, files, divisions) is built over a
// mutable etree DOM; code that changes the DOM calls Reindex afterwards.
package mets

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/beevik/etree"
	"github.com/uklibraries/dipkit/atomicfile"
)

const (
	NS      = "http://www.loc.gov/METS/"
	DCNS    = "http://purl.org/dc/elements/1.1/"
	XLinkNS = "http://www.w3.org/1999/xlink"
)

var (
	ErrNoRoot         = errors.New("document has no root element")
	ErrNotMETS        = errors.New("root element is not mets:mets")
	ErrEmptyFileGroup = errors.New("file group has no files")
	ErrMissingOrder   = errors.New("division has no ORDER")
	ErrMissingVersion = errors.New("no versionStatement in amdSec")
)

// DublinCoreFields lists the Dublin Core elements copied into derived
// documents, in output order.
var DublinCoreFields = []string{
	"contributor",
	"coverage",
	"creator",
	"date",
	"description",
	"format",
	"identifier",
	"language",
	"publisher",
	"relation",
	"rights",
	"source",
	"subject",
	"title",
	"type",
}

// Document is a parsed METS file.
type Document struct {
	doc    *etree.Document
	groups []*FileGroup
	files  map[string]*File
	top    []*Division
}

// FileGroup is a mets:fileGrp.
type FileGroup struct {
	El    *etree.Element
	ID    string
	Use   string
	Files []*File
	// Nested counts fileGrp children.
	Nested int
}

// IsFindingAid reports whether the group carries the finding aid.
func (g *FileGroup) IsFindingAid() bool {
	return strings.Contains(strings.ToLower(g.Use), "finding aid")
}

// IsContent is false for reel metadata and wave file groups.
func (g *FileGroup) IsContent() bool {
	return g.Use != "reel metadata" && !strings.Contains(g.Use, "wave file")
}

// File is a mets:file with its first FLocat location.
type File struct {
	El     *etree.Element
	ID     string
	Use    string
	MIME   string
	Role   Role
	Suffix string
	// Href is the raw xlink:href of the first FLocat, empty if missing.
	Href  string
	Group *FileGroup
}

// Pointer is a mets:fptr.
type Pointer struct {
	El     *etree.Element
	FileID string
	Role   Role
	Suffix string
}

// Division is a mets:div in the structMap.
type Division struct {
	El       *etree.Element
	Order    string
	Label    string
	Type     string
	Pointers []Pointer
	Children []*Division
	Parent   *Division
}

// IsSection is true for divisions declared as section.
func (d *Division) IsSection() bool {
	return d.Type == "section"
}

// Path returns the ORDER values from the top level division down to d.
func (d *Division) Path() []string {
	var p []string
	for n := d; n != nil; n = n.Parent {
		p = append([]string{n.Order}, p...)
	}
	return p
}

// HasRole reports whether a direct pointer of the division has role r.
func (d *Division) HasRole(r Role) bool {
	for _, p := range d.Pointers {
		if p.Role == r {
			return true
		}
	}
	return false
}

// Parse reads a METS document.
func Parse(r io.Reader) (*Document, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("mets: %w", err)
	}
	return newDocument(doc)
}

// ReadFile parses the METS file at filename.
func ReadFile(filename string) (*Document, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	d, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return d, nil
}

func newDocument(doc *etree.Document) (*Document, error) {
	root := doc.Root()
	if root == nil {
		return nil, ErrNoRoot
	}
	if !is(root, NS, "mets") {
		return nil, ErrNotMETS
	}
	d := &Document{doc: doc}
	d.Reindex()
	return d, nil
}

// Root returns the mets:mets element.
func (d *Document) Root() *etree.Element {
	return d.doc.Root()
}

// Bytes serialises the document.
func (d *Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := d.doc.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile replaces filename with the serialised document.
func (d *Document) WriteFile(filename string) error {
	b, err := d.Bytes()
	if err != nil {
		return err
	}
	return atomicfile.WriteFile(filename, b, 0644)
}

// Reindex rebuilds the typed view from the DOM.
func (d *Document) Reindex() {
	d.groups = nil
	d.files = make(map[string]*File)
	d.top = nil
	root := d.doc.Root()
	for _, g := range descendants(root, NS, "fileGrp") {
		group := &FileGroup{
			El:  g,
			ID:  g.SelectAttrValue("ID", ""),
			Use: g.SelectAttrValue("USE", ""),
		}
		for _, c := range g.ChildElements() {
			switch {
			case is(c, NS, "file"):
				f := newFile(c, group)
				group.Files = append(group.Files, f)
				if _, ok := d.files[f.ID]; !ok {
					d.files[f.ID] = f
				}
			case is(c, NS, "fileGrp"):
				group.Nested++
			}
		}
		d.groups = append(d.groups, group)
	}
	for _, sm := range children(root, NS, "structMap") {
		for _, div := range children(sm, NS, "div") {
			d.top = append(d.top, newDivision(div, nil))
		}
	}
}

func newFile(e *etree.Element, g *FileGroup) *File {
	f := &File{
		El:    e,
		ID:    e.SelectAttrValue("ID", ""),
		Use:   e.SelectAttrValue("USE", ""),
		MIME:  e.SelectAttrValue("MIMETYPE", ""),
		Group: g,
	}
	f.Role, f.Suffix = ParseRole(f.ID)
	if loc := first(descendants(e, NS, "FLocat")); loc != nil {
		f.Href = Href(loc)
	}
	return f
}

func newDivision(e *etree.Element, parent *Division) *Division {
	div := &Division{
		El:     e,
		Order:  strings.TrimSpace(e.SelectAttrValue("ORDER", "")),
		Label:  e.SelectAttrValue("LABEL", ""),
		Type:   e.SelectAttrValue("TYPE", ""),
		Parent: parent,
	}
	for _, c := range e.ChildElements() {
		switch {
		case is(c, NS, "fptr"):
			id := c.SelectAttrValue("FILEID", "")
			role, suffix := ParseRole(id)
			div.Pointers = append(div.Pointers, Pointer{El: c, FileID: id, Role: role, Suffix: suffix})
		case is(c, NS, "div"):
			div.Children = append(div.Children, newDivision(c, div))
		}
	}
	return div
}

// FileGroups returns all file groups in document order, nested ones included.
func (d *Document) FileGroups() []*FileGroup {
	return d.groups
}

// FileGroup returns the group with the given ID or nil.
func (d *Document) FileGroup(id string) *FileGroup {
	for _, g := range d.groups {
		if g.ID == id {
			return g
		}
	}
	return nil
}

// File returns the first file with the given ID or nil.
func (d *Document) File(id string) *File {
	return d.files[id]
}

// Divisions returns the top level divisions of all structMaps.
func (d *Document) Divisions() []*Division {
	return d.top
}

// AllDivisions returns every division, depth first in document order.
func (d *Document) AllDivisions() []*Division {
	var result []*Division
	var walk func([]*Division)
	walk = func(divs []*Division) {
		for _, div := range divs {
			result = append(result, div)
			walk(div.Children)
		}
	}
	walk(d.top)
	return result
}

// FindingAidGroup returns the first file group holding a finding aid.
func (d *Document) FindingAidGroup() *FileGroup {
	for _, g := range d.groups {
		if g.IsFindingAid() {
			return g
		}
	}
	return nil
}

// FindingAidHref returns the location of the access copy of the finding
// aid, if there is a finding aid group with such a file.
func (d *Document) FindingAidHref() (string, bool) {
	g := d.FindingAidGroup()
	if g == nil {
		return "", false
	}
	for _, f := range g.Files {
		if f.Use == "access" && f.Href != "" {
			return f.Href, true
		}
	}
	return "", false
}

// ContentGroupCount counts file groups that are neither reel metadata nor
// wave files.
func (d *Document) ContentGroupCount() int {
	var n int
	for _, g := range d.groups {
		if g.IsContent() {
			n++
		}
	}
	return n
}

// DublinCore returns the trimmed values of a Dublin Core element from the
// DMD1 descriptive metadata section, in document order.
func (d *Document) DublinCore(field string) []string {
	var values []string
	for _, dmd := range descendants(d.Root(), NS, "dmdSec") {
		if dmd.SelectAttrValue("ID", "") != "DMD1" {
			continue
		}
		for _, e := range descendants(dmd, DCNS, field) {
			values = append(values, strings.TrimSpace(TextContent(e)))
		}
	}
	return values
}

// VersionStatement returns the first versionStatement of the
// administrative metadata.
func (d *Document) VersionStatement() (string, error) {
	for _, amd := range descendants(d.Root(), NS, "amdSec") {
		if v := first(descendants(amd, NS, "versionStatement")); v != nil {
			return strings.TrimSpace(TextContent(v)), nil
		}
	}
	return "", ErrMissingVersion
}

// Validate checks the conditions every tool relies on: each file group has
// files and each division has an ORDER.
func (d *Document) Validate() error {
	if err := d.ValidateFileGroups(); err != nil {
		return err
	}
	for _, div := range d.AllDivisions() {
		if div.Order == "" {
			return fmt.Errorf("%w: %s", ErrMissingOrder, strings.Join(div.Path(), "_"))
		}
	}
	return nil
}

// ValidateFileGroups fails on the first file group without files.
func (d *Document) ValidateFileGroups() error {
	for _, g := range d.groups {
		if len(g.Files) == 0 && g.Nested == 0 {
			return fmt.Errorf("%w: %s", ErrEmptyFileGroup, g.ID)
		}
	}
	return nil
}
