// Package ead reads the EAD finding aid that accompanies archival
// collections and answers the cross reference queries made while deriving
// documents: containers, unit dates, titles and origination by dao
// entityref.
package ead

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/beevik/etree"
)

// NS is the EAD 2002 namespace.
const NS = "urn:isbn:1-931666-22-9"

var ErrNoRoot = errors.New("finding aid has no root element")

// FindingAid is a parsed finding aid. It is not modified after parsing and
// is safe for concurrent use.
type FindingAid struct {
	doc  *etree.Document
	daos map[string][]*etree.Element
}

// Container is an EAD container, e.g. box or folder.
type Container struct {
	Type  string
	Label string
	Value string
}

// Kind is the first of type, label and "folder" that is not a placeholder,
// lower-cased.
func (c Container) Kind() string {
	for _, v := range []string{c.Type, c.Label, "folder"} {
		v = strings.ToLower(strings.TrimSpace(v))
		switch v {
		case "", "folder/item", "othertype":
			continue
		}
		return v
	}
	return "folder"
}

func (c Container) String() string {
	return c.Kind() + " " + c.Value
}

// Parse reads a finding aid.
func Parse(r io.Reader) (*FindingAid, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("ead: %w", err)
	}
	if doc.Root() == nil {
		return nil, ErrNoRoot
	}
	fa := &FindingAid{doc: doc, daos: make(map[string][]*etree.Element)}
	for _, dao := range descendants(doc.Root(), "dao") {
		ref := dao.SelectAttrValue("entityref", "")
		fa.daos[ref] = append(fa.daos[ref], dao)
	}
	return fa, nil
}

// ReadFile parses the finding aid at filename.
func ReadFile(filename string) (*FindingAid, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	fa, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return fa, nil
}

// HasDAO reports whether a dao with the given entityref exists.
func (fa *FindingAid) HasDAO(ref string) bool {
	return len(fa.daos[ref]) > 0
}

// component returns the element two levels above the first dao with the
// given entityref, usually the c0x element around the did.
func (fa *FindingAid) component(ref string) *etree.Element {
	daos := fa.daos[ref]
	if len(daos) == 0 {
		return nil
	}
	p := daos[0].Parent()
	if p == nil {
		return nil
	}
	return p.Parent()
}

// Containers returns the sibling containers of every dao with the given
// entityref, in document order.
func (fa *FindingAid) Containers(ref string) []Container {
	var (
		result []Container
		seen   = make(map[*etree.Element]bool)
	)
	for _, dao := range fa.daos[ref] {
		p := dao.Parent()
		if p == nil || seen[p] {
			continue
		}
		seen[p] = true
		for _, c := range p.ChildElements() {
			if !is(c, "container") {
				continue
			}
			result = append(result, Container{
				Type:  c.SelectAttrValue("type", ""),
				Label: c.SelectAttrValue("label", ""),
				Value: strings.TrimSpace(textContent(c)),
			})
		}
	}
	return result
}

// ContainerList renders the containers for ref as "box 1, folder 2".
func (fa *FindingAid) ContainerList(ref string) string {
	var parts []string
	for _, c := range fa.Containers(ref) {
		parts = append(parts, c.String())
	}
	return strings.Join(parts, ", ")
}

// UnitDate returns the first unitdate within the component of ref, trimmed.
func (fa *FindingAid) UnitDate(ref string) (string, bool) {
	c := fa.component(ref)
	if c == nil {
		return "", false
	}
	if e := first(descendants(c, "unitdate")); e != nil {
		return strings.TrimSpace(textContent(e)), true
	}
	return "", false
}

// Origination returns the first origination with the given label (creator,
// contributor) within the component of ref.
func (fa *FindingAid) Origination(ref, label string) (string, bool) {
	c := fa.component(ref)
	if c == nil {
		return "", false
	}
	for _, e := range descendants(c, "origination") {
		if e.SelectAttrValue("label", "") == label {
			return strings.TrimSpace(textContent(e)), true
		}
	}
	return "", false
}

// UnitTitle walks up from the component of ref, starting with its parent,
// and returns the first non-empty unittitle found below the nearest
// ancestor. The walk stops at dsc.
func (fa *FindingAid) UnitTitle(ref string) (string, bool) {
	c := fa.component(ref)
	if c == nil {
		return "", false
	}
	for a := c.Parent(); a != nil; a = a.Parent() {
		if a.Tag == "dsc" {
			break
		}
		if e := first(descendants(a, "unittitle")); e != nil {
			if t := strings.TrimSpace(textContent(e)); t != "" {
				return t, true
			}
		}
	}
	return "", false
}

// UnitID returns the first unitid of the document.
func (fa *FindingAid) UnitID() (string, bool) {
	if e := first(descendants(fa.doc.Root(), "unitid")); e != nil {
		return textContent(e), true
	}
	return "", false
}

// AccessionNumber is the unitid, lower-cased and without a leading "kukav".
func (fa *FindingAid) AccessionNumber() string {
	id, _ := fa.UnitID()
	return strings.TrimPrefix(strings.ToLower(id), "kukav")
}

// Text returns all non-blank character data of the document in order.
func (fa *FindingAid) Text() []string {
	var result []string
	var walk func(*etree.Element)
	walk = func(e *etree.Element) {
		for _, t := range e.Child {
			switch v := t.(type) {
			case *etree.CharData:
				if strings.TrimSpace(v.Data) != "" {
					result = append(result, v.Data)
				}
			case *etree.Element:
				walk(v)
			}
		}
	}
	walk(fa.doc.Root())
	return result
}

func is(e *etree.Element, tag string) bool {
	return e.Tag == tag && e.NamespaceURI() == NS
}

func descendants(e *etree.Element, tag string) []*etree.Element {
	var result []*etree.Element
	var walk func(*etree.Element)
	walk = func(e *etree.Element) {
		for _, c := range e.ChildElements() {
			if is(c, tag) {
				result = append(result, c)
			}
			walk(c)
		}
	}
	walk(e)
	return result
}

func first(es []*etree.Element) *etree.Element {
	if len(es) == 0 {
		return nil
	}
	return es[0]
}

func textContent(e *etree.Element) string {
	var sb strings.Builder
	for _, t := range e.Child {
		switch v := t.(type) {
		case *etree.CharData:
			sb.WriteString(v.Data)
		case *etree.Element:
			sb.WriteString(textContent(v))
		}
	}
	return sb.String()
}
