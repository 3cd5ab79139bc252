package mets

import (
	"strings"

	"github.com/beevik/etree"
)

// is reports whether e has the given namespace and local name.
func is(e *etree.Element, ns, tag string) bool {
	return e.Tag == tag && e.NamespaceURI() == ns
}

func children(e *etree.Element, ns, tag string) []*etree.Element {
	var result []*etree.Element
	for _, c := range e.ChildElements() {
		if is(c, ns, tag) {
			result = append(result, c)
		}
	}
	return result
}

// descendants returns matching elements below e in document order.
func descendants(e *etree.Element, ns, tag string) []*etree.Element {
	var result []*etree.Element
	var walk func(*etree.Element)
	walk = func(e *etree.Element) {
		for _, c := range e.ChildElements() {
			if is(c, ns, tag) {
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

// TextContent concatenates all character data below e.
func TextContent(e *etree.Element) string {
	var sb strings.Builder
	for _, t := range e.Child {
		switch v := t.(type) {
		case *etree.CharData:
			sb.WriteString(v.Data)
		case *etree.Element:
			sb.WriteString(TextContent(v))
		}
	}
	return sb.String()
}

// Href returns the xlink:href attribute of an FLocat, any prefix bound to
// the xlink namespace is accepted.
func Href(e *etree.Element) string {
	for i := range e.Attr {
		a := &e.Attr[i]
		if a.Key == "href" && (a.NamespaceURI() == XLinkNS || a.Space == "xlink") {
			return a.Value
		}
	}
	return ""
}

// NewElement creates an element in the METS namespace using the prefix in
// use by parent.
func NewElement(parent *etree.Element, tag string) *etree.Element {
	e := etree.NewElement(tag)
	e.Space = parent.Space
	return e
}

// SetHref sets xlink:href on e.
func SetHref(e *etree.Element, href string) {
	e.CreateAttr("xlink:href", href)
}
