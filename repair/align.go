package repair

import (
	"fmt"

	"github.com/uklibraries/dipkit/mets"
)

// AlignAIP returns a fixer for empty sections. The page that belongs to an
// empty section was filed under the preceding section: it is the one whose
// front thumbnail comes last there. Its pointers are moved into a new
// division below the empty section, with TYPE, LABEL and ORDER taken from
// the division of the matching master file in the AIP.
func AlignAIP(aip *mets.Document) Fixer {
	return func(p *Package) (int, error) {
		var n int
		for {
			empty, prev := emptySection(p.METS)
			if empty == nil {
				return n, nil
			}
			if prev == nil {
				return n, fmt.Errorf("%w: section %s", ErrNoPreviousSection, empty.Order)
			}
			if err := p.align(aip, empty, prev); err != nil {
				return n, err
			}
			n++
			p.METS.Reindex()
		}
	}
}

// emptySection returns the first section with neither pointers nor
// divisions and the section visited before it.
func emptySection(doc *mets.Document) (empty, prev *mets.Division) {
	for _, div := range doc.AllDivisions() {
		if !div.IsSection() {
			continue
		}
		if len(div.Pointers) == 0 && len(div.Children) == 0 {
			return div, prev
		}
		prev = div
	}
	return nil, nil
}

func (p *Package) align(aip *mets.Document, empty, prev *mets.Division) error {
	var thumbs []mets.Pointer
	for _, leaf := range prev.Children {
		for _, ptr := range leaf.Pointers {
			if ptr.Role == mets.RoleFrontThumbnail {
				thumbs = append(thumbs, ptr)
			}
		}
	}
	if len(thumbs) == 0 {
		return fmt.Errorf("%w: section %s", ErrNoFrontThumbnail, prev.Order)
	}
	first, last := thumbs[0].Suffix, thumbs[len(thumbs)-1].Suffix
	if first == last {
		return fmt.Errorf("%w: %s", ErrAmbiguousIdentifiers, last)
	}
	source := masterDivision(aip, last)
	if source == nil {
		return fmt.Errorf("%w: %s", ErrNoAIPMatch, last)
	}
	p.Log.WithField("file", last).Info("fixing mets")

	div := mets.NewElement(empty.El, "div")
	for _, key := range []string{"TYPE", "LABEL", "ORDER"} {
		if a := source.El.SelectAttr(key); a != nil {
			div.CreateAttr(key, a.Value)
		}
	}
	for _, leaf := range prev.Children {
		for _, ptr := range leaf.Pointers {
			if ptr.Suffix == last {
				div.AddChild(ptr.El)
			}
		}
		if len(leaf.El.ChildElements()) == 0 {
			prev.El.RemoveChild(leaf.El)
		}
	}
	empty.El.AddChild(div)
	return nil
}

// masterDivision returns the division pointing at the master file with the
// given suffix.
func masterDivision(doc *mets.Document, suffix string) *mets.Division {
	for _, div := range doc.AllDivisions() {
		for _, ptr := range div.Pointers {
			if ptr.Role == mets.RoleMaster && ptr.Suffix == suffix {
				return div
			}
		}
	}
	return nil
}
