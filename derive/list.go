package derive

import (
	"fmt"
	"io"

	"github.com/uklibraries/dipkit/mets"
)

// List writes one line per division in document order: sections as
// "* <id> - Section", leaves with the location of their reference file or
// "- MISSING".
func List(w io.Writer, id string, doc *mets.Document) error {
	for _, div := range doc.AllDivisions() {
		nid := NodeID(id, div.Path())
		if div.IsSection() {
			if _, err := fmt.Fprintf(w, "* %s - Section\n", nid); err != nil {
				return err
			}
			continue
		}
		role := mets.RoleReferenceImage
		switch div.Type {
		case "audio":
			role = mets.RoleReferenceAudio
		case "video":
			role = mets.RoleReferenceVideo
		}
		ref, err := doc.Resolve(div, role)
		if err != nil || ref == "" {
			ref = "- MISSING"
		} else {
			ref = mets.CleanHref(ref)
		}
		if _, err := fmt.Fprintf(w, "* %s %s\n", nid, ref); err != nil {
			return err
		}
	}
	return nil
}

// ListGroups writes the ids of the content file groups, one per line.
func ListGroups(w io.Writer, id string, doc *mets.Document) error {
	for _, g := range doc.FileGroups() {
		if !g.IsContent() || g.IsFindingAid() {
			continue
		}
		if _, err := fmt.Fprintf(w, "* %s %s\n", id, g.ID); err != nil {
			return err
		}
	}
	return nil
}
