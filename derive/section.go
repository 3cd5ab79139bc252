package derive

import (
	"regexp"
	"strings"

	"github.com/uklibraries/dipkit/dateutil"
	"github.com/uklibraries/dipkit/mets"
	"github.com/uklibraries/dipkit/normal"
)

var fourDigits = regexp.MustCompile(`\d{4}`)

// deriveSection emits the leaves of a top level section and then, for
// pageable content, the section document itself.
func (c *Context) deriveSection(sec *mets.Division, parent Record, sink Sink) error {
	doc := &Section{Record: parent.clone()}
	doc.ID = NodeID(c.ID, sec.Path())
	log := c.Log.WithField("node", doc.ID)
	if c.HasFindingAid() {
		doc.CreationDate = ""
		doc.CreationFullDate = nil
		doc.PDFURL = c.resolveURL(sec, mets.RolePrintImage, true)
		ref := doc.ID + "_1"
		if ud, ok := c.FindingAid.UnitDate(ref); ok && fourDigits.MatchString(ud) {
			doc.CreationDate = dateutil.UnitDateYear(ud)
			doc.CreationFullDate = []string{ud}
		}
		if t, ok := c.FindingAid.UnitTitle(ref); ok {
			doc.Title = []string{t}
			doc.TitleObject = t
		}
	}
	var firstFormat string
	for i, leaf := range sec.Children {
		if len(leaf.Children) > 0 {
			c.Log.WithField("node", NodeID(c.ID, leaf.Path())).Warn("nested divisions below a section leaf are not derived")
		}
		format, err := c.deriveLeaf(leaf, doc.Record, Media{PDFURL: doc.PDFURL}, sink)
		if err != nil {
			return err
		}
		if i == 0 {
			firstFormat = format
		}
	}
	doc.ObjectType = KindSection.ObjectType()
	doc.TopLevel = false
	if len(sec.Children) > 0 {
		first := sec.Children[0]
		if normal.HasNonDigit(first.Label) {
			doc.Title = []string{normal.TrimTrailingPunct(first.Label)}
			doc.TitleObject = doc.Title[0]
		}
		if class := Classify(first, sec.Type, c.HasFindingAid()); class.Format != "" {
			doc.Format = []string{class.Format}
		}
	}
	doc.ObjectID = doc.ID
	doc.ParentID = ParentID(doc.ID)
	text := doc.textValues()
	for _, leaf := range sec.Children {
		if href := c.resolve(leaf, mets.RoleOcr, true); href != "" {
			if s, ok := c.readText(href); ok {
				text = append(text, s)
			}
		}
	}
	doc.Text = strings.Join(text, " ")
	doc.LeafCount = len(sec.Children)
	if len(sec.Children) > 0 {
		c.firstLeafMedia(&doc.Media, sec.Children[0])
		if !pageable(firstFormat) {
			log.Debugf("skipping section with format %q", firstFormat)
			return nil
		}
	}
	return sink.Put(doc)
}
