package derive

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/uklibraries/dipkit/dateutil"
	"github.com/uklibraries/dipkit/mets"
	"github.com/uklibraries/dipkit/normal"
)

var numericLabel = regexp.MustCompile(`^\[?\d+\]?$`)

// deriveLeaf emits the document of a page, image, audio or video division
// and returns its first format.
func (c *Context) deriveLeaf(div *mets.Division, parent Record, inherited Media, sink Sink) (string, error) {
	doc := &Leaf{Record: parent.clone(), Media: inherited}
	doc.ID = NodeID(c.ID, div.Path())
	doc.Description = nil
	doc.Subject = nil
	doc.CreationDate = ""
	doc.TopLevel = false
	doc.ObjectID = ParentID(doc.ID)
	doc.ParentID = ParentID(doc.ID)
	doc.Position, _ = strconv.Atoi(div.Order)
	log := c.Log.WithField("node", doc.ID)

	if c.HasFindingAid() {
		ref := doc.ID
		if !c.FindingAid.HasDAO(ref) {
			ref = FallbackID(ref)
		}
		doc.ContainerList = c.FindingAid.ContainerList(ref)
		if ud, ok := c.FindingAid.UnitDate(ref); ok && fourDigits.MatchString(ud) {
			doc.CreationDate = dateutil.UnitDateYear(ud)
			doc.CreationFullDate = []string{ud}
		}
		if v, ok := c.FindingAid.Origination(ref, "contributor"); ok {
			doc.Contributor = []string{v}
		}
		if v, ok := c.FindingAid.Origination(ref, "creator"); ok {
			doc.Creator = []string{v}
		}
	}

	if normal.HasNonDigit(div.Label) {
		doc.Title = []string{normal.TrimTrailingPunct(div.Label)}
	}

	class := Classify(div, div.Type, c.HasFindingAid())
	doc.ObjectType = class.Kind.ObjectType()
	if class.Format != "" {
		doc.Format = []string{class.Format}
	}
	switch class.Kind {
	case KindAudio:
		doc.ReferenceAudioURL = c.resolveURL(div, mets.RoleReferenceAudio, false)
		doc.SecondaryReferenceAudioURL = c.resolveURL(div, mets.RoleSecondaryReferenceAudio, false)
	case KindVideo:
		doc.ReferenceVideoURL = c.resolveURL(div, mets.RoleReferenceVideo, false)
	case KindImage:
		c.referenceImage(doc, div)
		doc.ThumbnailURL = c.resolveURL(div, mets.RoleThumbnail, false)
		doc.FrontThumbnailURL = c.resolveURL(div, mets.RoleFrontThumbnail, false)
		if url := c.resolveURL(div, mets.RolePrintImage, false); url != "" {
			doc.PDFURL = url
		}
	default:
		c.referenceImage(doc, div)
		doc.ThumbnailURL = c.resolveURL(div, mets.RoleThumbnail, false)
		doc.FrontThumbnailURL = c.resolveURL(div, mets.RoleFrontThumbnail, false)
		doc.PDFURL = c.resolveURL(div, mets.RolePrintImage, false)
		if href := c.resolve(div, mets.RoleOcr, false); href != "" {
			if s, ok := c.readText(href); ok {
				doc.Text = s
			}
		}
		doc.CoordinatesURL = c.resolveURL(div, mets.RoleCoordinates, false)
		if t := syntheticTitle(div, doc.TitleObject); t != "" {
			doc.Title = []string{t}
		}
	}
	log.Debugf("%s %s", doc.ObjectType, doc.FirstFormat())
	if err := sink.Put(doc); err != nil {
		return "", err
	}
	return doc.FirstFormat(), nil
}

func (c *Context) referenceImage(doc *Leaf, div *mets.Division) {
	href := c.resolve(div, mets.RoleReferenceImage, false)
	if href == "" {
		c.Log.WithField("node", doc.ID).Warn("no reference image")
		return
	}
	doc.ReferenceImageURL = c.URL(href)
	doc.ReferenceImageWidth, doc.ReferenceImageHeight = c.imageSize(href)
}

// syntheticTitle returns e.g. "Page 3 of Kentucky Almanac" or, below a
// labelled section, "Letters > Page 3 of Kentucky Almanac" for pages after
// the first whose label is only a number. Sequences are numbered by ORDER.
func syntheticTitle(div *mets.Division, title string) string {
	n, _ := strconv.Atoi(div.Order)
	if n <= 1 || title == "" {
		return ""
	}
	label := strings.TrimSpace(div.Label)
	if div.Type == "sequence" {
		label = div.Order
	}
	if !numericLabel.MatchString(label) {
		return ""
	}
	typ := "Page"
	if div.Type != "" {
		typ = normal.Capitalize(div.Type)
	}
	var path []string
	for p := div.Parent; p != nil; p = p.Parent {
		if l := normal.TrimTrailingPunct(p.Label); l != "" {
			path = append([]string{l}, path...)
		}
	}
	path = append(path, typ+" "+label)
	return strings.Join(path, " > ") + " of " + title
}
