package derive

import (
	"strconv"
	"strings"

	"github.com/uklibraries/dipkit/dateutil"
	"github.com/uklibraries/dipkit/mets"
	"github.com/uklibraries/dipkit/normal"
)

const (
	legacyRights = "Please go to http://kdl.kyvl.org for more information."
	scrcRights   = `For information about permissions to reproduce or publish, <a href="https://libraries.uky.edu/ContactSCRC" target="_blank" rel="noopener">contact the Special Collections Research Center</a>.`
)

// CoreRecord builds the record every document of the object starts from.
func (c *Context) CoreRecord() (Record, error) {
	r := Record{
		ID:      c.ID,
		METSURL: c.URL("mets.xml"),
	}
	if c.HasFindingAid() {
		r.FindingAidURL = c.URL(c.FindingAidHref)
	}
	for _, name := range mets.DublinCoreFields {
		*r.Field(name) = c.METS.DublinCore(name)
	}
	if len(r.Title) > 0 {
		r.TitleObject = r.Title[0]
	}
	for i, v := range r.Language {
		r.Language[i] = normal.Capitalize(v)
	}
	for i, v := range r.Rights {
		r.Rights[i] = strings.ReplaceAll(v, legacyRights, scrcRights)
	}
	r.CreationDate = dateutil.CreationYear(r.Date)
	r.CreationFullDate = append([]string(nil), r.Date...)
	v, err := c.METS.VersionStatement()
	if err != nil {
		return Record{}, err
	}
	r.UploadDate = v
	return r, nil
}

// ObjectDocument builds the object level document: a collection for
// objects with a finding aid, otherwise a top level section. The section
// is nil when the object is not pageable.
func (c *Context) ObjectDocument(core Record) Document {
	if c.HasFindingAid() {
		return c.collection(core)
	}
	if s := c.topSection(core); pageable(s.FirstFormat()) {
		return s
	}
	return nil
}

func (c *Context) collection(core Record) *Collection {
	doc := &Collection{Record: core.clone()}
	doc.TopLevel = true
	doc.ObjectID = c.ID
	doc.ObjectType = KindCollection.ObjectType()
	doc.Format = []string{"collections"}
	doc.DigitalContentAvailable = c.METS.ContentGroupCount() > 1
	if doc.DigitalContentAvailable {
		doc.AccessionNumber = c.FindingAid.AccessionNumber()
	}
	text := append(doc.textValues(), strconv.FormatBool(doc.DigitalContentAvailable))
	if doc.AccessionNumber != "" {
		text = append(text, doc.AccessionNumber)
	}
	text = append(text, c.FindingAid.Text()...)
	doc.Text = strings.Join(text, " ")
	return doc
}

func (c *Context) topSection(core Record) *Section {
	doc := &Section{Record: core.clone()}
	doc.ObjectType = KindSection.ObjectType()
	doc.TopLevel = true
	doc.ObjectID = c.ID
	doc.ParentID = c.ID
	top := c.METS.Divisions()
	text := doc.textValues()
	for _, div := range top {
		if href := c.resolve(div, mets.RoleOcr, true); href != "" {
			if s, ok := c.readText(href); ok {
				text = append(text, s)
			}
		}
	}
	doc.Text = strings.Join(text, " ")
	doc.LeafCount = len(top)
	if len(top) > 0 {
		c.firstLeafMedia(&doc.Media, top[0])
	}
	if g := c.METS.FileGroup("FileGrpMultipage"); g != nil {
		if len(g.Files) > 0 && g.Files[0].Href != "" {
			doc.PDFURL = c.URL(g.Files[0].Href)
		} else {
			c.Log.Warn("multipage file group without location")
		}
	}
	return doc
}

// firstLeafMedia copies the reference image (with dimensions) and
// thumbnails of the first leaf below div, or its reference audio.
func (c *Context) firstLeafMedia(m *Media, div *mets.Division) {
	if href := c.resolve(div, mets.RoleReferenceImage, true); href != "" {
		m.ReferenceImageURL = c.URL(href)
		m.ReferenceImageWidth, m.ReferenceImageHeight = c.imageSize(href)
		m.ThumbnailURL = c.resolveURL(div, mets.RoleThumbnail, true)
		m.FrontThumbnailURL = c.resolveURL(div, mets.RoleFrontThumbnail, true)
		return
	}
	m.ReferenceAudioURL = c.resolveURL(div, mets.RoleReferenceAudio, true)
}
