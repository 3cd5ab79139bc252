package derive

import (
	"strconv"

	"github.com/uklibraries/dipkit/mets"
	"github.com/uklibraries/dipkit/normal"
)

// Document is a derived document, stored under its id.
type Document interface {
	DocID() string
	sanitize()
}

// DublinCore holds the Dublin Core values of the object, in the order of
// mets.DublinCoreFields.
type DublinCore struct {
	Contributor []string `json:"contributor,omitempty"`
	Coverage    []string `json:"coverage,omitempty"`
	Creator     []string `json:"creator,omitempty"`
	Date        []string `json:"date,omitempty"`
	Description []string `json:"description,omitempty"`
	Format      []string `json:"format,omitempty"`
	Identifier  []string `json:"identifier,omitempty"`
	Language    []string `json:"language,omitempty"`
	Publisher   []string `json:"publisher,omitempty"`
	Relation    []string `json:"relation,omitempty"`
	Rights      []string `json:"rights,omitempty"`
	Source      []string `json:"source,omitempty"`
	Subject     []string `json:"subject,omitempty"`
	Title       []string `json:"title,omitempty"`
	Type        []string `json:"type,omitempty"`
}

// Field returns a pointer to the named field or nil.
func (dc *DublinCore) Field(name string) *[]string {
	switch name {
	case "contributor":
		return &dc.Contributor
	case "coverage":
		return &dc.Coverage
	case "creator":
		return &dc.Creator
	case "date":
		return &dc.Date
	case "description":
		return &dc.Description
	case "format":
		return &dc.Format
	case "identifier":
		return &dc.Identifier
	case "language":
		return &dc.Language
	case "publisher":
		return &dc.Publisher
	case "relation":
		return &dc.Relation
	case "rights":
		return &dc.Rights
	case "source":
		return &dc.Source
	case "subject":
		return &dc.Subject
	case "title":
		return &dc.Title
	case "type":
		return &dc.Type
	}
	return nil
}

func (dc *DublinCore) values() []string {
	var vs []string
	for _, f := range [][]string{
		dc.Contributor, dc.Coverage, dc.Creator, dc.Date, dc.Description,
		dc.Format, dc.Identifier, dc.Language, dc.Publisher, dc.Relation,
		dc.Rights, dc.Source, dc.Subject, dc.Title, dc.Type,
	} {
		vs = append(vs, f...)
	}
	return vs
}

// Record holds the fields shared by all documents.
type Record struct {
	ID            string `json:"id"`
	METSURL       string `json:"mets_url"`
	FindingAidURL string `json:"finding_aid_url,omitempty"`
	DublinCore
	TitleObject      string   `json:"title_object,omitempty"`
	CreationDate     string   `json:"creation_date,omitempty"`
	CreationFullDate []string `json:"creation_full_date,omitempty"`
	UploadDate       string   `json:"upload_date,omitempty"`
	TopLevel         bool     `json:"top_level"`
	ObjectID         string   `json:"object_id,omitempty"`
	ParentID         string   `json:"parent_id,omitempty"`
	ObjectType       string   `json:"object_type,omitempty"`
}

func (r *Record) DocID() string { return r.ID }

// FirstFormat returns the first format value or the empty string.
func (r *Record) FirstFormat() string {
	if len(r.Format) == 0 {
		return ""
	}
	return r.Format[0]
}

// clone copies r, slices included.
func (r Record) clone() Record {
	c := r
	for _, name := range mets.DublinCoreFields {
		p := c.DublinCore.Field(name)
		*p = append([]string(nil), *p...)
	}
	c.CreationFullDate = append([]string(nil), r.CreationFullDate...)
	return c
}

// textValues lists the non-empty values of the record for full text
// aggregation.
func (r *Record) textValues() []string {
	vs := []string{r.ID, r.METSURL, r.FindingAidURL}
	vs = append(vs, r.DublinCore.values()...)
	vs = append(vs, r.TitleObject, r.CreationDate)
	vs = append(vs, r.CreationFullDate...)
	vs = append(vs, r.UploadDate, strconv.FormatBool(r.TopLevel), r.ObjectID, r.ParentID, r.ObjectType)
	var result []string
	for _, v := range vs {
		if v != "" {
			result = append(result, v)
		}
	}
	return result
}

func (r *Record) sanitize() {
	sanitizeStrings(&r.ID, &r.METSURL, &r.FindingAidURL, &r.TitleObject,
		&r.CreationDate, &r.UploadDate, &r.ObjectID, &r.ParentID, &r.ObjectType)
	sanitizeSlices(r.Contributor, r.Coverage, r.Creator, r.Date, r.Description,
		r.Format, r.Identifier, r.Language, r.Publisher, r.Relation, r.Rights,
		r.Source, r.Subject, r.Title, r.Type, r.CreationFullDate)
}

// Media holds the file URLs and image dimensions of a node.
type Media struct {
	ReferenceImageURL          string `json:"reference_image_url,omitempty"`
	ReferenceImageWidth        int    `json:"reference_image_width,omitempty"`
	ReferenceImageHeight       int    `json:"reference_image_height,omitempty"`
	ThumbnailURL               string `json:"thumbnail_url,omitempty"`
	FrontThumbnailURL          string `json:"front_thumbnail_url,omitempty"`
	PDFURL                     string `json:"pdf_url,omitempty"`
	ReferenceAudioURL          string `json:"reference_audio_url,omitempty"`
	SecondaryReferenceAudioURL string `json:"secondary_reference_audio_url,omitempty"`
	ReferenceVideoURL          string `json:"reference_video_url,omitempty"`
	CoordinatesURL             string `json:"coordinates,omitempty"`
}

func (m *Media) sanitize() {
	sanitizeStrings(&m.ReferenceImageURL, &m.ThumbnailURL, &m.FrontThumbnailURL,
		&m.PDFURL, &m.ReferenceAudioURL, &m.SecondaryReferenceAudioURL,
		&m.ReferenceVideoURL, &m.CoordinatesURL)
}

// Collection is the object level document of an archival collection.
type Collection struct {
	Record
	DigitalContentAvailable bool   `json:"digital_content_available"`
	AccessionNumber         string `json:"accession_number,omitempty"`
	Text                    string `json:"text,omitempty"`
}

func (c *Collection) sanitize() {
	c.Record.sanitize()
	sanitizeStrings(&c.AccessionNumber, &c.Text)
}

// Section is a top level section, or the object itself for objects
// without a finding aid.
type Section struct {
	Record
	Media
	LeafCount int    `json:"leaf_count"`
	Text      string `json:"text,omitempty"`
}

func (s *Section) sanitize() {
	s.Record.sanitize()
	s.Media.sanitize()
	sanitizeStrings(&s.Text)
}

// Leaf is a page, image, audio or video division.
type Leaf struct {
	Record
	Media
	Position      int    `json:"position"`
	ContainerList string `json:"container_list,omitempty"`
	Text          string `json:"text,omitempty"`
}

func (l *Leaf) sanitize() {
	l.Record.sanitize()
	l.Media.sanitize()
	sanitizeStrings(&l.ContainerList, &l.Text)
}

func sanitizeStrings(ps ...*string) {
	for _, p := range ps {
		*p = normal.Sanitize(*p)
	}
}

func sanitizeSlices(ss ...[]string) {
	for _, s := range ss {
		for i := range s {
			s[i] = normal.Sanitize(s[i])
		}
	}
}
