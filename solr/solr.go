// Package solr maps derived JSON documents to the field layout of the Solr
// index.
package solr

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/uklibraries/dipkit/dateutil"
	"github.com/uklibraries/dipkit/derive"
	"github.com/uklibraries/dipkit/mets"
	"github.com/uklibraries/dipkit/normal"
)

// MaxTextLength is the number of runes kept in text_s.
const MaxTextLength = 32767

// Source is any derived document: collection, section or leaf. Fields only
// some variants carry are pointers.
type Source struct {
	derive.Record
	derive.Media
	LeafCount               *int    `json:"leaf_count"`
	Position                *int    `json:"position"`
	DigitalContentAvailable *bool   `json:"digital_content_available"`
	AccessionNumber         string  `json:"accession_number"`
	ContainerList           string  `json:"container_list"`
	Text                    *string `json:"text"`
}

// Document is a Solr document.
type Document map[string]interface{}

// ID returns the id field.
func (d Document) ID() string {
	s, _ := d["id"].(string)
	return s
}

// compound lists object types shown as compound objects.
var compound = map[string]bool{
	"collection": true,
	"section":    true,
	"audio":      true,
	"video":      true,
	"image":      true,
}

func first(vs []string) string {
	if len(vs) == 0 {
		return ""
	}
	return vs[0]
}

// Map converts a derived document. Empty values are pruned and strings are
// sanitised.
func Map(src *Source) Document {
	d := Document{
		"id":                              src.ID,
		"object_type_s":                   src.ObjectType,
		"top_level_b":                     src.TopLevel,
		"compound_object_split_b":         compound[src.ObjectType],
		"accession_number_s":              src.AccessionNumber,
		"container_list_s":                src.ContainerList,
		"contributor_s":                   src.Contributor,
		"coordinates_display":             src.CoordinatesURL,
		"coverage_s":                      src.Coverage,
		"date_digitized_display":          src.UploadDate,
		"description_display":             first(src.Description),
		"description_t":                   first(src.Description),
		"finding_aid_url_s":               src.FindingAidURL,
		"format":                          first(src.Format),
		"front_thumbnail_url_s":           src.FrontThumbnailURL,
		"language_display":                first(src.Language),
		"mets_url_display":                src.METSURL,
		"object_id_s":                     src.ObjectID,
		"parent_id_s":                     src.ParentID,
		"pdf_url_display":                 src.PDFURL,
		"pub_date":                        src.CreationDate,
		"full_date_s":                     dateutil.FullDate(first(src.Date)),
		"publisher_display":               first(src.Publisher),
		"publisher_t":                     first(src.Publisher),
		"reference_audio_url_s":           src.ReferenceAudioURL,
		"reference_image_url_s":           src.ReferenceImageURL,
		"reference_video_url_s":           src.ReferenceVideoURL,
		"relation_display":                src.Relation,
		"secondary_reference_audio_url_s": src.SecondaryReferenceAudioURL,
		"subject_topic_facet":             src.Subject,
		"thumbnail_url_s":                 src.ThumbnailURL,
		"title_display":                   first(src.Title),
		"title_t":                         first(src.Title),
		"title_sort":                      src.TitleObject,
		"type_display":                    first(src.Type),
		"usage_display":                   first(src.Rights),
	}
	for _, name := range mets.DublinCoreFields {
		vs := *src.Field(name)
		d["dc_"+name+"_display"] = vs
		d["dc_"+name+"_t"] = vs
	}
	if src.LeafCount != nil {
		d["leaf_count_i"] = *src.LeafCount
	}
	if src.DigitalContentAvailable != nil {
		d["digital_content_available_s"] = *src.DigitalContentAvailable
	}
	if len(src.Creator) > 0 {
		author := strings.Join(src.Creator, ".  ") + "."
		d["author_display"] = author
		d["author_t"] = author
	}
	if src.ReferenceImageWidth > 0 {
		d["reference_image_width_s"] = src.ReferenceImageWidth
	}
	if src.ReferenceImageHeight > 0 {
		d["reference_image_height_s"] = src.ReferenceImageHeight
	}
	var sequence string
	if src.Position != nil {
		sequence = fmt.Sprintf("%05d", *src.Position)
		d["sequence_number_display"] = strconv.Itoa(*src.Position)
		d["sequence_sort"] = sequence
	}
	if s := first(src.Source); s != "" {
		d["source_s"] = s
		d["source_sort_s"] = strings.ToLower(strings.TrimSpace(s)) + "$" + s
	}
	if src.Text != nil {
		d["text"] = *src.Text
		d["text_s"] = truncate(*src.Text, MaxTextLength)
	}
	processed := normal.ProcessTitle(src.TitleObject)
	d["title_processed_s"] = processed
	var initial string
	if r, size := utf8.DecodeRuneInString(processed); size > 0 {
		initial = string(r)
	}
	d["browse_key_sort"] = initial + sequence + " " + processed
	d.prune()
	return d
}

// prune removes empty strings and empty lists and sanitises the remaining
// strings.
func (d Document) prune() {
	for k, v := range d {
		switch t := v.(type) {
		case string:
			if t == "" {
				delete(d, k)
				continue
			}
			d[k] = normal.Sanitize(t)
		case []string:
			if len(t) == 0 {
				delete(d, k)
				continue
			}
			vs := make([]string, len(t))
			for i, s := range t {
				vs[i] = normal.Sanitize(s)
			}
			d[k] = vs
		case nil:
			delete(d, k)
		}
	}
}

// truncate returns the first n runes of s.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	var i int
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
