package derive

import "github.com/uklibraries/dipkit/mets"

// Kind is the semantic type of a structural node.
type Kind int

const (
	KindPage Kind = iota
	KindImage
	KindAudio
	KindVideo
	KindSection
	KindCollection
)

// ObjectType is the object_type value of documents of this kind.
func (k Kind) ObjectType() string {
	switch k {
	case KindImage:
		return "image"
	case KindAudio:
		return "audio"
	case KindVideo:
		return "video"
	case KindSection:
		return "section"
	case KindCollection:
		return "collection"
	default:
		return "page"
	}
}

// Class is the result of classifying a division. An empty Format leaves the
// inherited format in place.
type Class struct {
	Kind   Kind
	Format string
}

// Classify decides kind and format of div. Reference video and audio
// pointers win over the declared TYPE. declared is the type checked for
// maps; leaves pass their own TYPE, sections pass theirs while div is the
// first child.
func Classify(div *mets.Division, declared string, findingAid bool) Class {
	switch {
	case div.HasRole(mets.RoleReferenceVideo):
		return Class{Kind: KindVideo, Format: "audiovisual"}
	case div.HasRole(mets.RoleReferenceAudio):
		return Class{Kind: KindAudio, Format: "audio"}
	}
	switch div.Type {
	case "video":
		return Class{Kind: KindVideo, Format: "audiovisual"}
	case "audio":
		return Class{Kind: KindAudio, Format: "audio"}
	case "photograph":
		return Class{Kind: KindImage, Format: "images"}
	}
	if !findingAid {
		return Class{Kind: KindPage}
	}
	if declared == "sheet" {
		return Class{Kind: KindPage, Format: "maps"}
	}
	return Class{Kind: KindPage, Format: "archival material"}
}

// pageable is false for formats whose sections are not emitted.
func pageable(format string) bool {
	switch format {
	case "audio", "audiovisual", "drawings (visual works)", "images":
		return false
	}
	return true
}
