package mets

import "strings"

// Role is the purpose of a file, encoded as the prefix of its identifier,
// e.g. ReferenceImage0001 or FrontThumbnailFile0001.
type Role int

const (
	RoleUnknown Role = iota
	RoleMaster
	RoleThumbnail
	RoleFrontThumbnail
	RoleReferenceImage
	RoleReferenceAudio
	RoleSecondaryReferenceAudio
	RoleReferenceVideo
	RolePrintImage
	RoleCoordinates
	RoleOcr
	RoleFindingAid
	RoleReelMetadata
	RoleWave
)

var rolePrefixes = []struct {
	prefix string
	role   Role
}{
	{"SecondaryReferenceAudio", RoleSecondaryReferenceAudio},
	{"FrontThumbnail", RoleFrontThumbnail},
	{"ReferenceImage", RoleReferenceImage},
	{"ReferenceAudio", RoleReferenceAudio},
	{"ReferenceVideo", RoleReferenceVideo},
	{"ReelMetadata", RoleReelMetadata},
	{"FindingAid", RoleFindingAid},
	{"Coordinates", RoleCoordinates},
	{"PrintImage", RolePrintImage},
	{"Thumbnail", RoleThumbnail},
	{"Master", RoleMaster},
	{"Wave", RoleWave},
	{"Ocr", RoleOcr},
}

// ParseRole splits a file identifier into its role and the remaining
// suffix; a "File" infix is dropped, so MasterFile0001 and Master0001 both
// yield (RoleMaster, "0001").
func ParseRole(id string) (Role, string) {
	for _, rp := range rolePrefixes {
		if strings.HasPrefix(id, rp.prefix) {
			return rp.role, strings.TrimPrefix(id[len(rp.prefix):], "File")
		}
	}
	return RoleUnknown, id
}

// Prefix returns the identifier prefix of the role.
func (r Role) Prefix() string {
	for _, rp := range rolePrefixes {
		if rp.role == r {
			return rp.prefix
		}
	}
	return ""
}

func (r Role) String() string {
	if p := r.Prefix(); p != "" {
		return p
	}
	return "Unknown"
}
