package derive

import (
	"testing"

	"github.com/uklibraries/dipkit/mets"
)

func division(typ string, roles ...mets.Role) *mets.Division {
	div := &mets.Division{Order: "1", Type: typ}
	for _, r := range roles {
		div.Pointers = append(div.Pointers, mets.Pointer{Role: r})
	}
	return div
}

func TestClassify(t *testing.T) {
	var cases = []struct {
		about      string
		div        *mets.Division
		declared   string
		findingAid bool
		want       Class
	}{
		{"plain page", division("page", mets.RoleReferenceImage), "page", false, Class{Kind: KindPage}},
		{"archival page", division("page"), "page", true, Class{Kind: KindPage, Format: "archival material"}},
		{"map sheet", division("sheet"), "sheet", true, Class{Kind: KindPage, Format: "maps"}},
		{"map sheet without finding aid", division("sheet"), "sheet", false, Class{Kind: KindPage}},
		{"photograph", division("photograph"), "photograph", true, Class{Kind: KindImage, Format: "images"}},
		{"declared audio", division("audio"), "audio", false, Class{Kind: KindAudio, Format: "audio"}},
		{"declared video", division("video"), "video", false, Class{Kind: KindVideo, Format: "audiovisual"}},
		{"audio pointer wins", division("photograph", mets.RoleReferenceAudio), "photograph", true, Class{Kind: KindAudio, Format: "audio"}},
		{"video pointer wins over audio", division("page", mets.RoleReferenceAudio, mets.RoleReferenceVideo), "page", false, Class{Kind: KindVideo, Format: "audiovisual"}},
	}
	for _, c := range cases {
		if got := Classify(c.div, c.declared, c.findingAid); got != c.want {
			t.Errorf("%s: got %+v, want %+v", c.about, got, c.want)
		}
	}
}

func TestPageable(t *testing.T) {
	for format, want := range map[string]bool{
		"":                        true,
		"text":                    true,
		"archival material":       true,
		"maps":                    true,
		"images":                  false,
		"audio":                   false,
		"audiovisual":             false,
		"drawings (visual works)": false,
	} {
		if got := pageable(format); got != want {
			t.Errorf("pageable(%q) = %v, want %v", format, got, want)
		}
	}
}

func TestIDs(t *testing.T) {
	var cases = []struct {
		base     string
		path     []string
		id       string
		parent   string
		fallback string
	}{
		{"xt7", nil, "xt7", "xt7", "xt7_1"},
		{"xt7", []string{"4"}, "xt7_4", "xt7", "xt7_1"},
		{"xt7", []string{"2", "5"}, "xt7_2_5", "xt7_2", "xt7_2_1"},
	}
	for _, c := range cases {
		id := NodeID(c.base, c.path)
		if id != c.id {
			t.Errorf("NodeID(%q, %v) = %q, want %q", c.base, c.path, id, c.id)
		}
		if got := ParentID(id); got != c.parent {
			t.Errorf("ParentID(%q) = %q, want %q", id, got, c.parent)
		}
		if got := FallbackID(id); got != c.fallback {
			t.Errorf("FallbackID(%q) = %q, want %q", id, got, c.fallback)
		}
	}
}

func TestSyntheticTitle(t *testing.T) {
	section := &mets.Division{Order: "1", Type: "section", Label: "Letters."}
	var cases = []struct {
		div  *mets.Division
		want string
	}{
		{&mets.Division{Order: "1", Type: "page", Label: "1"}, ""},
		{&mets.Division{Order: "3", Type: "page", Label: "3"}, "Page 3 of Almanac"},
		{&mets.Division{Order: "3", Type: "page", Label: "[iii]"}, ""},
		{&mets.Division{Order: "4", Type: "page", Label: "[4]"}, "Page [4] of Almanac"},
		{&mets.Division{Order: "5", Type: "sequence", Label: "xx"}, "Sequence 5 of Almanac"},
		{&mets.Division{Order: "2", Type: "page", Label: "2", Parent: section}, "Letters > Page 2 of Almanac"},
	}
	for _, c := range cases {
		if got := syntheticTitle(c.div, "Almanac"); got != c.want {
			t.Errorf("syntheticTitle(%+v) = %q, want %q", c.div, got, c.want)
		}
	}
}
