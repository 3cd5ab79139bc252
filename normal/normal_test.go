package normal

import "testing"

func TestTrimTrailingPunct(t *testing.T) {
	var cases = []struct {
		in, want string
	}{
		{"", ""},
		{"Letter to John", "Letter to John"},
		{"Letter to John.", "Letter to John"},
		{"  Letter to John , ; ", "Letter to John"},
		{"What?!", "What"},
		{"A.B. Smith papers.", "A.B. Smith papers"},
	}
	for _, c := range cases {
		if got := TrimTrailingPunct(c.in); got != c.want {
			t.Errorf("TrimTrailingPunct(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestHasNonDigit(t *testing.T) {
	var cases = []struct {
		in   string
		want bool
	}{
		{"", false},
		{"12", false},
		{"[12]", true},
		{"Page 1", true},
	}
	for _, c := range cases {
		if got := HasNonDigit(c.in); got != c.want {
			t.Errorf("HasNonDigit(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestProcessTitle(t *testing.T) {
	var cases = []struct {
		in, want string
	}{
		{"The Kentucky Kernel", "kentucky kernel"},
		{"Insurance Maps of Lexington, Kentucky", "lexington kentucky"},
		{"A History of the Commonwealth", "history of the commonwealth"},
		{"The", ""},
		{"1923", ""},
	}
	for _, c := range cases {
		if got := ProcessTitle(c.in); got != c.want {
			t.Errorf("ProcessTitle(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestCapitalize(t *testing.T) {
	var cases = []struct {
		in, want string
	}{
		{"", ""},
		{"english", "English"},
		{"ENGLISH", "English"},
		{"english and french", "English and french"},
	}
	for _, c := range cases {
		if got := Capitalize(c.in); got != c.want {
			t.Errorf("Capitalize(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestSanitize(t *testing.T) {
	var cases = []struct {
		in, want string
	}{
		{"valid text..", "valid text.."},
		{"caf\xe9 menu", "caf menu"},
		{" broken\xff.. ", "broken."},
	}
	for _, c := range cases {
		if got := Sanitize(c.in); got != c.want {
			t.Errorf("Sanitize(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
