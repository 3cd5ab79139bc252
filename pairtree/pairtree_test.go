package pairtree

import "testing"

func TestPath(t *testing.T) {
	var cases = []struct {
		id   string
		want string
	}{
		{"", ""},
		{"a", "aa"},
		{"ab", "ab/ab"},
		{"abcdef", "ab/cd/ef/abcdef"},
		{"abcde", "ab/cd/eabcde"},
		{"2008ms006", "20/08/ms/00/62008ms006"},
		{"xt7kh12v6014", "xt/7k/h1/2v/60/14/xt7kh12v6014"},
	}
	for _, c := range cases {
		if got := Path(c.id); got != c.want {
			t.Errorf("Path(%q) = %q, want %q", c.id, got, c.want)
		}
	}
}

func TestRootedPath(t *testing.T) {
	var cases = []struct {
		id   string
		want string
	}{
		{"xt123abc", "pairtree_root/xt/12/3a/bc/xt123abc"},
		{"2008ms006", "pairtree_root/20/08/ms/00/62008ms006"},
	}
	for _, c := range cases {
		if got := RootedPath(c.id); got != c.want {
			t.Errorf("RootedPath(%q) = %q, want %q", c.id, got, c.want)
		}
	}
}
