// Package normal contains string normalisers for labels, titles and free
// text taken from METS and finding aid documents.
package normal

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// Stopwords are dropped from the beginning of processed titles.
var Stopwords = []string{
	"a", "an", "as", "at", "be", "but", "by", "do", "for", "if", "in", "is",
	"it", "of", "on", "the", "to",
}

var trailingPunct = regexp.MustCompile(`\s*([,.;:!?]+\s*)+$`)

type Pipeline struct {
	Normalizer []Normalizer
}

func (p *Pipeline) Normalize(s string) string {
	for _, n := range p.Normalizer {
		s = n.Normalize(s)
	}
	return s
}

type Normalizer interface {
	Normalize(string) string
}

type LowerNormalizer struct{}

func (s *LowerNormalizer) Normalize(v string) string {
	return strings.ToLower(v)
}

// ASCIILettersNormalizer keeps a-z and space only.
type ASCIILettersNormalizer struct{}

func (s *ASCIILettersNormalizer) Normalize(v string) string {
	var b strings.Builder
	for _, c := range v {
		if (c >= 'a' && c <= 'z') || c == ' ' {
			b.WriteRune(c)
		}
	}
	return b.String()
}

type PrefixNormalizer struct {
	Prefix string
}

func (s *PrefixNormalizer) Normalize(v string) string {
	return strings.TrimPrefix(v, s.Prefix)
}

// StopwordNormalizer splits on whitespace, drops leading stop words and
// joins the rest with single spaces.
type StopwordNormalizer struct {
	Stopwords []string
}

func (s *StopwordNormalizer) Normalize(v string) string {
	words := strings.Fields(v)
	for len(words) > 0 && s.isStopword(words[0]) {
		words = words[1:]
	}
	return strings.Join(words, " ")
}

func (s *StopwordNormalizer) isStopword(w string) bool {
	for _, sw := range s.Stopwords {
		if w == sw {
			return true
		}
	}
	return false
}

// TitlePipeline turns a display title into a browse key.
var TitlePipeline = &Pipeline{
	Normalizer: []Normalizer{
		&LowerNormalizer{},
		&ASCIILettersNormalizer{},
		&PrefixNormalizer{Prefix: "insurance maps of "},
		&StopwordNormalizer{Stopwords: Stopwords},
	},
}

// ProcessTitle applies TitlePipeline.
func ProcessTitle(s string) string {
	return TitlePipeline.Normalize(s)
}

// TrimTrailingPunct trims whitespace and removes any trailing run of
// punctuation, e.g. "Letter to John, ;" becomes "Letter to John".
func TrimTrailingPunct(s string) string {
	return trailingPunct.ReplaceAllString(strings.TrimSpace(s), "")
}

// HasNonDigit reports whether s contains any character that is not an ASCII
// digit.
func HasNonDigit(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return true
		}
	}
	return false
}

// Capitalize upper-cases the first letter and lower-cases the rest.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return cases.Upper(language.Und).String(s[:size]) + cases.Lower(language.Und).String(s[size:])
}

// Sanitize drops invalid UTF-8 sequences from s. Strings that needed
// repair are also trimmed and a trailing ".." is reduced to ".". Valid
// strings are returned unchanged.
func Sanitize(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	t := transform.Chain(
		runes.ReplaceIllFormed(),
		runes.Remove(runes.Predicate(func(r rune) bool { return r == utf8.RuneError })),
	)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = strings.ToValidUTF8(s, "")
	}
	out = strings.TrimSpace(out)
	if strings.HasSuffix(out, "..") {
		out = out[:len(out)-1]
	}
	return out
}
