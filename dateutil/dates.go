// Package dateutil recognises the years and dates found in Dublin Core date
// fields and finding aid unit dates.
package dateutil

import (
	"regexp"
	"strings"

	"github.com/araddon/dateparse"
)

var (
	nonDigit     = regexp.MustCompile(`\D`)
	lastYear     = regexp.MustCompile(`.*(\d{4})`)
	anyYear      = regexp.MustCompile(`\d{4}`)
	yearOnly     = regexp.MustCompile(`^(\d{4})s?$`)
	yearMonth    = regexp.MustCompile(`^(\d{4})-(\d{2})$`)
	yearMonthDay = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})`)
	yearRange    = regexp.MustCompile(`^(\d{4})\s*[-/]\s*\d{2,4}$`)
	approx       = regexp.MustCompile(`(?i)^(circa|ca\.?|c\.|approximately|about)\s*`)
)

// CreationYear takes the first date value, removes everything that is not a
// digit and returns at most the first four characters.
func CreationYear(dates []string) string {
	if len(dates) == 0 {
		return ""
	}
	s := nonDigit.ReplaceAllString(dates[0], "")
	if len(s) > 4 {
		s = s[:4]
	}
	return s
}

// UnitDateYear returns the last run of four digits in a unit date, e.g.
// "1901-1911" yields "1911". Returns the empty string if there is none.
func UnitDateYear(s string) string {
	m := lastYear.FindStringSubmatch(s)
	if m == nil {
		return ""
	}
	return m[1]
}

// FullDate normalises a free form date into YYYY, YYYY-MM or YYYY-MM-DD.
// Simple numeric forms are matched first, then dateparse is tried and as a
// last resort the first four digit run is used. Unrecognised values yield
// the empty string.
func FullDate(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, "[]?")
	s = approx.ReplaceAllString(s, "")
	if s == "" {
		return ""
	}
	if m := yearOnly.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	if yearMonth.MatchString(s) {
		return s
	}
	if m := yearMonthDay.FindStringSubmatch(s); m != nil {
		return m[1] + "-" + m[2] + "-" + m[3]
	}
	if m := yearRange.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	if t, err := dateparse.ParseAny(s); err == nil {
		return t.Format("2006-01-02")
	}
	return anyYear.FindString(s)
}
