package s247

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// find returns the first descendant matching the selector, reporting whether
// one exists. This is the lookup for optional markup; absence is a normal
// outcome, not an error.
func find(s *goquery.Selection, selector string) (*goquery.Selection, bool) {
	m := s.Find(selector).First()
	return m, m.Length() > 0
}

// requireSel returns the first descendant matching the selector, or an
// ExtractionError naming it. This is the lookup for structurally required
// markup.
func requireSel(s *goquery.Selection, selector string) (*goquery.Selection, error) {
	m, ok := find(s, selector)
	if !ok {
		return nil, &ExtractionError{Selector: selector}
	}
	return m, nil
}

// squash collapses whitespace runs to single spaces and trims the ends
func squash(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// compact removes all whitespace
func compact(s string) string {
	return strings.Join(strings.Fields(s), "")
}

// lastPathSegment returns the final non-empty path segment of a URL
func lastPathSegment(url string) string {
	url = strings.TrimRight(strings.TrimSpace(url), "/")
	if i := strings.LastIndex(url, "/"); i >= 0 {
		return url[i+1:]
	}
	return url
}

// parseRank converts rank text to an integer. The "N/A" sentinel and empty
// text mean absent, never zero.
func parseRank(text string) *int {
	text = compact(text)
	if text == "" || text == "N/A" {
		return nil
	}
	n, err := strconv.Atoi(text)
	if err != nil {
		return nil
	}
	return &n
}

// parseScore converts score text to a float, treating the "N/A"/"NA"
// sentinels as absent
func parseScore(text string) *float64 {
	text = compact(text)
	if text == "" || text == "N/A" || text == "NA" {
		return nil
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil
	}
	return &f
}

// parsePercent strips parenthesis and percent characters and converts the
// remainder to a 0-1 fraction
func parsePercent(text string) *float64 {
	text = strings.NewReplacer("(", "", ")", "", "%", "").Replace(strings.TrimSpace(text))
	if text == "" {
		return nil
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil
	}
	f /= 100
	return &f
}
