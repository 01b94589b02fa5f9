// Package goquery implements relic.Extractor using goquery.
//
// Each capture layout has its own set of rules, one per post variant.
// The Registry detects the layout of a document and delegates to the
// matching rules.
package goquery

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/relic"
)

// postRule extracts one post from the selection that contains it.
type postRule func(s *goquery.Selection) (*relic.RawPost, error)

func parse(html string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, relic.Errorf(relic.EEXTRACT, "failed to parse HTML: %v", err)
	}
	return doc, nil
}

func hasSelector(doc *goquery.Document, selector string) bool {
	return doc.Find(selector).Length() > 0
}

// text returns the trimmed text of the first matched element.
func text(s *goquery.Selection) string {
	return strings.TrimSpace(s.First().Text())
}

// match returns the integer captured by group n of re in s, or 0.
func match(re *regexp.Regexp, s string, n int) int {
	m := re.FindStringSubmatch(s)
	if len(m) <= n {
		return 0
	}
	return relic.ParseCount(m[n])
}

func parseID(s string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func tags(s *goquery.Selection) []string {
	out := []string{}
	s.Each(func(_ int, a *goquery.Selection) {
		if t := strings.TrimSpace(a.Text()); t != "" {
			out = append(out, t)
		}
	})
	return out
}

// first returns the first post of the given variant in a thread.
func first(thread *relic.RawThread, variant relic.Variant) (*relic.RawPost, error) {
	for _, p := range thread.Posts() {
		if p.Variant == variant {
			return p, nil
		}
	}
	return nil, relic.Errorf(relic.EEXTRACT, "no %s found in document", variant)
}
