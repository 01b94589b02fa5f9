package goquery

import (
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/araddon/dateparse"
	"github.com/fwojciec/relic"
)

const (
	liveMainSelector    = "span[itemtype='http://schema.org/Question'] > div.post-body"
	liveAnswerSelector  = "div.post-answer-wrap > div.post-body-wrap"
	liveContentSelector = "div.post-text-detail, div.post-text-detail-column"
	liveArticleLabel    = "专栏文章"
)

var (
	followPattern = regexp.MustCompile(`(\d+)人关注`)
	avatarPattern = regexp.MustCompile(`/static/upload/.+`)
	threadPattern = regexp.MustCompile(`/p/(\d+)`)
)

var _ relic.Extractor = (*LiveExtractor)(nil)

// LiveExtractor extracts posts from the live site's markup. Search-engine
// caches carry the same markup.
type LiveExtractor struct {
	rules map[relic.Variant]postRule

	// Location is used for dates that carry no zone.
	Location *time.Location
}

// NewLiveExtractor creates a LiveExtractor that reads zoneless dates as UTC.
func NewLiveExtractor() *LiveExtractor {
	e := &LiveExtractor{Location: time.UTC}
	e.rules = map[relic.Variant]postRule{
		relic.VariantQuestion: e.question,
		relic.VariantAnswer:   e.answer,
		relic.VariantArticle:  e.article,
	}
	return e
}

// Extract implements relic.Extractor.
func (e *LiveExtractor) Extract(html string, variant relic.Variant) (*relic.RawPost, error) {
	thread, err := e.ExtractThread(html, 0)
	if err != nil {
		return nil, err
	}
	return first(thread, variant)
}

// ExtractThread implements relic.Extractor. The thread identifier is taken
// from the canonical link when present, otherwise threadID is used.
func (e *LiveExtractor) ExtractThread(html string, threadID int64) (*relic.RawThread, error) {
	doc, err := parse(html)
	if err != nil {
		return nil, err
	}

	main := doc.Find(liveMainSelector).First()
	if main.Length() == 0 {
		return nil, relic.Errorf(relic.EEXTRACT, "main post container not found")
	}

	id := liveThreadID(doc)
	if id == 0 {
		id = threadID
	}
	if id == 0 {
		return nil, relic.Errorf(relic.EEXTRACT, "thread identifier not found")
	}

	variant := relic.VariantQuestion
	if text(doc.Find(".post-topic-detail-title")) == liveArticleLabel {
		variant = relic.VariantArticle
	}

	post, err := e.rules[variant](main)
	if err != nil {
		return nil, err
	}
	post.ID = id

	thread := &relic.RawThread{Layout: relic.LayoutLive, Main: post}

	var answerErr error
	doc.Find(liveAnswerSelector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		answer, err := e.rules[relic.VariantAnswer](s)
		if err != nil {
			answerErr = err
			return false
		}
		answer.ParentID = id
		thread.Answers = append(thread.Answers, answer)
		return true
	})
	if answerErr != nil {
		return nil, answerErr
	}

	return thread, nil
}

func (e *LiveExtractor) question(s *goquery.Selection) (*relic.RawPost, error) {
	p, err := e.post(s, relic.VariantQuestion)
	if err != nil {
		return nil, err
	}
	p.Title = text(s.Find("div.post-title > span"))
	p.Tags = tags(s.Find("div.tags > a.tag"))
	p.Follow = match(followPattern, text(s.Find("div.post-mod-agree")), 1)
	return p, nil
}

func (e *LiveExtractor) answer(s *goquery.Selection) (*relic.RawPost, error) {
	id, ok := parseID(s.AttrOr("data-mainpost", ""))
	if !ok {
		return nil, relic.Errorf(relic.EEXTRACT, "answer identifier not found")
	}

	p, err := e.post(s, relic.VariantAnswer)
	if err != nil {
		return nil, err
	}
	p.ID = id
	if err := requireAuthor(p); err != nil {
		return nil, err
	}
	return p, nil
}

func (e *LiveExtractor) article(s *goquery.Selection) (*relic.RawPost, error) {
	p, err := e.post(s, relic.VariantArticle)
	if err != nil {
		return nil, err
	}
	p.Title = text(s.Find("div.post-title > span"))
	p.Tags = tags(s.Find("div.tags > a.tag"))
	if err := requireAuthor(p); err != nil {
		return nil, err
	}
	return p, nil
}

// post extracts the fields shared by every variant.
func (e *LiveExtractor) post(s *goquery.Selection, variant relic.Variant) (*relic.RawPost, error) {
	content := s.Find(liveContentSelector).First()
	if content.Length() == 0 {
		return nil, relic.Errorf(relic.EEXTRACT, "%s content container not found", variant)
	}
	html, err := content.Html()
	if err != nil {
		return nil, relic.Errorf(relic.EEXTRACT, "failed to render %s content: %v", variant, err)
	}

	return &relic.RawPost{
		Variant:     variant,
		Upvote:      relic.ParseCount(text(s.Find("span.upvote span.count-wrap"))),
		Downvote:    relic.ParseCount(text(s.Find("span.downvote span.count-wrap"))),
		Comments:    relic.ParseCount(s.Find("span.view-comment").First().AttrOr("count", "")),
		CreatedAt:   e.date(s),
		Author:      liveAuthor(s),
		ContentHTML: html,
	}, nil
}

// date returns the creation date, or the zero time when it is absent or
// unparseable so the caller can reconstruct it.
func (e *LiveExtractor) date(s *goquery.Selection) time.Time {
	v := strings.TrimSpace(s.Find("span[itemprop='dateCreated']").First().AttrOr("content", ""))
	if v == "" {
		return time.Time{}
	}
	loc := e.Location
	if loc == nil {
		loc = time.UTC
	}
	t, err := dateparse.ParseIn(v, loc)
	if err != nil {
		return time.Time{}
	}
	return t.UTC()
}

func liveAuthor(s *goquery.Selection) *relic.RawAuthor {
	name := text(s.Find("a.aw-user-name"))
	if name == "" {
		return nil
	}
	a := &relic.RawAuthor{
		Name:  name,
		Intro: strings.TrimSpace(s.Find("span.post-user-intro").First().AttrOr("title", "")),
	}
	a.ID, _ = parseID(s.Find("span.post-user-name").First().AttrOr("uid", ""))
	src := s.Find(".post-detail-user-box img").First().AttrOr("src", "")
	a.Avatar = avatarPattern.FindString(src)
	return a
}

func liveThreadID(doc *goquery.Document) int64 {
	for _, sel := range []string{"link[rel='canonical']", "meta[property='og:url']"} {
		s := doc.Find(sel).First()
		v := s.AttrOr("href", s.AttrOr("content", ""))
		if m := threadPattern.FindStringSubmatch(v); m != nil {
			if id, ok := parseID(m[1]); ok {
				return id
			}
		}
	}
	return 0
}

func requireAuthor(p *relic.RawPost) error {
	if p.Author == nil {
		return relic.Errorf(relic.EEXTRACT, "%s %d author not found", p.Variant, p.ID)
	}
	return nil
}
