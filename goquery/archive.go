package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/relic"
	"golang.org/x/net/html"
)

var (
	upvotePattern        = regexp.MustCompile(`(\d+)人赞同`)
	articleUpvotePattern = regexp.MustCompile(`(\d+)人赞过`)
	commentsPattern      = regexp.MustCompile(`(\d+)\s*条评论`)
	numericPattern       = regexp.MustCompile(`^\d+$`)
)

// Content sits inside at most this many single-child wrappers.
const maxContentDepth = 2

var _ relic.Extractor = (*ArchiveExtractor)(nil)

// ArchiveExtractor extracts posts from archive.today snapshots.
//
// Snapshots keep the page structure but drop class attributes, so posts are
// located by their named anchors and fields by their text: each post is an
// a[name] anchor followed by its body, and the counter, comment and author
// blocks are recognised by what they say rather than where they sit.
type ArchiveExtractor struct {
	rules map[relic.Variant]postRule
}

// NewArchiveExtractor creates a new ArchiveExtractor.
func NewArchiveExtractor() *ArchiveExtractor {
	e := &ArchiveExtractor{}
	e.rules = map[relic.Variant]postRule{
		relic.VariantQuestion: e.question,
		relic.VariantAnswer:   e.answer,
		relic.VariantArticle:  e.article,
	}
	return e
}

// Extract implements relic.Extractor.
func (e *ArchiveExtractor) Extract(html string, variant relic.Variant) (*relic.RawPost, error) {
	thread, err := e.ExtractThread(html, 0)
	if err != nil {
		return nil, err
	}
	return first(thread, variant)
}

// ExtractThread implements relic.Extractor. The first post anchor in the
// document is the main post and every later one is an answer. Snapshots
// carry no creation dates.
func (e *ArchiveExtractor) ExtractThread(html string, _ int64) (*relic.RawThread, error) {
	doc, err := parse(html)
	if err != nil {
		return nil, err
	}

	anchors := postAnchors(doc)
	if anchors.Length() == 0 {
		return nil, relic.Errorf(relic.EEXTRACT, "no post anchors found")
	}

	variant := relic.VariantQuestion
	if isArchivedArticle(doc) {
		variant = relic.VariantArticle
	}

	main, err := e.rules[variant](anchors.First())
	if err != nil {
		return nil, err
	}
	thread := &relic.RawThread{Layout: relic.LayoutArchive, Main: main}

	var answerErr error
	anchors.Slice(1, anchors.Length()).EachWithBreak(func(_ int, a *goquery.Selection) bool {
		answer, err := e.rules[relic.VariantAnswer](a)
		if err != nil {
			answerErr = err
			return false
		}
		answer.ParentID = main.ID
		thread.Answers = append(thread.Answers, answer)
		return true
	})
	if answerErr != nil {
		return nil, answerErr
	}

	return thread, nil
}

func (e *ArchiveExtractor) question(anchor *goquery.Selection) (*relic.RawPost, error) {
	p, blocks, err := archivedPost(anchor, relic.VariantQuestion, upvotePattern)
	if err != nil {
		return nil, err
	}
	p.Follow = match(followPattern, blocks.counters, 1)

	header := headerBlocks(anchor)
	p.Tags = header.tags
	// The title follows the tags; later blocks hold view counts and such.
	if len(header.text) > 0 {
		p.Title = text(header.text[len(header.text)-1])
	}
	return p, nil
}

func (e *ArchiveExtractor) answer(anchor *goquery.Selection) (*relic.RawPost, error) {
	p, blocks, err := archivedPost(anchor, relic.VariantAnswer, upvotePattern)
	if err != nil {
		return nil, err
	}

	user := blocks.user
	name := ""
	user.Find("a").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		name = strings.TrimSpace(a.Text())
		return name == ""
	})
	if name == "" {
		return nil, relic.Errorf(relic.EEXTRACT, "answer %d author not found", p.ID)
	}
	p.Author = &relic.RawAuthor{
		Name:  name,
		Intro: strings.TrimSpace(user.Find("[title]").First().AttrOr("title", "")),
	}
	return p, nil
}

// article reads the header backwards from the post body: the nearest text
// block is the author and the one before it the title.
func (e *ArchiveExtractor) article(anchor *goquery.Selection) (*relic.RawPost, error) {
	p, _, err := archivedPost(anchor, relic.VariantArticle, articleUpvotePattern)
	if err != nil {
		return nil, err
	}

	header := headerBlocks(anchor)
	p.Tags = header.tags
	if len(header.text) == 0 {
		return nil, relic.Errorf(relic.EEXTRACT, "article %d author not found", p.ID)
	}
	p.Author = &relic.RawAuthor{Name: text(header.text[0])}
	if len(header.text) > 1 {
		p.Title = text(header.text[1])
	}
	return p, nil
}

// bodyBlocks are the probed children of an archived post body.
type bodyBlocks struct {
	counters string
	user     *goquery.Selection
}

// archivedPost extracts the fields every archived post shares. upvotes is
// the counter wording of the variant.
func archivedPost(anchor *goquery.Selection, variant relic.Variant, upvotes *regexp.Regexp) (*relic.RawPost, *bodyBlocks, error) {
	id, ok := parseID(anchor.AttrOr("name", ""))
	if !ok {
		return nil, nil, relic.Errorf(relic.EEXTRACT, "%s identifier not found", variant)
	}

	body := anchor.Next()
	if body.Length() == 0 {
		return nil, nil, relic.Errorf(relic.EEXTRACT, "%s %d body not found", variant, id)
	}

	var counters *goquery.Selection
	body.Children().EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if upvotes.MatchString(s.Text()) {
			counters = s
			return false
		}
		return true
	})
	if counters == nil {
		return nil, nil, relic.Errorf(relic.EEXTRACT, "%s %d counters not found", variant, id)
	}

	content := descend(counters.Next())
	if content.Length() == 0 {
		return nil, nil, relic.Errorf(relic.EEXTRACT, "%s %d content container not found", variant, id)
	}
	fragment, err := content.Html()
	if err != nil {
		return nil, nil, relic.Errorf(relic.EEXTRACT, "failed to render %s %d content: %v", variant, id, err)
	}

	comments := 0
	counters.Next().NextAll().Each(func(_ int, s *goquery.Selection) {
		if n := match(commentsPattern, s.Text(), 1); n > 0 {
			comments = n
		}
	})

	countersText := strings.TrimSpace(counters.Text())
	return &relic.RawPost{
			ID:          id,
			Variant:     variant,
			Upvote:      match(upvotes, countersText, 1),
			Comments:    comments,
			ContentHTML: fragment,
		}, &bodyBlocks{
			counters: countersText,
			user:     counters.Prev(),
		}, nil
}

// header holds the blocks above the main post body.
type header struct {
	tags []string

	// text holds non-empty blocks, nearest to the body first.
	text []*goquery.Selection
}

func headerBlocks(anchor *goquery.Selection) header {
	top := anchor.Parent()
	first := top.Parent().Children().First()

	h := header{tags: []string{}}
	var firstNode *html.Node
	if first.Length() > 0 && first.Get(0) != top.Get(0) && first.Find("a").Length() > 0 {
		h.tags = tags(first.Find("a"))
		firstNode = first.Get(0)
	}

	for s := top.Prev(); s.Length() > 0; s = s.Prev() {
		if s.Get(0) == firstNode {
			break
		}
		if text(s) != "" {
			h.text = append(h.text, s)
		}
	}
	return h
}

// descend unwraps single-element div wrappers around post content.
func descend(s *goquery.Selection) *goquery.Selection {
	for i := 0; i < maxContentDepth; i++ {
		children := s.Children()
		if children.Length() != 1 || goquery.NodeName(children) != "div" {
			break
		}
		s = children
	}
	return s
}

func postAnchors(doc *goquery.Document) *goquery.Selection {
	return doc.Find("a[name]").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return numericPattern.MatchString(s.AttrOr("name", ""))
	})
}

func isArchivedArticle(doc *goquery.Document) bool {
	return doc.Find("h3").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return strings.HasPrefix(strings.TrimSpace(s.Text()), liveArticleLabel)
	}).Length() > 0
}
