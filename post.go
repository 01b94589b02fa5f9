package relic

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Variant identifies the kind of a forum post.
type Variant string

// Post variants.
const (
	VariantQuestion Variant = "question"
	VariantAnswer   Variant = "answer"
	VariantArticle  Variant = "article"
)

// Valid reports whether v is one of the known variants.
func (v Variant) Valid() bool {
	switch v {
	case VariantQuestion, VariantAnswer, VariantArticle:
		return true
	}
	return false
}

// Post is a normalized forum post ready to be written to the corpus.
type Post struct {
	ID       int64
	Variant  Variant
	ParentID int64 // question ID, answers only

	Title    string
	Tags     []string
	Upvote   int
	Downvote int
	Follow   int
	Comments int

	User    *User
	Content string // Markdown
	Date    time.Time
}

// Validate returns an error if the post cannot be placed in the corpus.
func (p *Post) Validate() error {
	if p.ID <= 0 {
		return Errorf(EINVALID, "post ID required")
	}
	if !p.Variant.Valid() {
		return Errorf(EINVALID, "unknown post variant %q", p.Variant)
	}
	if p.Variant == VariantAnswer && p.ParentID <= 0 {
		return Errorf(EINVALID, "answer %d has no parent question", p.ID)
	}
	if p.Variant != VariantQuestion && p.User == nil {
		return Errorf(EINVALID, "%s %d has no author", p.Variant, p.ID)
	}
	return nil
}

// Path returns the canonical corpus path of the post.
func (p *Post) Path() string {
	switch p.Variant {
	case VariantArticle:
		return fmt.Sprintf("/_articles/%d.md", p.ID)
	case VariantAnswer:
		return fmt.Sprintf("/_answers/%d/%d.md", p.ParentID, p.ID)
	default:
		return fmt.Sprintf("/_p/%d.md", p.ID)
	}
}

// Comments returns the placeholder list written in place of n comments.
// The bodies are not captured, only their count is preserved.
func Comments(n int) []string {
	if n < 0 {
		n = 0
	}
	return make([]string, n)
}

// ParseCount coerces a captured counter to an integer.
// Anything that is not a non-negative integer yields 0.
func ParseCount(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
