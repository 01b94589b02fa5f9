package relic

import "time"

// Layout identifies the capture-source version of a document's DOM.
type Layout string

// Known layouts.
const (
	// LayoutLive is the markup served by the live site. Search-engine
	// caches carry the same page source.
	LayoutLive Layout = "live"

	// LayoutArchive is an archive.today snapshot. Class attributes are
	// stripped and styles inlined, so rules cannot rely on selectors.
	LayoutArchive Layout = "archive"

	LayoutUnknown Layout = "unknown"
)

// Capture is a raw document retrieved by an external collaborator.
type Capture struct {
	// ThreadID identifies the thread when the document itself does not.
	ThreadID int64

	URL        string
	CapturedAt time.Time

	// Source is where the capture was read from, used in diagnostics.
	Source string

	HTML string
}

// RawAuthor is the author block of a post as captured.
type RawAuthor struct {
	Name   string
	ID     int64
	Intro  string
	Avatar string
}

// RawPost holds the fields extracted from a captured post before
// normalization.
type RawPost struct {
	ID       int64
	Variant  Variant
	ParentID int64

	Title    string
	Tags     []string
	Upvote   int
	Downvote int
	Follow   int
	Comments int

	// CreatedAt is zero when the capture does not carry a creation date.
	CreatedAt time.Time

	Author *RawAuthor

	// ContentHTML is the inner HTML of the post's content container.
	ContentHTML string
}

// RawThread is a captured thread: its main post and the answers below it
// in document order.
type RawThread struct {
	Layout  Layout
	Main    *RawPost
	Answers []*RawPost
}

// Posts returns the main post followed by the answers.
func (t *RawThread) Posts() []*RawPost {
	posts := make([]*RawPost, 0, len(t.Answers)+1)
	if t.Main != nil {
		posts = append(posts, t.Main)
	}
	return append(posts, t.Answers...)
}

// Extractor pulls raw post fields out of captured HTML.
type Extractor interface {
	// Extract returns the first post of the given variant in the document.
	// Returns EEXTRACT when a required anchor (content container or post
	// identifier) is missing.
	Extract(html string, variant Variant) (*RawPost, error)

	// ExtractThread returns the main post and all answers in the document.
	// threadID is used when the document carries no main post identifier.
	ExtractThread(html string, threadID int64) (*RawThread, error)
}

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms a post's content fragment into Markdown.
	// Blank input converts to the empty string.
	Convert(html string) (string, error)
}

// LayoutDetector identifies the layout of a captured document.
type LayoutDetector interface {
	// Detect returns LayoutUnknown when no known layout matches.
	Detect(html string) Layout
}
