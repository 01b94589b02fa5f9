// Package htmltomarkdown implements relic.Converter using html-to-markdown.
package htmltomarkdown

import (
	"regexp"
	"strings"

	"github.com/JohannesKaufmann/dom"
	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/strikethrough"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/relic"
	"golang.org/x/net/html"
)

// Ensure Converter implements relic.Converter at compile time.
var _ relic.Converter = (*Converter)(nil)

// proxiedLink matches a link wrapped by an archive or redirect host. The
// last embedded scheme starts the original URL.
var proxiedLink = regexp.MustCompile(`^https?://.+(https?://)`)

// structural elements have no markup of their own; their children are
// rendered in place by the library's fallback.
var structural = map[string]struct{}{
	"#document": {}, "html": {}, "head": {}, "body": {},
	"p": {}, "li": {},
	"thead": {}, "tbody": {}, "tfoot": {}, "tr": {}, "td": {}, "th": {}, "caption": {},
}

// Option configures a Converter.
type Option func(*Converter)

// WithUnwrapAll unwraps every div and span regardless of attributes.
// Archived snapshots inline styles on every element, so their wrappers
// carry no meaning.
func WithUnwrapAll() Option {
	return func(c *Converter) {
		c.unwrapAll = true
	}
}

// Converter wraps html-to-markdown to convert post content to Markdown.
//
// Elements with no Markdown equivalent are kept as raw HTML so that no
// content is lost. Empty div and span wrappers are dropped.
type Converter struct {
	conv      *converter.Converter
	unwrapAll bool
}

// NewConverter creates a new Converter.
func NewConverter(opts ...Option) *Converter {
	c := &Converter{}
	for _, opt := range opts {
		opt(c)
	}

	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(
				commonmark.WithHorizontalRule("---"),
				commonmark.WithEmDelimiter("*"),
				commonmark.WithCodeBlockFence("```"),
				commonmark.WithListEndComment(false),
			),
			strikethrough.NewStrikethroughPlugin(),
			table.NewTablePlugin(),
		),
	)

	// Embedded media is content, keep it instead of dropping it.
	conv.Register.TagType("iframe", converter.TagTypeBlock, converter.PriorityEarly)

	conv.Register.PreRenderer(repairLinks, converter.PriorityEarly)
	conv.Register.Renderer(c.renderWrapper, converter.PriorityEarly)
	conv.Register.Renderer(renderPassthrough, converter.PriorityLate)

	c.conv = conv
	return c
}

// Convert transforms a content fragment into Markdown. Each line of the
// fragment is trimmed first; blank input yields an empty string.
func (c *Converter) Convert(fragment string) (string, error) {
	lines := strings.Split(fragment, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	fragment = strings.Join(lines, "\n")

	if strings.TrimSpace(fragment) == "" {
		return "", nil
	}

	result, err := c.conv.ConvertString(fragment)
	if err != nil {
		return "", relic.Errorf(relic.EINVALID, "failed to convert HTML: %v", err)
	}

	return result, nil
}

// RepairLink strips a proxy or archive prefix from a link target.
func RepairLink(href string) string {
	return proxiedLink.ReplaceAllString(href, "$1")
}

func repairLinks(_ converter.Context, doc *html.Node) {
	for _, n := range dom.FindAllNodes(doc, func(n *html.Node) bool {
		return dom.NodeName(n) == "a"
	}) {
		for i, attr := range n.Attr {
			if attr.Key == "href" && attr.Val != "" {
				n.Attr[i].Val = RepairLink(attr.Val)
			}
		}
	}
}

// renderWrapper renders the children of div and span elements in place
// when the element carries no attribute values.
func (c *Converter) renderWrapper(ctx converter.Context, w converter.Writer, n *html.Node) converter.RenderStatus {
	name := dom.NodeName(n)
	if name != "div" && name != "span" {
		return converter.RenderTryNext
	}
	if !c.unwrapAll && hasAttributeValues(n) {
		return converter.RenderTryNext
	}

	ctx.RenderChildNodes(ctx, w, n)
	return converter.RenderSuccess
}

// renderPassthrough emits elements that nothing else rendered as raw HTML,
// surrounded by blank lines for block elements.
func renderPassthrough(ctx converter.Context, w converter.Writer, n *html.Node) converter.RenderStatus {
	if n.Type != html.ElementNode {
		return converter.RenderTryNext
	}
	if _, ok := structural[dom.NodeName(n)]; ok {
		return converter.RenderTryNext
	}
	return base.RenderAsHTML(ctx, w, n)
}

func hasAttributeValues(n *html.Node) bool {
	for _, attr := range n.Attr {
		if attr.Val != "" {
			return true
		}
	}
	return false
}
