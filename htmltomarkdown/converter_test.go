package htmltomarkdown_test

import (
	"testing"

	"github.com/fwojciec/relic"
	"github.com/fwojciec/relic/htmltomarkdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Converter implements relic.Converter at compile time.
var _ relic.Converter = (*htmltomarkdown.Converter)(nil)

func TestConverter_Convert(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "paragraph",
			html: `<p>Hello, world!</p>`,
			want: "Hello, world!",
		},
		{
			name: "trims every line before converting",
			html: "   <p>first</p>\n\t\t<p>second</p>   ",
			want: "first\n\nsecond",
		},
		{
			name: "unwraps bare div and span",
			html: `<div><span>plain</span> text</div>`,
			want: "plain text",
		},
		{
			name: "unwraps wrappers whose attributes are all empty",
			html: `<div class="" id=""><span style="">plain</span></div>`,
			want: "plain",
		},
		{
			name: "keeps styled block wrappers as HTML",
			html: `<div style="color:red">warning</div>`,
			want: `<div style="color:red">warning</div>`,
		},
		{
			name: "keeps inline elements without markdown equivalent",
			html: `<p>a <u>b</u> c</p>`,
			want: "a <u>b</u> c",
		},
		{
			name: "keeps embedded media",
			html: `<iframe src="https://video.example.com/1"></iframe>`,
			want: `<iframe src="https://video.example.com/1"></iframe>`,
		},
		{
			name: "repairs proxied links",
			html: `<p><a href="https://archive.ph/o/AbCd/https://example.com/p/1">thread</a></p>`,
			want: "[thread](https://example.com/p/1)",
		},
		{
			name: "leaves direct links alone",
			html: `<p><a href="https://example.com/p/1">thread</a></p>`,
			want: "[thread](https://example.com/p/1)",
		},
		{
			name: "horizontal rule",
			html: `<p>a</p><hr><p>b</p>`,
			want: "a\n\n---\n\nb",
		},
		{
			name: "emphasis",
			html: `<p><em>soft</em> and <strong>loud</strong></p>`,
			want: "*soft* and **loud**",
		},
		{
			name: "strikethrough",
			html: `<p><del>gone</del></p>`,
			want: "~~gone~~",
		},
		{
			name: "fenced code block",
			html: `<pre><code>x := 1</code></pre>`,
			want: "```\nx := 1\n```",
		},
		{
			name: "image",
			html: `<img src="/static/upload/a.png" alt="pic">`,
			want: "![pic](/static/upload/a.png)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			conv := htmltomarkdown.NewConverter()
			md, err := conv.Convert(tt.html)

			require.NoError(t, err)
			assert.Equal(t, tt.want, md)
		})
	}
}

func TestConverter_Convert_Blank(t *testing.T) {
	t.Parallel()

	conv := htmltomarkdown.NewConverter()

	for _, html := range []string{"", "   ", "\n\t\n"} {
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Empty(t, md)
	}
}

func TestConverter_Convert_Deterministic(t *testing.T) {
	t.Parallel()

	html := `<div><p>Intro with <a href="http://proxy.example/http://example.com">link</a></p><ul><li>one</li><li>two</li></ul><div style="x">raw</div></div>`
	conv := htmltomarkdown.NewConverter()

	first, err := conv.Convert(html)
	require.NoError(t, err)
	second, err := conv.Convert(html)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Contains(t, first, "[link](http://example.com)")
	assert.Contains(t, first, "- one\n- two")
}

func TestConverter_WithUnwrapAll(t *testing.T) {
	t.Parallel()

	conv := htmltomarkdown.NewConverter(htmltomarkdown.WithUnwrapAll())
	md, err := conv.Convert(`<div style="margin:0"><span style="color:#333">archived</span> text</div>`)

	require.NoError(t, err)
	assert.Equal(t, "archived text", md)
}

func TestRepairLink(t *testing.T) {
	t.Parallel()

	tests := []struct {
		href string
		want string
	}{
		{"https://example.com/p/1", "https://example.com/p/1"},
		{"https://archive.ph/o/x/https://example.com/p/1", "https://example.com/p/1"},
		{"http://a.example/http://b.example/https://c.example/x", "https://c.example/x"},
		{"/relative/path", "/relative/path"},
	}

	for _, tt := range tests {
		t.Run(tt.href, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, htmltomarkdown.RepairLink(tt.href))
		})
	}
}
