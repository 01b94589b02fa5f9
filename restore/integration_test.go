package restore_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/relic"
	"github.com/fwojciec/relic/fs"
	"github.com/fwojciec/relic/goquery"
	"github.com/fwojciec/relic/htmltomarkdown"
	"github.com/fwojciec/relic/restore"
	"github.com/fwojciec/relic/timeline"
	"github.com/fwojciec/relic/yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const liveThread = `<!DOCTYPE html>
<html>
<head><link rel="canonical" href="https://example.com/p/100"></head>
<body>
<span itemscope itemtype="http://schema.org/Question">
<div class="post-body">
<div class="tags"><a class="tag">history</a></div>
<div class="post-title"><span>A question</span></div>
<span itemprop="dateCreated" content="2019-01-18T16:30:00+08:00"></span>
<div class="post-text-detail"><p>Question <b>body</b></p></div>
<span class="upvote"><span class="count-wrap">12</span></span>
<div class="post-mod-agree">12人赞同 5人关注</div>
<span class="view-comment" count="2"></span>
</div>
</span>
<div class="post-answer-wrap">
<div class="post-body-wrap" data-mainpost="101">
<span class="post-user-name"><a class="aw-user-name">alice</a></span>
<span itemprop="dateCreated" content="2019-01-19T00:00:00Z"></span>
<div class="post-text-detail-column"><p>Answer one</p></div>
</div>
<div class="post-body-wrap" data-mainpost="102">
<span class="post-user-name"><a class="aw-user-name">bob</a></span>
<span class="post-user-intro" title=" just bob "></span>
<div class="post-text-detail"><p>Answer two</p></div>
</div>
</div>
</body>
</html>`

func seedCorpus(t *testing.T, root string) {
	t.Helper()
	for name, date := range map[string]string{
		"110.md": "2019-01-20T12:00:00.000Z",
		"111.md": "2019-01-21T00:00:00.000Z",
	} {
		path := filepath.Join(root, "_p", name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte("---\ndate: '"+date+"'\n---\n\nx\n"), 0644))
	}
}

func runLiveThread(t *testing.T, policy timeline.NeighborPolicy) string {
	t.Helper()

	root := t.TempDir()
	seedCorpus(t, root)

	scan, err := fs.ScanDates(context.Background(), root, yaml.ParseDate)
	require.NoError(t, err)

	r := &restore.Restorer{
		Extractor: goquery.NewDefaultRegistry(),
		Converter: htmltomarkdown.NewConverter(),
		Users: relic.NewResolver(fs.NewUserDirectory([]*relic.User{
			{ID: 7, Name: "alice", Avatar: "/static/upload/avatar/7.jpg"},
		})),
		Timeline: timeline.Load(scan.Dates, timeline.WithPolicy(policy)),
		Emitter:  fs.NewWriter(root),
	}

	result, err := r.Restore(context.Background(), []*relic.Capture{{ThreadID: 100, HTML: liveThread}}, nil)
	require.NoError(t, err)
	require.Empty(t, result.Failures)
	require.Len(t, result.Emitted, 3)
	return root
}

func readRecord(t *testing.T, root, path string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(path)))
	require.NoError(t, err)
	return string(data)
}

func TestRestore_LiveThread(t *testing.T) {
	t.Parallel()

	t.Run("writes normalized records", func(t *testing.T) {
		t.Parallel()

		root := runLiveThread(t, timeline.OffsetNeighbors)

		q := readRecord(t, root, "/_p/100.md")
		assert.Contains(t, q, "title: A question\n")
		assert.Contains(t, q, "date: '2019-01-18T08:30:00.000Z'\n")
		assert.Contains(t, q, "upvote: 12\n")
		assert.Contains(t, q, "follow: 5\n")
		assert.Contains(t, q, "\n---\n\nQuestion **body**\n")

		a := readRecord(t, root, "/_answers/100/101.md")
		assert.Contains(t, a, "user_id: 7\n")
		assert.Contains(t, a, "user_name: alice\n")
		assert.Contains(t, a, "user_avatar: /static/upload/avatar/7.jpg\n")
		assert.Contains(t, a, "date: '2019-01-19T00:00:00.000Z'\n")

		b := readRecord(t, root, "/_answers/100/102.md")
		assert.NotContains(t, b, "user_id")
		assert.Contains(t, b, "user_name: bob\n")
		assert.Contains(t, b, "user_intro: just bob\n")
	})

	t.Run("offset neighbours skip the adjacent upper record", func(t *testing.T) {
		t.Parallel()

		root := runLiveThread(t, timeline.OffsetNeighbors)

		date, err := yaml.ParseDate([]byte(readRecord(t, root, "/_answers/100/102.md")))
		require.NoError(t, err)
		assert.Equal(t, "2019-01-20T00:00:00.000Z", date.Format(yaml.DateLayout))
	})

	t.Run("adjacent neighbours use the nearest upper record", func(t *testing.T) {
		t.Parallel()

		root := runLiveThread(t, timeline.AdjacentNeighbors)

		date, err := yaml.ParseDate([]byte(readRecord(t, root, "/_answers/100/102.md")))
		require.NoError(t, err)
		assert.Equal(t, "2019-01-19T18:00:00.000Z", date.Format(yaml.DateLayout))
	})

	t.Run("rerun reproduces the same files", func(t *testing.T) {
		t.Parallel()

		first := runLiveThread(t, timeline.OffsetNeighbors)
		second := runLiveThread(t, timeline.OffsetNeighbors)

		for _, p := range []string{"/_p/100.md", "/_answers/100/101.md", "/_answers/100/102.md"} {
			assert.Equal(t, readRecord(t, first, p), readRecord(t, second, p), p)
		}
	})
}
