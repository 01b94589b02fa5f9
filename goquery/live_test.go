package goquery_test

import (
	"testing"
	"time"

	"github.com/fwojciec/relic"
	"github.com/fwojciec/relic/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLiveExtractor_ExtractThread(t *testing.T) {
	t.Parallel()

	t.Run("question with answers", func(t *testing.T) {
		t.Parallel()

		e := goquery.NewLiveExtractor()
		thread, err := e.ExtractThread(liveQuestionHTML, 0)
		require.NoError(t, err)

		q := thread.Main
		assert.Equal(t, relic.VariantQuestion, q.Variant)
		assert.Equal(t, int64(100), q.ID)
		assert.Equal(t, "A question", q.Title)
		assert.Equal(t, []string{"politics", "history"}, q.Tags)
		assert.Equal(t, time.Date(2019, 1, 18, 8, 30, 0, 0, time.UTC), q.CreatedAt)
		assert.Equal(t, 12, q.Upvote)
		assert.Equal(t, 3, q.Downvote)
		assert.Equal(t, 5, q.Follow)
		assert.Equal(t, 2, q.Comments)
		assert.Equal(t, "<p>Question body</p>", q.ContentHTML)

		require.Len(t, thread.Answers, 2)

		a := thread.Answers[0]
		assert.Equal(t, relic.VariantAnswer, a.Variant)
		assert.Equal(t, int64(101), a.ID)
		assert.Equal(t, int64(100), a.ParentID)
		assert.Equal(t, &relic.RawAuthor{
			Name:   "alice",
			ID:     7,
			Intro:  "hello",
			Avatar: "/static/upload/avatar/1.jpg",
		}, a.Author)
		assert.Equal(t, time.Date(2019, 1, 19, 0, 0, 0, 0, time.UTC), a.CreatedAt)
		assert.Equal(t, 4, a.Upvote)
		assert.Equal(t, 0, a.Downvote)
		assert.Equal(t, 0, a.Comments)
		assert.Equal(t, "<p>Answer one</p>", a.ContentHTML)

		b := thread.Answers[1]
		assert.Equal(t, int64(102), b.ID)
		assert.Equal(t, &relic.RawAuthor{Name: "bob"}, b.Author)
		assert.True(t, b.CreatedAt.IsZero())
		assert.Equal(t, 0, b.Upvote)
	})

	t.Run("article uses thread ID hint", func(t *testing.T) {
		t.Parallel()

		e := goquery.NewLiveExtractor()
		thread, err := e.ExtractThread(liveArticleHTML, 55)
		require.NoError(t, err)

		a := thread.Main
		assert.Equal(t, relic.VariantArticle, a.Variant)
		assert.Equal(t, int64(55), a.ID)
		assert.Equal(t, "An essay", a.Title)
		assert.Equal(t, []string{"essays"}, a.Tags)
		assert.Equal(t, "dave", a.Author.Name)
		assert.Equal(t, int64(9), a.Author.ID)
		assert.Equal(t, "/static/upload/avatar/9.png", a.Author.Avatar)
		assert.Equal(t, 8, a.Upvote)
		assert.Empty(t, thread.Answers)
	})

	t.Run("missing thread identifier", func(t *testing.T) {
		t.Parallel()

		e := goquery.NewLiveExtractor()
		_, err := e.ExtractThread(liveArticleHTML, 0)

		assert.Equal(t, relic.EEXTRACT, relic.ErrorCode(err))
	})

	t.Run("missing content container", func(t *testing.T) {
		t.Parallel()

		html := `<span itemtype="http://schema.org/Question"><div class="post-body"><div class="post-title"><span>t</span></div></div></span>`
		e := goquery.NewLiveExtractor()
		_, err := e.ExtractThread(html, 1)

		assert.Equal(t, relic.EEXTRACT, relic.ErrorCode(err))
	})

	t.Run("missing main container", func(t *testing.T) {
		t.Parallel()

		e := goquery.NewLiveExtractor()
		_, err := e.ExtractThread(`<div class="post-text-detail">x</div>`, 1)

		assert.Equal(t, relic.EEXTRACT, relic.ErrorCode(err))
	})

	t.Run("answer without identifier", func(t *testing.T) {
		t.Parallel()

		html := `<span itemtype="http://schema.org/Question"><div class="post-body"><div class="post-text-detail">q</div></div></span>
<div class="post-answer-wrap"><div class="post-body-wrap"><a class="aw-user-name">x</a><div class="post-text-detail">a</div></div></div>`
		e := goquery.NewLiveExtractor()
		_, err := e.ExtractThread(html, 1)

		assert.Equal(t, relic.EEXTRACT, relic.ErrorCode(err))
	})

	t.Run("missing optional fields default to zero", func(t *testing.T) {
		t.Parallel()

		html := `<span itemtype="http://schema.org/Question"><div class="post-body"><div class="post-mod-agree"></div><div class="post-text-detail">q</div></div></span>`
		e := goquery.NewLiveExtractor()
		thread, err := e.ExtractThread(html, 1)
		require.NoError(t, err)

		q := thread.Main
		assert.Equal(t, 0, q.Follow)
		assert.Equal(t, 0, q.Upvote)
		assert.Equal(t, 0, q.Comments)
		assert.Equal(t, []string{}, q.Tags)
		assert.True(t, q.CreatedAt.IsZero())
	})
}

func TestLiveExtractor_Extract(t *testing.T) {
	t.Parallel()

	e := goquery.NewLiveExtractor()

	t.Run("first answer", func(t *testing.T) {
		t.Parallel()

		a, err := e.Extract(liveQuestionHTML, relic.VariantAnswer)

		require.NoError(t, err)
		assert.Equal(t, int64(101), a.ID)
	})

	t.Run("variant not present", func(t *testing.T) {
		t.Parallel()

		_, err := e.Extract(liveQuestionHTML, relic.VariantArticle)

		assert.Equal(t, relic.EEXTRACT, relic.ErrorCode(err))
	})
}
