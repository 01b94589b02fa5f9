package relic_test

import (
	"testing"
	"time"

	"github.com/fwojciec/relic"
	"github.com/stretchr/testify/assert"
)

var created = time.Date(2019, 1, 18, 8, 30, 0, 0, time.UTC)

func TestBuildFrontMatter_Question(t *testing.T) {
	t.Parallel()

	fm := relic.BuildFrontMatter(&relic.Post{
		ID:       1,
		Variant:  relic.VariantQuestion,
		Title:    "Hello",
		Tags:     []string{"a", "b"},
		Upvote:   5,
		Downvote: 1,
		Follow:   2,
		Comments: 3,
		Date:     created,
	})

	assert.Equal(t, []string{"title", "date", "tags", "upvote", "downvote", "follow", "comments"}, fm.Keys())
	v, _ := fm.Get("comments")
	assert.Equal(t, []string{"", "", ""}, v)
	v, _ = fm.Get("date")
	assert.Equal(t, created, v)
}

func TestBuildFrontMatter_Answer(t *testing.T) {
	t.Parallel()

	t.Run("directory user", func(t *testing.T) {
		t.Parallel()

		fm := relic.BuildFrontMatter(&relic.Post{
			ID:       2,
			ParentID: 1,
			Variant:  relic.VariantAnswer,
			User:     &relic.User{ID: 9, Name: "bob", Intro: "hi", Avatar: "/static/upload/a.jpg"},
			Date:     created,
		})

		assert.Equal(t, []string{"date", "user_id", "user_name", "user_intro", "user_avatar", "upvote", "downvote", "comments"}, fm.Keys())
	})

	t.Run("ephemeral user omits absent fields", func(t *testing.T) {
		t.Parallel()

		fm := relic.BuildFrontMatter(&relic.Post{
			ID:       2,
			ParentID: 1,
			Variant:  relic.VariantAnswer,
			User:     &relic.User{Name: "carol"},
			Date:     created,
		})

		assert.Equal(t, []string{"date", "user_name", "upvote", "downvote", "comments"}, fm.Keys())
		_, ok := fm.Get("user_id")
		assert.False(t, ok)
	})
}

func TestBuildFrontMatter_Article(t *testing.T) {
	t.Parallel()

	fm := relic.BuildFrontMatter(&relic.Post{
		ID:      3,
		Variant: relic.VariantArticle,
		Title:   "Essay",
		User:    &relic.User{ID: 9, Name: "bob", Intro: "not written", Avatar: "/static/upload/a.jpg"},
		Date:    created,
	})

	assert.Equal(t, []string{"title", "date", "user_id", "user_name", "user_avatar", "tags", "upvote", "downvote", "comments"}, fm.Keys())
	v, _ := fm.Get("tags")
	assert.Equal(t, []string{}, v)
}

func TestBuildFrontMatter_DateIsUTC(t *testing.T) {
	t.Parallel()

	local := time.Date(2019, 1, 18, 16, 30, 0, 0, time.FixedZone("CST", 8*3600))
	fm := relic.BuildFrontMatter(&relic.Post{ID: 1, Variant: relic.VariantQuestion, Date: local})

	v, _ := fm.Get("date")
	assert.Equal(t, time.UTC, v.(time.Time).Location())
	assert.True(t, created.Equal(v.(time.Time)))
}
