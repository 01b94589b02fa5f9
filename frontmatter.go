package relic

import "time"

// Field is a single front matter entry.
type Field struct {
	Key   string
	Value any
}

// FrontMatter is an ordered list of front matter entries. Key order is part
// of the corpus format.
type FrontMatter []Field

// Get returns the value stored under key.
func (fm FrontMatter) Get(key string) (any, bool) {
	for _, f := range fm {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// Keys returns the keys in order.
func (fm FrontMatter) Keys() []string {
	keys := make([]string, len(fm))
	for i, f := range fm {
		keys[i] = f.Key
	}
	return keys
}

// BuildFrontMatter returns the front matter of a post. Optional user fields
// are omitted when empty rather than written as null.
//
//	question: title, date, tags, upvote, downvote, follow, comments
//	answer:   date, user_id?, user_name, user_intro?, user_avatar?, upvote, downvote, comments
//	article:  title, date, user_id?, user_name, user_avatar?, tags, upvote, downvote, comments
func BuildFrontMatter(p *Post) FrontMatter {
	var fm FrontMatter
	add := func(key string, value any) { fm = append(fm, Field{Key: key, Value: value}) }
	date := p.Date.UTC().Truncate(time.Millisecond)
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}

	switch p.Variant {
	case VariantQuestion:
		add("title", p.Title)
		add("date", date)
		add("tags", tags)
		add("upvote", p.Upvote)
		add("downvote", p.Downvote)
		add("follow", p.Follow)
	case VariantAnswer:
		add("date", date)
		fm = append(fm, userFields(p.User, true)...)
		add("upvote", p.Upvote)
		add("downvote", p.Downvote)
	case VariantArticle:
		add("title", p.Title)
		add("date", date)
		fm = append(fm, userFields(p.User, false)...)
		add("tags", tags)
		add("upvote", p.Upvote)
		add("downvote", p.Downvote)
	}
	add("comments", Comments(p.Comments))
	return fm
}

func userFields(u *User, withIntro bool) FrontMatter {
	if u == nil {
		return nil
	}
	var fm FrontMatter
	if u.ID != 0 {
		fm = append(fm, Field{Key: "user_id", Value: u.ID})
	}
	fm = append(fm, Field{Key: "user_name", Value: u.Name})
	if withIntro && u.Intro != "" {
		fm = append(fm, Field{Key: "user_intro", Value: u.Intro})
	}
	if u.Avatar != "" {
		fm = append(fm, Field{Key: "user_avatar", Value: u.Avatar})
	}
	return fm
}
