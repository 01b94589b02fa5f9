package relic

import (
	"context"
	"strings"
)

// User is a forum member. Name is the natural key.
type User struct {
	ID     int64  `json:"user_id"`
	Name   string `json:"user_name"`
	Intro  string `json:"user_intro"`
	Avatar string `json:"user_avatar"`
}

// Ephemeral reports whether the user was recovered only from the current
// document and has no directory record.
func (u *User) Ephemeral() bool {
	return u.ID == 0
}

// UserDirectory is the authoritative list of known users.
type UserDirectory interface {
	// FindUserByName returns the user with the given display name.
	// Returns ENOTFOUND if no such user exists.
	FindUserByName(ctx context.Context, name string) (*User, error)
}

// UserResolver maps a captured author block to a User.
type UserResolver interface {
	ResolveUser(ctx context.Context, author *RawAuthor) (*User, error)
}

// Resolver resolves authors against a UserDirectory.
//
// A directory hit returns the directory record. On a miss the user is
// ephemeral: it carries the captured name and intro, and its ID and avatar
// stay empty.
type Resolver struct {
	Directory UserDirectory
}

var _ UserResolver = (*Resolver)(nil)

// NewResolver creates a Resolver backed by dir.
func NewResolver(dir UserDirectory) *Resolver {
	return &Resolver{Directory: dir}
}

// ResolveUser implements UserResolver.
func (r *Resolver) ResolveUser(ctx context.Context, author *RawAuthor) (*User, error) {
	if author == nil {
		return nil, Errorf(EINVALID, "author required")
	}
	name := strings.TrimSpace(author.Name)
	if name == "" {
		return nil, Errorf(EINVALID, "author name required")
	}

	if r.Directory != nil {
		u, err := r.Directory.FindUserByName(ctx, name)
		if err == nil {
			return u, nil
		}
		if ErrorCode(err) != ENOTFOUND {
			return nil, err
		}
	}

	return &User{
		Name:  name,
		Intro: strings.TrimSpace(author.Intro),
	}, nil
}

// UserFilter represents a filter passed to FindUsers.
type UserFilter struct {
	Name *string

	Offset int
	Limit  int
}

// UserService manages a persisted user directory.
type UserService interface {
	UserDirectory

	// FindUsers retrieves users matching the filter, ordered by name.
	FindUsers(ctx context.Context, filter UserFilter) ([]*User, error)

	// ImportUsers inserts or replaces users keyed by name and returns
	// the number of users written.
	ImportUsers(ctx context.Context, users []*User) (int, error)
}
