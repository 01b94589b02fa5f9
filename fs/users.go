package fs

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"strconv"
	"strings"

	"github.com/fwojciec/relic"
)

// Ensure UserDirectory implements relic.UserDirectory at compile time.
var _ relic.UserDirectory = (*UserDirectory)(nil)

// UserDirectory is an in-memory user directory keyed by display name.
type UserDirectory struct {
	users map[string]*relic.User
}

// NewUserDirectory builds a directory from users. When two users share a
// name the later one wins.
func NewUserDirectory(users []*relic.User) *UserDirectory {
	m := make(map[string]*relic.User, len(users))
	for _, u := range users {
		m[u.Name] = u
	}
	return &UserDirectory{users: m}
}

// OpenUserDirectory loads the users file at path into a directory.
func OpenUserDirectory(path string) (*UserDirectory, error) {
	users, err := ReadUsers(path)
	if err != nil {
		return nil, err
	}
	return NewUserDirectory(users), nil
}

// FindUserByName returns the user with the exact display name.
func (d *UserDirectory) FindUserByName(_ context.Context, name string) (*relic.User, error) {
	u, ok := d.users[name]
	if !ok {
		return nil, relic.Errorf(relic.ENOTFOUND, "user %q not found", name)
	}
	cp := *u
	return &cp, nil
}

// Len returns the number of users in the directory.
func (d *UserDirectory) Len() int {
	return len(d.users)
}

// userRecord is the users file entry. user_id appears both as a number and
// as a numeric string in existing files.
type userRecord struct {
	ID     flexID `json:"user_id"`
	Name   string `json:"user_name"`
	Intro  string `json:"user_intro"`
	Avatar string `json:"user_avatar"`
}

type flexID int64

func (f *flexID) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*f = 0
		return nil
	}
	s := strings.Trim(string(data), `"`)
	if s == "" {
		*f = 0
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return relic.Errorf(relic.EINVALID, "invalid user_id %s", data)
	}
	*f = flexID(n)
	return nil
}

// ReadUsers reads a users file: a JSON array of user records.
func ReadUsers(path string) ([]*relic.User, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, relic.Errorf(relic.EIO, "failed to read users: %v", err)
	}
	return ParseUsers(data)
}

// ParseUsers decodes a JSON array of user records. Records without a name
// are skipped.
func ParseUsers(data []byte) ([]*relic.User, error) {
	var records []userRecord
	if err := json.Unmarshal(data, &records); err != nil {
		if relic.ErrorCode(err) == relic.EINVALID {
			return nil, err
		}
		return nil, relic.Errorf(relic.EINVALID, "invalid users file: %v", err)
	}

	users := make([]*relic.User, 0, len(records))
	for _, r := range records {
		name := strings.TrimSpace(r.Name)
		if name == "" {
			continue
		}
		users = append(users, &relic.User{
			ID:     int64(r.ID),
			Name:   name,
			Intro:  strings.TrimSpace(r.Intro),
			Avatar: r.Avatar,
		})
	}
	return users, nil
}
