package relic_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/relic"
	"github.com/fwojciec/relic/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolver_ResolveUser(t *testing.T) {
	t.Parallel()

	known := &relic.User{ID: 7, Name: "alice", Intro: "directory intro", Avatar: "/static/upload/a.png"}
	dir := &mock.UserDirectory{
		FindUserByNameFn: func(_ context.Context, name string) (*relic.User, error) {
			if name == "alice" {
				return known, nil
			}
			return nil, relic.Errorf(relic.ENOTFOUND, "user %q not found", name)
		},
	}

	t.Run("directory hit returns directory record", func(t *testing.T) {
		t.Parallel()

		r := relic.NewResolver(dir)
		u, err := r.ResolveUser(context.Background(), &relic.RawAuthor{Name: "alice", Intro: "local intro"})

		require.NoError(t, err)
		assert.Equal(t, known, u)
		assert.False(t, u.Ephemeral())
	})

	t.Run("miss returns ephemeral user", func(t *testing.T) {
		t.Parallel()

		r := relic.NewResolver(dir)
		u, err := r.ResolveUser(context.Background(), &relic.RawAuthor{
			Name:   " bob ",
			Intro:  " local intro ",
			ID:     99,
			Avatar: "/static/upload/b.png",
		})

		require.NoError(t, err)
		assert.Equal(t, &relic.User{Name: "bob", Intro: "local intro"}, u)
		assert.True(t, u.Ephemeral())
	})

	t.Run("directory failure propagates", func(t *testing.T) {
		t.Parallel()

		r := relic.NewResolver(&mock.UserDirectory{
			FindUserByNameFn: func(context.Context, string) (*relic.User, error) {
				return nil, errors.New("db closed")
			},
		})
		_, err := r.ResolveUser(context.Background(), &relic.RawAuthor{Name: "alice"})

		require.Error(t, err)
	})

	t.Run("no directory", func(t *testing.T) {
		t.Parallel()

		r := relic.NewResolver(nil)
		u, err := r.ResolveUser(context.Background(), &relic.RawAuthor{Name: "alice"})

		require.NoError(t, err)
		assert.True(t, u.Ephemeral())
	})

	t.Run("empty name", func(t *testing.T) {
		t.Parallel()

		r := relic.NewResolver(dir)
		_, err := r.ResolveUser(context.Background(), &relic.RawAuthor{Name: "  "})

		assert.Equal(t, relic.EINVALID, relic.ErrorCode(err))
	})
}
