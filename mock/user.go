package mock

import (
	"context"

	"github.com/fwojciec/relic"
)

var (
	_ relic.UserDirectory = (*UserDirectory)(nil)
	_ relic.UserResolver  = (*UserResolver)(nil)
	_ relic.UserService   = (*UserService)(nil)
)

// UserDirectory is a mock implementation of relic.UserDirectory.
type UserDirectory struct {
	FindUserByNameFn func(ctx context.Context, name string) (*relic.User, error)
}

func (d *UserDirectory) FindUserByName(ctx context.Context, name string) (*relic.User, error) {
	return d.FindUserByNameFn(ctx, name)
}

// UserResolver is a mock implementation of relic.UserResolver.
type UserResolver struct {
	ResolveUserFn func(ctx context.Context, author *relic.RawAuthor) (*relic.User, error)
}

func (r *UserResolver) ResolveUser(ctx context.Context, author *relic.RawAuthor) (*relic.User, error) {
	return r.ResolveUserFn(ctx, author)
}

// UserService is a mock implementation of relic.UserService.
type UserService struct {
	FindUserByNameFn func(ctx context.Context, name string) (*relic.User, error)
	FindUsersFn      func(ctx context.Context, filter relic.UserFilter) ([]*relic.User, error)
	ImportUsersFn    func(ctx context.Context, users []*relic.User) (int, error)
}

func (s *UserService) FindUserByName(ctx context.Context, name string) (*relic.User, error) {
	return s.FindUserByNameFn(ctx, name)
}

func (s *UserService) FindUsers(ctx context.Context, filter relic.UserFilter) ([]*relic.User, error) {
	return s.FindUsersFn(ctx, filter)
}

func (s *UserService) ImportUsers(ctx context.Context, users []*relic.User) (int, error) {
	return s.ImportUsersFn(ctx, users)
}
