package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/fwojciec/relic"
)

// Compile-time interface verification.
var _ relic.UserService = (*UserService)(nil)

// UserService implements relic.UserService using SQLite.
type UserService struct {
	db *DB
}

// NewUserService creates a new UserService.
func NewUserService(db *DB) *UserService {
	return &UserService{db: db}
}

// FindUserByName retrieves a user by exact display name.
func (s *UserService) FindUserByName(ctx context.Context, name string) (*relic.User, error) {
	var u relic.User
	err := s.db.QueryRowContext(ctx, `
		SELECT user_id, name, intro, avatar
		FROM users
		WHERE name = ?
	`, name).Scan(&u.ID, &u.Name, &u.Intro, &u.Avatar)

	if err == sql.ErrNoRows {
		return nil, relic.Errorf(relic.ENOTFOUND, "user %q not found", name)
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// FindUsers retrieves users matching the filter, ordered by name.
func (s *UserService) FindUsers(ctx context.Context, filter relic.UserFilter) ([]*relic.User, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT user_id, name, intro, avatar FROM users WHERE 1=1")

	if filter.Name != nil {
		query.WriteString(" AND name = ?")
		args = append(args, *filter.Name)
	}

	query.WriteString(" ORDER BY name ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*relic.User
	for rows.Next() {
		var u relic.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Intro, &u.Avatar); err != nil {
			return nil, err
		}
		users = append(users, &u)
	}

	return users, rows.Err()
}

// ImportUsers inserts or replaces users keyed by name in one transaction.
// Users without a name are rejected and nothing is written.
func (s *UserService) ImportUsers(ctx context.Context, users []*relic.User) (int, error) {
	for _, u := range users {
		if strings.TrimSpace(u.Name) == "" {
			return 0, relic.Errorf(relic.EINVALID, "user name required")
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO users (name, user_id, intro, avatar, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			user_id = excluded.user_id,
			intro = excluded.intro,
			avatar = excluded.avatar,
			updated_at = excluded.updated_at
	`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	now := time.Now().UTC().Format(time.RFC3339)
	for _, u := range users {
		if _, err := stmt.ExecContext(ctx, strings.TrimSpace(u.Name), u.ID, u.Intro, u.Avatar, now); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(users), nil
}
