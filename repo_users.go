package accounts

import (
	"context"
	"database/sql"
	"strings"

	"github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
)

type users struct {
	db *bun.DB
}

var _ Users = (*users)(nil)

// NewUsersRepository returns the bun backed Users store. Every method
// is a single statement running in its own implicit transaction.
func NewUsersRepository(db *bun.DB) Users {
	return &users{db: db}
}

// CreateSchema bootstraps the users table.
func (a *users) CreateSchema(ctx context.Context) error {
	_, err := a.db.NewCreateTable().
		Model((*User)(nil)).
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to create users table")
	}
	return nil
}

func (a *users) GetByUsername(ctx context.Context, username string) (*User, error) {
	record := &User{}

	err := a.db.NewSelect().
		Model(record).
		Where("?TableAlias.username = ?", username).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "user lookup failed")
	}

	return record, nil
}

func (a *users) Create(ctx context.Context, record *User) (*User, error) {
	_, err := a.db.NewInsert().
		Model(record).
		Exec(ctx)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrUsernameTaken
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "user insert failed")
	}

	// Re-read the row so callers get what the store persisted, defaults
	// included, not the in-memory record they handed in.
	return a.GetByUsername(ctx, record.Username)
}

func (a *users) UpdateFields(ctx context.Context, username string, fields UserUpdate) error {
	if fields.IsZero() {
		return nil
	}

	q := a.db.NewUpdate().Model((*User)(nil))

	if fields.FullName != nil {
		q.Set("full_name = ?", *fields.FullName)
	}
	if fields.Email != nil {
		q.Set("email = ?", *fields.Email)
	}
	if fields.PasswordHash != nil {
		q.Set("password_hash = ?", *fields.PasswordHash)
	}

	// Zero matched rows is not an error: the mutation targets "self"
	// and a vanished row just makes this a no-op.
	_, err := q.Where("username = ?", username).Exec(ctx)
	if err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "user update failed")
	}

	return nil
}

func (a *users) Delete(ctx context.Context, username string) error {
	_, err := a.db.NewDelete().
		Model((*User)(nil)).
		Where("username = ?", username).
		Exec(ctx)
	if err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "user delete failed")
	}
	return nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint")
}
