package accounts

import (
	"context"
	"time"

	goerrors "github.com/goliatone/go-errors"
)

// UpdateUserMessage is a partial self-update: nil or empty fields keep
// their stored value, a non-empty Password is re-hashed before
// persisting.
type UpdateUserMessage struct {
	Username string  `json:"username"`
	FullName *string `json:"full_name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

func (e UpdateUserMessage) Type() string { return "user.update" }

type UpdateUserHandler struct {
	repo   RepositoryManager
	hasher PasswordAuthenticator
}

func NewUpdateUserHandler(repo RepositoryManager) *UpdateUserHandler {
	return &UpdateUserHandler{repo: repo, hasher: BcryptAuthenticator{}}
}

func (h *UpdateUserHandler) Execute(ctx context.Context, event UpdateUserMessage) error {
	select {
	case <-ctx.Done():
		return goerrors.Wrap(
			ctx.Err(),
			goerrors.CategoryOperation,
			"context cancelled during user update",
		)
	default:
		return h.execute(ctx, event)
	}
}

func (h *UpdateUserHandler) execute(ctx context.Context, event UpdateUserMessage) error {
	ctx, cancel := context.WithTimeout(ctx, time.Second*10)
	defer cancel()

	// Empty strings count as absent: a field only changes when the
	// payload carries a non-empty value for it.
	fields := UserUpdate{
		FullName: nonEmpty(event.FullName),
		Email:    nonEmpty(event.Email),
	}

	if password := nonEmpty(event.Password); password != nil {
		hash, err := h.hasher.HashPassword(*password)
		if err != nil {
			var richErr *goerrors.Error
			if goerrors.As(err, &richErr) {
				return goerrors.Wrap(richErr, goerrors.CategoryValidation, "invalid password provided")
			}
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to hash password")
		}
		fields.PasswordHash = &hash
	}

	if err := h.repo.Users().UpdateFields(ctx, event.Username, fields); err != nil {
		return err
	}

	return nil
}

func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
