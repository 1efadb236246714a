package accounts

import (
	"context"
	"time"

	goerrors "github.com/goliatone/go-errors"
)

type DeleteUserMessage struct {
	Username string `json:"username"`
}

func (e DeleteUserMessage) Type() string { return "user.delete" }

type DeleteUserHandler struct {
	repo RepositoryManager
}

func NewDeleteUserHandler(repo RepositoryManager) *DeleteUserHandler {
	return &DeleteUserHandler{repo: repo}
}

func (h *DeleteUserHandler) Execute(ctx context.Context, event DeleteUserMessage) error {
	select {
	case <-ctx.Done():
		return goerrors.Wrap(
			ctx.Err(),
			goerrors.CategoryOperation,
			"context cancelled during user deletion",
		)
	default:
		return h.execute(ctx, event)
	}
}

func (h *DeleteUserHandler) execute(ctx context.Context, event DeleteUserMessage) error {
	ctx, cancel := context.WithTimeout(ctx, time.Second*10)
	defer cancel()

	return h.repo.Users().Delete(ctx, event.Username)
}
