package accounts

import (
	"context"

	"github.com/gofiber/fiber/v2"
)

var userCtxKey = &contextKey{"user"}

type contextKey struct {
	name string
}

// UserContextKey is the fiber Locals key the auth middleware stores the
// resolved user under.
const UserContextKey = "current_user"

// WithContext sets the User in the given context
func WithContext(r context.Context, user *User) context.Context {
	return context.WithValue(r, userCtxKey, user)
}

// FromContext finds the user from the context.
func FromContext(ctx context.Context) (*User, bool) {
	raw, ok := ctx.Value(userCtxKey).(*User)
	return raw, ok
}

// CurrentUser extracts the authenticated user stored by ProtectedRoute.
func CurrentUser(c *fiber.Ctx) (*User, bool) {
	raw := c.Locals(UserContextKey)
	if raw == nil {
		return nil, false
	}
	user, ok := raw.(*User)
	return user, ok
}
