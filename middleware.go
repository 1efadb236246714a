package accounts

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// DefaultAuthScheme is the Authorization header scheme expected on
// protected routes.
const DefaultAuthScheme = "Bearer"

// ProtectedRoute guards a route group with bearer-token authentication.
// Missing header, malformed token, bad signature, expiry, and unknown
// subject all collapse into the same 401 challenge response, so the
// middleware never reveals why a credential was rejected.
func ProtectedRoute(cfg Config, tokens TokenService, users Users, logger Logger) fiber.Handler {
	if logger == nil {
		logger = defLogger{}
	}

	scheme := DefaultAuthScheme
	if cfg != nil && cfg.GetAuthScheme() != "" {
		scheme = cfg.GetAuthScheme()
	}

	return func(c *fiber.Ctx) error {
		raw, err := extractBearerToken(c.Get(fiber.HeaderAuthorization), scheme)
		if err != nil {
			return challenge(c, scheme)
		}

		subject, err := tokens.Validate(raw)
		if err != nil {
			logger.Debug("ProtectedRoute token rejected", "error", err)
			return challenge(c, scheme)
		}

		user, err := users.GetByUsername(c.UserContext(), subject)
		if err != nil {
			logger.Debug("ProtectedRoute subject not resolvable", "subject", subject)
			return challenge(c, scheme)
		}

		c.Locals(UserContextKey, user)
		c.SetUserContext(WithContext(c.UserContext(), user))

		return c.Next()
	}
}

func extractBearerToken(header, scheme string) (string, error) {
	if header == "" {
		return "", ErrCredentialsUnverifiable
	}

	prefix := scheme + " "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", ErrCredentialsUnverifiable
	}

	token := strings.TrimSpace(header[len(prefix):])
	if token == "" {
		return "", ErrCredentialsUnverifiable
	}

	return token, nil
}

func challenge(c *fiber.Ctx, scheme string) error {
	c.Set(fiber.HeaderWWWAuthenticate, scheme)
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"detail": MsgCouldNotValidate,
	})
}
