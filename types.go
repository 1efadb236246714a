package accounts

import (
	"context"
	"fmt"
	"time"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// TokenService signs and verifies the bearer tokens handed out at login
type TokenService interface {
	Generate(subject string, ttl time.Duration) (string, error)
	Validate(token string) (string, error)
}

// Users is the persistence boundary for user records
type Users interface {
	GetByUsername(ctx context.Context, username string) (*User, error)
	Create(ctx context.Context, record *User) (*User, error)
	UpdateFields(ctx context.Context, username string, fields UserUpdate) error
	Delete(ctx context.Context, username string) error
	CreateSchema(ctx context.Context) error
}

// PasswordAuthenticator authenticates passwords
type PasswordAuthenticator interface {
	HashPassword(password string) (string, error)
	ComparePasswordAndHash(password, hash string) error
}

// Config holds auth options
type Config interface {
	GetSigningKey() string
	GetSigningMethod() string
	GetAuthScheme() string
	GetTokenExpiration() int
	GetIssuer() string
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] ACCOUNTS "+newline(format), args...)
}

func (d defLogger) Warn(format string, args ...any) {
	fmt.Printf("[WRN] ACCOUNTS "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] ACCOUNTS "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] ACCOUNTS "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
