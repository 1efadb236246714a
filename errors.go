package accounts

import "github.com/goliatone/go-errors"

const (
	TextCodeCredentialsInvalid      = "credentials_invalid"
	TextCodeCredentialsUnverifiable = "credentials_unverifiable"
	TextCodeUsernameTaken           = "username_taken"
	TextCodeUserNotFound            = "user_not_found"
)

// MsgIncorrectCredentials is the fixed login failure detail. Unknown
// username and wrong password intentionally produce the same message.
const MsgIncorrectCredentials = "Incorrect username or password"

// MsgCouldNotValidate is the fixed detail for every token validation
// failure on protected routes.
const MsgCouldNotValidate = "Could not validate credentials"

// ErrCredentialsInvalid is returned when a login attempt fails.
var ErrCredentialsInvalid = errors.New(MsgIncorrectCredentials, errors.CategoryAuth).
	WithTextCode(TextCodeCredentialsInvalid).
	WithCode(errors.CodeUnauthorized)

// ErrCredentialsUnverifiable is returned when a bearer token cannot be
// validated, whatever the cause.
var ErrCredentialsUnverifiable = errors.New(MsgCouldNotValidate, errors.CategoryAuth).
	WithTextCode(TextCodeCredentialsUnverifiable).
	WithCode(errors.CodeUnauthorized)

// ErrUsernameTaken is returned when registration hits the username
// uniqueness constraint.
var ErrUsernameTaken = errors.New("username already registered", errors.CategoryConflict).
	WithTextCode(TextCodeUsernameTaken).
	WithCode(errors.CodeConflict)

// ErrUserNotFound is returned when a user lookup comes back empty.
var ErrUserNotFound = errors.New("user not found", errors.CategoryNotFound).
	WithTextCode(TextCodeUserNotFound).
	WithCode(errors.CodeNotFound)

// ErrNoEmptyString rejects empty passwords before hashing
var ErrNoEmptyString = errors.New("value must not be empty", errors.CategoryBadInput).
	WithCode(errors.CodeBadRequest)

// ErrMismatchedHashAndPassword is the sentinel for a failed password check
var ErrMismatchedHashAndPassword = errors.New(MsgIncorrectCredentials, errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized)

// IsConflictError reports whether err carries the conflict category.
func IsConflictError(err error) bool {
	var richErr *errors.Error
	if !errors.As(err, &richErr) {
		return false
	}
	return richErr.Category == errors.CategoryConflict
}

// IsNotFoundError reports whether err carries the not-found category.
func IsNotFoundError(err error) bool {
	var richErr *errors.Error
	if !errors.As(err, &richErr) {
		return false
	}
	return richErr.Category == errors.CategoryNotFound
}
