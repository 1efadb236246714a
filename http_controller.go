package accounts

import (
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
)

// AuthController serves the account and token endpoints.
type AuthController struct {
	Debug  bool
	Logger Logger
	Repo   RepositoryManager
	Tokens TokenService
	Config Config
}

type AuthControllerOption func(*AuthController) *AuthController

func NewAuthController(opts ...AuthControllerOption) *AuthController {
	c := &AuthController{
		Logger: defLogger{},
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Repo == nil {
		panic("Missing RepositoryManager in auth controller...")
	}

	if c.Tokens == nil {
		panic("Missing TokenService in auth controller...")
	}

	return c
}

func WithLogger(logger Logger) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Logger = logger
		return c
	}
}

// RegisterAuthRoutes mounts the endpoints. Paths follow the public API
// contract, irregular plurals and all.
func RegisterAuthRoutes(app fiber.Router, controller *AuthController) {
	protected := ProtectedRoute(
		controller.Config,
		controller.Tokens,
		controller.Repo.Users(),
		controller.Logger,
	)

	app.Post("/token", controller.LoginPost)
	app.Post("/users/regist", controller.RegistrationCreate)
	app.Get("/users/me", protected, controller.Me)
	app.Put("/user/info", protected, controller.UpdateInfo)
	app.Delete("/user", protected, controller.DeleteSelf)
}

// LoginRequest is the form encoded login payload
type LoginRequest struct {
	Username string `form:"username" json:"username"`
	Password string `form:"password" json:"password"`
}

// Validate will run validation rules
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

// LoginPost exchanges a username and password for a bearer token. A
// missing user and a wrong password produce byte-identical responses.
func (a *AuthController) LoginPost(c *fiber.Ctx) error {
	payload := new(LoginRequest)

	if err := c.BodyParser(payload); err != nil {
		a.Logger.Error("login parse payload", "error", err)
		return badRequest(c, "could not parse form body")
	}

	if err := payload.Validate(); err != nil {
		return a.rejectLogin(c)
	}

	user, err := a.Repo.Users().GetByUsername(c.UserContext(), payload.Username)
	if err != nil {
		if !IsNotFoundError(err) {
			a.Logger.Error("login user lookup", "error", err)
			return internalError(c)
		}
		return a.rejectLogin(c)
	}

	if !VerifyPassword(payload.Password, user.PasswordHash) {
		return a.rejectLogin(c)
	}

	ttl := time.Duration(a.tokenExpirationMinutes()) * time.Minute
	token, err := a.Tokens.Generate(user.Username, ttl)
	if err != nil {
		a.Logger.Error("login token generate", "error", err)
		return internalError(c)
	}

	return c.JSON(fiber.Map{
		"access_token": token,
		"token_type":   "bearer",
	})
}

func (a *AuthController) rejectLogin(c *fiber.Ctx) error {
	return respondError(a.Logger, c, ErrCredentialsInvalid)
}

// RegistrationCreatePayload is the registration body
type RegistrationCreatePayload struct {
	Username string `form:"username" json:"username"`
	Email    string `form:"email" json:"email"`
	FullName string `form:"full_name" json:"full_name"`
	Password string `form:"password" json:"password"`
}

// Validate will validate the payload
func (r RegistrationCreatePayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required, validation.Length(1, 50)),
		validation.Field(&r.Email, validation.Length(0, 50), is.Email),
		validation.Field(&r.FullName, validation.Length(0, 50)),
		validation.Field(&r.Password, validation.Required),
	)
}

func (a *AuthController) RegistrationCreate(c *fiber.Ctx) error {
	payload := new(RegistrationCreatePayload)

	if err := c.BodyParser(payload); err != nil {
		a.Logger.Error("register user parse payload", "error", err)
		return badRequest(c, "could not parse request body")
	}

	if err := payload.Validate(); err != nil {
		return badRequest(c, err.Error())
	}

	var created *User

	req := RegisterUserMessage{
		Username: payload.Username,
		Email:    payload.Email,
		FullName: payload.FullName,
		Password: payload.Password,
		OnResponse: func(u *User) {
			created = u
		},
	}

	registerUser := NewRegisterUserHandler(a.Repo)
	if err := registerUser.Execute(c.UserContext(), req); err != nil {
		if IsConflictError(err) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"detail": "username already registered",
			})
		}
		a.Logger.Error("register user execute", "error", err)
		return respondError(a.Logger, c, err)
	}

	if a.Debug {
		fmt.Println("======= USER REGISTERED ======")
		fmt.Println(print.MaybePrettyJSON(created.Public()))
		fmt.Println("==============================")
	}

	return c.JSON(created.Public())
}

// Me returns the public view of the authenticated user.
func (a *AuthController) Me(c *fiber.Ctx) error {
	user, ok := CurrentUser(c)
	if !ok {
		return challenge(c, DefaultAuthScheme)
	}

	return c.JSON(user.Public())
}

// UpdateInfoPayload is the partial self-update body. Absent fields stay
// untouched, which is why everything is a pointer.
type UpdateInfoPayload struct {
	FullName *string `form:"full_name" json:"full_name"`
	Email    *string `form:"email" json:"email"`
	Password *string `form:"password" json:"password"`
}

// Validate will validate the payload
func (r UpdateInfoPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, is.Email),
		validation.Field(&r.FullName, validation.Length(0, 50)),
	)
}

// UpdateInfo applies a partial update to the authenticated user. The
// response echoes the identity resolved during auth, not a re-fetched
// row; a password change therefore never leaks the new hash state.
func (a *AuthController) UpdateInfo(c *fiber.Ctx) error {
	user, ok := CurrentUser(c)
	if !ok {
		return challenge(c, DefaultAuthScheme)
	}

	payload := new(UpdateInfoPayload)

	if err := c.BodyParser(payload); err != nil {
		a.Logger.Error("update user parse payload", "error", err)
		return badRequest(c, "could not parse request body")
	}

	if err := payload.Validate(); err != nil {
		return badRequest(c, err.Error())
	}

	req := UpdateUserMessage{
		Username: user.Username,
		FullName: payload.FullName,
		Email:    payload.Email,
		Password: payload.Password,
	}

	updateUser := NewUpdateUserHandler(a.Repo)
	if err := updateUser.Execute(c.UserContext(), req); err != nil {
		a.Logger.Error("update user execute", "error", err)
		return respondError(a.Logger, c, err)
	}

	return c.JSON(user.Public())
}

// DeleteSelf removes the authenticated user's row and returns its
// last-known view.
func (a *AuthController) DeleteSelf(c *fiber.Ctx) error {
	user, ok := CurrentUser(c)
	if !ok {
		return challenge(c, DefaultAuthScheme)
	}

	deleteUser := NewDeleteUserHandler(a.Repo)
	if err := deleteUser.Execute(c.UserContext(), DeleteUserMessage{Username: user.Username}); err != nil {
		a.Logger.Error("delete user execute", "error", err)
		return respondError(a.Logger, c, err)
	}

	return c.JSON(user.Public())
}

func (a *AuthController) tokenExpirationMinutes() int {
	if a.Config != nil && a.Config.GetTokenExpiration() > 0 {
		return a.Config.GetTokenExpiration()
	}
	return int(DefaultTokenTTL / time.Minute)
}

func badRequest(c *fiber.Ctx, detail string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"detail": detail,
	})
}

func internalError(c *fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"detail": "Internal Server Error",
	})
}

// respondError maps a rich error to its HTTP response without leaking
// internal detail: only auth, conflict, and validation categories keep
// their message.
func respondError(logger Logger, c *fiber.Ctx, err error) error {
	var richErr *errors.Error
	if !errors.As(err, &richErr) {
		logger.Error("unhandled error", "error", err)
		return internalError(c)
	}

	switch richErr.Category {
	case errors.CategoryAuth:
		c.Set(fiber.HeaderWWWAuthenticate, DefaultAuthScheme)
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"detail": richErr.Message,
		})
	case errors.CategoryConflict:
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"detail": richErr.Message,
		})
	case errors.CategoryValidation, errors.CategoryBadInput:
		return badRequest(c, richErr.Message)
	case errors.CategoryNotFound:
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"detail": richErr.Message,
		})
	default:
		logger.Error("internal error", "category", richErr.Category, "error", richErr)
		return internalError(c)
	}
}
