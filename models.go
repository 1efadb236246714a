package accounts

import (
	"github.com/uptrace/bun"
)

// User is the user model
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`
	ID            int64  `bun:"id,pk,autoincrement" json:"id,omitempty"`
	Username      string `bun:"username,notnull,unique" json:"username"`
	Email         string `bun:"email" json:"email,omitempty"`
	FullName      string `bun:"full_name" json:"full_name,omitempty"`
	Disabled      bool   `bun:"disabled,notnull,default:false" json:"disabled"`
	PasswordHash  string `bun:"password_hash" json:"-"`
}

// PublicUser is the serializable view of a user. The password hash has
// no representation here at all.
type PublicUser struct {
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	FullName string `json:"full_name,omitempty"`
	Disabled bool   `json:"disabled"`
}

// Public returns the view of the user safe to hand back to clients.
func (u *User) Public() PublicUser {
	return PublicUser{
		Username: u.Username,
		Email:    u.Email,
		FullName: u.FullName,
		Disabled: u.Disabled,
	}
}

// UserUpdate carries a partial profile mutation. Nil fields are left
// untouched; PasswordHash is expected to be hashed already.
type UserUpdate struct {
	FullName     *string
	Email        *string
	PasswordHash *string
}

// IsZero reports whether the update would change nothing.
func (u UserUpdate) IsZero() bool {
	return u.FullName == nil && u.Email == nil && u.PasswordHash == nil
}
