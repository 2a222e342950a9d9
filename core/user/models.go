package user

import (
	"time"

	"github.com/saraswati/sdms/core"
)

// Roles
const (
	RoleAdmin   = "admin"
	RoleStudent = "student"
)

type User struct {
	ID           string `db:"user_id" json:"user_id"`
	Name         string `db:"name" json:"name"`
	Role         string `db:"role" json:"role"`
	PasswordHash string `db:"password_hash" json:"-"`
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Session is what a successful login hands to the workspace.
type Session struct {
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	StartedAt time.Time `json:"started_at"`
}

func (s Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}

// NewUser contains information needed to register a new User.
type NewUser struct {
	UserID          string `json:"user_id" validate:"required,notblank"`
	Name            string `json:"name" validate:"required,notblank"`
	Password        string `json:"password" validate:"required"`
	PasswordConfirm string `json:"password_confirm" validate:"required,eqfield=Password"`
}

func (nu *NewUser) Validate() error {
	nu.UserID = core.CleanString(nu.UserID)
	nu.Name = core.CleanString(nu.Name)
	return core.Validate.Struct(nu)
}

type ChangePassword struct {
	UserID             string `json:"user_id" validate:"required"`
	OldPassword        string `json:"old_password" validate:"required"`
	NewPassword        string `json:"new_password" validate:"required"`
	NewPasswordConfirm string `json:"new_password_confirm" validate:"required,eqfield=NewPassword"`
}

func (cp *ChangePassword) Validate() error {
	cp.UserID = core.CleanString(cp.UserID)
	return core.Validate.Struct(cp)
}
