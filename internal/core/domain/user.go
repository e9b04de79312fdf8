package domain

import (
	"errors"
	"time"
)

// User roles. Every account carries exactly one.
const (
	RolePatient      = "patient"
	RoleDoctor       = "doctor"
	RoleReceptionist = "receptionist"
	RoleAdmin        = "admin"
)

// ValidRole reports whether role is one of the known user types.
func ValidRole(role string) bool {
	switch role {
	case RolePatient, RoleDoctor, RoleReceptionist, RoleAdmin:
		return true
	}
	return false
}

var (
	ErrNotLoggedIn        = errors.New("you are not logged in, please log in to get access")
	ErrInvalidToken       = errors.New("invalid or expired token, please log in again")
	ErrUserGone           = errors.New("the user belonging to this token does no longer exist")
	ErrPasswordChanged    = errors.New("user recently changed their password, please log in again")
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrMissingCredentials = errors.New("please provide email and password")
	ErrWrongPassword      = errors.New("your current password is wrong")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrResetTokenInvalid  = errors.New("token is invalid or has expired")
	ErrForbidden          = errors.New("you do not have permission to perform this action")
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrTooManyRequests    = errors.New("too many requests, please try again later")
)

// User models an account in the clinic system. PasswordHash and the reset
// fields never leave the server; they are excluded from JSON marshalling.
type User struct {
	ID                   int64      `json:"id"`
	Username             string     `json:"username"`
	Email                string     `json:"email"`
	PasswordHash         string     `json:"-"`
	Name                 string     `json:"name,omitempty"`
	Surname              string     `json:"surname,omitempty"`
	DateOfBirth          string     `json:"date_of_birth,omitempty"`
	Gender               string     `json:"gender,omitempty"`
	Address              string     `json:"address,omitempty"`
	Phone                string     `json:"phone,omitempty"`
	UserType             string     `json:"user_type"`
	PasswordChangedAt    *time.Time `json:"-"`
	PasswordResetToken   *string    `json:"-"`
	PasswordResetExpires *time.Time `json:"-"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

// ChangedPasswordAfter reports whether the password was changed strictly after
// issuedAt. JWT issue times carry second precision, so the change timestamp is
// truncated to the same grain; the fresh token handed out by the change itself
// stays valid even when both fall inside the same second.
func (u *User) ChangedPasswordAfter(issuedAt time.Time) bool {
	if u.PasswordChangedAt == nil {
		return false
	}
	return u.PasswordChangedAt.Truncate(time.Second).After(issuedAt)
}
