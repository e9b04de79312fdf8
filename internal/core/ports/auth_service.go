package ports

import (
	"context"

	"github.com/clinicore/clinic-api/internal/core/domain"
)

// SignupInput carries the fields required to open an account.
type SignupInput struct {
	Username        string
	Email           string
	Password        string
	PasswordConfirm string
	UserType        string
}

type AuthService interface {
	// Signup creates the account and returns a session token (signup is an
	// implicit login).
	Signup(ctx context.Context, in SignupInput) (string, *domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)

	// Authenticate resolves a bearer token to a live user record, or fails
	// when the token is invalid, the user is gone, or the password changed
	// after the token was issued.
	Authenticate(ctx context.Context, token string) (*domain.User, error)

	UpdatePassword(ctx context.Context, userID int64, current, newPassword, confirm string) (string, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, password, confirm string) (string, error)
}
