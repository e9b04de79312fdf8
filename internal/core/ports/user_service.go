package ports

import (
	"context"

	"github.com/clinicore/clinic-api/internal/core/domain"
)

// UserInput carries the writable fields of a user record for the admin CRUD.
type UserInput struct {
	Username    string
	Email       string
	Password    string
	Name        string
	Surname     string
	DateOfBirth string
	Gender      string
	Address     string
	Phone       string
	UserType    string
}

// UserRepository covers the admin-facing mutations on user records. The auth
// flows use the narrower AuthRepository; the Postgres users repository
// implements both.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (int64, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id int64) error
}

type UserService interface {
	Create(ctx context.Context, in UserInput) (*domain.User, error)
	Update(ctx context.Context, id int64, in UserInput) error
	Delete(ctx context.Context, id int64) error
}
