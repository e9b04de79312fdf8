package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/clinicore/clinic-api/internal/core/domain"
	"github.com/clinicore/clinic-api/internal/core/ports"
)

// UserService implements the admin-facing user CRUD. Passwords pass through
// the same hashing policy as signup; a raw password never reaches storage on
// any path.
type UserService struct {
	repo   ports.UserRepository
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, logger: logger}
}

func (s *UserService) Create(ctx context.Context, in ports.UserInput) (*domain.User, error) {
	if err := validateUserInput(in); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := userFromInput(in)
	user.PasswordHash = string(hash)

	id, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	user.ID = id

	s.logger.Info().Int64("user_id", id).Str("user_type", user.UserType).Msg("user created")
	return user, nil
}

func (s *UserService) Update(ctx context.Context, id int64, in ports.UserInput) error {
	if err := validateUserInput(in); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	user := userFromInput(in)
	user.ID = id
	user.PasswordHash = string(hash)
	return s.repo.Update(ctx, user)
}

func (s *UserService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func validateUserInput(in ports.UserInput) error {
	if in.Username == "" || in.Email == "" || in.Password == "" ||
		in.Name == "" || in.Surname == "" || in.DateOfBirth == "" ||
		in.Gender == "" || in.UserType == "" {
		return domain.ErrMissingFields
	}
	if !domain.ValidRole(in.UserType) {
		return domain.ErrMissingFields
	}
	return nil
}

func userFromInput(in ports.UserInput) *domain.User {
	return &domain.User{
		Username:    in.Username,
		Email:       in.Email,
		Name:        in.Name,
		Surname:     in.Surname,
		DateOfBirth: in.DateOfBirth,
		Gender:      in.Gender,
		Address:     in.Address,
		Phone:       in.Phone,
		UserType:    in.UserType,
	}
}
