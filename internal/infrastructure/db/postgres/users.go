package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinicore/clinic-api/internal/core/domain"
)

// UserRepository persists user records in the users table. It implements both
// ports.AuthRepository (credential flows) and ports.UserRepository (admin
// CRUD).
type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = `
	id, username, email, password,
	coalesce(name, ''), coalesce(surname, ''), coalesce(date_of_birth::text, ''),
	coalesce(gender, ''), coalesce(address, ''), coalesce(phone, ''),
	user_type, password_changed_at, password_reset_token, password_reset_expires,
	created_at, updated_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&u.Name,
		&u.Surname,
		&u.DateOfBirth,
		&u.Gender,
		&u.Address,
		&u.Phone,
		&u.UserType,
		&u.PasswordChangedAt,
		&u.PasswordResetToken,
		&u.PasswordResetExpires,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &u, nil
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO users (username, email, password, name, surname, date_of_birth, gender, address, phone, user_type)
		VALUES ($1, $2, $3, nullif($4, ''), nullif($5, ''), nullif($6, '')::date, nullif($7, ''), nullif($8, ''), nullif($9, ''), $10)
		RETURNING id`,
		user.Username, user.Email, user.PasswordHash,
		user.Name, user.Surname, user.DateOfBirth,
		user.Gender, user.Address, user.Phone,
		user.UserType,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, domain.ErrUserExists
		}
		return 0, fmt.Errorf("insert user: %w", err)
	}
	return id, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

// UpdatePassword stores a new hash and stamps password_changed_at in the same
// statement; tokens issued before this moment stop verifying.
func (r *UserRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE users
		SET password = $1, password_changed_at = now(), updated_at = now()
		WHERE id = $2`,
		passwordHash, id,
	)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) SetResetToken(ctx context.Context, id int64, tokenHash string, expires time.Time) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE users
		SET password_reset_token = $1, password_reset_expires = $2, updated_at = now()
		WHERE id = $3`,
		tokenHash, expires, id,
	)
	if err != nil {
		return fmt.Errorf("set reset token: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// ConsumeResetToken is the single-use enforcement point: matching the hash,
// checking the expiry, writing the password and clearing both reset fields
// happen in one statement, so under concurrent requests only one caller gets
// the row back.
func (r *UserRepository) ConsumeResetToken(ctx context.Context, tokenHash, passwordHash string) (*domain.User, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE users
		SET password = $2,
		    password_reset_token = NULL,
		    password_reset_expires = NULL,
		    password_changed_at = now(),
		    updated_at = now()
		WHERE password_reset_token = $1 AND password_reset_expires > now()
		RETURNING `+userColumns,
		tokenHash, passwordHash,
	)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrResetTokenInvalid
		}
		return nil, err
	}
	return user, nil
}

func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE users
		SET username = $1, email = $2, password = $3,
		    name = nullif($4, ''), surname = nullif($5, ''), date_of_birth = nullif($6, '')::date,
		    gender = nullif($7, ''), address = nullif($8, ''), phone = nullif($9, ''),
		    user_type = $10, password_changed_at = now(), updated_at = now()
		WHERE id = $11`,
		user.Username, user.Email, user.PasswordHash,
		user.Name, user.Surname, user.DateOfBirth,
		user.Gender, user.Address, user.Phone,
		user.UserType, user.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrUserExists
		}
		return fmt.Errorf("update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
