package ports

import (
	"context"
	"time"

	"github.com/clinicore/clinic-api/internal/core/domain"
)

// AuthRepository defines the persistence contract for user credentials.
type AuthRepository interface {
	Create(ctx context.Context, user *domain.User) (int64, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)

	// UpdatePassword stores a new password hash and stamps
	// password_changed_at, so that previously issued session tokens stop
	// verifying.
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error

	// SetResetToken stores the hashed reset token and its expiry for the
	// user, overwriting any previous one.
	SetResetToken(ctx context.Context, id int64, tokenHash string, expires time.Time) error

	// ConsumeResetToken atomically matches an unexpired reset-token hash,
	// replaces the password, clears both reset fields and stamps
	// password_changed_at, all in a single statement. A wrong or expired
	// token yields domain.ErrResetTokenInvalid.
	ConsumeResetToken(ctx context.Context, tokenHash, passwordHash string) (*domain.User, error)
}
