package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/clinicore/clinic-api/internal/core/domain"
	"github.com/clinicore/clinic-api/internal/core/ports"
)

const (
	// bcryptCost is deliberately above the library default; password
	// verification is supposed to be slow.
	bcryptCost = 12

	resetTokenBytes = 32
	resetTokenTTL   = time.Hour

	defaultTokenTTL = 90 * 24 * time.Hour
)

// Throttled operation names, used as Redis key segments and metric labels.
const (
	OpLogin          = "login"
	OpForgotPassword = "forgot_password"
)

// AuthService owns the session-token format, the hashing policy and the
// reset-token lifecycle. Everything else (storage, delivery, throttling) is
// injected.
type AuthService struct {
	repo      ports.AuthRepository
	mail      ports.MailDispatcher
	limiter   ports.RateLimiter
	jwtSecret []byte
	tokenTTL  time.Duration
	logger    zerolog.Logger
}

// NewAuthService wires an AuthService. An empty signing secret is a
// configuration error and refuses construction; mail and limiter may be nil
// (delivery and throttling are then disabled).
func NewAuthService(repo ports.AuthRepository, mail ports.MailDispatcher, limiter ports.RateLimiter, jwtSecret string, tokenTTL time.Duration, logger zerolog.Logger) (*AuthService, error) {
	if jwtSecret == "" {
		return nil, errors.New("auth: signing secret is not configured")
	}
	if tokenTTL <= 0 {
		tokenTTL = defaultTokenTTL
	}
	return &AuthService{
		repo:      repo,
		mail:      mail,
		limiter:   limiter,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
		logger:    logger,
	}, nil
}

// SignToken issues a session token for the given user id. The claims carry
// the issue time so Authenticate can compare it against later password
// changes.
func (s *AuthService) SignToken(userID int64) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"id":  userID,
		"iat": now.Unix(),
		"exp": now.Add(s.tokenTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.jwtSecret)
}

// Authenticate resolves a bearer token to a live user record.
//
// Bad signature, malformed token and expired token all collapse to
// domain.ErrInvalidToken; only "user gone" and "password changed" are
// distinguished, matching the wording the API has always used.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.jwtSecret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, domain.ErrInvalidToken
	}

	id, ok := claims["id"].(float64)
	if !ok {
		return nil, domain.ErrInvalidToken
	}
	issuedAt, err := claims.GetIssuedAt()
	if err != nil || issuedAt == nil {
		return nil, domain.ErrInvalidToken
	}

	user, err := s.repo.FindByID(ctx, int64(id))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// the token outlived the account
			return nil, domain.ErrUserGone
		}
		return nil, err
	}

	if user.ChangedPasswordAfter(issuedAt.Time) {
		return nil, domain.ErrPasswordChanged
	}

	return user, nil
}

// Signup creates the account and signs it in. The password is hashed before
// it is handed to the repository; the plaintext never reaches storage.
func (s *AuthService) Signup(ctx context.Context, in ports.SignupInput) (string, *domain.User, error) {
	if in.Password == "" || in.Password != in.PasswordConfirm {
		return "", nil, domain.ErrPasswordMismatch
	}

	role := in.UserType
	if role == "" {
		role = domain.RolePatient
	}
	if !domain.ValidRole(role) {
		return "", nil, domain.ErrMissingFields
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return "", nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
		UserType:     role,
	}

	id, err := s.repo.Create(ctx, user)
	if err != nil {
		return "", nil, err
	}
	user.ID = id

	token, err := s.SignToken(id)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// Login verifies an email/password pair. A missing account and a wrong
// password fail identically, so the response never confirms whether an email
// has an account.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrMissingCredentials
	}
	if !s.allow(ctx, OpLogin, email) {
		return "", nil, domain.ErrTooManyRequests
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.SignToken(user.ID)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// UpdatePassword changes the caller's password after verifying the current
// one, and returns a fresh session token. The repository stamps
// password_changed_at in the same update, which is what invalidates every
// token issued before this call.
func (s *AuthService) UpdatePassword(ctx context.Context, userID int64, current, newPassword, confirm string) (string, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)) != nil {
		return "", domain.ErrWrongPassword
	}
	if newPassword == "" || newPassword != confirm {
		return "", domain.ErrPasswordMismatch
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	if err := s.repo.UpdatePassword(ctx, userID, string(hash)); err != nil {
		return "", err
	}

	return s.SignToken(userID)
}

// ForgotPassword starts the recovery flow. The response is identical whether
// or not the email has an account; dispatch is simply skipped on a miss.
// Delivery is asynchronous: success is reported once the hashed token is
// persisted, not once the mail leaves.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	if email == "" {
		return domain.ErrMissingCredentials
	}
	if !s.allow(ctx, OpForgotPassword, email) {
		return domain.ErrTooManyRequests
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.logger.Debug().Str("email", email).Msg("password reset requested for unknown email")
			return nil
		}
		return err
	}

	plaintext, hash, err := newResetToken()
	if err != nil {
		return err
	}
	if err := s.repo.SetResetToken(ctx, user.ID, hash, time.Now().Add(resetTokenTTL)); err != nil {
		return err
	}

	if s.mail != nil {
		s.mail.Enqueue(ports.ResetMail{To: user.Email, Token: plaintext})
	}
	return nil
}

// ResetPassword consumes a reset token and sets the new password. Matching
// the stored hash, checking the expiry, clearing both reset fields and
// stamping password_changed_at happen in one atomic repository operation, so
// a token can be spent at most once even under concurrent requests.
func (s *AuthService) ResetPassword(ctx context.Context, token, password, confirm string) (string, error) {
	if password == "" || password != confirm {
		return "", domain.ErrPasswordMismatch
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	user, err := s.repo.ConsumeResetToken(ctx, HashResetToken(token), string(hash))
	if err != nil {
		return "", err
	}

	return s.SignToken(user.ID)
}

// allow consults the rate limiter, failing open: when throttling storage is
// unreachable the operation proceeds and the outage is logged.
func (s *AuthService) allow(ctx context.Context, op, subject string) bool {
	if s.limiter == nil {
		return true
	}
	ok, err := s.limiter.Allow(ctx, op, subject)
	if err != nil {
		s.logger.Warn().Err(err).Str("op", op).Msg("rate limiter unavailable")
		return true
	}
	return ok
}

// HashResetToken digests a plaintext reset token the way storage keeps it.
// A fast digest is fine here: the value is 256 bits of fresh entropy and
// single-use, unlike an account password.
func HashResetToken(plaintext string) string {
	sum := sha256.Sum256([]byte(plaintext))
	return hex.EncodeToString(sum[:])
}

func newResetToken() (plaintext, hash string, err error) {
	buf := make([]byte, resetTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", "", fmt.Errorf("generate reset token: %w", err)
	}
	plaintext = hex.EncodeToString(buf)
	return plaintext, HashResetToken(plaintext), nil
}
