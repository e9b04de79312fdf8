package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/clinicore/clinic-api/internal/core/domain"
	"github.com/clinicore/clinic-api/internal/core/ports"
)

type stubAuthRepo struct {
	users  map[int64]*domain.User
	nextID int64
}

func newStubAuthRepo() *stubAuthRepo {
	return &stubAuthRepo{users: make(map[int64]*domain.User), nextID: 1}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubAuthRepo) Create(_ context.Context, user *domain.User) (int64, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return 0, domain.ErrUserExists
		}
	}
	id := r.nextID
	r.nextID++
	copy := cloneUser(user)
	copy.ID = id
	r.users[id] = copy
	return id, nil
}

func (r *stubAuthRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubAuthRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubAuthRepo) UpdatePassword(_ context.Context, id int64, passwordHash string) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	now := time.Now()
	u.PasswordHash = passwordHash
	u.PasswordChangedAt = &now
	return nil
}

func (r *stubAuthRepo) SetResetToken(_ context.Context, id int64, tokenHash string, expires time.Time) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordResetToken = &tokenHash
	u.PasswordResetExpires = &expires
	return nil
}

func (r *stubAuthRepo) ConsumeResetToken(_ context.Context, tokenHash, passwordHash string) (*domain.User, error) {
	for _, u := range r.users {
		if u.PasswordResetToken == nil || *u.PasswordResetToken != tokenHash {
			continue
		}
		if u.PasswordResetExpires == nil || !u.PasswordResetExpires.After(time.Now()) {
			continue
		}
		now := time.Now()
		u.PasswordHash = passwordHash
		u.PasswordResetToken = nil
		u.PasswordResetExpires = nil
		u.PasswordChangedAt = &now
		return cloneUser(u), nil
	}
	return nil, domain.ErrResetTokenInvalid
}

type stubDispatcher struct {
	sent []ports.ResetMail
}

func (d *stubDispatcher) Enqueue(mail ports.ResetMail) {
	d.sent = append(d.sent, mail)
}

type stubLimiter struct {
	allow bool
	err   error
}

func (l *stubLimiter) Allow(context.Context, string, string) (bool, error) {
	return l.allow, l.err
}

func newTestService(t *testing.T, repo ports.AuthRepository, mail ports.MailDispatcher, limiter ports.RateLimiter) *AuthService {
	t.Helper()
	svc, err := NewAuthService(repo, mail, limiter, "secret", time.Hour, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewAuthService: %v", err)
	}
	return svc
}

func TestNewAuthService_MissingSecret(t *testing.T) {
	if _, err := NewAuthService(newStubAuthRepo(), nil, nil, "", time.Hour, zerolog.Nop()); err == nil {
		t.Fatalf("expected error for empty signing secret")
	}
}

func TestAuthService_SignupThenLogin(t *testing.T) {
	repo := newStubAuthRepo()
	svc := newTestService(t, repo, nil, nil)

	token, user, err := svc.Signup(context.Background(), ports.SignupInput{
		Username:        "alice",
		Email:           "alice@example.com",
		Password:        "pass1234",
		PasswordConfirm: "pass1234",
	})
	if err != nil {
		t.Fatalf("Signup returned error: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token from signup")
	}
	if user.PasswordHash == "pass1234" {
		t.Fatalf("password stored in plaintext")
	}
	if user.UserType != domain.RolePatient {
		t.Fatalf("expected default role patient, got %q", user.UserType)
	}

	loginToken, loginUser, err := svc.Login(context.Background(), "alice@example.com", "pass1234")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if loginUser.ID != user.ID {
		t.Fatalf("login resolved wrong user: %d != %d", loginUser.ID, user.ID)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(loginToken, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("login token does not verify: %v", err)
	}
	if int64(claims["id"].(float64)) != user.ID {
		t.Fatalf("token id claim = %v, want %d", claims["id"], user.ID)
	}
}

func TestAuthService_Signup_PasswordMismatch(t *testing.T) {
	repo := newStubAuthRepo()
	svc := newTestService(t, repo, nil, nil)

	_, _, err := svc.Signup(context.Background(), ports.SignupInput{
		Username:        "bob",
		Email:           "bob@example.com",
		Password:        "one",
		PasswordConfirm: "two",
	})
	if !errors.Is(err, domain.ErrPasswordMismatch) {
		t.Fatalf("expected ErrPasswordMismatch, got %v", err)
	}
	if len(repo.users) != 0 {
		t.Fatalf("no user record should be created on mismatch")
	}
}

func TestAuthService_Login_IndistinguishableFailures(t *testing.T) {
	repo := newStubAuthRepo()
	svc := newTestService(t, repo, nil, nil)

	_, _, _ = svc.Signup(context.Background(), ports.SignupInput{
		Username: "carol", Email: "carol@example.com",
		Password: "goodpass", PasswordConfirm: "goodpass",
	})

	_, _, errNoUser := svc.Login(context.Background(), "ghost@example.com", "whatever")
	_, _, errBadPass := svc.Login(context.Background(), "carol@example.com", "badpass")

	if !errors.Is(errNoUser, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", errNoUser)
	}
	if !errors.Is(errBadPass, domain.ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", errBadPass)
	}
}

func TestAuthService_Login_MissingCredentials(t *testing.T) {
	svc := newTestService(t, newStubAuthRepo(), nil, nil)

	if _, _, err := svc.Login(context.Background(), "", "pass"); !errors.Is(err, domain.ErrMissingCredentials) {
		t.Fatalf("expected ErrMissingCredentials, got %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "a@b.com", ""); !errors.Is(err, domain.ErrMissingCredentials) {
		t.Fatalf("expected ErrMissingCredentials, got %v", err)
	}
}

func TestAuthService_Login_Throttled(t *testing.T) {
	repo := newStubAuthRepo()
	svc := newTestService(t, repo, nil, &stubLimiter{allow: false})

	_, _, err := svc.Login(context.Background(), "carol@example.com", "goodpass")
	if !errors.Is(err, domain.ErrTooManyRequests) {
		t.Fatalf("expected ErrTooManyRequests, got %v", err)
	}
}

func TestAuthService_Login_LimiterFailsOpen(t *testing.T) {
	repo := newStubAuthRepo()
	svc := newTestService(t, repo, nil, &stubLimiter{allow: false, err: errors.New("redis down")})

	_, _, _ = svc.Signup(context.Background(), ports.SignupInput{
		Username: "dave", Email: "dave@example.com",
		Password: "pass", PasswordConfirm: "pass",
	})
	if _, _, err := svc.Login(context.Background(), "dave@example.com", "pass"); err != nil {
		t.Fatalf("limiter outage should not block login: %v", err)
	}
}

func TestAuthService_Authenticate_Success(t *testing.T) {
	repo := newStubAuthRepo()
	svc := newTestService(t, repo, nil, nil)

	token, user, err := svc.Signup(context.Background(), ports.SignupInput{
		Username: "erin", Email: "erin@example.com",
		Password: "pass", PasswordConfirm: "pass",
	})
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	got, err := svc.Authenticate(context.Background(), token)
	if err != nil {
		t.Fatalf("Authenticate returned error: %v", err)
	}
	if got.ID != user.ID || got.Email != "erin@example.com" {
		t.Fatalf("unexpected user: %+v", got)
	}
}

func TestAuthService_Authenticate_BadTokens(t *testing.T) {
	repo := newStubAuthRepo()
	svc := newTestService(t, repo, nil, nil)

	cases := map[string]string{
		"malformed":     "not-a-token",
		"wrong secret":  signTestToken(t, "other-secret", 1, time.Now(), time.Now().Add(time.Hour)),
		"expired":       signTestToken(t, "secret", 1, time.Now().Add(-2*time.Hour), time.Now().Add(-time.Hour)),
		"missing iat":   signTestTokenClaims(t, "secret", jwt.MapClaims{"id": float64(1), "exp": time.Now().Add(time.Hour).Unix()}),
		"missing id":    signTestTokenClaims(t, "secret", jwt.MapClaims{"iat": time.Now().Unix(), "exp": time.Now().Add(time.Hour).Unix()}),
	}

	for name, token := range cases {
		if _, err := svc.Authenticate(context.Background(), token); !errors.Is(err, domain.ErrInvalidToken) {
			t.Fatalf("%s: expected ErrInvalidToken, got %v", name, err)
		}
	}
}

func TestAuthService_Authenticate_UserGone(t *testing.T) {
	repo := newStubAuthRepo()
	svc := newTestService(t, repo, nil, nil)

	token := signTestToken(t, "secret", 42, time.Now(), time.Now().Add(time.Hour))
	if _, err := svc.Authenticate(context.Background(), token); !errors.Is(err, domain.ErrUserGone) {
		t.Fatalf("expected ErrUserGone, got %v", err)
	}
}

func TestAuthService_Authenticate_StaleAfterPasswordChange(t *testing.T) {
	repo := newStubAuthRepo()
	svc := newTestService(t, repo, nil, nil)

	_, user, err := svc.Signup(context.Background(), ports.SignupInput{
		Username: "frank", Email: "frank@example.com",
		Password: "oldpass", PasswordConfirm: "oldpass",
	})
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	oldToken := signTestToken(t, "secret", user.ID, time.Now().Add(-time.Hour), time.Now().Add(time.Hour))

	freshToken, err := svc.UpdatePassword(context.Background(), user.ID, "oldpass", "newpass", "newpass")
	if err != nil {
		t.Fatalf("UpdatePassword failed: %v", err)
	}

	if _, err := svc.Authenticate(context.Background(), oldToken); !errors.Is(err, domain.ErrPasswordChanged) {
		t.Fatalf("pre-change token: expected ErrPasswordChanged, got %v", err)
	}
	if _, err := svc.Authenticate(context.Background(), freshToken); err != nil {
		t.Fatalf("post-change token should verify: %v", err)
	}
}

func TestAuthService_UpdatePassword_Failures(t *testing.T) {
	repo := newStubAuthRepo()
	svc := newTestService(t, repo, nil, nil)

	_, user, _ := svc.Signup(context.Background(), ports.SignupInput{
		Username: "gina", Email: "gina@example.com",
		Password: "current", PasswordConfirm: "current",
	})

	if _, err := svc.UpdatePassword(context.Background(), user.ID, "wrong", "new", "new"); !errors.Is(err, domain.ErrWrongPassword) {
		t.Fatalf("expected ErrWrongPassword, got %v", err)
	}
	if _, err := svc.UpdatePassword(context.Background(), user.ID, "current", "new", "other"); !errors.Is(err, domain.ErrPasswordMismatch) {
		t.Fatalf("expected ErrPasswordMismatch, got %v", err)
	}

	// neither failure must have touched the stored hash
	stored := repo.users[user.ID]
	if bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("current")) != nil {
		t.Fatalf("stored hash changed after failed update")
	}
	if stored.PasswordChangedAt != nil {
		t.Fatalf("password_changed_at stamped after failed update")
	}
}

func TestAuthService_ForgotPassword_PersistsHashAndDispatches(t *testing.T) {
	repo := newStubAuthRepo()
	mail := &stubDispatcher{}
	svc := newTestService(t, repo, mail, nil)

	_, user, _ := svc.Signup(context.Background(), ports.SignupInput{
		Username: "henry", Email: "a@b.com",
		Password: "pass", PasswordConfirm: "pass",
	})

	if err := svc.ForgotPassword(context.Background(), "a@b.com"); err != nil {
		t.Fatalf("ForgotPassword returned error: %v", err)
	}

	stored := repo.users[user.ID]
	if stored.PasswordResetToken == nil || stored.PasswordResetExpires == nil {
		t.Fatalf("reset token fields not persisted")
	}
	until := time.Until(*stored.PasswordResetExpires)
	if until < 55*time.Minute || until > 65*time.Minute {
		t.Fatalf("expiry not about one hour out: %v", until)
	}

	if len(mail.sent) != 1 {
		t.Fatalf("expected one queued mail, got %d", len(mail.sent))
	}
	if mail.sent[0].To != "a@b.com" {
		t.Fatalf("mail queued for wrong recipient: %s", mail.sent[0].To)
	}
	if HashResetToken(mail.sent[0].Token) != *stored.PasswordResetToken {
		t.Fatalf("stored hash does not match the mailed plaintext token")
	}
}

func TestAuthService_ForgotPassword_UnknownEmail(t *testing.T) {
	mail := &stubDispatcher{}
	svc := newTestService(t, newStubAuthRepo(), mail, nil)

	// generic success, nothing dispatched: the caller cannot probe for accounts
	if err := svc.ForgotPassword(context.Background(), "nobody@example.com"); err != nil {
		t.Fatalf("expected generic success, got %v", err)
	}
	if len(mail.sent) != 0 {
		t.Fatalf("no mail should be dispatched for unknown email")
	}
}

func TestAuthService_ForgotPassword_SecondRequestInvalidatesFirst(t *testing.T) {
	repo := newStubAuthRepo()
	mail := &stubDispatcher{}
	svc := newTestService(t, repo, mail, nil)

	_, _, _ = svc.Signup(context.Background(), ports.SignupInput{
		Username: "iris", Email: "iris@example.com",
		Password: "pass", PasswordConfirm: "pass",
	})

	_ = svc.ForgotPassword(context.Background(), "iris@example.com")
	_ = svc.ForgotPassword(context.Background(), "iris@example.com")
	if len(mail.sent) != 2 {
		t.Fatalf("expected two queued mails, got %d", len(mail.sent))
	}

	first, second := mail.sent[0].Token, mail.sent[1].Token
	if _, err := svc.ResetPassword(context.Background(), first, "newpass", "newpass"); !errors.Is(err, domain.ErrResetTokenInvalid) {
		t.Fatalf("first token should be invalidated by the second request, got %v", err)
	}
	if _, err := svc.ResetPassword(context.Background(), second, "newpass", "newpass"); err != nil {
		t.Fatalf("second token should still work: %v", err)
	}
}

func TestAuthService_ResetPassword_SingleUse(t *testing.T) {
	repo := newStubAuthRepo()
	mail := &stubDispatcher{}
	svc := newTestService(t, repo, mail, nil)

	_, user, _ := svc.Signup(context.Background(), ports.SignupInput{
		Username: "jack", Email: "a@b.com",
		Password: "oldpass", PasswordConfirm: "oldpass",
	})
	_ = svc.ForgotPassword(context.Background(), "a@b.com")
	plaintext := mail.sent[0].Token

	token, err := svc.ResetPassword(context.Background(), plaintext, "NewPass1", "NewPass1")
	if err != nil {
		t.Fatalf("ResetPassword returned error: %v", err)
	}
	if token == "" {
		t.Fatalf("expected fresh session token")
	}

	stored := repo.users[user.ID]
	if stored.PasswordResetToken != nil || stored.PasswordResetExpires != nil {
		t.Fatalf("reset fields not cleared after consumption")
	}
	if bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("NewPass1")) != nil {
		t.Fatalf("new password not persisted")
	}

	// replay with the same plaintext must fail
	if _, err := svc.ResetPassword(context.Background(), plaintext, "NewPass2", "NewPass2"); !errors.Is(err, domain.ErrResetTokenInvalid) {
		t.Fatalf("expected ErrResetTokenInvalid on replay, got %v", err)
	}
}

func TestAuthService_ResetPassword_Expired(t *testing.T) {
	repo := newStubAuthRepo()
	mail := &stubDispatcher{}
	svc := newTestService(t, repo, mail, nil)

	_, user, _ := svc.Signup(context.Background(), ports.SignupInput{
		Username: "kate", Email: "kate@example.com",
		Password: "pass", PasswordConfirm: "pass",
	})
	_ = svc.ForgotPassword(context.Background(), "kate@example.com")

	expired := time.Now().Add(-time.Minute)
	repo.users[user.ID].PasswordResetExpires = &expired

	if _, err := svc.ResetPassword(context.Background(), mail.sent[0].Token, "newpass", "newpass"); !errors.Is(err, domain.ErrResetTokenInvalid) {
		t.Fatalf("expected ErrResetTokenInvalid for expired token, got %v", err)
	}
}

func TestAuthService_ResetPassword_ConfirmMismatch(t *testing.T) {
	svc := newTestService(t, newStubAuthRepo(), nil, nil)

	if _, err := svc.ResetPassword(context.Background(), "whatever", "one", "two"); !errors.Is(err, domain.ErrPasswordMismatch) {
		t.Fatalf("expected ErrPasswordMismatch, got %v", err)
	}
}

func signTestToken(t *testing.T, secret string, userID int64, issuedAt, expires time.Time) string {
	t.Helper()
	return signTestTokenClaims(t, secret, jwt.MapClaims{
		"id":  float64(userID),
		"iat": issuedAt.Unix(),
		"exp": expires.Unix(),
	})
}

func signTestTokenClaims(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}
