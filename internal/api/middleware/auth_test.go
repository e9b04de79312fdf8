package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/clinicore/clinic-api/internal/core/domain"
)

type stubAuthenticator struct {
	user *domain.User
	err  error
	got  string
}

func (s *stubAuthenticator) Authenticate(_ context.Context, token string) (*domain.User, error) {
	s.got = token
	return s.user, s.err
}

func newAuthedContext(e *echo.Echo, header string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestProtect_ValidToken(t *testing.T) {
	e := echo.New()
	user := &domain.User{ID: 7, Username: "alice", UserType: domain.RoleDoctor}
	auth := &stubAuthenticator{user: user}
	c, rec := newAuthedContext(e, "Bearer good-token")

	called := false
	handler := Protect(auth)(func(c echo.Context) error {
		called = true
		if got := CurrentUser(c); got == nil || got.ID != 7 {
			t.Fatalf("user not attached: %+v", got)
		}
		if c.Get(RoleKey) != domain.RoleDoctor {
			t.Fatalf("role not attached")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if auth.got != "good-token" {
		t.Fatalf("authenticator saw %q", auth.got)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestProtect_MissingHeader(t *testing.T) {
	e := echo.New()
	c, _ := newAuthedContext(e, "")

	handler := Protect(&stubAuthenticator{})(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); !errors.Is(err, domain.ErrNotLoggedIn) {
		t.Fatalf("expected ErrNotLoggedIn, got %v", err)
	}
}

func TestProtect_WrongScheme(t *testing.T) {
	e := echo.New()
	c, _ := newAuthedContext(e, "Token abc")

	handler := Protect(&stubAuthenticator{})(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); !errors.Is(err, domain.ErrNotLoggedIn) {
		t.Fatalf("expected ErrNotLoggedIn, got %v", err)
	}
}

func TestProtect_AuthenticatorFailures(t *testing.T) {
	e := echo.New()

	for _, want := range []error{domain.ErrInvalidToken, domain.ErrUserGone, domain.ErrPasswordChanged} {
		c, _ := newAuthedContext(e, "Bearer some-token")
		handler := Protect(&stubAuthenticator{err: want})(func(c echo.Context) error {
			t.Fatalf("should not reach next")
			return nil
		})
		if err := handler(c); !errors.Is(err, want) {
			t.Fatalf("expected %v to propagate, got %v", want, err)
		}
	}
}
