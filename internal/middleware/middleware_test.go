package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"link-directory/internal/model"
	"link-directory/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func newIssuer(t *testing.T) *service.TokenIssuer {
	t.Helper()
	ti, err := service.NewTokenIssuer("testsecret", time.Hour)
	require.NoError(t, err)
	return ti
}

func newRequest(auth string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	return req
}

func newContext(auth string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	rec := httptest.NewRecorder()
	return e.NewContext(newRequest(auth), rec), rec
}

// panicVerifier 確認缺少標頭時不會進入解析
type panicVerifier struct{}

func (panicVerifier) Verify(string) (*service.Claims, error) { panic("Verify must not be called") }

func TestAuthenticate(t *testing.T) {
	ti := newIssuer(t)

	_, err := Authenticate(panicVerifier{}, newRequest(""))
	require.ErrorIs(t, err, ErrMissingToken)

	for _, h := range []string{"BadHeader", "Basic abc", "Bearer "} {
		_, err = Authenticate(panicVerifier{}, newRequest(h))
		require.ErrorIs(t, err, ErrBadScheme, h)
	}

	_, err = Authenticate(ti, newRequest("Bearer invalid"))
	require.ErrorIs(t, err, service.ErrTokenMalformed)

	tok, _, err := ti.Issue(model.User{ID: 1, Email: "a@example.com", IsAdmin: true})
	require.NoError(t, err)
	claims, err := Authenticate(ti, newRequest("bearer "+tok))
	require.NoError(t, err)
	require.Equal(t, int64(1), claims.ID)
	require.True(t, claims.IsAdmin)

	other, err := service.NewTokenIssuer("other", time.Hour)
	require.NoError(t, err)
	_, err = Authenticate(other, newRequest("Bearer "+tok))
	require.ErrorIs(t, err, service.ErrTokenSignature)
}

func TestRequireAuth(t *testing.T) {
	ti := newIssuer(t)
	tok, _, err := ti.Issue(model.User{ID: 2, Email: "u@example.com"})
	require.NoError(t, err)

	// success path
	ctx, rec := newContext("Bearer " + tok)
	called := false
	h := RequireAuth(ti)(func(c echo.Context) error {
		called = true
		claims := ClaimsFrom(c)
		require.NotNil(t, claims)
		require.Equal(t, int64(2), claims.ID)
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(ctx))
	require.True(t, called)
	require.Equal(t, http.StatusOK, rec.Code)

	// failure paths
	for _, auth := range []string{"", "Token abc", "Bearer nope"} {
		ctx, rec = newContext(auth)
		h = RequireAuth(ti)(func(echo.Context) error {
			t.Fatal("next must not run")
			return nil
		})
		require.NoError(t, h(ctx))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.JSONEq(t, `{"error":"unauthorized"}`, rec.Body.String())
	}
}

func TestRequireAdmin(t *testing.T) {
	ti := newIssuer(t)
	adminTok, _, err := ti.Issue(model.User{ID: 1, IsAdmin: true})
	require.NoError(t, err)
	userTok, _, err := ti.Issue(model.User{ID: 2})
	require.NoError(t, err)

	ok := func(c echo.Context) error {
		require.True(t, ClaimsFrom(c).IsAdmin)
		return c.NoContent(http.StatusOK)
	}

	ctx, rec := newContext("Bearer " + adminTok)
	require.NoError(t, RequireAdmin(ti)(ok)(ctx))
	require.Equal(t, http.StatusOK, rec.Code)

	ctx, rec = newContext("Bearer " + userTok)
	require.NoError(t, RequireAdmin(ti)(ok)(ctx))
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	ctx, rec = newContext("")
	require.NoError(t, RequireAdmin(ti)(ok)(ctx))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

type errVerifier struct{ err error }

func (v errVerifier) Verify(string) (*service.Claims, error) { return nil, v.err }

func TestRequireAuthExpired(t *testing.T) {
	ctx, rec := newContext("Bearer x.y.z")
	h := RequireAuth(errVerifier{err: service.ErrTokenExpired})(func(echo.Context) error {
		return errors.New("unreachable")
	})
	require.NoError(t, h(ctx))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestClaimsFromMissing(t *testing.T) {
	ctx, _ := newContext("")
	require.Nil(t, ClaimsFrom(ctx))
}
