package middleware

import (
	"errors"
	"net/http"
	"strings"

	"link-directory/internal/dto"
	"link-directory/internal/service"

	"github.com/labstack/echo/v4"
)

const ContextUserKey = "user"

var (
	ErrMissingToken = errors.New("missing token")
	ErrBadScheme    = errors.New("invalid authorization header format")
	ErrNotAdmin     = errors.New("admin privileges required")
)

// TokenVerifier 由 *service.TokenIssuer 實作
type TokenVerifier interface {
	Verify(token string) (*service.Claims, error)
}

// Authenticate 由 Authorization: Bearer <token> 取得並驗證 claims；
// 沒有標頭時直接失敗，不做任何解析
func Authenticate(tokens TokenVerifier, req *http.Request) (*service.Claims, error) {
	authHeader := req.Header.Get(echo.HeaderAuthorization)
	if authHeader == "" {
		return nil, ErrMissingToken
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return nil, ErrBadScheme
	}
	return tokens.Verify(parts[1])
}

// ClaimsFrom 取出 RequireAuth 存入 context 的 claims，未驗證時回傳 nil
func ClaimsFrom(c echo.Context) *service.Claims {
	claims, _ := c.Get(ContextUserKey).(*service.Claims)
	return claims
}

func unauthorized(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, dto.HTTPError{Error: "unauthorized"})
}

func RequireAuth(tokens TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := Authenticate(tokens, c.Request())
			if err != nil {
				c.Logger().Infof("auth rejected %s %s: %v", c.Request().Method, c.Path(), err)
				return unauthorized(c)
			}
			c.Set(ContextUserKey, claims)
			return next(c)
		}
	}
}

// RequireAdmin 未登入或非管理員一律回 401
func RequireAdmin(tokens TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := Authenticate(tokens, c.Request())
			if err == nil && !claims.IsAdmin {
				err = ErrNotAdmin
			}
			if err != nil {
				if claims != nil {
					c.Logger().Infof("admin rejected user %d %s %s: %v", claims.ID, c.Request().Method, c.Path(), err)
				} else {
					c.Logger().Infof("admin rejected %s %s: %v", c.Request().Method, c.Path(), err)
				}
				return unauthorized(c)
			}
			c.Set(ContextUserKey, claims)
			return next(c)
		}
	}
}
