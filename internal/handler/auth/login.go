// File: internal/handler/auth/login.go
package auth

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"link-directory/internal/database"
	"link-directory/internal/dto"
	"link-directory/internal/handler"
	"link-directory/internal/model"
	"link-directory/internal/service"
	"link-directory/internal/store"

	"github.com/labstack/echo/v4"
)

// TokenIssuer 由 *service.TokenIssuer 實作
type TokenIssuer interface {
	Issue(user model.User) (string, time.Time, error)
}

var (
	getUserByEmailFn = store.GetUserByEmail
	verifyPasswordFn = service.VerifyPassword
	burnCompareFn    = service.BurnPasswordCompare
)

// LoginHandler 使用 Email/Password 驗證並回傳 JWT
// @Summary     登入使用者
// @Description 使用 Email 與 Password 進行驗證，回傳存取令牌與到期時間；帳號不存在與密碼錯誤回應相同
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body     dto.LoginRequest true "登入資料"
// @Success     200  {object} dto.LoginResponse
// @Failure     400  {object} dto.HTTPError
// @Failure     401  {object} dto.HTTPError
// @Failure     500  {object} dto.HTTPError
// @Router      /login [post]
func LoginHandler(db database.Querier, tokens TokenIssuer) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req dto.LoginRequest
		if ok, err := handler.BindAndValidate(c, &req); !ok {
			return err
		}
		email := strings.ToLower(strings.TrimSpace(req.Email))

		// 撈使用者資料
		user, err := getUserByEmailFn(c.Request().Context(), db, email)
		if errors.Is(err, store.ErrNotFound) {
			burnCompareFn(req.Password)
			c.Logger().Info("login failed: unknown account")
			return handler.Error(c, service.ErrInvalidCredentials)
		}
		if err != nil {
			return handler.Error(c, err)
		}

		// 驗證密碼
		if !verifyPasswordFn(req.Password, user.PasswordHash) {
			c.Logger().Infof("login failed: user %d bad password", user.ID)
			return handler.Error(c, service.ErrInvalidCredentials)
		}

		// 發行存取令牌
		token, exp, err := tokens.Issue(*user)
		if err != nil {
			return handler.Error(c, err)
		}
		c.Logger().Infof("login ok: user %d admin=%t", user.ID, user.IsAdmin)
		return c.JSON(http.StatusOK, dto.LoginResponse{Token: token, ExpiresAt: exp})
	}
}
