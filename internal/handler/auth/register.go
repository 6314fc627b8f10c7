// File: internal/handler/auth/register.go
package auth

import (
	"net/http"
	"strings"

	"link-directory/internal/database"
	"link-directory/internal/dto"
	"link-directory/internal/handler"
	"link-directory/internal/model"
	"link-directory/internal/service"
	"link-directory/internal/store"

	"github.com/labstack/echo/v4"
)

var (
	createUserFn   = store.CreateUser
	hashPasswordFn = service.HashPassword
)

// RegisterHandler 建立一般使用者帳號
// @Summary     註冊帳號
// @Description 建立一般使用者 (非管理員)，Email 會自動轉小寫
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body     dto.RegisterRequest true "註冊資料"
// @Success     201  {object} dto.MessageResponse
// @Failure     400  {object} dto.HTTPError
// @Failure     500  {object} dto.HTTPError
// @Router      /register [post]
func RegisterHandler(db database.Querier) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req dto.RegisterRequest
		if ok, err := handler.BindAndValidate(c, &req); !ok {
			return err
		}

		// Email 轉為小寫以確保一致性
		email := strings.ToLower(strings.TrimSpace(req.Email))
		if email == "" {
			return handler.BadRequest(c, "email is required")
		}

		hash, err := hashPasswordFn(req.Password)
		if err != nil {
			return handler.Error(c, err)
		}

		created, err := createUserFn(c.Request().Context(), db, &model.User{
			Email:        email,
			PasswordHash: hash,
		})
		if err != nil {
			return handler.Error(c, err)
		}
		c.Logger().Infof("registered user %d", created.ID)
		return c.JSON(http.StatusCreated, dto.MessageResponse{Message: "registered"})
	}
}
