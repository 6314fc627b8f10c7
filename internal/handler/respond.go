// File: internal/handler/respond.go
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"link-directory/internal/dto"
	"link-directory/internal/service"
	"link-directory/internal/store"

	"github.com/labstack/echo/v4"
)

// Error 將 service/store 錯誤轉為 HTTP 狀態碼與 {error} 回應；
// 未知錯誤只記錄細節，回應固定訊息
func Error(c echo.Context, err error) error {
	status, msg := classify(err)
	if status == http.StatusInternalServerError {
		c.Logger().Errorf("%s %s: %v", c.Request().Method, c.Path(), err)
	}
	return c.JSON(status, dto.HTTPError{Error: msg})
}

func classify(err error) (int, string) {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest, ve.Msg
	case errors.Is(err, service.ErrValidation):
		return http.StatusBadRequest, service.ErrValidation.Error()
	case errors.Is(err, store.ErrCategoryNotFound):
		return http.StatusBadRequest, store.ErrCategoryNotFound.Error()
	case errors.Is(err, store.ErrEmailTaken):
		return http.StatusBadRequest, store.ErrEmailTaken.Error()
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized, service.ErrInvalidCredentials.Error()
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound, store.ErrNotFound.Error()
	case errors.Is(err, store.ErrConflict):
		return http.StatusConflict, "submission already reviewed"
	case errors.Is(err, store.ErrCategoryInUse):
		return http.StatusConflict, store.ErrCategoryInUse.Error()
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// BadRequest 回應 400 與指定訊息
func BadRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, dto.HTTPError{Error: msg})
}

// ParamID 解析路徑參數為正整數 id
func ParamID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid " + name)
	}
	return id, nil
}

// BindAndValidate 依序執行 Bind 與 Validate，失敗時已寫入 400 回應並回傳 false
func BindAndValidate(c echo.Context, req any) (bool, error) {
	if err := c.Bind(req); err != nil {
		return false, BadRequest(c, "invalid request body")
	}
	if err := c.Validate(req); err != nil {
		return false, BadRequest(c, err.Error())
	}
	return true, nil
}
