// File: internal/handler/ping.go
package handler

import (
	"net/http"

	"link-directory/internal/cache"
	"link-directory/internal/database"
	"link-directory/internal/dto"

	"github.com/labstack/echo/v4"
)

// PingHandler 健康檢查
// @Summary     Health Check
// @Description 回傳 pong，並檢查資料庫與快取連線是否正常
// @Tags        health
// @Produce     json
// @Success     200 {object} dto.MessageResponse
// @Failure     500 {object} dto.HTTPError
// @Router      /ping [get]
func PingHandler(db database.DB, cch cache.Cache) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		if err := db.Ping(ctx); err != nil {
			c.Logger().Errorf("ping database: %v", err)
			return c.JSON(http.StatusInternalServerError, dto.HTTPError{Error: "database unhealthy"})
		}
		if err := cch.Ping(ctx).Err(); err != nil {
			c.Logger().Errorf("ping cache: %v", err)
			return c.JSON(http.StatusInternalServerError, dto.HTTPError{Error: "cache unhealthy"})
		}
		return c.JSON(http.StatusOK, dto.MessageResponse{Message: "pong"})
	}
}
