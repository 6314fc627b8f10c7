// File: internal/handler/links/links.go
package links

import (
	"context"
	"net/http"

	"link-directory/internal/dto"
	"link-directory/internal/handler"
	"link-directory/internal/model"

	"github.com/labstack/echo/v4"
)

// HeaderCFConnectingIP Cloudflare 轉送的來源 IP
const HeaderCFConnectingIP = "CF-Connecting-IP"

// Catalog 為連結相關操作，由 *service.Catalog 實作
type Catalog interface {
	CreateLink(ctx context.Context, l *model.Link) error
	UpdateLink(ctx context.Context, l *model.Link) error
	DeleteLink(ctx context.Context, id int64) error
	RecordVisit(ctx context.Context, linkID int64, ip, userAgent *string) error
}

// CreateLinkHandler 管理員直接新增連結
// @Summary     Create link
// @Description 新增連結並嘗試取得網站圖示；分類不存在時回 400
// @Tags        links
// @Accept      json
// @Produce     json
// @Param       body body     dto.CreateLinkRequest true "連結資料"
// @Success     200  {object} dto.IDResponse
// @Failure     400  {object} dto.HTTPError
// @Failure     401  {object} dto.HTTPError
// @Security    BearerAuth
// @Router      /links [post]
func CreateLinkHandler(catalog Catalog) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req dto.CreateLinkRequest
		if ok, err := handler.BindAndValidate(c, &req); !ok {
			return err
		}
		l := &model.Link{
			CategoryID:  req.CategoryID,
			Name:        req.Name,
			URL:         req.URL,
			Description: req.Description,
		}
		if err := catalog.CreateLink(c.Request().Context(), l); err != nil {
			return handler.Error(c, err)
		}
		return c.JSON(http.StatusOK, dto.IDResponse{ID: l.ID})
	}
}

// UpdateLinkHandler 更新連結
// @Summary     Update link
// @Tags        links
// @Accept      json
// @Produce     json
// @Param       id   path     int                   true "連結 ID"
// @Param       body body     dto.UpdateLinkRequest true "連結資料"
// @Success     200  {object} dto.SuccessResponse
// @Failure     400  {object} dto.HTTPError
// @Failure     401  {object} dto.HTTPError
// @Failure     404  {object} dto.HTTPError
// @Security    BearerAuth
// @Router      /links/{id} [put]
func UpdateLinkHandler(catalog Catalog) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := handler.ParamID(c, "id")
		if err != nil {
			return handler.BadRequest(c, err.Error())
		}
		var req dto.UpdateLinkRequest
		if ok, err := handler.BindAndValidate(c, &req); !ok {
			return err
		}
		l := &model.Link{ID: id, Name: req.Name, URL: req.URL, Description: req.Description}
		if err := catalog.UpdateLink(c.Request().Context(), l); err != nil {
			return handler.Error(c, err)
		}
		return c.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
	}
}

// DeleteLinkHandler 刪除連結，其造訪紀錄一併刪除
// @Summary     Delete link
// @Tags        links
// @Produce     json
// @Param       id  path     int true "連結 ID"
// @Success     200 {object} dto.SuccessResponse
// @Failure     401 {object} dto.HTTPError
// @Failure     404 {object} dto.HTTPError
// @Security    BearerAuth
// @Router      /links/{id} [delete]
func DeleteLinkHandler(catalog Catalog) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := handler.ParamID(c, "id")
		if err != nil {
			return handler.BadRequest(c, err.Error())
		}
		if err := catalog.DeleteLink(c.Request().Context(), id); err != nil {
			return handler.Error(c, err)
		}
		return c.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
	}
}

// VisitHandler 記錄一次造訪
// @Summary     Record visit
// @Description 造訪次數加一並寫入造訪紀錄 (IP 優先取 CF-Connecting-IP)
// @Tags        links
// @Produce     json
// @Param       id  path     int true "連結 ID"
// @Success     200 {object} dto.SuccessResponse
// @Failure     400 {object} dto.HTTPError
// @Failure     404 {object} dto.HTTPError
// @Router      /links/{id}/visit [post]
func VisitHandler(catalog Catalog) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := handler.ParamID(c, "id")
		if err != nil {
			return handler.BadRequest(c, err.Error())
		}
		ip := c.Request().Header.Get(HeaderCFConnectingIP)
		if ip == "" {
			ip = c.RealIP()
		}
		if err := catalog.RecordVisit(c.Request().Context(), id, optional(ip), optional(c.Request().UserAgent())); err != nil {
			return handler.Error(c, err)
		}
		return c.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
