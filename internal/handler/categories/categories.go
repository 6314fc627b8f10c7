// File: internal/handler/categories/categories.go
package categories

import (
	"context"
	"net/http"

	"link-directory/internal/dto"
	"link-directory/internal/handler"
	"link-directory/internal/model"

	"github.com/labstack/echo/v4"
)

// Catalog 為分類相關操作，由 *service.Catalog 實作
type Catalog interface {
	ListCategories(ctx context.Context) ([]model.Category, error)
	CreateCategory(ctx context.Context, c *model.Category) error
	UpdateCategory(ctx context.Context, c *model.Category) error
	DeleteCategory(ctx context.Context, id int64) error
}

// ListCategoriesHandler 列出所有分類與其連結
// @Summary     List categories
// @Description 回傳所有分類，每個分類附帶其連結 (無連結時為空陣列)
// @Tags        categories
// @Produce     json
// @Success     200 {array}  model.Category
// @Failure     500 {object} dto.HTTPError
// @Router      /categories [get]
func ListCategoriesHandler(catalog Catalog) echo.HandlerFunc {
	return func(c echo.Context) error {
		list, err := catalog.ListCategories(c.Request().Context())
		if err != nil {
			return handler.Error(c, err)
		}
		return c.JSON(http.StatusOK, list)
	}
}

// CreateCategoryHandler 新增分類
// @Summary     Create category
// @Tags        categories
// @Accept      json
// @Produce     json
// @Param       body body     dto.CategoryRequest true "分類資料"
// @Success     200  {object} dto.IDResponse
// @Failure     400  {object} dto.HTTPError
// @Failure     401  {object} dto.HTTPError
// @Security    BearerAuth
// @Router      /categories [post]
func CreateCategoryHandler(catalog Catalog) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req dto.CategoryRequest
		if ok, err := handler.BindAndValidate(c, &req); !ok {
			return err
		}
		cat := &model.Category{Name: req.Name, Emoji: req.Emoji, Description: req.Description}
		if err := catalog.CreateCategory(c.Request().Context(), cat); err != nil {
			return handler.Error(c, err)
		}
		return c.JSON(http.StatusOK, dto.IDResponse{ID: cat.ID})
	}
}

// UpdateCategoryHandler 更新分類
// @Summary     Update category
// @Tags        categories
// @Accept      json
// @Produce     json
// @Param       id   path     int                 true "分類 ID"
// @Param       body body     dto.CategoryRequest true "分類資料"
// @Success     200  {object} dto.SuccessResponse
// @Failure     400  {object} dto.HTTPError
// @Failure     401  {object} dto.HTTPError
// @Failure     404  {object} dto.HTTPError
// @Security    BearerAuth
// @Router      /categories/{id} [put]
func UpdateCategoryHandler(catalog Catalog) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := handler.ParamID(c, "id")
		if err != nil {
			return handler.BadRequest(c, err.Error())
		}
		var req dto.CategoryRequest
		if ok, err := handler.BindAndValidate(c, &req); !ok {
			return err
		}
		cat := &model.Category{ID: id, Name: req.Name, Emoji: req.Emoji, Description: req.Description}
		if err := catalog.UpdateCategory(c.Request().Context(), cat); err != nil {
			return handler.Error(c, err)
		}
		return c.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
	}
}

// DeleteCategoryHandler 刪除分類；仍有連結或投稿引用時回 409
// @Summary     Delete category
// @Tags        categories
// @Produce     json
// @Param       id  path     int true "分類 ID"
// @Success     200 {object} dto.SuccessResponse
// @Failure     401 {object} dto.HTTPError
// @Failure     404 {object} dto.HTTPError
// @Failure     409 {object} dto.HTTPError
// @Security    BearerAuth
// @Router      /categories/{id} [delete]
func DeleteCategoryHandler(catalog Catalog) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := handler.ParamID(c, "id")
		if err != nil {
			return handler.BadRequest(c, err.Error())
		}
		if err := catalog.DeleteCategory(c.Request().Context(), id); err != nil {
			return handler.Error(c, err)
		}
		return c.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
	}
}
