// File: internal/router/router.go
package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"link-directory/internal/cache"
	"link-directory/internal/database"
	"link-directory/internal/handler"
	"link-directory/internal/handler/auth"
	"link-directory/internal/handler/categories"
	"link-directory/internal/handler/links"
	"link-directory/internal/handler/submissions"
	"link-directory/internal/middleware"
	"link-directory/internal/service"
)

// Deps 路由所需的共用物件，啟動時建立一次
type Deps struct {
	DB           database.DB
	Cache        cache.Cache
	Tokens       *service.TokenIssuer
	Catalog      *service.Catalog
	Submissions  *service.SubmissionWorkflow
	AllowOrigins []string
}

// Setup 註冊 CORS、所有路由與中介層
func Setup(e *echo.Echo, d Deps) {
	origins := d.AllowOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: origins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
	}))

	requireAuth := middleware.RequireAuth(d.Tokens)
	requireAdmin := middleware.RequireAdmin(d.Tokens)

	api := e.Group("/api")

	// 健康檢查
	api.GET("/ping", handler.PingHandler(d.DB, d.Cache))

	// 註冊與登入
	api.POST("/register", auth.RegisterHandler(d.DB))
	api.POST("/login", auth.LoginHandler(d.DB, d.Tokens))

	// 分類：公開讀取，管理員異動
	api.GET("/categories", categories.ListCategoriesHandler(d.Catalog))
	api.POST("/categories", categories.CreateCategoryHandler(d.Catalog), requireAdmin)
	api.PUT("/categories/:id", categories.UpdateCategoryHandler(d.Catalog), requireAdmin)
	api.DELETE("/categories/:id", categories.DeleteCategoryHandler(d.Catalog), requireAdmin)

	// 連結
	api.POST("/links", links.CreateLinkHandler(d.Catalog), requireAdmin)
	api.PUT("/links/:id", links.UpdateLinkHandler(d.Catalog), requireAdmin)
	api.DELETE("/links/:id", links.DeleteLinkHandler(d.Catalog), requireAdmin)
	api.POST("/links/:id/visit", links.VisitHandler(d.Catalog))

	// 投稿
	api.POST("/submissions", submissions.CreateSubmissionHandler(d.Submissions), requireAuth)
	api.GET("/submissions", submissions.ListSubmissionsHandler(d.Submissions), requireAdmin)
	api.POST("/submissions/:id/review", submissions.ReviewSubmissionHandler(d.Submissions), requireAdmin)

	// Swagger UI
	e.GET("/swagger/*", echoSwagger.WrapHandler)
}
