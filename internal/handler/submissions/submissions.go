// File: internal/handler/submissions/submissions.go
package submissions

import (
	"context"
	"net/http"

	"link-directory/internal/dto"
	"link-directory/internal/handler"
	"link-directory/internal/middleware"
	"link-directory/internal/model"
	"link-directory/internal/service"

	"github.com/labstack/echo/v4"
)

// Workflow 由 *service.SubmissionWorkflow 實作
type Workflow interface {
	Create(ctx context.Context, userID int64, in service.SubmissionInput) (*model.Submission, error)
	ListPending(ctx context.Context) ([]model.Submission, error)
	Review(ctx context.Context, id int64, status string, comment *string) error
}

// CreateSubmissionHandler 登入使用者投稿新連結
// @Summary     Submit link
// @Description 以 pending 狀態建立投稿，等待管理員審核
// @Tags        submissions
// @Accept      json
// @Produce     json
// @Param       body body     dto.CreateSubmissionRequest true "投稿內容"
// @Success     200  {object} dto.SubmissionResponse
// @Failure     400  {object} dto.HTTPError
// @Failure     401  {object} dto.HTTPError
// @Failure     500  {object} dto.HTTPError
// @Security    BearerAuth
// @Router      /submissions [post]
func CreateSubmissionHandler(wf Workflow) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims := middleware.ClaimsFrom(c)
		if claims == nil {
			return c.JSON(http.StatusUnauthorized, dto.HTTPError{Error: "unauthorized"})
		}
		var req dto.CreateSubmissionRequest
		if ok, err := handler.BindAndValidate(c, &req); !ok {
			return err
		}
		s, err := wf.Create(c.Request().Context(), claims.ID, service.SubmissionInput{
			CategoryID:  req.CategoryID,
			Name:        req.Name,
			URL:         req.URL,
			Description: req.Description,
		})
		if err != nil {
			return handler.Error(c, err)
		}
		c.Logger().Infof("submission %d created by user %d", s.ID, claims.ID)
		return c.JSON(http.StatusOK, dto.SubmissionResponse{ID: s.ID, Status: s.Status})
	}
}

// ListSubmissionsHandler 列出待審投稿 (新到舊)
// @Summary     List pending submissions
// @Tags        submissions
// @Produce     json
// @Success     200 {array}  model.Submission
// @Failure     401 {object} dto.HTTPError
// @Failure     500 {object} dto.HTTPError
// @Security    BearerAuth
// @Router      /submissions [get]
func ListSubmissionsHandler(wf Workflow) echo.HandlerFunc {
	return func(c echo.Context) error {
		list, err := wf.ListPending(c.Request().Context())
		if err != nil {
			return handler.Error(c, err)
		}
		return c.JSON(http.StatusOK, list)
	}
}

// ReviewSubmissionHandler 審核投稿；核准時建立連結，已審核過回 409
// @Summary     Review submission
// @Tags        submissions
// @Accept      json
// @Produce     json
// @Param       id   path     int               true "投稿 ID"
// @Param       body body     dto.ReviewRequest true "審核結果"
// @Success     200  {object} dto.SuccessResponse
// @Failure     400  {object} dto.HTTPError
// @Failure     401  {object} dto.HTTPError
// @Failure     404  {object} dto.HTTPError
// @Failure     409  {object} dto.HTTPError
// @Failure     500  {object} dto.HTTPError
// @Security    BearerAuth
// @Router      /submissions/{id}/review [post]
func ReviewSubmissionHandler(wf Workflow) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := handler.ParamID(c, "id")
		if err != nil {
			return handler.BadRequest(c, err.Error())
		}
		var req dto.ReviewRequest
		if ok, err := handler.BindAndValidate(c, &req); !ok {
			return err
		}
		if err := wf.Review(c.Request().Context(), id, req.Status, req.AdminComment); err != nil {
			return handler.Error(c, err)
		}
		if claims := middleware.ClaimsFrom(c); claims != nil {
			c.Logger().Infof("submission %d %s by admin %d", id, req.Status, claims.ID)
		}
		return c.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
	}
}
