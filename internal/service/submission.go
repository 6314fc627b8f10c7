// File: internal/service/submission.go
package service

import (
	"context"
	"errors"
	"fmt"

	"link-directory/internal/database"
	"link-directory/internal/model"
	"link-directory/internal/store"

	"github.com/jackc/pgx/v5"
)

var (
	createSubmissionFn       = store.CreateSubmission
	getSubmissionFn          = store.GetSubmission
	listPendingSubmissionsFn = store.ListPendingSubmissions
	resolveSubmissionFn      = store.ResolveSubmission
)

// submissionTransitions 投稿只能由 pending 轉為終態一次
var submissionTransitions = map[string][]string{
	model.SubmissionPending: {model.SubmissionApproved, model.SubmissionRejected},
}

// ValidTransition 回報投稿狀態是否允許由 from 轉為 to
func ValidTransition(from, to string) bool {
	for _, next := range submissionTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// SubmissionInput 使用者投稿內容
type SubmissionInput struct {
	CategoryID  int64
	Name        string
	URL         string
	Description string
}

// SubmissionWorkflow 處理投稿建立、待審列表與審核
type SubmissionWorkflow struct {
	db      database.DB
	icons   IconResolver
	catalog *Catalog
}

func NewSubmissionWorkflow(db database.DB, icons IconResolver, catalog *Catalog) *SubmissionWorkflow {
	return &SubmissionWorkflow{db: db, icons: icons, catalog: catalog}
}

// Create 以 pending 狀態新增投稿；分類不存在時回傳 ErrValidation
func (w *SubmissionWorkflow) Create(ctx context.Context, userID int64, in SubmissionInput) (*model.Submission, error) {
	if in.Name == "" || in.URL == "" || in.CategoryID == 0 {
		return nil, invalid("name, url and category_id are required")
	}
	s := &model.Submission{
		UserID:      userID,
		CategoryID:  in.CategoryID,
		Name:        in.Name,
		URL:         in.URL,
		Description: in.Description,
	}
	if err := createSubmissionFn(ctx, w.db, s); err != nil {
		if errors.Is(err, store.ErrCategoryNotFound) {
			return nil, invalid(store.ErrCategoryNotFound.Error())
		}
		return nil, fmt.Errorf("Create: %w", err)
	}
	return s, nil
}

func (w *SubmissionWorkflow) ListPending(ctx context.Context) ([]model.Submission, error) {
	list, err := listPendingSubmissionsFn(ctx, w.db)
	if err != nil {
		return nil, fmt.Errorf("ListPending: %w", err)
	}
	return list, nil
}

// Review 將 pending 投稿轉為 approved 或 rejected；核准時於同一交易內建立連結。
// 投稿不存在回傳 store.ErrNotFound，已審核過回傳 store.ErrConflict。
func (w *SubmissionWorkflow) Review(ctx context.Context, id int64, status string, comment *string) error {
	if status != model.SubmissionApproved && status != model.SubmissionRejected {
		return invalid("status must be approved or rejected")
	}

	sub, err := getSubmissionFn(ctx, w.db, id)
	if err != nil {
		return fmt.Errorf("Review: %w", err)
	}
	if !ValidTransition(sub.Status, status) {
		return fmt.Errorf("Review: submission %d is %s: %w", id, sub.Status, store.ErrConflict)
	}

	approve := status == model.SubmissionApproved

	// 圖示查詢在交易開始前完成
	var icon *string
	if approve {
		icon = w.icons.Resolve(ctx, sub.URL)
	}

	err = database.WithTx(ctx, w.db, func(tx pgx.Tx) error {
		if err := resolveSubmissionFn(ctx, tx, id, status, comment); err != nil {
			return err
		}
		if !approve {
			return nil
		}
		return createLinkFn(ctx, tx, &model.Link{
			CategoryID:  sub.CategoryID,
			Name:        sub.Name,
			URL:         sub.URL,
			Description: sub.Description,
			IconURL:     icon,
		})
	})
	if err != nil {
		return fmt.Errorf("Review: %w", err)
	}

	if approve {
		w.catalog.Invalidate(ctx)
	}
	return nil
}
