package store

import (
	"context"
	"errors"
	"fmt"

	"link-directory/internal/database"
	"link-directory/internal/model"

	"github.com/jackc/pgx/v5"
)

// CreateSubmission 新增一筆 pending 投稿，分類不存在時回傳 ErrCategoryNotFound
func CreateSubmission(ctx context.Context, db database.Querier, s *model.Submission) error {
	row := db.QueryRow(ctx,
		`INSERT INTO submissions (user_id, category_id, name, url, description, status)
		 VALUES ($1, $2, $3, $4, $5, 'pending')
		 RETURNING id, status, created_at, updated_at`,
		s.UserID,
		s.CategoryID,
		s.Name,
		s.URL,
		s.Description,
	)
	if err := row.Scan(&s.ID, &s.Status, &s.CreatedAt, &s.UpdatedAt); err != nil {
		if pgErrorCode(err) == pgForeignKeyViolation {
			return fmt.Errorf("CreateSubmission: %w", ErrCategoryNotFound)
		}
		return fmt.Errorf("CreateSubmission: %w", err)
	}
	return nil
}

func GetSubmission(ctx context.Context, db database.Querier, id int64) (*model.Submission, error) {
	row := db.QueryRow(ctx,
		`SELECT id, user_id, category_id, name, url, description, status, admin_comment, created_at, updated_at
		 FROM submissions WHERE id = $1`,
		id,
	)
	s := &model.Submission{}
	if err := row.Scan(
		&s.ID,
		&s.UserID,
		&s.CategoryID,
		&s.Name,
		&s.URL,
		&s.Description,
		&s.Status,
		&s.AdminComment,
		&s.CreatedAt,
		&s.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("GetSubmission: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("GetSubmission: %w", err)
	}
	return s, nil
}

// ListPendingSubmissions 依建立時間新到舊排序，附帶投稿者 email
func ListPendingSubmissions(ctx context.Context, db database.Querier) ([]model.Submission, error) {
	rows, err := db.Query(ctx,
		`SELECT s.id, s.user_id, s.category_id, s.name, s.url, s.description, s.status,
		        s.admin_comment, s.created_at, s.updated_at, u.email
		 FROM submissions s
		 JOIN users u ON s.user_id = u.id
		 WHERE s.status = 'pending'
		 ORDER BY s.created_at DESC, s.id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("ListPendingSubmissions: %w", err)
	}
	defer rows.Close()

	list := []model.Submission{}
	for rows.Next() {
		var s model.Submission
		if err := rows.Scan(
			&s.ID,
			&s.UserID,
			&s.CategoryID,
			&s.Name,
			&s.URL,
			&s.Description,
			&s.Status,
			&s.AdminComment,
			&s.CreatedAt,
			&s.UpdatedAt,
			&s.UserEmail,
		); err != nil {
			return nil, fmt.Errorf("ListPendingSubmissions: %w", err)
		}
		list = append(list, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListPendingSubmissions: %w", err)
	}
	return list, nil
}

// ResolveSubmission 僅在 status 仍為 pending 時寫入審核結果 (check-and-set)，
// 已被其他審核搶先時回傳 ErrConflict
func ResolveSubmission(ctx context.Context, db database.Querier, id int64, status string, comment *string) error {
	tag, err := db.Exec(ctx,
		`UPDATE submissions
		 SET status = $1, admin_comment = $2, updated_at = now()
		 WHERE id = $3 AND status = 'pending'`,
		status,
		comment,
		id,
	)
	if err != nil {
		return fmt.Errorf("ResolveSubmission: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("ResolveSubmission: %w", ErrConflict)
	}
	return nil
}
