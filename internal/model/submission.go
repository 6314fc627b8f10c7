// File: internal/model/submission.go
package model

import "time"

const (
	SubmissionPending  = "pending"
	SubmissionApproved = "approved"
	SubmissionRejected = "rejected"
)

type Submission struct {
	ID           int64     `db:"id" json:"id"`
	UserID       int64     `db:"user_id" json:"user_id"`
	CategoryID   int64     `db:"category_id" json:"category_id"`
	Name         string    `db:"name" json:"name"`
	URL          string    `db:"url" json:"url"`
	Description  string    `db:"description" json:"description"`
	Status       string    `db:"status" json:"status"`
	AdminComment *string   `db:"admin_comment" json:"admin_comment"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`

	// 僅列表查詢時 JOIN users 填入
	UserEmail string `db:"user_email" json:"user_email,omitempty"`
}
