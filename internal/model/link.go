// File: internal/model/link.go
package model

import "time"

type Link struct {
	ID          int64     `db:"id" json:"id"`
	CategoryID  int64     `db:"category_id" json:"category_id"`
	Name        string    `db:"name" json:"name"`
	URL         string    `db:"url" json:"url"`
	Description string    `db:"description" json:"description"`
	IconURL     *string   `db:"icon_url" json:"icon_url"`
	Visits      int64     `db:"visits" json:"visits"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// VisitLog 每次造訪新增一筆，不更新也不刪除
type VisitLog struct {
	ID        int64     `db:"id" json:"id"`
	LinkID    int64     `db:"link_id" json:"link_id"`
	IPAddress *string   `db:"ip_address" json:"ip_address"`
	UserAgent *string   `db:"user_agent" json:"user_agent"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
