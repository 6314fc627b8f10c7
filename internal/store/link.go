package store

import (
	"context"
	"fmt"

	"link-directory/internal/database"
	"link-directory/internal/model"
)

func ListLinks(ctx context.Context, db database.Querier) ([]model.Link, error) {
	rows, err := db.Query(ctx,
		`SELECT id, category_id, name, url, description, icon_url, visits, created_at, updated_at
		 FROM links ORDER BY category_id, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("ListLinks: %w", err)
	}
	defer rows.Close()

	var list []model.Link
	for rows.Next() {
		var l model.Link
		if err := rows.Scan(
			&l.ID,
			&l.CategoryID,
			&l.Name,
			&l.URL,
			&l.Description,
			&l.IconURL,
			&l.Visits,
			&l.CreatedAt,
			&l.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("ListLinks: %w", err)
		}
		list = append(list, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListLinks: %w", err)
	}
	return list, nil
}

// CreateLink 分類不存在時回傳 ErrCategoryNotFound
func CreateLink(ctx context.Context, db database.Querier, l *model.Link) error {
	row := db.QueryRow(ctx,
		`INSERT INTO links (category_id, name, url, description, icon_url)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, visits, created_at, updated_at`,
		l.CategoryID,
		l.Name,
		l.URL,
		l.Description,
		l.IconURL,
	)
	if err := row.Scan(&l.ID, &l.Visits, &l.CreatedAt, &l.UpdatedAt); err != nil {
		if pgErrorCode(err) == pgForeignKeyViolation {
			return fmt.Errorf("CreateLink: %w", ErrCategoryNotFound)
		}
		return fmt.Errorf("CreateLink: %w", err)
	}
	return nil
}

func UpdateLink(ctx context.Context, db database.Querier, l *model.Link) error {
	tag, err := db.Exec(ctx,
		`UPDATE links
		 SET name = $1, url = $2, description = $3, icon_url = $4, updated_at = now()
		 WHERE id = $5`,
		l.Name,
		l.URL,
		l.Description,
		l.IconURL,
		l.ID,
	)
	if err != nil {
		return fmt.Errorf("UpdateLink: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("UpdateLink: %w", ErrNotFound)
	}
	return nil
}

func DeleteLink(ctx context.Context, db database.Querier, id int64) error {
	tag, err := db.Exec(ctx, `DELETE FROM links WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("DeleteLink: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("DeleteLink: %w", ErrNotFound)
	}
	return nil
}

// IncrementVisits 於單一 UPDATE 敘述內遞增
func IncrementVisits(ctx context.Context, db database.Querier, id int64) error {
	tag, err := db.Exec(ctx,
		`UPDATE links SET visits = visits + 1 WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("IncrementVisits: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("IncrementVisits: %w", ErrNotFound)
	}
	return nil
}

func CreateVisitLog(ctx context.Context, db database.Querier, v *model.VisitLog) error {
	row := db.QueryRow(ctx,
		`INSERT INTO visit_logs (link_id, ip_address, user_agent)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		v.LinkID,
		v.IPAddress,
		v.UserAgent,
	)
	if err := row.Scan(&v.ID, &v.CreatedAt); err != nil {
		if pgErrorCode(err) == pgForeignKeyViolation {
			return fmt.Errorf("CreateVisitLog: %w", ErrNotFound)
		}
		return fmt.Errorf("CreateVisitLog: %w", err)
	}
	return nil
}
