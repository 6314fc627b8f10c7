package store

import (
	"context"
	"fmt"

	"link-directory/internal/database"
	"link-directory/internal/model"
)

func ListCategories(ctx context.Context, db database.Querier) ([]model.Category, error) {
	rows, err := db.Query(ctx,
		`SELECT id, name, emoji, description, created_at, updated_at
		 FROM categories ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("ListCategories: %w", err)
	}
	defer rows.Close()

	var list []model.Category
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Emoji, &c.Description, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("ListCategories: %w", err)
		}
		list = append(list, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListCategories: %w", err)
	}
	return list, nil
}

func CreateCategory(ctx context.Context, db database.Querier, c *model.Category) error {
	row := db.QueryRow(ctx,
		`INSERT INTO categories (name, emoji, description)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at, updated_at`,
		c.Name,
		c.Emoji,
		c.Description,
	)
	if err := row.Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return fmt.Errorf("CreateCategory: %w", err)
	}
	return nil
}

func UpdateCategory(ctx context.Context, db database.Querier, c *model.Category) error {
	tag, err := db.Exec(ctx,
		`UPDATE categories
		 SET name = $1, emoji = $2, description = $3, updated_at = now()
		 WHERE id = $4`,
		c.Name,
		c.Emoji,
		c.Description,
		c.ID,
	)
	if err != nil {
		return fmt.Errorf("UpdateCategory: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("UpdateCategory: %w", ErrNotFound)
	}
	return nil
}

// DeleteCategory 仍被連結或投稿引用時回傳 ErrCategoryInUse
func DeleteCategory(ctx context.Context, db database.Querier, id int64) error {
	tag, err := db.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		if pgErrorCode(err) == pgForeignKeyViolation {
			return fmt.Errorf("DeleteCategory: %w", ErrCategoryInUse)
		}
		return fmt.Errorf("DeleteCategory: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("DeleteCategory: %w", ErrNotFound)
	}
	return nil
}
