package store

import (
	"context"
	"errors"
	"fmt"

	"link-directory/internal/database"
	"link-directory/internal/model"

	"github.com/jackc/pgx/v5"
)

const userColumns = `id, email, password_hash, is_admin, created_at, updated_at`

func GetUserByEmail(ctx context.Context, db database.Querier, email string) (*model.User, error) {
	row := db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`,
		email,
	)
	u := &model.User{}
	if err := row.Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.IsAdmin,
		&u.CreatedAt,
		&u.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("GetUserByEmail: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("GetUserByEmail: %w", err)
	}
	return u, nil
}

// CreateUser 新增使用者，email 重複時回傳 ErrEmailTaken
func CreateUser(ctx context.Context, db database.Querier, u *model.User) (*model.User, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO users (email, password_hash, is_admin)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at, updated_at`,
		u.Email,
		u.PasswordHash,
		u.IsAdmin,
	)
	if err := row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if pgErrorCode(err) == pgUniqueViolation {
			return nil, fmt.Errorf("CreateUser: %w", ErrEmailTaken)
		}
		return nil, fmt.Errorf("CreateUser: %w", err)
	}
	return u, nil
}

// EnsureAdmin 建立管理員帳號；email 已存在時不做任何變更，回傳是否新建
func EnsureAdmin(ctx context.Context, db database.Querier, email, passwordHash string) (bool, error) {
	tag, err := db.Exec(ctx,
		`INSERT INTO users (email, password_hash, is_admin)
		 VALUES ($1, $2, TRUE)
		 ON CONFLICT (email) DO NOTHING`,
		email,
		passwordHash,
	)
	if err != nil {
		return false, fmt.Errorf("EnsureAdmin: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}
