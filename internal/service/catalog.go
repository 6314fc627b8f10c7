// File: internal/service/catalog.go
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"link-directory/internal/cache"
	"link-directory/internal/database"
	"link-directory/internal/model"
	"link-directory/internal/store"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/gommon/log"
	"github.com/redis/go-redis/v9"
)

// CategoriesCacheKey 分類列表 (含巢狀連結) 的快取鍵前綴，實際鍵為 "<前綴>:<世代>"
const CategoriesCacheKey = "catalog:categories"

// CategoriesGenerationKey 分類列表的世代計數器，每次異動遞增
const CategoriesGenerationKey = "catalog:categories:gen"

func categoriesKey(gen string) string { return CategoriesCacheKey + ":" + gen }

var (
	jsonMarshal   = json.Marshal
	jsonUnmarshal = json.Unmarshal

	listCategoriesFn  = store.ListCategories
	listLinksFn       = store.ListLinks
	createCategoryFn  = store.CreateCategory
	updateCategoryFn  = store.UpdateCategory
	deleteCategoryFn  = store.DeleteCategory
	createLinkFn      = store.CreateLink
	updateLinkFn      = store.UpdateLink
	deleteLinkFn      = store.DeleteLink
	incrementVisitsFn = store.IncrementVisits
	createVisitLogFn  = store.CreateVisitLog
)

// Catalog 管理分類、連結與造訪紀錄；列表以 Redis 做 read-through 快取。
// 快取鍵綁定讀取當下的世代，異動後遞增世代，舊世代的寫入不會再被讀到。
// 造訪次數不遞增世代，因此列表中的 visits 最多落後一個 TTL。
type Catalog struct {
	db     database.DB
	cache  cache.Cache
	icons  IconResolver
	ttl    time.Duration
	logger Logger
}

func NewCatalog(db database.DB, c cache.Cache, icons IconResolver, ttl time.Duration, logger Logger) *Catalog {
	if logger == nil {
		logger = log.New("catalog")
	}
	return &Catalog{db: db, cache: c, icons: icons, ttl: ttl, logger: logger}
}

// ListCategories 回傳所有分類，每個分類附帶其連結 (無連結時為空陣列)
func (c *Catalog) ListCategories(ctx context.Context) ([]model.Category, error) {
	// 世代須在讀資料庫前取得
	gen, cacheable := c.generation(ctx)
	if cacheable {
		if cached, ok := c.cached(ctx, gen); ok {
			return cached, nil
		}
	}

	cats, err := listCategoriesFn(ctx, c.db)
	if err != nil {
		return nil, fmt.Errorf("ListCategories: %w", err)
	}
	links, err := listLinksFn(ctx, c.db)
	if err != nil {
		return nil, fmt.Errorf("ListCategories: %w", err)
	}

	byCategory := make(map[int64][]model.Link, len(cats))
	for _, l := range links {
		byCategory[l.CategoryID] = append(byCategory[l.CategoryID], l)
	}
	out := make([]model.Category, 0, len(cats))
	for _, cat := range cats {
		cat.Links = byCategory[cat.ID]
		if cat.Links == nil {
			cat.Links = []model.Link{}
		}
		out = append(out, cat)
	}

	if cacheable {
		c.store(ctx, gen, out)
	}
	return out, nil
}

// generation 讀取目前世代；計數器不存在視為 "0"，Redis 錯誤時略過快取
func (c *Catalog) generation(ctx context.Context) (string, bool) {
	gen, err := c.cache.Get(ctx, CategoriesGenerationKey).Result()
	switch {
	case errors.Is(err, redis.Nil):
		return "0", true
	case err != nil:
		c.logger.Warnf("catalog cache generation: %v", err)
		return "", false
	}
	return gen, true
}

func (c *Catalog) cached(ctx context.Context, gen string) ([]model.Category, bool) {
	raw, err := c.cache.Get(ctx, categoriesKey(gen)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warnf("catalog cache get: %v", err)
		}
		return nil, false
	}
	var cats []model.Category
	if err := jsonUnmarshal(raw, &cats); err != nil {
		c.logger.Warnf("catalog cache decode: %v", err)
		return nil, false
	}
	return cats, true
}

func (c *Catalog) store(ctx context.Context, gen string, cats []model.Category) {
	raw, err := jsonMarshal(cats)
	if err != nil {
		c.logger.Warnf("catalog cache encode: %v", err)
		return
	}
	if err := c.cache.Set(ctx, categoriesKey(gen), raw, c.ttl).Err(); err != nil {
		c.logger.Warnf("catalog cache set: %v", err)
	}
}

// Invalidate 遞增世代讓現有列表快取失效；失敗只記錄，資料庫異動已完成
func (c *Catalog) Invalidate(ctx context.Context) {
	if err := c.cache.Incr(ctx, CategoriesGenerationKey).Err(); err != nil {
		c.logger.Warnf("catalog cache invalidate: %v", err)
	}
}

func (c *Catalog) CreateCategory(ctx context.Context, cat *model.Category) error {
	if cat.Name == "" {
		return invalid("name is required")
	}
	if err := createCategoryFn(ctx, c.db, cat); err != nil {
		return fmt.Errorf("CreateCategory: %w", err)
	}
	c.Invalidate(ctx)
	return nil
}

func (c *Catalog) UpdateCategory(ctx context.Context, cat *model.Category) error {
	if cat.Name == "" {
		return invalid("name is required")
	}
	if err := updateCategoryFn(ctx, c.db, cat); err != nil {
		return fmt.Errorf("UpdateCategory: %w", err)
	}
	c.Invalidate(ctx)
	return nil
}

// DeleteCategory 分類仍被連結或投稿引用時拒絕刪除
func (c *Catalog) DeleteCategory(ctx context.Context, id int64) error {
	if err := deleteCategoryFn(ctx, c.db, id); err != nil {
		return fmt.Errorf("DeleteCategory: %w", err)
	}
	c.Invalidate(ctx)
	return nil
}

// CreateLink 由管理員直接新增連結，寫入前先解析網站圖示
func (c *Catalog) CreateLink(ctx context.Context, l *model.Link) error {
	if l.Name == "" || l.URL == "" || l.CategoryID == 0 {
		return invalid("name, url and category_id are required")
	}
	l.IconURL = c.icons.Resolve(ctx, l.URL)
	if err := createLinkFn(ctx, c.db, l); err != nil {
		return fmt.Errorf("CreateLink: %w", err)
	}
	c.Invalidate(ctx)
	return nil
}

func (c *Catalog) UpdateLink(ctx context.Context, l *model.Link) error {
	if l.Name == "" || l.URL == "" {
		return invalid("name and url are required")
	}
	l.IconURL = c.icons.Resolve(ctx, l.URL)
	if err := updateLinkFn(ctx, c.db, l); err != nil {
		return fmt.Errorf("UpdateLink: %w", err)
	}
	c.Invalidate(ctx)
	return nil
}

func (c *Catalog) DeleteLink(ctx context.Context, id int64) error {
	if err := deleteLinkFn(ctx, c.db, id); err != nil {
		return fmt.Errorf("DeleteLink: %w", err)
	}
	c.Invalidate(ctx)
	return nil
}

// RecordVisit 在同一交易內遞增造訪次數並寫入造訪紀錄；連結不存在回傳 store.ErrNotFound
func (c *Catalog) RecordVisit(ctx context.Context, linkID int64, ip, userAgent *string) error {
	err := database.WithTx(ctx, c.db, func(tx pgx.Tx) error {
		if err := incrementVisitsFn(ctx, tx, linkID); err != nil {
			return err
		}
		return createVisitLogFn(ctx, tx, &model.VisitLog{
			LinkID:    linkID,
			IPAddress: ip,
			UserAgent: userAgent,
		})
	})
	if err != nil {
		return fmt.Errorf("RecordVisit: %w", err)
	}
	return nil
}
