package repo

import (
	"context"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"

	"github.com/vila-abandonada/backend/internal/model"
	"github.com/vila-abandonada/backend/internal/repo/selector"
)

type Item struct {
	db  *bun.DB
	sel selector.S[model.Item]
}

func NewItem(db *bun.DB) *Item {
	return &Item{db: db, sel: selector.New[model.Item](db)}
}

func (r *Item) GetItems(ctx context.Context) ([]*model.Item, error) {
	return r.sel.SelectMany(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Order("id ASC")
	})
}

func (r *Item) GetItemByID(ctx context.Context, id string) (*model.Item, error) {
	return r.sel.SelectOne(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("i.id = ?", id)
	})
}

// UpsertItem keeps the catalog in sync with an item hotspot. The category type is
// only written on insert so that a curated type survives later saves.
func (r *Item) UpsertItem(ctx context.Context, db bun.IDB, item *model.Item) error {
	_, err := db.NewInsert().
		Model(item).
		On("CONFLICT (id) DO UPDATE").
		Set("name = EXCLUDED.name").
		Set("description = EXCLUDED.description").
		Set("image = EXCLUDED.image").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	return errors.Wrap(err, "upsert item")
}
