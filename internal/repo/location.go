package repo

import (
	"context"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"

	"github.com/vila-abandonada/backend/internal/model"
	"github.com/vila-abandonada/backend/internal/repo/selector"
)

type Location struct {
	db  *bun.DB
	sel selector.S[model.Location]
}

func NewLocation(db *bun.DB) *Location {
	return &Location{db: db, sel: selector.New[model.Location](db)}
}

func (r *Location) GetLocations(ctx context.Context) ([]*model.Location, error) {
	return r.sel.SelectMany(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Order("display_order ASC", "id ASC")
	})
}

func (r *Location) GetLocationByID(ctx context.Context, id string) (*model.Location, error) {
	return r.sel.SelectOne(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("l.id = ?", id)
	})
}

// UpsertLocation inserts loc or overwrites every mutable column of the existing row.
// created_at is kept; updated_at takes loc.UpdatedAt.
func (r *Location) UpsertLocation(ctx context.Context, db bun.IDB, loc *model.Location) error {
	_, err := db.NewInsert().
		Model(loc).
		On("CONFLICT (id) DO UPDATE").
		Set("name = EXCLUDED.name").
		Set("description = EXCLUDED.description").
		Set("background_image = EXCLUDED.background_image").
		Set("display_order = EXCLUDED.display_order").
		Set("is_final_scene = EXCLUDED.is_final_scene").
		Set("credits = EXCLUDED.credits").
		Set("transition_video = EXCLUDED.transition_video").
		Set("dramatic_messages = EXCLUDED.dramatic_messages").
		Set("dramatic_message_duration = EXCLUDED.dramatic_message_duration").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	return errors.Wrap(err, "upsert location")
}

// DeleteLocation removes the location; dependents go through ON DELETE CASCADE.
func (r *Location) DeleteLocation(ctx context.Context, id string) (int64, error) {
	res, err := r.db.NewDelete().
		Model((*model.Location)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "delete location")
	}
	return res.RowsAffected()
}

func (r *Location) Exists(ctx context.Context, db bun.IDB, id string) (bool, error) {
	return db.NewSelect().
		Model((*model.Location)(nil)).
		Where("l.id = ?", id).
		Exists(ctx)
}

// GetDisplayOrder returns the stored display order of a location and whether it exists.
func (r *Location) GetDisplayOrder(ctx context.Context, db bun.IDB, id string) (int, bool, error) {
	var order []int
	err := db.NewSelect().
		Model((*model.Location)(nil)).
		Column("display_order").
		Where("l.id = ?", id).
		Scan(ctx, &order)
	if err != nil {
		return 0, false, errors.Wrap(err, "get display order")
	}
	if len(order) == 0 {
		return 0, false, nil
	}
	return order[0], true, nil
}
