package repo

import (
	"context"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"

	"github.com/vila-abandonada/backend/internal/model"
	"github.com/vila-abandonada/backend/internal/repo/selector"
)

type DestructibleWall struct {
	db  *bun.DB
	sel selector.S[model.DestructibleWall]
}

func NewDestructibleWall(db *bun.DB) *DestructibleWall {
	return &DestructibleWall{db: db, sel: selector.New[model.DestructibleWall](db)}
}

func (r *DestructibleWall) GetWalls(ctx context.Context) ([]*model.DestructibleWall, error) {
	return r.sel.SelectMany(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Order("location_id ASC", "id ASC")
	})
}

func (r *DestructibleWall) GetWallsByLocationID(ctx context.Context, locationID string) ([]*model.DestructibleWall, error) {
	return r.sel.SelectMany(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("dw.location_id = ?", locationID).Order("id ASC")
	})
}

func (r *DestructibleWall) DeleteByLocationID(ctx context.Context, db bun.IDB, locationID string) error {
	_, err := db.NewDelete().
		Model((*model.DestructibleWall)(nil)).
		Where("location_id = ?", locationID).
		Exec(ctx)
	return errors.Wrap(err, "delete walls")
}

func (r *DestructibleWall) InsertWalls(ctx context.Context, db bun.IDB, walls []*model.DestructibleWall) error {
	if len(walls) == 0 {
		return nil
	}
	_, err := db.NewInsert().Model(&walls).Exec(ctx)
	return errors.Wrap(err, "insert walls")
}
