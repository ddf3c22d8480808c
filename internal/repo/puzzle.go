package repo

import (
	"context"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"

	"github.com/vila-abandonada/backend/internal/model"
	"github.com/vila-abandonada/backend/internal/repo/selector"
)

type Puzzle struct {
	db  *bun.DB
	sel selector.S[model.LocationPuzzle]
}

func NewPuzzle(db *bun.DB) *Puzzle {
	return &Puzzle{db: db, sel: selector.New[model.LocationPuzzle](db)}
}

func (r *Puzzle) GetPuzzles(ctx context.Context) ([]*model.LocationPuzzle, error) {
	return r.sel.SelectMany(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Order("location_id ASC")
	})
}

func (r *Puzzle) GetPuzzleByLocationID(ctx context.Context, locationID string) (*model.LocationPuzzle, error) {
	return r.sel.SelectOne(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("lp.location_id = ?", locationID)
	})
}

func (r *Puzzle) UpsertPuzzle(ctx context.Context, db bun.IDB, puzzle *model.LocationPuzzle) error {
	_, err := db.NewInsert().
		Model(puzzle).
		On("CONFLICT (location_id) DO UPDATE").
		Set("puzzle_id = EXCLUDED.puzzle_id").
		Set("puzzle_data = EXCLUDED.puzzle_data").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	return errors.Wrap(err, "upsert puzzle")
}

func (r *Puzzle) DeleteByLocationID(ctx context.Context, db bun.IDB, locationID string) error {
	_, err := db.NewDelete().
		Model((*model.LocationPuzzle)(nil)).
		Where("location_id = ?", locationID).
		Exec(ctx)
	return errors.Wrap(err, "delete puzzle")
}
