package repo

import (
	"context"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"

	"github.com/vila-abandonada/backend/internal/model"
	"github.com/vila-abandonada/backend/internal/repo/selector"
)

type Connection struct {
	db  *bun.DB
	sel selector.S[model.Connection]
}

func NewConnection(db *bun.DB) *Connection {
	return &Connection{db: db, sel: selector.New[model.Connection](db)}
}

func (r *Connection) GetConnections(ctx context.Context) ([]*model.Connection, error) {
	return r.sel.SelectMany(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Order("id ASC")
	})
}

func (r *Connection) GetConnectionsFrom(ctx context.Context, fromLocationID string) ([]*model.Connection, error) {
	return r.sel.SelectMany(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("c.from_location_id = ?", fromLocationID).Order("id ASC")
	})
}

// UpsertConnection creates the edge or relabels the existing edge between the same pair.
func (r *Connection) UpsertConnection(ctx context.Context, db bun.IDB, conn *model.Connection) error {
	_, err := db.NewInsert().
		Model(conn).
		On("CONFLICT (from_location_id, to_location_id) DO UPDATE").
		Set("label = EXCLUDED.label").
		Returning("*").
		Exec(ctx)
	return errors.Wrap(err, "upsert connection")
}

func (r *Connection) DeleteFrom(ctx context.Context, db bun.IDB, fromLocationID string) error {
	_, err := db.NewDelete().
		Model((*model.Connection)(nil)).
		Where("from_location_id = ?", fromLocationID).
		Exec(ctx)
	return errors.Wrap(err, "delete outgoing connections")
}

func (r *Connection) DeleteConnection(ctx context.Context, id int64) (int64, error) {
	res, err := r.db.NewDelete().
		Model((*model.Connection)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "delete connection")
	}
	return res.RowsAffected()
}
