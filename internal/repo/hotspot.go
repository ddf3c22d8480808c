package repo

import (
	"context"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"

	"github.com/vila-abandonada/backend/internal/model"
)

type Hotspot struct {
	db *bun.DB
}

func NewHotspot(db *bun.DB) *Hotspot {
	return &Hotspot{db: db}
}

func (r *Hotspot) selectWithItemImage(hotspots *[]*model.Hotspot) *bun.SelectQuery {
	return r.db.NewSelect().
		Model(hotspots).
		ColumnExpr("h.*").
		ColumnExpr("i.image AS item_image").
		Join("LEFT JOIN items AS i ON i.id = h.item_id AND h.type = ?", model.HotspotTypeItem).
		OrderExpr("h.id ASC")
}

// GetHotspots returns every hotspot in insertion order, with item_image attached to item hotspots.
func (r *Hotspot) GetHotspots(ctx context.Context) ([]*model.Hotspot, error) {
	hotspots := make([]*model.Hotspot, 0)
	err := r.selectWithItemImage(&hotspots).Scan(ctx)
	return hotspots, err
}

func (r *Hotspot) GetHotspotsByLocationID(ctx context.Context, locationID string) ([]*model.Hotspot, error) {
	hotspots := make([]*model.Hotspot, 0)
	err := r.selectWithItemImage(&hotspots).Where("h.location_id = ?", locationID).Scan(ctx)
	return hotspots, err
}

func (r *Hotspot) DeleteByLocationID(ctx context.Context, db bun.IDB, locationID string) error {
	_, err := db.NewDelete().
		Model((*model.Hotspot)(nil)).
		Where("location_id = ?", locationID).
		Exec(ctx)
	return errors.Wrap(err, "delete hotspots")
}

func (r *Hotspot) InsertHotspots(ctx context.Context, db bun.IDB, hotspots []*model.Hotspot) error {
	if len(hotspots) == 0 {
		return nil
	}
	_, err := db.NewInsert().Model(&hotspots).Exec(ctx)
	return errors.Wrap(err, "insert hotspots")
}

// TransferItems re-points the item hotspots of one location to another, optionally
// restricted to a single item id.
func (r *Hotspot) TransferItems(ctx context.Context, fromLocationID, toLocationID, itemID string) (int64, error) {
	q := r.db.NewUpdate().
		Model((*model.Hotspot)(nil)).
		Set("location_id = ?", toLocationID).
		Where("location_id = ?", fromLocationID).
		Where("type = ?", model.HotspotTypeItem)
	if itemID != "" {
		q = q.Where("item_id = ?", itemID)
	}

	res, err := q.Exec(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "transfer item hotspots")
	}
	return res.RowsAffected()
}
