package repo

import (
	"context"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"

	"github.com/vila-abandonada/backend/internal/model"
)

type Waitlist struct {
	db *bun.DB
}

func NewWaitlist(db *bun.DB) *Waitlist {
	return &Waitlist{db: db}
}

func (r *Waitlist) EmailExists(ctx context.Context, email string) (bool, error) {
	return r.db.NewSelect().
		Model((*model.WaitlistEntry)(nil)).
		Where("w.email = ?", email).
		Exists(ctx)
}

func (r *Waitlist) CreateEntry(ctx context.Context, entry *model.WaitlistEntry) error {
	_, err := r.db.NewInsert().Model(entry).Exec(ctx)
	return errors.Wrap(err, "insert waitlist entry")
}
