package repo

import (
	"context"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"

	"github.com/vila-abandonada/backend/internal/model"
)

type tableSpec struct {
	model       any
	foreignKeys []string
	indexes     map[string][]string
}

// tables is ordered so that every table comes after the tables it references.
var tables = []tableSpec{
	{model: (*model.Location)(nil)},
	{model: (*model.Item)(nil)},
	{
		model:       (*model.Hotspot)(nil),
		foreignKeys: []string{`("location_id") REFERENCES "locations" ("id") ON DELETE CASCADE`},
		indexes:     map[string][]string{"hotspots_location_id_idx": {"location_id"}},
	},
	{
		model:       (*model.LocationPuzzle)(nil),
		foreignKeys: []string{`("location_id") REFERENCES "locations" ("id") ON DELETE CASCADE`},
	},
	{
		model:       (*model.DestructibleWall)(nil),
		foreignKeys: []string{`("location_id") REFERENCES "locations" ("id") ON DELETE CASCADE`},
		indexes:     map[string][]string{"destructible_walls_location_id_idx": {"location_id"}},
	},
	{
		model: (*model.Connection)(nil),
		foreignKeys: []string{
			`("from_location_id") REFERENCES "locations" ("id") ON DELETE CASCADE`,
			`("to_location_id") REFERENCES "locations" ("id") ON DELETE CASCADE`,
		},
	},
	{model: (*model.WaitlistEntry)(nil)},
	{model: (*model.User)(nil)},
	{
		model:       (*model.PasswordResetToken)(nil),
		foreignKeys: []string{`("user_id") REFERENCES "users" ("id") ON DELETE CASCADE`},
		indexes:     map[string][]string{"password_reset_tokens_user_id_idx": {"user_id"}},
	},
}

// CreateSchema creates every table and index that does not exist yet.
func CreateSchema(ctx context.Context, db bun.IDB) error {
	for _, t := range tables {
		q := db.NewCreateTable().Model(t.model).IfNotExists()
		for _, fk := range t.foreignKeys {
			q = q.ForeignKey(fk)
		}
		if _, err := q.Exec(ctx); err != nil {
			return errors.Wrapf(err, "create table for %T", t.model)
		}

		for name, columns := range t.indexes {
			_, err := db.NewCreateIndex().
				Model(t.model).
				Index(name).
				Column(columns...).
				IfNotExists().
				Exec(ctx)
			if err != nil {
				return errors.Wrapf(err, "create index %s", name)
			}
		}
	}
	return nil
}
