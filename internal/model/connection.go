package model

import (
	"time"

	"github.com/uptrace/bun"
)

// Connection is a directed edge of the navigation graph.
type Connection struct {
	bun.BaseModel `bun:"table:connections,alias:c"`

	ID             int64     `bun:"id,pk,autoincrement" json:"id"`
	FromLocationID string    `bun:"from_location_id,notnull,unique:connections_from_to" json:"from_location_id"`
	ToLocationID   string    `bun:"to_location_id,notnull,unique:connections_from_to" json:"to_location_id"`
	Label          string    `bun:"label,notnull,default:''" json:"label"`
	CreatedAt      time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
}
