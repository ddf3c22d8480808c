package model

import (
	"time"

	"github.com/uptrace/bun"
)

const DefaultItemType = "item"

type Item struct {
	bun.BaseModel `bun:"table:items,alias:i"`

	ID          string    `bun:"id,pk" json:"id"`
	Name        string    `bun:"name,notnull" json:"name"`
	Description string    `bun:"description,notnull,default:''" json:"description"`
	Image       string    `bun:"image,notnull,default:''" json:"image"`
	Type        string    `bun:"type,notnull,default:'item'" json:"type"`
	CreatedAt   time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt   time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updated_at"`
}
