package model

import (
	"time"

	"github.com/uptrace/bun"
	"gopkg.in/guregu/null.v3"
)

const WallIDPrefix = "wall_"

type DestructibleWall struct {
	bun.BaseModel `bun:"table:destructible_walls,alias:dw"`

	ID           string      `bun:"id,pk" json:"id"`
	LocationID   string      `bun:"location_id,notnull" json:"location_id"`
	X            float64     `bun:"x,notnull,default:0" json:"x"`
	Y            float64     `bun:"y,notnull,default:0" json:"y"`
	Width        float64     `bun:"width,notnull,default:0" json:"width"`
	Height       float64     `bun:"height,notnull,default:0" json:"height"`
	Image        string      `bun:"image,notnull,default:''" json:"image"`
	RequiredItem null.String `bun:"required_item,type:varchar" json:"required_item" swaggertype:"string"`
	CreatedAt    time.Time   `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"-"`
}
