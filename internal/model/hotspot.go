package model

import (
	"encoding/json"
	"time"

	"github.com/uptrace/bun"
	"gopkg.in/guregu/null.v3"
)

const (
	HotspotTypeItem       = "item"
	HotspotTypeNavigation = "navigation"
)

// Hotspot rows have no identity across saves: every save replaces the whole set of a location.
type Hotspot struct {
	bun.BaseModel `bun:"table:hotspots,alias:h"`

	ID         int64  `bun:"id,pk,autoincrement" json:"id"`
	LocationID string `bun:"location_id,notnull" json:"location_id"`
	Type       string `bun:"type,notnull" json:"type"`

	X      float64 `bun:"x,notnull,default:0" json:"x"`
	Y      float64 `bun:"y,notnull,default:0" json:"y"`
	Width  float64 `bun:"width,notnull,default:0" json:"width"`
	Height float64 `bun:"height,notnull,default:0" json:"height"`

	Corners        json.RawMessage `bun:"corners,type:jsonb,nullzero" json:"corners" swaggertype:"array,object"`
	Label          string          `bun:"label,notnull,default:''" json:"label"`
	Description    string          `bun:"description,notnull,default:''" json:"description"`
	TargetLocation null.String     `bun:"target_location,type:varchar" json:"target_location" swaggertype:"string"`
	ItemID         null.String     `bun:"item_id,type:varchar" json:"item_id" swaggertype:"string"`
	IsDisplayItem  bool            `bun:"is_display_item,notnull,default:false" json:"is_display_item"`
	IsDecorative   bool            `bun:"is_decorative,notnull,default:false" json:"is_decorative"`
	DisplayImage   null.String     `bun:"display_image,type:varchar" json:"display_image" swaggertype:"string"`

	// scale and opacity default to 1 in the service; a stored 0 is a real value
	Rotation      float64 `bun:"rotation,notnull,default:0" json:"rotation"`
	RotateX       float64 `bun:"rotate_x,notnull,default:0" json:"rotate_x"`
	RotateY       float64 `bun:"rotate_y,notnull,default:0" json:"rotate_y"`
	ScaleX        float64 `bun:"scale_x,notnull" json:"scale_x"`
	ScaleY        float64 `bun:"scale_y,notnull" json:"scale_y"`
	SkewX         float64 `bun:"skew_x,notnull,default:0" json:"skew_x"`
	SkewY         float64 `bun:"skew_y,notnull,default:0" json:"skew_y"`
	FlipX         bool    `bun:"flip_x,notnull,default:false" json:"flip_x"`
	FlipY         bool    `bun:"flip_y,notnull,default:false" json:"flip_y"`
	Opacity       float64 `bun:"opacity,notnull" json:"opacity"`
	ShadowBlur    float64 `bun:"shadow_blur,notnull,default:0" json:"shadow_blur"`
	ShadowOffsetX float64 `bun:"shadow_offset_x,notnull,default:0" json:"shadow_offset_x"`
	ShadowOffsetY float64 `bun:"shadow_offset_y,notnull,default:0" json:"shadow_offset_y"`

	ArrowDirection  null.String     `bun:"arrow_direction,type:varchar" json:"arrow_direction" swaggertype:"string"`
	ZoomDirection   null.String     `bun:"zoom_direction,type:varchar" json:"zoom_direction" swaggertype:"string"`
	Waypoints       json.RawMessage `bun:"waypoints,type:jsonb,nullzero" json:"waypoints" swaggertype:"array,object"`
	InteractionData json.RawMessage `bun:"interaction_data,type:jsonb,nullzero" json:"interaction_data" swaggertype:"object"`

	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"-"`

	// ItemImage is joined from the item catalog for item hotspots.
	ItemImage null.String `bun:"item_image,scanonly" json:"item_image" swaggertype:"string"`
}
