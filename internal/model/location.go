package model

import (
	"encoding/json"
	"time"

	"github.com/uptrace/bun"
	"gopkg.in/guregu/null.v3"
)

// DefaultDisplayOrder is assigned to locations absent from the caller supplied order list.
// It is set by the service, not as a column default: bun writes zero values of defaulted
// columns as DEFAULT, which would turn the first position into 999.
const DefaultDisplayOrder = 999

type Location struct {
	bun.BaseModel `bun:"table:locations,alias:l"`

	ID                      string          `bun:"id,pk" json:"id"`
	Name                    string          `bun:"name,notnull" json:"name"`
	Description             string          `bun:"description,notnull,default:''" json:"description"`
	BackgroundImage         string          `bun:"background_image,notnull,default:''" json:"background_image"`
	DisplayOrder            int             `bun:"display_order,notnull" json:"display_order"`
	IsFinalScene            bool            `bun:"is_final_scene,notnull,default:false" json:"is_final_scene"`
	Credits                 json.RawMessage `bun:"credits,type:jsonb,nullzero" json:"credits" swaggertype:"array,object"`
	TransitionVideo         null.String     `bun:"transition_video,type:varchar" json:"transition_video" swaggertype:"string"`
	DramaticMessages        json.RawMessage `bun:"dramatic_messages,type:jsonb,nullzero" json:"dramatic_messages" swaggertype:"array,string"`
	DramaticMessageDuration null.Int        `bun:"dramatic_message_duration,type:integer" json:"dramatic_message_duration" swaggertype:"integer"`
	CreatedAt               time.Time       `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt               time.Time       `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updated_at"`
}

// LocationView is a location with every dependent entity attached, as served by the read endpoints.
type LocationView struct {
	*Location

	Hotspots          []*Hotspot          `json:"hotspots"`
	Puzzle            json.RawMessage     `json:"puzzle" swaggertype:"object"`
	DestructibleWalls []*DestructibleWall `json:"destructible_walls"`
	Connections       []*Connection       `json:"connections"`
}
