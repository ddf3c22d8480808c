package types

import (
	"encoding/json"

	"gopkg.in/guregu/null.v3"

	"github.com/vila-abandonada/backend/internal/model"
	"github.com/vila-abandonada/backend/internal/pkg/flexnum"
)

type BulkSaveLocationsRequest struct {
	Locations []LocationPayload `json:"locations" validate:"required,dive"`
	// Order lists location ids; a location's index becomes its display order.
	Order []string `json:"order"`
}

type LocationPayload struct {
	ID                      string          `json:"id" example:"hall"`
	Name                    string          `json:"name" example:"Hall de Entrada"`
	Description             string          `json:"description"`
	BackgroundImage         string          `json:"background_image" example:"backgrounds/hall.png"`
	IsFinalScene            flexnum.Bool    `json:"is_final_scene" swaggertype:"boolean"`
	Credits                 json.RawMessage `json:"credits" swaggertype:"array,object"`
	TransitionVideo         null.String     `json:"transition_video" swaggertype:"string"`
	DramaticMessages        json.RawMessage `json:"dramatic_messages" swaggertype:"array,string"`
	DramaticMessageDuration null.Int        `json:"dramatic_message_duration" swaggertype:"integer"`

	Hotspots          []HotspotPayload `json:"hotspots" validate:"dive"`
	Puzzle            json.RawMessage  `json:"puzzle" swaggertype:"object"`
	DestructibleWalls []WallPayload    `json:"destructible_walls" validate:"dive"`
}

type HotspotPayload struct {
	Type   string        `json:"type" example:"navigation"`
	X      flexnum.Float `json:"x" swaggertype:"number"`
	Y      flexnum.Float `json:"y" swaggertype:"number"`
	Width  flexnum.Float `json:"width" swaggertype:"number"`
	Height flexnum.Float `json:"height" swaggertype:"number"`

	Corners        json.RawMessage `json:"corners" swaggertype:"array,object"`
	Label          string          `json:"label"`
	Description    string          `json:"description"`
	TargetLocation null.String     `json:"target_location" swaggertype:"string"`
	ItemID         null.String     `json:"item_id" swaggertype:"string"`
	ItemImage      null.String     `json:"item_image" swaggertype:"string"`
	IsDisplayItem  flexnum.Bool    `json:"is_display_item" swaggertype:"boolean"`
	IsDecorative   flexnum.Bool    `json:"is_decorative" swaggertype:"boolean"`
	DisplayImage   null.String     `json:"display_image" swaggertype:"string"`

	Rotation      *flexnum.Float `json:"rotation" swaggertype:"number"`
	RotateX       *flexnum.Float `json:"rotate_x" swaggertype:"number"`
	RotateY       *flexnum.Float `json:"rotate_y" swaggertype:"number"`
	ScaleX        *flexnum.Float `json:"scale_x" swaggertype:"number"`
	ScaleY        *flexnum.Float `json:"scale_y" swaggertype:"number"`
	SkewX         *flexnum.Float `json:"skew_x" swaggertype:"number"`
	SkewY         *flexnum.Float `json:"skew_y" swaggertype:"number"`
	FlipX         flexnum.Bool   `json:"flip_x" swaggertype:"boolean"`
	FlipY         flexnum.Bool   `json:"flip_y" swaggertype:"boolean"`
	Opacity       *flexnum.Float `json:"opacity" swaggertype:"number"`
	ShadowBlur    *flexnum.Float `json:"shadow_blur" swaggertype:"number"`
	ShadowOffsetX *flexnum.Float `json:"shadow_offset_x" swaggertype:"number"`
	ShadowOffsetY *flexnum.Float `json:"shadow_offset_y" swaggertype:"number"`

	ArrowDirection  null.String     `json:"arrow_direction" swaggertype:"string" example:"up"`
	ZoomDirection   null.String     `json:"zoom_direction" swaggertype:"string" example:"in"`
	Waypoints       json.RawMessage `json:"waypoints" swaggertype:"array,object"`
	InteractionData json.RawMessage `json:"interaction_data" swaggertype:"object"`
}

type WallPayload struct {
	ID           string        `json:"id"`
	X            flexnum.Float `json:"x" swaggertype:"number"`
	Y            flexnum.Float `json:"y" swaggertype:"number"`
	Width        flexnum.Float `json:"width" swaggertype:"number"`
	Height       flexnum.Float `json:"height" swaggertype:"number"`
	Image        string        `json:"image"`
	RequiredItem null.String   `json:"required_item" swaggertype:"string"`
}

type BulkSaveResult struct {
	Locations int `json:"locations"`
	Hotspots  int `json:"hotspots"`
	Items     int `json:"items"`
	Puzzles   int `json:"puzzles"`
	Walls     int `json:"walls"`
}

// SaveLocationRequest saves a single location. A nil Connections leaves the outgoing
// edges untouched while a present list, even an empty one, replaces them.
type SaveLocationRequest struct {
	LocationPayload

	DisplayOrder *int              `json:"display_order"`
	Connections  *[]ConnectionEdge `json:"connections" validate:"omitempty,dive"`
}

// LocationIdentity carries the fields a single location save cannot go without.
type LocationIdentity struct {
	ID   string `json:"id" validate:"notblank"`
	Name string `json:"name" validate:"notblank"`
}

type ConnectionEdge struct {
	ToLocationID string `json:"to_location_id" validate:"required"`
	Label        string `json:"label"`
}

// SaveLocationResult is the saved location as read back after the commit.
type SaveLocationResult struct {
	*model.LocationView

	ConnectionsReplaced bool `json:"connections_replaced"`
}
