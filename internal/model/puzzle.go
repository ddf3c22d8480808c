package model

import (
	"encoding/json"
	"time"

	"github.com/uptrace/bun"
)

// LocationPuzzle is one-to-one with a location. PuzzleData is opaque to the backend.
type LocationPuzzle struct {
	bun.BaseModel `bun:"table:location_puzzles,alias:lp"`

	LocationID string          `bun:"location_id,pk" json:"location_id"`
	PuzzleID   string          `bun:"puzzle_id,notnull" json:"puzzle_id"`
	PuzzleData json.RawMessage `bun:"puzzle_data,type:jsonb,notnull" json:"puzzle_data" swaggertype:"object"`
	CreatedAt  time.Time       `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt  time.Time       `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updated_at"`
}

// PuzzleIDFor is the identifier given to a puzzle saved without one.
func PuzzleIDFor(locationID string) string {
	return locationID + "_puzzle"
}
