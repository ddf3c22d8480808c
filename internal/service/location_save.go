package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"github.com/jinzhu/copier"
	"github.com/oklog/ulid/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
	"github.com/uptrace/bun"
	"gopkg.in/guregu/null.v3"

	"github.com/vila-abandonada/backend/internal/model"
	"github.com/vila-abandonada/backend/internal/model/types"
	"github.com/vila-abandonada/backend/internal/pkg/flexnum"
	"github.com/vila-abandonada/backend/internal/pkg/observability"
	"github.com/vila-abandonada/backend/internal/repo"
)

// LocationSave writes locations and their dependents. Every public method runs in a
// single transaction that is rolled back entirely on the first failing statement.
type LocationSave struct {
	DB              *bun.DB
	LocationService *Location
	LocationRepo    *repo.Location
	HotspotRepo     *repo.Hotspot
	ItemRepo        *repo.Item
	PuzzleRepo      *repo.Puzzle
	WallRepo        *repo.DestructibleWall
	ConnectionRepo  *repo.Connection
}

func NewLocationSave(db *bun.DB, locationService *Location, locationRepo *repo.Location, hotspotRepo *repo.Hotspot, itemRepo *repo.Item, puzzleRepo *repo.Puzzle, wallRepo *repo.DestructibleWall, connectionRepo *repo.Connection) *LocationSave {
	return &LocationSave{
		DB:              db,
		LocationService: locationService,
		LocationRepo:    locationRepo,
		HotspotRepo:     hotspotRepo,
		ItemRepo:        itemRepo,
		PuzzleRepo:      puzzleRepo,
		WallRepo:        wallRepo,
		ConnectionRepo:  connectionRepo,
	}
}

// inTx runs fn in a transaction, committing only when fn succeeds.
func (s *LocationSave) inTx(ctx context.Context, L *zerolog.Logger, fn func(tx bun.Tx) error) error {
	tx, err := s.DB.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	intendedCommit := false
	defer func() {
		if !intendedCommit {
			L.Warn().Msg("rolling back transaction due to error")
			if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
				L.Error().Err(err).Msg("failed to rollback transaction")
			}
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}

	intendedCommit = true
	return tx.Commit()
}

// BulkSave persists every location of req. Entries without an id or a name are skipped.
// The display order of a location is its index in req.Order, or model.DefaultDisplayOrder.
func (s *LocationSave) BulkSave(ctx context.Context, req *types.BulkSaveLocationsRequest) (*types.BulkSaveResult, error) {
	L := log.With().
		Str("evt.name", "locations.bulk_save").
		Int("payload_locations", len(req.Locations)).
		Logger()

	start := time.Now()
	order := orderIndex(req.Order)
	result := &types.BulkSaveResult{}

	err := s.inTx(ctx, &L, func(tx bun.Tx) error {
		now := time.Now().UTC()
		for i := range req.Locations {
			p := &req.Locations[i]
			if strings.TrimSpace(p.ID) == "" || strings.TrimSpace(p.Name) == "" {
				L.Debug().Int("index", i).Msg("skipping location without id or name")
				continue
			}

			displayOrder, ok := order[p.ID]
			if !ok {
				displayOrder = model.DefaultDisplayOrder
			}

			if err := s.saveLocationTree(ctx, tx, p, displayOrder, now, result); err != nil {
				return errors.WithMessagef(err, "location %q", p.ID)
			}
		}
		return nil
	})

	observability.BulkSaveDuration.
		WithLabelValues(lo.Ternary(err == nil, "committed", "rolled_back")).
		Observe(time.Since(start).Seconds())

	if err != nil {
		L.Error().Err(err).Msg("bulk save failed")
		return nil, dbErr(err)
	}

	observability.SavedEntities.WithLabelValues("locations").Add(float64(result.Locations))
	observability.SavedEntities.WithLabelValues("hotspots").Add(float64(result.Hotspots))
	observability.SavedEntities.WithLabelValues("items").Add(float64(result.Items))
	observability.SavedEntities.WithLabelValues("puzzles").Add(float64(result.Puzzles))
	observability.SavedEntities.WithLabelValues("walls").Add(float64(result.Walls))

	L.Info().Interface("result", result).Dur("duration", time.Since(start)).Msg("bulk save committed")
	return result, nil
}

func (s *LocationSave) saveLocationTree(ctx context.Context, tx bun.Tx, p *types.LocationPayload, displayOrder int, now time.Time, result *types.BulkSaveResult) error {
	location, err := locationFromPayload(p, displayOrder, now)
	if err != nil {
		return err
	}
	if err := s.LocationRepo.UpsertLocation(ctx, tx, location); err != nil {
		return err
	}
	result.Locations++

	hotspots := lo.Map(p.Hotspots, func(h types.HotspotPayload, _ int) *model.Hotspot {
		return hotspotFromPayload(p.ID, &h, true)
	})
	if err := s.HotspotRepo.DeleteByLocationID(ctx, tx, p.ID); err != nil {
		return err
	}
	if err := s.HotspotRepo.InsertHotspots(ctx, tx, hotspots); err != nil {
		return err
	}
	result.Hotspots += len(hotspots)

	for i := range p.Hotspots {
		item := catalogItemFromHotspot(&p.Hotspots[i], now)
		if item == nil {
			continue
		}
		if err := s.ItemRepo.UpsertItem(ctx, tx, item); err != nil {
			return err
		}
		result.Items++
	}

	puzzle, err := puzzleFromPayload(p.ID, p.Puzzle, now)
	if err != nil {
		return err
	}
	if puzzle != nil {
		if err := s.PuzzleRepo.UpsertPuzzle(ctx, tx, puzzle); err != nil {
			return err
		}
		result.Puzzles++
	} else if err := s.PuzzleRepo.DeleteByLocationID(ctx, tx, p.ID); err != nil {
		return err
	}

	walls, err := wallsFromPayload(p.ID, p.DestructibleWalls)
	if err != nil {
		return err
	}
	if err := s.WallRepo.DeleteByLocationID(ctx, tx, p.ID); err != nil {
		return err
	}
	if err := s.WallRepo.InsertWalls(ctx, tx, walls); err != nil {
		return err
	}
	result.Walls += len(walls)

	return nil
}

// SaveLocation saves one location and replaces its hotspots with their base attributes.
// Transform attributes take their column defaults and the item catalog is not touched.
// Outgoing connections are replaced only when req.Connections is present.
func (s *LocationSave) SaveLocation(ctx context.Context, req *types.SaveLocationRequest) (*model.LocationView, error) {
	L := log.With().
		Str("evt.name", "locations.save").
		Str("location_id", req.ID).
		Logger()

	err := s.inTx(ctx, &L, func(tx bun.Tx) error {
		displayOrder := model.DefaultDisplayOrder
		if req.DisplayOrder != nil {
			displayOrder = *req.DisplayOrder
		} else {
			current, found, err := s.LocationRepo.GetDisplayOrder(ctx, tx, req.ID)
			if err != nil {
				return err
			}
			if found {
				displayOrder = current
			}
		}

		location, err := locationFromPayload(&req.LocationPayload, displayOrder, time.Now().UTC())
		if err != nil {
			return err
		}
		if err := s.LocationRepo.UpsertLocation(ctx, tx, location); err != nil {
			return err
		}

		hotspots := lo.Map(req.Hotspots, func(h types.HotspotPayload, _ int) *model.Hotspot {
			return hotspotFromPayload(req.ID, &h, false)
		})
		if err := s.HotspotRepo.DeleteByLocationID(ctx, tx, req.ID); err != nil {
			return err
		}
		if err := s.HotspotRepo.InsertHotspots(ctx, tx, hotspots); err != nil {
			return err
		}

		if req.Connections == nil {
			return nil
		}
		if err := s.ConnectionRepo.DeleteFrom(ctx, tx, req.ID); err != nil {
			return err
		}
		for _, edge := range *req.Connections {
			conn := &model.Connection{
				FromLocationID: req.ID,
				ToLocationID:   edge.ToLocationID,
				Label:          edge.Label,
			}
			if err := s.ConnectionRepo.UpsertConnection(ctx, tx, conn); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		L.Error().Err(err).Msg("location save failed")
		return nil, dbErr(err)
	}

	L.Info().Int("hotspots", len(req.Hotspots)).Bool("connections_replaced", req.Connections != nil).Msg("location saved")
	return s.LocationService.GetLocationByID(ctx, req.ID)
}

func orderIndex(order []string) map[string]int {
	idx := make(map[string]int, len(order))
	for i, id := range order {
		if _, seen := idx[id]; !seen {
			idx[id] = i
		}
	}
	return idx
}

func locationFromPayload(p *types.LocationPayload, displayOrder int, now time.Time) (*model.Location, error) {
	location := &model.Location{}
	if err := copier.Copy(location, p); err != nil {
		return nil, errors.Wrap(err, "map location")
	}
	location.DisplayOrder = displayOrder
	location.Credits = normalizeJSON(p.Credits)
	location.DramaticMessages = normalizeJSON(p.DramaticMessages)
	location.TransitionVideo = nonEmpty(p.TransitionVideo)
	location.UpdatedAt = now
	return location, nil
}

func hotspotFromPayload(locationID string, p *types.HotspotPayload, withTransform bool) *model.Hotspot {
	h := &model.Hotspot{
		LocationID:      locationID,
		Type:            lo.Ternary(strings.TrimSpace(p.Type) == "", model.HotspotTypeNavigation, p.Type),
		X:               p.X.Float64(),
		Y:               p.Y.Float64(),
		Width:           p.Width.Float64(),
		Height:          p.Height.Float64(),
		Corners:         normalizeJSON(p.Corners),
		Label:           p.Label,
		Description:     p.Description,
		TargetLocation:  nonEmpty(p.TargetLocation),
		ItemID:          nonEmpty(trimmed(p.ItemID)),
		IsDisplayItem:   bool(p.IsDisplayItem),
		IsDecorative:    bool(p.IsDecorative),
		DisplayImage:    nonEmpty(p.DisplayImage),
		InteractionData: normalizeJSON(p.InteractionData),
		ScaleX:          1,
		ScaleY:          1,
		Opacity:         1,
	}
	if !withTransform {
		return h
	}

	h.Rotation = lo.FromPtrOr(flexnum.Ptr(p.Rotation), 0)
	h.RotateX = lo.FromPtrOr(flexnum.Ptr(p.RotateX), 0)
	h.RotateY = lo.FromPtrOr(flexnum.Ptr(p.RotateY), 0)
	h.ScaleX = lo.FromPtrOr(flexnum.Ptr(p.ScaleX), 1)
	h.ScaleY = lo.FromPtrOr(flexnum.Ptr(p.ScaleY), 1)
	h.SkewX = lo.FromPtrOr(flexnum.Ptr(p.SkewX), 0)
	h.SkewY = lo.FromPtrOr(flexnum.Ptr(p.SkewY), 0)
	h.FlipX = bool(p.FlipX)
	h.FlipY = bool(p.FlipY)
	h.Opacity = lo.FromPtrOr(flexnum.Ptr(p.Opacity), 1)
	h.ShadowBlur = lo.FromPtrOr(flexnum.Ptr(p.ShadowBlur), 0)
	h.ShadowOffsetX = lo.FromPtrOr(flexnum.Ptr(p.ShadowOffsetX), 0)
	h.ShadowOffsetY = lo.FromPtrOr(flexnum.Ptr(p.ShadowOffsetY), 0)
	h.ArrowDirection = nonEmpty(p.ArrowDirection)
	h.ZoomDirection = nonEmpty(p.ZoomDirection)
	h.Waypoints = normalizeJSON(p.Waypoints)
	return h
}

// catalogItemFromHotspot returns the catalog row declared inline by an item hotspot, or nil.
func catalogItemFromHotspot(p *types.HotspotPayload, now time.Time) *model.Item {
	itemID := strings.TrimSpace(p.ItemID.String)
	if p.Type != model.HotspotTypeItem || !p.ItemID.Valid || itemID == "" {
		return nil
	}

	return &model.Item{
		ID:          itemID,
		Name:        lo.Ternary(strings.TrimSpace(p.Label) == "", itemID, p.Label),
		Description: p.Description,
		Image:       p.ItemImage.String,
		Type:        model.DefaultItemType,
		UpdatedAt:   now,
	}
}

// puzzleFromPayload returns nil when raw is absent, null or not a non-empty object,
// which removes the stored puzzle of the location.
func puzzleFromPayload(locationID string, raw json.RawMessage, now time.Time) (*model.LocationPuzzle, error) {
	parsed := gjson.ParseBytes(raw)
	if !parsed.IsObject() || len(parsed.Map()) == 0 {
		return nil, nil
	}

	data := []byte(parsed.Raw)
	puzzleID := parsed.Get("id")
	if !puzzleID.Exists() || puzzleID.Type == gjson.Null || puzzleID.String() == "" {
		var err error
		data, err = sjson.SetBytes(data, "id", model.PuzzleIDFor(locationID))
		if err != nil {
			return nil, errors.Wrap(err, "assign puzzle id")
		}
	}

	return &model.LocationPuzzle{
		LocationID: locationID,
		PuzzleID:   gjson.GetBytes(data, "id").String(),
		PuzzleData: data,
		UpdatedAt:  now,
	}, nil
}

func wallsFromPayload(locationID string, payload []types.WallPayload) ([]*model.DestructibleWall, error) {
	walls := make([]*model.DestructibleWall, 0, len(payload))
	for i := range payload {
		wall := &model.DestructibleWall{}
		if err := copier.Copy(wall, &payload[i]); err != nil {
			return nil, errors.Wrap(err, "map wall")
		}
		wall.LocationID = locationID
		wall.RequiredItem = nonEmpty(payload[i].RequiredItem)
		if strings.TrimSpace(wall.ID) == "" {
			wall.ID = model.WallIDPrefix + strings.ToLower(ulid.Make().String())
		}
		walls = append(walls, wall)
	}
	return walls, nil
}

// normalizeJSON maps absent and null JSON values to nil so they are stored as SQL NULL.
func normalizeJSON(raw json.RawMessage) json.RawMessage {
	parsed := gjson.ParseBytes(raw)
	if !parsed.Exists() || parsed.Type == gjson.Null {
		return nil
	}
	return json.RawMessage(parsed.Raw)
}

func trimmed(s null.String) null.String {
	return null.NewString(strings.TrimSpace(s.String), s.Valid)
}

func nonEmpty(s null.String) null.String {
	return null.NewString(s.String, s.Valid && strings.TrimSpace(s.String) != "")
}
