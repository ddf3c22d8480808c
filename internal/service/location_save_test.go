package service_test

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"github.com/uptrace/bun"

	"github.com/vila-abandonada/backend/internal/model"
	"github.com/vila-abandonada/backend/internal/model/types"
	"github.com/vila-abandonada/backend/internal/pkg/testentry"
	"github.com/vila-abandonada/backend/internal/pkg/vaerr"
	"github.com/vila-abandonada/backend/internal/service"
)

func bulkRequest(t *testing.T, body string) *types.BulkSaveLocationsRequest {
	t.Helper()
	var req types.BulkSaveLocationsRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req), "expect payload to decode")
	return &req
}

func hotspotLabels(t *testing.T, db *bun.DB, locationID string) []string {
	t.Helper()
	var labels []string
	err := db.NewSelect().
		Model((*model.Hotspot)(nil)).
		Column("label").
		Where("location_id = ?", locationID).
		OrderExpr("id ASC").
		Scan(context.Background(), &labels)
	require.NoError(t, err)
	return labels
}

func count(t *testing.T, db *bun.DB, m any, where string, args ...any) int {
	t.Helper()
	q := db.NewSelect().Model(m)
	if where != "" {
		q = q.Where(where, args...)
	}
	n, err := q.Count(context.Background())
	require.NoError(t, err)
	return n
}

func TestBulkSave(t *testing.T) {
	var (
		s  *service.LocationSave
		ls *service.Location
		db *bun.DB
	)
	testentry.Populate(t, &s, &ls, &db)
	ctx := context.Background()

	t.Run("ReplacesHotspotsAndWalls", func(t *testing.T) {
		first := bulkRequest(t, `{
			"locations": [{
				"id": "hall", "name": "Hall",
				"hotspots": [
					{"type": "navigation", "label": "A1", "x": 1, "y": 2, "width": 3, "height": 4},
					{"type": "interactive", "label": "A2", "x": 5, "y": 6, "width": 7, "height": 8}
				],
				"destructible_walls": [{"id": "w1", "x": 1, "y": 1, "width": 10, "height": 10, "image": "wall.png"}]
			}],
			"order": ["hall"]
		}`)
		result, err := s.BulkSave(ctx, first)
		require.NoError(t, err)
		assert.Equal(t, &types.BulkSaveResult{Locations: 1, Hotspots: 2, Walls: 1}, result)

		second := bulkRequest(t, `{
			"locations": [{
				"id": "hall", "name": "Hall",
				"hotspots": [{"type": "navigation", "label": "B1", "x": "10.5", "y": "0", "width": 3, "height": 4}]
			}],
			"order": ["hall"]
		}`)
		result, err = s.BulkSave(ctx, second)
		require.NoError(t, err)
		assert.Equal(t, &types.BulkSaveResult{Locations: 1, Hotspots: 1}, result)

		assert.Equal(t, []string{"B1"}, hotspotLabels(t, db, "hall"), "expect only the second hotspot set to remain")
		assert.Equal(t, 0, count(t, db, (*model.DestructibleWall)(nil), "location_id = ?", "hall"), "expect walls absent from the payload to be removed")

		view, err := ls.GetLocationByID(ctx, "hall")
		require.NoError(t, err)
		require.Len(t, view.Hotspots, 1)
		assert.Equal(t, 10.5, view.Hotspots[0].X, "expect numeric strings to be accepted")
	})

	t.Run("KeepsExplicitZeroTransforms", func(t *testing.T) {
		_, err := s.BulkSave(ctx, bulkRequest(t, `{
			"locations": [{
				"id": "mirror_room", "name": "Mirror Room",
				"hotspots": [
					{"type": "decorative", "label": "ghost", "opacity": 0, "scale_x": 0, "scale_y": "0", "rotation": 0},
					{"type": "decorative", "label": "frame"}
				]
			}]
		}`))
		require.NoError(t, err)

		view, err := ls.GetLocationByID(ctx, "mirror_room")
		require.NoError(t, err)
		require.Len(t, view.Hotspots, 2)

		ghost := view.Hotspots[0]
		assert.Equal(t, 0.0, ghost.Opacity, "expect a fully transparent hotspot to stay transparent")
		assert.Equal(t, 0.0, ghost.ScaleX)
		assert.Equal(t, 0.0, ghost.ScaleY)
		assert.Equal(t, 0.0, ghost.Rotation)

		frame := view.Hotspots[1]
		assert.Equal(t, 1.0, frame.Opacity, "expect absent transforms to take their defaults")
		assert.Equal(t, 1.0, frame.ScaleX)
		assert.Equal(t, 1.0, frame.ScaleY)
	})

	t.Run("NormalizesHotspotTypeAndItemID", func(t *testing.T) {
		result, err := s.BulkSave(ctx, bulkRequest(t, `{
			"locations": [{
				"id": "pantry", "name": "Pantry",
				"hotspots": [
					{"type": "item", "item_id": " jar ", "label": "Jar", "item_image": "jar.png"},
					{"label": "untyped"}
				]
			}]
		}`))
		require.NoError(t, err)
		assert.Equal(t, 1, result.Items)
		assert.Equal(t, 2, result.Hotspots)

		view, err := ls.GetLocationByID(ctx, "pantry")
		require.NoError(t, err)
		require.Len(t, view.Hotspots, 2)
		assert.Equal(t, "jar", view.Hotspots[0].ItemID.String, "expect the stored item id to match the catalog key")
		assert.Equal(t, "jar.png", view.Hotspots[0].ItemImage.String)
		assert.Equal(t, model.HotspotTypeNavigation, view.Hotspots[1].Type)
		assert.False(t, view.Hotspots[1].ItemImage.Valid)
	})

	t.Run("IsIdempotent", func(t *testing.T) {
		payload := `{
			"locations": [{
				"id": "cellar", "name": "Cellar", "description": "dark",
				"hotspots": [{"type": "item", "item_id": "lamp", "label": "Lamp", "item_image": "lamp.png"}],
				"puzzle": {"id": "cellar_code", "answer": "1234"},
				"destructible_walls": [{"id": "cellar_wall", "image": "bricks.png", "required_item": "hammer"}]
			}],
			"order": ["cellar"]
		}`

		firstResult, err := s.BulkSave(ctx, bulkRequest(t, payload))
		require.NoError(t, err)
		firstView, err := ls.GetLocationByID(ctx, "cellar")
		require.NoError(t, err)

		secondResult, err := s.BulkSave(ctx, bulkRequest(t, payload))
		require.NoError(t, err)
		secondView, err := ls.GetLocationByID(ctx, "cellar")
		require.NoError(t, err)

		assert.Equal(t, firstResult, secondResult)
		assert.Equal(t, firstView.Name, secondView.Name)
		assert.Equal(t, firstView.DisplayOrder, secondView.DisplayOrder)
		assert.JSONEq(t, string(firstView.Puzzle), string(secondView.Puzzle))
		assert.Equal(t, hotspotLabels(t, db, "cellar"), []string{"Lamp"})
		assert.Equal(t, 1, count(t, db, (*model.DestructibleWall)(nil), "location_id = ?", "cellar"))
		assert.Equal(t, 1, count(t, db, (*model.Item)(nil), "id = ?", "lamp"))
		assert.Equal(t, 1, count(t, db, (*model.LocationPuzzle)(nil), "location_id = ?", "cellar"))
	})

	t.Run("RollsBackEverythingOnFailure", func(t *testing.T) {
		_, err := db.ExecContext(ctx, `CREATE TRIGGER fail_attic_hotspots BEFORE INSERT ON hotspots
			WHEN NEW.location_id = 'attic'
			BEGIN SELECT RAISE(ABORT, 'forced failure'); END`)
		require.NoError(t, err)
		t.Cleanup(func() {
			_, _ = db.ExecContext(context.Background(), "DROP TRIGGER IF EXISTS fail_attic_hotspots")
		})

		req := bulkRequest(t, `{
			"locations": [
				{"id": "porch", "name": "Porch", "hotspots": [{"type": "navigation", "label": "door"}]},
				{"id": "garden", "name": "Garden", "puzzle": {"kind": "maze"}},
				{"id": "attic", "name": "Attic", "hotspots": [{"type": "navigation", "label": "ladder"}]}
			],
			"order": ["porch", "garden", "attic"]
		}`)

		result, err := s.BulkSave(ctx, req)
		assert.Nil(t, result)
		require.Error(t, err)

		apiErr, ok := err.(*vaerr.APIError)
		require.True(t, ok, "expect an API error")
		assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
		assert.True(t, strings.HasPrefix(apiErr.Message, "Database error: "), "expect the database error prefix, got %q", apiErr.Message)
		assert.Contains(t, apiErr.Message, "forced failure", "expect the raw driver message")

		for _, id := range []string{"porch", "garden", "attic"} {
			assert.Equal(t, 0, count(t, db, (*model.Location)(nil), "id = ?", id), "expect location %s not to be persisted", id)
		}
		assert.Equal(t, 0, count(t, db, (*model.LocationPuzzle)(nil), "location_id = ?", "garden"))
	})

	t.Run("SyncsItemCatalog", func(t *testing.T) {
		req := bulkRequest(t, `{
			"locations": [{
				"id": "shed", "name": "Shed",
				"hotspots": [
					{"type": "item", "item_id": "key1", "label": "Rusty Key", "item_image": "key.png"},
					{"type": "item", "item_id": "rope", "label": "  ", "description": "long rope"},
					{"type": "item", "label": "no id"},
					{"type": "navigation", "item_id": "ignored", "label": "exit"}
				]
			}]
		}`)
		result, err := s.BulkSave(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, 2, result.Items)
		assert.Equal(t, 4, result.Hotspots)

		var key model.Item
		require.NoError(t, db.NewSelect().Model(&key).Where("id = ?", "key1").Scan(ctx))
		assert.Equal(t, "Rusty Key", key.Name)
		assert.Equal(t, "key.png", key.Image)
		assert.Equal(t, model.DefaultItemType, key.Type)

		var rope model.Item
		require.NoError(t, db.NewSelect().Model(&rope).Where("id = ?", "rope").Scan(ctx))
		assert.Equal(t, "rope", rope.Name, "expect a blank label to fall back to the item id")
		assert.Equal(t, "long rope", rope.Description)

		assert.Equal(t, 0, count(t, db, (*model.Item)(nil), "id = ?", "ignored"))

		view, err := ls.GetLocationByID(ctx, "shed")
		require.NoError(t, err)
		assert.Equal(t, "key.png", view.Hotspots[0].ItemImage.String, "expect item hotspots to carry the catalog image")
	})

	t.Run("AssignsDisplayOrder", func(t *testing.T) {
		req := bulkRequest(t, `{
			"locations": [
				{"id": "road", "name": "Road"},
				{"id": "bridge", "name": "Bridge"},
				{"id": "well", "name": "Well"}
			],
			"order": ["bridge", "road", "bridge"]
		}`)
		_, err := s.BulkSave(ctx, req)
		require.NoError(t, err)

		tests := []struct {
			id    string
			order int
		}{
			{"bridge", 0},
			{"road", 1},
			{"well", model.DefaultDisplayOrder},
		}
		for _, test := range tests {
			view, err := ls.GetLocationByID(ctx, test.id)
			require.NoError(t, err)
			assert.Equal(t, test.order, view.DisplayOrder, "expect display order of %s", test.id)
		}
	})

	t.Run("ReplacesOrRemovesPuzzle", func(t *testing.T) {
		_, err := s.BulkSave(ctx, bulkRequest(t, `{"locations": [{"id": "library", "name": "Library", "puzzle": {"books": ["a", "b"]}}]}`))
		require.NoError(t, err)

		view, err := ls.GetLocationByID(ctx, "library")
		require.NoError(t, err)
		assert.Equal(t, "library_puzzle", gjson.GetBytes(view.Puzzle, "id").String(), "expect a generated puzzle id")
		assert.Equal(t, "b", gjson.GetBytes(view.Puzzle, "books.1").String())

		for _, puzzle := range []string{`"puzzle": null`, `"puzzle": {}`, `"description": "no puzzle key"`} {
			_, err := s.BulkSave(ctx, bulkRequest(t, `{"locations": [{"id": "library", "name": "Library", "puzzle": {"books": []}}]}`))
			require.NoError(t, err)
			require.Equal(t, 1, count(t, db, (*model.LocationPuzzle)(nil), "location_id = ?", "library"))

			result, err := s.BulkSave(ctx, bulkRequest(t, `{"locations": [{"id": "library", "name": "Library", `+puzzle+`}]}`))
			require.NoError(t, err)
			assert.Equal(t, 0, result.Puzzles)
			assert.Equal(t, 0, count(t, db, (*model.LocationPuzzle)(nil), "location_id = ?", "library"), "expect %s to remove the puzzle", puzzle)
		}
	})

	t.Run("SkipsLocationsWithoutIDOrName", func(t *testing.T) {
		result, err := s.BulkSave(ctx, bulkRequest(t, `{
			"locations": [
				{"id": "", "name": "Nameless"},
				{"id": "ghost", "name": "   "},
				{"id": "chapel", "name": "Chapel", "destructible_walls": [{"image": "rubble.png"}]}
			]
		}`))
		require.NoError(t, err)
		assert.Equal(t, 1, result.Locations)
		assert.Equal(t, 1, result.Walls)
		assert.Equal(t, 0, count(t, db, (*model.Location)(nil), "id = ?", "ghost"))

		var wall model.DestructibleWall
		require.NoError(t, db.NewSelect().Model(&wall).Where("location_id = ?", "chapel").Scan(ctx))
		assert.True(t, strings.HasPrefix(wall.ID, model.WallIDPrefix), "expect a generated wall id, got %q", wall.ID)
	})
}

func TestSaveLocation(t *testing.T) {
	var (
		s  *service.LocationSave
		ls *service.Location
		db *bun.DB
	)
	testentry.Populate(t, &s, &ls, &db)
	ctx := context.Background()

	_, err := s.BulkSave(ctx, bulkRequest(t, `{
		"locations": [
			{"id": "square", "name": "Square"},
			{"id": "church", "name": "Church"},
			{"id": "tavern", "name": "Tavern"}
		],
		"order": ["tavern", "church", "square"]
	}`))
	require.NoError(t, err)

	decode := func(t *testing.T, body string) *types.SaveLocationRequest {
		var req types.SaveLocationRequest
		require.NoError(t, json.Unmarshal([]byte(body), &req))
		return &req
	}

	t.Run("ReplacesConnectionsWhenPresent", func(t *testing.T) {
		view, err := s.SaveLocation(ctx, decode(t, `{
			"id": "square", "name": "Town Square",
			"hotspots": [{"type": "navigation", "label": "to church", "target_location": "church", "scale_x": 3, "opacity": 0.5}],
			"connections": [{"to_location_id": "church", "label": "north"}, {"to_location_id": "tavern"}]
		}`))
		require.NoError(t, err)
		assert.Equal(t, "Town Square", view.Name)
		assert.Equal(t, 2, view.DisplayOrder, "expect the stored display order to be kept")
		require.Len(t, view.Hotspots, 1)
		assert.Equal(t, 1.0, view.Hotspots[0].ScaleX, "expect transform columns to take their defaults")
		assert.Equal(t, 1.0, view.Hotspots[0].Opacity)
		assert.Len(t, view.Connections, 2)
	})

	t.Run("KeepsConnectionsWhenAbsent", func(t *testing.T) {
		view, err := s.SaveLocation(ctx, decode(t, `{"id": "square", "name": "Town Square", "display_order": 7}`))
		require.NoError(t, err)
		assert.Equal(t, 7, view.DisplayOrder)
		assert.Len(t, view.Connections, 2)
		assert.Empty(t, view.Hotspots)
	})

	t.Run("KeepsExplicitZeroDisplayOrder", func(t *testing.T) {
		view, err := s.SaveLocation(ctx, decode(t, `{"id": "church", "name": "Church", "display_order": 0}`))
		require.NoError(t, err)
		assert.Equal(t, 0, view.DisplayOrder)

		views, err := ls.GetLocations(ctx)
		require.NoError(t, err)
		require.NotEmpty(t, views)
		assert.Equal(t, "church", views[0].ID)
	})

	t.Run("DeletesConnectionsWhenEmpty", func(t *testing.T) {
		view, err := s.SaveLocation(ctx, decode(t, `{"id": "square", "name": "Town Square", "connections": []}`))
		require.NoError(t, err)
		assert.Empty(t, view.Connections)
	})

	t.Run("CreatesNewLocationWithDefaultOrder", func(t *testing.T) {
		view, err := s.SaveLocation(ctx, decode(t, `{"id": "mill", "name": "Mill"}`))
		require.NoError(t, err)
		assert.Equal(t, model.DefaultDisplayOrder, view.DisplayOrder)
	})

	t.Run("RollsBackOnUnknownConnectionTarget", func(t *testing.T) {
		_, err := s.SaveLocation(ctx, decode(t, `{"id": "forge", "name": "Forge", "connections": [{"to_location_id": "nowhere"}]}`))
		require.Error(t, err)
		assert.Equal(t, 0, count(t, db, (*model.Location)(nil), "id = ?", "forge"))
	})
}

func TestDeleteLocation(t *testing.T) {
	var (
		s  *service.LocationSave
		ls *service.Location
		db *bun.DB
	)
	testentry.Populate(t, &s, &ls, &db)
	ctx := context.Background()

	_, err := s.BulkSave(ctx, bulkRequest(t, `{
		"locations": [{
			"id": "barn", "name": "Barn",
			"hotspots": [{"type": "navigation"}, {"type": "decorative"}],
			"puzzle": {"answer": 42},
			"destructible_walls": [{"id": "barn_wall"}]
		}]
	}`))
	require.NoError(t, err)

	require.NoError(t, ls.DeleteLocation(ctx, "barn"))

	assert.Equal(t, 0, count(t, db, (*model.Hotspot)(nil), "location_id = ?", "barn"), "expect hotspots to cascade")
	assert.Equal(t, 0, count(t, db, (*model.LocationPuzzle)(nil), "location_id = ?", "barn"))
	assert.Equal(t, 0, count(t, db, (*model.DestructibleWall)(nil), "location_id = ?", "barn"))

	_, err = ls.GetLocationByID(ctx, "barn")
	assertNotFound(t, err)

	assertNotFound(t, ls.DeleteLocation(ctx, "barn"))
}

func assertNotFound(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	apiErr, ok := err.(*vaerr.APIError)
	require.True(t, ok, "expect an API error, got %T", err)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
}
