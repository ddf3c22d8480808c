package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vila-abandonada/backend/internal/model/types"
	"github.com/vila-abandonada/backend/internal/pkg/testentry"
	"github.com/vila-abandonada/backend/internal/service"
)

func TestItems(t *testing.T) {
	var (
		save *service.LocationSave
		s    *service.Item
		ls   *service.Location
	)
	testentry.Populate(t, &save, &s, &ls)
	ctx := context.Background()

	_, err := save.BulkSave(ctx, bulkRequest(t, `{
		"locations": [
			{"id": "kitchen", "name": "Kitchen", "hotspots": [
				{"type": "item", "item_id": "knife", "label": "Knife", "item_image": "knife.png"},
				{"type": "item", "item_id": "bread", "label": "Bread"},
				{"type": "navigation", "label": "exit"}
			]},
			{"id": "pantry", "name": "Pantry"}
		]
	}`))
	require.NoError(t, err)

	t.Run("GetItems", func(t *testing.T) {
		items, err := s.GetItems(ctx)
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, "bread", items[0].ID, "expect items ordered by id")
		assert.Equal(t, "knife", items[1].ID)
	})

	t.Run("GetItemByID", func(t *testing.T) {
		item, err := s.GetItemByID(ctx, "knife")
		require.NoError(t, err)
		assert.Equal(t, "Knife", item.Name)

		_, err = s.GetItemByID(ctx, "sword")
		assertNotFound(t, err)
	})

	t.Run("TransferItems", func(t *testing.T) {
		result, err := s.TransferItems(ctx, &types.TransferItemsRequest{FromLocationID: "kitchen", ToLocationID: "pantry", ItemID: "knife"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), result.Transferred)

		result, err = s.TransferItems(ctx, &types.TransferItemsRequest{FromLocationID: "kitchen", ToLocationID: "pantry"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), result.Transferred)

		pantry, err := ls.GetLocationByID(ctx, "pantry")
		require.NoError(t, err)
		assert.Len(t, pantry.Hotspots, 2)

		kitchen, err := ls.GetLocationByID(ctx, "kitchen")
		require.NoError(t, err)
		assert.Len(t, kitchen.Hotspots, 1, "expect navigation hotspots to stay")

		_, err = s.TransferItems(ctx, &types.TransferItemsRequest{FromLocationID: "kitchen", ToLocationID: "pantry"})
		assertNotFound(t, err)
	})
}
