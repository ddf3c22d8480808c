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

func TestConnections(t *testing.T) {
	var (
		save *service.LocationSave
		s    *service.Connection
		ls   *service.Location
	)
	testentry.Populate(t, &save, &s, &ls)
	ctx := context.Background()

	_, err := save.BulkSave(ctx, bulkRequest(t, `{"locations": [{"id": "gate", "name": "Gate"}, {"id": "yard", "name": "Yard"}]}`))
	require.NoError(t, err)

	conn, err := s.CreateConnection(ctx, &types.CreateConnectionRequest{FromLocationID: "gate", ToLocationID: "yard", Label: "in"})
	require.NoError(t, err)
	assert.NotZero(t, conn.ID)

	_, err = s.CreateConnection(ctx, &types.CreateConnectionRequest{FromLocationID: "gate", ToLocationID: "yard", Label: "enter"})
	require.NoError(t, err, "expect an existing pair to be relabeled")

	connections, err := s.GetConnections(ctx)
	require.NoError(t, err)
	require.Len(t, connections, 1)
	assert.Equal(t, "enter", connections[0].Label)

	_, err = s.CreateConnection(ctx, &types.CreateConnectionRequest{FromLocationID: "gate", ToLocationID: "moon"})
	assertNotFound(t, err)

	gate, err := ls.GetLocationByID(ctx, "gate")
	require.NoError(t, err)
	assert.Len(t, gate.Connections, 1)

	require.NoError(t, s.DeleteConnection(ctx, connections[0].ID))
	assertNotFound(t, s.DeleteConnection(ctx, connections[0].ID))

	connections, err = s.GetConnections(ctx)
	require.NoError(t, err)
	assert.Empty(t, connections)
}
