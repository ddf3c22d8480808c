package v1

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"

	"github.com/vila-abandonada/backend/internal/model/types"
	"github.com/vila-abandonada/backend/internal/pkg/envelope"
	"github.com/vila-abandonada/backend/internal/pkg/vaerr"
	"github.com/vila-abandonada/backend/internal/server/svr"
	"github.com/vila-abandonada/backend/internal/service"
	"github.com/vila-abandonada/backend/internal/util/rekuest"
)

type Connection struct {
	fx.In

	ConnectionService *service.Connection
}

func RegisterConnection(v1 *svr.V1, c Connection) {
	v1.Get("/connections", c.GetConnections)
	v1.Post("/connections", c.CreateConnection)
	v1.Delete("/connections/:connectionId", c.DeleteConnection)
}

// @Summary      Get All Connections
// @Tags         Connection
// @Produce      json
// @Success      200     {object}  types.Envelope{data=[]model.Connection}
// @Router       /api/v1/connections [GET]
func (c *Connection) GetConnections(ctx *fiber.Ctx) error {
	connections, err := c.ConnectionService.GetConnections(ctx.UserContext())
	if err != nil {
		return err
	}
	return envelope.OK(ctx, connections, "Connections retrieved successfully")
}

// @Summary      Create a Connection
// @Description  Creates a directed edge between two locations. An existing edge between the same pair is relabeled.
// @Tags         Connection
// @Accept       json
// @Produce      json
// @Param        request  body      types.CreateConnectionRequest  true  "Connection"
// @Success      200     {object}  types.Envelope{data=model.Connection}
// @Failure      400     {object}  types.Envelope "Invalid request"
// @Failure      404     {object}  types.Envelope "Location not found"
// @Router       /api/v1/connections [POST]
func (c *Connection) CreateConnection(ctx *fiber.Ctx) error {
	var req types.CreateConnectionRequest
	if err := rekuest.ValidBody(ctx, &req); err != nil {
		return err
	}

	conn, err := c.ConnectionService.CreateConnection(ctx.UserContext(), &req)
	if err != nil {
		return err
	}
	return envelope.OK(ctx, conn, "Connection saved successfully")
}

// @Summary      Delete a Connection
// @Tags         Connection
// @Produce      json
// @Param        connectionId  path      int  true  "Connection ID"
// @Success      200     {object}  types.Envelope
// @Failure      404     {object}  types.Envelope "Connection not found"
// @Router       /api/v1/connections/{connectionId} [DELETE]
func (c *Connection) DeleteConnection(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("connectionId")
	if err != nil || id <= 0 {
		return vaerr.ErrInvalidReq.Msg("invalid or missing connectionId")
	}

	if err := c.ConnectionService.DeleteConnection(ctx.UserContext(), int64(id)); err != nil {
		return err
	}
	return envelope.OK(ctx, nil, "Connection deleted successfully")
}
