package v1

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"

	"github.com/vila-abandonada/backend/internal/model/types"
	"github.com/vila-abandonada/backend/internal/pkg/envelope"
	"github.com/vila-abandonada/backend/internal/server/svr"
	"github.com/vila-abandonada/backend/internal/service"
	"github.com/vila-abandonada/backend/internal/util/rekuest"
)

type Item struct {
	fx.In

	ItemService *service.Item
}

func RegisterItem(v1 *svr.V1, c Item) {
	v1.Get("/items", c.GetItems)
	v1.Get("/items/:itemId", c.GetItemByID)
	v1.Post("/items/transfer", c.TransferItems)
}

// @Summary      Get All Items
// @Tags         Item
// @Produce      json
// @Success      200     {object}  types.Envelope{data=[]model.Item}
// @Failure      500     {object}  types.Envelope "Database error"
// @Router       /api/v1/items [GET]
func (c *Item) GetItems(ctx *fiber.Ctx) error {
	items, err := c.ItemService.GetItems(ctx.UserContext())
	if err != nil {
		return err
	}
	return envelope.OK(ctx, items, "Items retrieved successfully")
}

// @Summary      Get an Item with ID
// @Tags         Item
// @Produce      json
// @Param        itemId  path      string  true  "Item ID"
// @Success      200     {object}  types.Envelope{data=model.Item}
// @Failure      404     {object}  types.Envelope "Item not found"
// @Router       /api/v1/items/{itemId} [GET]
func (c *Item) GetItemByID(ctx *fiber.Ctx) error {
	item, err := c.ItemService.GetItemByID(ctx.UserContext(), ctx.Params("itemId"))
	if err != nil {
		return err
	}
	return envelope.OK(ctx, item, "Item retrieved successfully")
}

// @Summary      Transfer Item Hotspots
// @Description  Moves the item hotspots of a location to another location, optionally only those of one item.
// @Tags         Item
// @Accept       json
// @Produce      json
// @Param        request  body      types.TransferItemsRequest  true  "Transfer"
// @Success      200     {object}  types.Envelope{data=types.TransferItemsResult}
// @Failure      400     {object}  types.Envelope "Invalid request"
// @Failure      404     {object}  types.Envelope "No item hotspot matched"
// @Router       /api/v1/items/transfer [POST]
func (c *Item) TransferItems(ctx *fiber.Ctx) error {
	var req types.TransferItemsRequest
	if err := rekuest.ValidBody(ctx, &req); err != nil {
		return err
	}

	result, err := c.ItemService.TransferItems(ctx.UserContext(), &req)
	if err != nil {
		return err
	}
	return envelope.OK(ctx, result, "Items transferred successfully")
}
