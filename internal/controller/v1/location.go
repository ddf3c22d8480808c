package v1

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"

	"github.com/vila-abandonada/backend/internal/model/types"
	"github.com/vila-abandonada/backend/internal/pkg/cachectrl"
	"github.com/vila-abandonada/backend/internal/pkg/envelope"
	"github.com/vila-abandonada/backend/internal/pkg/vaerr"
	"github.com/vila-abandonada/backend/internal/server/svr"
	"github.com/vila-abandonada/backend/internal/service"
	"github.com/vila-abandonada/backend/internal/util/rekuest"
)

type Location struct {
	fx.In

	LocationService     *service.Location
	LocationSaveService *service.LocationSave
}

func RegisterLocation(v1 *svr.V1, c Location) {
	v1.Get("/locations", cachectrl.NoStore, c.GetLocations)
	v1.Get("/locations/:locationId", cachectrl.NoStore, locationIDSanitizer, c.GetLocationByID)
	v1.Post("/locations/bulk", c.BulkSave)
	v1.Post("/locations", c.SaveLocation)
	v1.Delete("/locations/:locationId", locationIDSanitizer, c.DeleteLocation)
}

func locationIDSanitizer(ctx *fiber.Ctx) error {
	if strings.TrimSpace(ctx.Params("locationId")) == "" {
		return vaerr.ErrInvalidReq.Msg("invalid or missing locationId")
	}
	return ctx.Next()
}

// @Summary      Get All Locations
// @Description  Every location ordered by display order, with hotspots, puzzle, destructible walls and outgoing connections.
// @Tags         Location
// @Produce      json
// @Success      200     {object}  types.Envelope{data=[]model.LocationView}
// @Failure      500     {object}  types.Envelope "Database error"
// @Router       /api/v1/locations [GET]
func (c *Location) GetLocations(ctx *fiber.Ctx) error {
	locations, err := c.LocationService.GetLocations(ctx.UserContext())
	if err != nil {
		return err
	}
	return envelope.OK(ctx, locations, "Locations retrieved successfully")
}

// @Summary      Get a Location with ID
// @Tags         Location
// @Produce      json
// @Param        locationId  path      string  true  "Location ID"
// @Success      200     {object}  types.Envelope{data=model.LocationView}
// @Failure      404     {object}  types.Envelope "Location not found"
// @Router       /api/v1/locations/{locationId} [GET]
func (c *Location) GetLocationByID(ctx *fiber.Ctx) error {
	location, err := c.LocationService.GetLocationByID(ctx.UserContext(), ctx.Params("locationId"))
	if err != nil {
		return err
	}
	return envelope.OK(ctx, location, "Location retrieved successfully")
}

// @Summary      Bulk Save Locations
// @Description  Saves every location of the payload in one transaction. Hotspots, puzzle and destructible walls of each saved location are replaced; item hotspots update the item catalog.
// @Tags         Location
// @Accept       json
// @Produce      json
// @Param        request  body      types.BulkSaveLocationsRequest  true  "Locations and display order"
// @Success      200     {object}  types.Envelope{data=types.BulkSaveResult}
// @Failure      400     {object}  types.Envelope "Invalid request"
// @Failure      500     {object}  types.Envelope "Database error, nothing was saved"
// @Router       /api/v1/locations/bulk [POST]
func (c *Location) BulkSave(ctx *fiber.Ctx) error {
	var req types.BulkSaveLocationsRequest
	if err := rekuest.ValidBody(ctx, &req); err != nil {
		return err
	}

	result, err := c.LocationSaveService.BulkSave(ctx.UserContext(), &req)
	if err != nil {
		return err
	}
	return envelope.OK(ctx, result, "Locations saved successfully")
}

// @Summary      Save a Location
// @Description  Saves one location and replaces its hotspots. Outgoing connections are replaced only when the connections key is present.
// @Tags         Location
// @Accept       json
// @Produce      json
// @Param        request  body      types.SaveLocationRequest  true  "Location"
// @Success      200     {object}  types.Envelope{data=types.SaveLocationResult}
// @Failure      400     {object}  types.Envelope "Invalid request"
// @Failure      500     {object}  types.Envelope "Database error, nothing was saved"
// @Router       /api/v1/locations [POST]
func (c *Location) SaveLocation(ctx *fiber.Ctx) error {
	var req types.SaveLocationRequest
	if err := rekuest.ValidBody(ctx, &req); err != nil {
		return err
	}
	if err := rekuest.ValidStruct(ctx, &types.LocationIdentity{ID: req.ID, Name: req.Name}); err != nil {
		return err
	}

	view, err := c.LocationSaveService.SaveLocation(ctx.UserContext(), &req)
	if err != nil {
		return err
	}
	return envelope.OK(ctx, &types.SaveLocationResult{
		LocationView:        view,
		ConnectionsReplaced: req.Connections != nil,
	}, "Location saved successfully")
}

// @Summary      Delete a Location
// @Description  Deletes the location together with its hotspots, puzzle, destructible walls and connections.
// @Tags         Location
// @Produce      json
// @Param        locationId  path      string  true  "Location ID"
// @Success      200     {object}  types.Envelope
// @Failure      404     {object}  types.Envelope "Location not found"
// @Router       /api/v1/locations/{locationId} [DELETE]
func (c *Location) DeleteLocation(ctx *fiber.Ctx) error {
	if err := c.LocationService.DeleteLocation(ctx.UserContext(), ctx.Params("locationId")); err != nil {
		return err
	}
	return envelope.OK(ctx, nil, "Location deleted successfully")
}
