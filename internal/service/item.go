package service

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/vila-abandonada/backend/internal/model"
	"github.com/vila-abandonada/backend/internal/model/types"
	"github.com/vila-abandonada/backend/internal/pkg/vaerr"
	"github.com/vila-abandonada/backend/internal/repo"
)

type Item struct {
	ItemRepo    *repo.Item
	HotspotRepo *repo.Hotspot
}

func NewItem(itemRepo *repo.Item, hotspotRepo *repo.Hotspot) *Item {
	return &Item{
		ItemRepo:    itemRepo,
		HotspotRepo: hotspotRepo,
	}
}

func (s *Item) GetItems(ctx context.Context) ([]*model.Item, error) {
	items, err := s.ItemRepo.GetItems(ctx)
	if err != nil {
		return nil, dbErr(err)
	}
	return items, nil
}

func (s *Item) GetItemByID(ctx context.Context, id string) (*model.Item, error) {
	item, err := s.ItemRepo.GetItemByID(ctx, id)
	if err != nil {
		if err == vaerr.ErrNotFound {
			return nil, vaerr.ErrNotFound.Msg("item %q not found", id)
		}
		return nil, dbErr(err)
	}
	return item, nil
}

// TransferItems moves item hotspots between locations. Zero moved hotspots is reported as not found.
func (s *Item) TransferItems(ctx context.Context, req *types.TransferItemsRequest) (*types.TransferItemsResult, error) {
	transferred, err := s.HotspotRepo.TransferItems(ctx, req.FromLocationID, req.ToLocationID, req.ItemID)
	if err != nil {
		return nil, dbErr(err)
	}
	if transferred == 0 {
		return nil, vaerr.ErrNotFound.Msg("no item hotspots found in location %q", req.FromLocationID)
	}

	log.Info().
		Str("evt.name", "items.transfer").
		Str("from", req.FromLocationID).
		Str("to", req.ToLocationID).
		Str("item_id", req.ItemID).
		Int64("transferred", transferred).
		Msg("item hotspots transferred")

	return &types.TransferItemsResult{Transferred: transferred}, nil
}
