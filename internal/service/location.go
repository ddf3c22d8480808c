package service

import (
	"context"
	"encoding/json"

	"github.com/ahmetb/go-linq/v3"
	"github.com/samber/lo"

	"github.com/vila-abandonada/backend/internal/model"
	"github.com/vila-abandonada/backend/internal/pkg/vaerr"
	"github.com/vila-abandonada/backend/internal/repo"
)

type Location struct {
	LocationRepo   *repo.Location
	HotspotRepo    *repo.Hotspot
	PuzzleRepo     *repo.Puzzle
	WallRepo       *repo.DestructibleWall
	ConnectionRepo *repo.Connection
}

func NewLocation(locationRepo *repo.Location, hotspotRepo *repo.Hotspot, puzzleRepo *repo.Puzzle, wallRepo *repo.DestructibleWall, connectionRepo *repo.Connection) *Location {
	return &Location{
		LocationRepo:   locationRepo,
		HotspotRepo:    hotspotRepo,
		PuzzleRepo:     puzzleRepo,
		WallRepo:       wallRepo,
		ConnectionRepo: connectionRepo,
	}
}

func (s *Location) GetLocations(ctx context.Context) ([]*model.LocationView, error) {
	locations, err := s.LocationRepo.GetLocations(ctx)
	if err != nil {
		return nil, dbErr(err)
	}
	hotspots, err := s.HotspotRepo.GetHotspots(ctx)
	if err != nil {
		return nil, dbErr(err)
	}
	puzzles, err := s.PuzzleRepo.GetPuzzles(ctx)
	if err != nil {
		return nil, dbErr(err)
	}
	walls, err := s.WallRepo.GetWalls(ctx)
	if err != nil {
		return nil, dbErr(err)
	}
	connections, err := s.ConnectionRepo.GetConnections(ctx)
	if err != nil {
		return nil, dbErr(err)
	}

	puzzlesMap := make(map[string]json.RawMessage, len(puzzles))
	linq.From(puzzles).
		ToMapByT(
			&puzzlesMap,
			func(p *model.LocationPuzzle) string { return p.LocationID },
			func(p *model.LocationPuzzle) json.RawMessage { return p.PuzzleData })

	hotspotsByLocation := lo.GroupBy(hotspots, func(h *model.Hotspot) string { return h.LocationID })
	wallsByLocation := lo.GroupBy(walls, func(w *model.DestructibleWall) string { return w.LocationID })
	connectionsByLocation := lo.GroupBy(connections, func(c *model.Connection) string { return c.FromLocationID })

	return lo.Map(locations, func(l *model.Location, _ int) *model.LocationView {
		return &model.LocationView{
			Location:          l,
			Hotspots:          orEmpty(hotspotsByLocation[l.ID]),
			Puzzle:            puzzlesMap[l.ID],
			DestructibleWalls: orEmpty(wallsByLocation[l.ID]),
			Connections:       orEmpty(connectionsByLocation[l.ID]),
		}
	}), nil
}

func (s *Location) GetLocationByID(ctx context.Context, id string) (*model.LocationView, error) {
	location, err := s.LocationRepo.GetLocationByID(ctx, id)
	if err != nil {
		if err == vaerr.ErrNotFound {
			return nil, vaerr.ErrNotFound.Msg("location %q not found", id)
		}
		return nil, dbErr(err)
	}

	hotspots, err := s.HotspotRepo.GetHotspotsByLocationID(ctx, id)
	if err != nil {
		return nil, dbErr(err)
	}
	walls, err := s.WallRepo.GetWallsByLocationID(ctx, id)
	if err != nil {
		return nil, dbErr(err)
	}
	connections, err := s.ConnectionRepo.GetConnectionsFrom(ctx, id)
	if err != nil {
		return nil, dbErr(err)
	}

	view := &model.LocationView{
		Location:          location,
		Hotspots:          hotspots,
		DestructibleWalls: walls,
		Connections:       connections,
	}

	puzzle, err := s.PuzzleRepo.GetPuzzleByLocationID(ctx, id)
	switch {
	case err == nil:
		view.Puzzle = puzzle.PuzzleData
	case err != vaerr.ErrNotFound:
		return nil, dbErr(err)
	}

	return view, nil
}

// DeleteLocation removes a location together with its hotspots, puzzle, walls and edges.
func (s *Location) DeleteLocation(ctx context.Context, id string) error {
	affected, err := s.LocationRepo.DeleteLocation(ctx, id)
	if err != nil {
		return dbErr(err)
	}
	if affected == 0 {
		return vaerr.ErrNotFound.Msg("location %q not found", id)
	}
	return nil
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
