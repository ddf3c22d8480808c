package service

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/vila-abandonada/backend/internal/model"
	"github.com/vila-abandonada/backend/internal/model/types"
	"github.com/vila-abandonada/backend/internal/pkg/vaerr"
	"github.com/vila-abandonada/backend/internal/repo"
)

type Connection struct {
	DB             *bun.DB
	LocationRepo   *repo.Location
	ConnectionRepo *repo.Connection
}

func NewConnection(db *bun.DB, locationRepo *repo.Location, connectionRepo *repo.Connection) *Connection {
	return &Connection{
		DB:             db,
		LocationRepo:   locationRepo,
		ConnectionRepo: connectionRepo,
	}
}

func (s *Connection) GetConnections(ctx context.Context) ([]*model.Connection, error) {
	connections, err := s.ConnectionRepo.GetConnections(ctx)
	if err != nil {
		return nil, dbErr(err)
	}
	return connections, nil
}

// CreateConnection creates the edge, or relabels it when the pair is already connected.
func (s *Connection) CreateConnection(ctx context.Context, req *types.CreateConnectionRequest) (*model.Connection, error) {
	for _, id := range []string{req.FromLocationID, req.ToLocationID} {
		exists, err := s.LocationRepo.Exists(ctx, s.DB, id)
		if err != nil {
			return nil, dbErr(err)
		}
		if !exists {
			return nil, vaerr.ErrNotFound.Msg("location %q not found", id)
		}
	}

	conn := &model.Connection{
		FromLocationID: req.FromLocationID,
		ToLocationID:   req.ToLocationID,
		Label:          req.Label,
	}
	if err := s.ConnectionRepo.UpsertConnection(ctx, s.DB, conn); err != nil {
		return nil, dbErr(err)
	}
	return conn, nil
}

func (s *Connection) DeleteConnection(ctx context.Context, id int64) error {
	affected, err := s.ConnectionRepo.DeleteConnection(ctx, id)
	if err != nil {
		return dbErr(err)
	}
	if affected == 0 {
		return vaerr.ErrNotFound.Msg("connection %d not found", id)
	}
	return nil
}
