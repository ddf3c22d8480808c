package service

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/go-redsync/redsync/v4"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/vila-abandonada/backend/internal/app/appconfig"
	"github.com/vila-abandonada/backend/internal/model/types"
	"github.com/vila-abandonada/backend/internal/pkg/archiver"
)

const (
	RealmLocations   = "locations"
	RealmItems       = "items"
	RealmConnections = "connections"

	GameDataS3Prefix = "gamedata/"
)

var (
	ErrExportNotConfigured = errors.New("export bucket is not configured")
	ErrExportInProgress    = errors.New("another game data export is in progress")
)

// GameData moves whole game content in and out of the database: imports go through the
// bulk save, exports stream the read model to S3.
type GameData struct {
	Config              *appconfig.Config
	LocationService     *Location
	LocationSaveService *LocationSave
	ItemService         *Item
	ConnectionService   *Connection

	s3Client archiver.Uploader
	lock     *redsync.Mutex
}

func NewGameData(conf *appconfig.Config, locationService *Location, locationSaveService *LocationSave, itemService *Item, connectionService *Connection, s3Client *s3.Client, rs *redsync.Redsync) *GameData {
	s := &GameData{
		Config:              conf,
		LocationService:     locationService,
		LocationSaveService: locationSaveService,
		ItemService:         itemService,
		ConnectionService:   connectionService,
	}
	if s3Client != nil {
		s.s3Client = s3Client
	}
	return s.WithLock(rs)
}

// WithLock serializes exports across replicas through rs. A nil rs leaves exports unlocked.
func (s *GameData) WithLock(rs *redsync.Redsync) *GameData {
	if rs == nil {
		s.lock = nil
		return s
	}
	s.lock = rs.NewMutex("mutex:gamedata-export", redsync.WithExpiry(30*time.Minute), redsync.WithTries(2))
	return s
}

// WithUploader replaces the S3 client used by Export.
func (s *GameData) WithUploader(u archiver.Uploader) *GameData {
	s.s3Client = u
	return s
}

// ParseBundle decodes a bulk save payload from YAML or JSON. JSON is valid YAML, so both
// go through the YAML decoder and are re-encoded as JSON to reuse the request decoding
// of the HTTP API (numeric strings, raw puzzle objects).
func ParseBundle(data []byte) (*types.BulkSaveLocationsRequest, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "failed to parse game data bundle")
	}

	b, err := json.Marshal(doc)
	if err != nil {
		return nil, errors.Wrap(err, "failed to re-encode game data bundle")
	}

	var req types.BulkSaveLocationsRequest
	if err := json.Unmarshal(b, &req); err != nil {
		return nil, errors.Wrap(err, "failed to decode game data bundle")
	}
	if req.Locations == nil {
		return nil, errors.New("game data bundle has no locations key")
	}
	return &req, nil
}

// ImportFile bulk saves the bundle stored at path.
func (s *GameData) ImportFile(ctx context.Context, path string) (*types.BulkSaveResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read game data bundle")
	}

	req, err := ParseBundle(data)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("evt.name", "gamedata.import").
		Str("file", filepath.Base(path)).
		Int("locations", len(req.Locations)).
		Msg("importing game data bundle")

	return s.LocationSaveService.BulkSave(ctx, req)
}

// Export uploads one archive per realm, all sharing stamp. It returns the uploaded keys.
func (s *GameData) Export(ctx context.Context, stamp time.Time) ([]string, error) {
	if s.Config.ExportS3Bucket == "" || s.s3Client == nil {
		return nil, ErrExportNotConfigured
	}

	if s.lock != nil {
		if err := s.lock.LockContext(ctx); err != nil {
			return nil, errors.Wrap(ErrExportInProgress, err.Error())
		}
		defer func() {
			if _, err := s.lock.UnlockContext(context.Background()); err != nil {
				log.Warn().Err(err).Msg("failed to release game data export lock")
			}
		}()
	}

	realms := map[string]func(ctx context.Context, ch chan<- any) error{
		RealmLocations:   s.populateLocations,
		RealmItems:       s.populateItems,
		RealmConnections: s.populateConnections,
	}

	archivers := make(map[string]*archiver.Archiver, len(realms))
	for realm := range realms {
		a := &archiver.Archiver{
			S3Client:  s.s3Client,
			S3Bucket:  s.Config.ExportS3Bucket,
			S3Prefix:  GameDataS3Prefix,
			RealmName: realm,
		}
		if err := a.Prepare(ctx, stamp); err != nil {
			for _, prepared := range archivers {
				_ = prepared.Cleanup()
			}
			if errors.Is(err, archiver.ErrFileAlreadyExists) {
				log.Info().
					Str("evt.name", "gamedata.export").
					Str("realm", realm).
					Msg("already exported")
				return nil, err
			}
			return nil, errors.Wrapf(err, "failed to prepare %s archiver", realm)
		}
		archivers[realm] = a
	}

	eg, egCtx := errgroup.WithContext(ctx)
	for realm, a := range archivers {
		a := a
		populate := realms[realm]
		eg.Go(func() error {
			return a.Collect(egCtx)
		})
		eg.Go(func() error {
			ch := a.WriterCh()
			defer close(ch)
			return populate(egCtx, ch)
		})
	}

	err := eg.Wait()
	keys := make([]string, 0, len(archivers))
	for _, a := range archivers {
		if err != nil {
			_ = a.Cleanup()
		}
		keys = append(keys, a.Key())
	}

	log.Info().
		Str("evt.name", "gamedata.export").
		Strs("keys", keys).
		Err(err).
		Msg("finished exporting game data")

	if err != nil {
		return nil, err
	}
	return keys, nil
}

func send[T any](ctx context.Context, ch chan<- any, records []T) error {
	for _, r := range records {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ch <- r:
		}
	}
	return nil
}

func (s *GameData) populateLocations(ctx context.Context, ch chan<- any) error {
	locations, err := s.LocationService.GetLocations(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to load locations")
	}
	return send(ctx, ch, locations)
}

func (s *GameData) populateItems(ctx context.Context, ch chan<- any) error {
	items, err := s.ItemService.GetItems(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to load items")
	}
	return send(ctx, ch, items)
}

func (s *GameData) populateConnections(ctx context.Context, ch chan<- any) error {
	connections, err := s.ConnectionService.GetConnections(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to load connections")
	}
	return send(ctx, ch, connections)
}

// IsBundleFile reports whether name looks like an importable bundle.
func IsBundleFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml", ".json":
		return true
	}
	return false
}
