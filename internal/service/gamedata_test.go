package service_test

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"context"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"github.com/go-redsync/redsync/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/vila-abandonada/backend/internal/infra"
	"github.com/vila-abandonada/backend/internal/pkg/archiver"
	"github.com/vila-abandonada/backend/internal/pkg/testentry"
	"github.com/vila-abandonada/backend/internal/service"
)

const bundleYAML = `
order: [hall, kitchen]
locations:
  - id: hall
    name: Hall de Entrada
    background_image: backgrounds/hall.png
    hotspots:
      - type: navigation
        target_location: kitchen
        x: "12.5"
        y: 40
      - type: item
        item_id: candle
        label: Vela
        item_image: items/candle.png
    puzzle:
      answer: 1888
  - id: kitchen
    name: Cozinha
`

func TestParseBundle(t *testing.T) {
	req, err := service.ParseBundle([]byte(bundleYAML))
	require.NoError(t, err)

	require.Len(t, req.Locations, 2)
	assert.Equal(t, []string{"hall", "kitchen"}, req.Order)
	assert.Equal(t, 12.5, req.Locations[0].Hotspots[0].X.Float64())
	assert.Equal(t, int64(1888), gjson.GetBytes(req.Locations[0].Puzzle, "answer").Int())

	_, err = service.ParseBundle([]byte("order: [hall]\n"))
	assert.Error(t, err, "expect a bundle without locations to be rejected")

	_, err = service.ParseBundle([]byte("locations: [unclosed"))
	assert.Error(t, err)

	assert.True(t, service.IsBundleFile("village.YML"))
	assert.True(t, service.IsBundleFile("village.json"))
	assert.False(t, service.IsBundleFile("village.txt"))
}

type memoryBucket struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func (b *memoryBucket) HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.objects[*params.Key]; ok {
		return &s3.HeadObjectOutput{}, nil
	}
	return nil, &smithy.GenericAPIError{Code: "NotFound", Message: "not found"}
}

func (b *memoryBucket) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	data, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.objects[*params.Key] = data
	return &s3.PutObjectOutput{}, nil
}

func (b *memoryBucket) lines(t *testing.T, key string) []string {
	t.Helper()
	b.mu.Lock()
	data, ok := b.objects[key]
	b.mu.Unlock()
	require.True(t, ok, "expect object %s to be uploaded", key)

	zr, err := gzip.NewReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer zr.Close()

	var lines []string
	scanner := bufio.NewScanner(zr)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	require.NoError(t, scanner.Err())
	return lines
}

func TestGameDataImportExport(t *testing.T) {
	conf := testentry.Config()
	conf.ExportS3Bucket = "vila-exports"

	var s *service.GameData
	testentry.PopulateWith(t, conf, nil, &s)
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "village.yaml")
	require.NoError(t, os.WriteFile(path, []byte(bundleYAML), 0o644))

	result, err := s.ImportFile(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Locations)
	assert.Equal(t, 2, result.Hotspots)
	assert.Equal(t, 1, result.Items)
	assert.Equal(t, 1, result.Puzzles)

	_, err = s.Export(ctx, time.Now())
	assert.ErrorIs(t, err, service.ErrExportNotConfigured, "expect export to require an s3 client")

	bucket := &memoryBucket{objects: map[string][]byte{}}
	s.WithUploader(bucket)

	stamp := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	keys, err := s.Export(ctx, stamp)
	require.NoError(t, err)

	sort.Strings(keys)
	assert.Equal(t, []string{
		"gamedata/connections/connections_20240301T120000Z.jsonl.gz",
		"gamedata/items/items_20240301T120000Z.jsonl.gz",
		"gamedata/locations/locations_20240301T120000Z.jsonl.gz",
	}, keys)

	locations := bucket.lines(t, keys[2])
	require.Len(t, locations, 2)
	assert.Equal(t, "hall", gjson.Get(locations[0], "id").String())
	assert.Equal(t, "candle", gjson.Get(locations[0], "hotspots.1.item_id").String())
	assert.Equal(t, "hall_puzzle", gjson.Get(locations[0], "puzzle.id").String())

	items := bucket.lines(t, keys[1])
	require.Len(t, items, 1)
	assert.Equal(t, "Vela", gjson.Get(items[0], "name").String())

	assert.Empty(t, bucket.lines(t, keys[0]))

	_, err = s.Export(ctx, stamp)
	assert.ErrorIs(t, err, archiver.ErrFileAlreadyExists, "expect an existing export to be kept")
}

func TestGameDataExportLock(t *testing.T) {
	conf := testentry.Config()
	conf.ExportS3Bucket = "vila-exports"

	var s *service.GameData
	testentry.PopulateWith(t, conf, nil, &s)
	ctx := context.Background()

	mr := miniredis.RunT(t)
	rs := infra.RedSync(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	require.NotNil(t, rs)

	bucket := &memoryBucket{objects: map[string][]byte{}}
	s.WithUploader(bucket).WithLock(rs)

	held := rs.NewMutex("mutex:gamedata-export", redsync.WithExpiry(time.Minute))
	require.NoError(t, held.Lock())

	stamp := time.Date(2024, 3, 2, 8, 0, 0, 0, time.UTC)
	_, err := s.Export(ctx, stamp)
	assert.ErrorIs(t, err, service.ErrExportInProgress, "expect a concurrent export to be refused")
	assert.Empty(t, bucket.objects)

	ok, err := held.Unlock()
	require.NoError(t, err)
	require.True(t, ok)

	keys, err := s.Export(ctx, stamp)
	require.NoError(t, err)
	assert.Len(t, keys, 3)

	// the lock is released after a successful export
	require.NoError(t, held.Lock())
}
