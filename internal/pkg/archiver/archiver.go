package archiver

import (
	"compress/gzip"
	"context"
	"fmt"
	"os"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	FileExt                = ".jsonl.gz"
	LocalTempDirPattern    = "vila-archiver-*"
	ArchiverChanBufferSize = 16
	StampLayout            = "20060102T150405Z"
)

var ErrFileAlreadyExists = errors.New("file already exists")

// Uploader is the subset of *s3.Client the archiver needs.
type Uploader interface {
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Archiver streams the records of one realm (e.g. "locations") into a gzipped JSON lines
// file and uploads it to S3.
type Archiver struct {
	S3Client Uploader
	S3Bucket string

	// S3Prefix has no leading slash and typically a trailing one, e.g. "gamedata/".
	S3Prefix string

	RealmName string

	stamp        time.Time
	localTempDir string
	writerCh     chan any
	logger       *zerolog.Logger
}

func (a *Archiver) initLogger() {
	if a.logger == nil {
		logger := log.With().
			Str("module", "archiver").
			Str("realm", a.RealmName).
			Logger()
		a.logger = &logger
	}
}

func (a *Archiver) CanonicalFilePath() string {
	return a.RealmName + "/" + a.RealmName + "_" + a.stamp.UTC().Format(StampLayout) + FileExt
}

func (a *Archiver) Key() string {
	return a.S3Prefix + a.CanonicalFilePath()
}

func (a *Archiver) Prepare(ctx context.Context, stamp time.Time) error {
	a.initLogger()

	a.logger.Info().Time("stamp", stamp).Msg("preparing archiver")
	a.stamp = stamp
	a.writerCh = make(chan any, ArchiverChanBufferSize)

	if err := a.assertS3FileNonExistence(ctx); err != nil {
		return errors.Wrap(err, "failed to assertS3FileNonExistence")
	}

	dir, err := os.MkdirTemp(os.TempDir(), LocalTempDirPattern)
	if err != nil {
		return errors.Wrap(err, "failed to create temporary directory")
	}
	a.localTempDir = dir
	a.logger.Trace().Str("localTempDir", a.localTempDir).Msg("created local temp dir")

	return nil
}

func (a *Archiver) assertS3FileNonExistence(ctx context.Context) error {
	key := a.Key()
	object, err := a.S3Client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(a.S3Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var ae smithy.APIError
		if errors.As(err, &ae) && ae.ErrorCode() == "NotFound" {
			return nil
		}
		return errors.Wrap(err, "failed to invoke HeadObject")
	}
	return errors.Wrap(ErrFileAlreadyExists, fmt.Sprintf("file \"%s\" already exists in s3 with LastModified \"%s\"", key, object.LastModified))
}

// WriterCh returns the record channel. Caller MUST close it once every record is sent.
func (a *Archiver) WriterCh() chan any {
	return a.writerCh
}

// Collect drains WriterCh into the local file and uploads it. It must run on a different
// goroutine than the one feeding WriterCh.
func (a *Archiver) Collect(ctx context.Context) error {
	if err := a.archiveToLocalFile(ctx); err != nil {
		return errors.Wrap(err, "failed to archiveToLocalFile")
	}

	if err := a.uploadToS3(ctx); err != nil {
		return errors.Wrap(err, "failed to uploadToS3")
	}
	a.logger.Info().Str("key", a.Key()).Msg("uploaded to S3")

	return a.Cleanup()
}

func (a *Archiver) localFilePath() string {
	return path.Join(a.localTempDir, a.CanonicalFilePath())
}

func (a *Archiver) archiveToLocalFile(ctx context.Context) error {
	p := a.localFilePath()
	if err := os.MkdirAll(path.Dir(p), 0o755); err != nil {
		return errors.Wrap(err, "failed to create directory")
	}

	file, err := os.OpenFile(p, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return errors.Wrap(err, "failed to open file")
	}
	defer file.Close()

	gzipWriter := gzip.NewWriter(file)
	defer gzipWriter.Close()

	encoder := json.NewEncoder(gzipWriter)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case item, ok := <-a.writerCh:
			if !ok {
				return nil
			}
			if err := encoder.Encode(item); err != nil {
				return errors.Wrap(err, "failed to encode item")
			}
		}
	}
}

func (a *Archiver) uploadToS3(ctx context.Context) error {
	file, err := os.Open(a.localFilePath())
	if err != nil {
		return errors.Wrap(err, "failed to open file")
	}
	defer file.Close()

	if _, err := a.S3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:            aws.String(a.S3Bucket),
		Key:               aws.String(a.Key()),
		Body:              file,
		ContentType:       aws.String("application/x-ndjson"),
		ContentEncoding:   aws.String("gzip"),
		ChecksumAlgorithm: types.ChecksumAlgorithmSha256,
	}); err != nil {
		return errors.Wrap(err, "failed to invoke PutObject")
	}
	return nil
}

func (a *Archiver) Cleanup() error {
	if a.localTempDir == "" {
		return nil
	}
	if err := os.RemoveAll(a.localTempDir); err != nil {
		return errors.Wrap(err, "failed to remove local temp dir")
	}
	return nil
}
