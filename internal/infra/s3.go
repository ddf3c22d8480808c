package infra

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/pkg/errors"

	"github.com/vila-abandonada/backend/internal/app/appconfig"
)

// S3 builds the client used by the game data export. Static credentials are used when
// configured, otherwise the default AWS credential chain applies.
func S3(conf *appconfig.Config) (*s3.Client, error) {
	opts := []func(*config.LoadOptions) error{
		config.WithRegion(conf.ExportS3Region),
	}
	if conf.AWSAccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(conf.AWSAccessKey, conf.AWSSecretKey, ""),
		))
	}

	cfg, err := config.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load aws config")
	}

	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		if conf.ExportS3Endpoint != "" {
			o.BaseEndpoint = aws.String(conf.ExportS3Endpoint)
			o.UsePathStyle = true
		}
	}), nil
}
