package s3

//go:generate go run go.uber.org/mock/mockgen -source=./s3.go -destination=./mocks/s3_mock.go -package=mocks

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"garage/config"
	"garage/infras/otel"
	"garage/shared/constant"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"
)

const (
	otelAttrObjectKey = "object_key"
	otelAttrBucket    = "bucket"
	otelAttrSize      = "size"
)

var ErrNotConfigured = errors.New("s3 bucket is not configured")

type S3 interface {
	UploadFileBytes(ctx context.Context, directory, fileName, contentType string, fileData []byte) (url string, err error)
}

type putObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type s3Impl struct {
	Client putObjectAPI
	Config *config.Config
	otel   otel.Otel
}

// UploadFileBytes stores fileData under directory/fileName in the configured bucket, overwriting any previous
// object with the same key, and returns its public URL.
func (svc *s3Impl) UploadFileBytes(ctx context.Context, directory, fileName, contentType string, fileData []byte) (url string, err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+".UploadFileBytes")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	bucketName := svc.Config.External.S3.BucketName
	if bucketName == "" || svc.Client == nil {
		return constant.Empty, ErrNotConfigured
	}

	objectKey := path.Join(directory, fileName)

	scope.SetAttributes(map[string]any{
		otelAttrObjectKey: objectKey,
		otelAttrBucket:    bucketName,
		otelAttrSize:      len(fileData),
	})

	return svc.upload(ctx, bucketName, objectKey, contentType, bytes.NewReader(fileData))
}

func (svc *s3Impl) upload(ctx context.Context, bucket, objectKey, contentType string, reader *bytes.Reader) (url string, err error) {
	_, err = svc.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(objectKey),
		Body:          reader,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(reader.Size()),
	})
	if err != nil {
		log.Error().Err(err).Str("key", objectKey).Msg("failed to upload file to S3")

		return constant.Empty, fmt.Errorf("failed to upload file to S3: %w", err)
	}

	return svc.publicURL(bucket, objectKey), nil
}

func (svc *s3Impl) publicURL(bucket, objectKey string) string {
	publicDomain := strings.TrimSuffix(svc.Config.External.S3.PublicDomain, "/")
	if publicDomain != "" {
		return fmt.Sprintf("%s/%s", publicDomain, objectKey)
	}

	endpoint := strings.TrimSuffix(svc.Config.External.S3.APIEndpoint, "/")

	return fmt.Sprintf("%s/%s/%s", endpoint, bucket, objectKey)
}

func New(config *config.Config, otel otel.Otel) S3 {
	cfg := config.External.S3
	if cfg.BucketName == "" {
		log.Warn().Msg("S3 bucket is not set, worksheet exports will be skipped")

		return &s3Impl{Config: config, otel: otel}
	}

	staticProvider := credentials.NewStaticCredentialsProvider(
		cfg.AccessKeyID,
		cfg.SecretAccessKey,
		"",
	)

	awsCfg, err := awsConfig.LoadDefaultConfig(
		context.Background(),
		awsConfig.WithCredentialsProvider(staticProvider),
		awsConfig.WithRegion(cfg.Region),
	)
	if err != nil {
		log.Err(err).Msg("Error loading AWS configuration")
	}

	s3Client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.APIEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.APIEndpoint)
			o.UsePathStyle = true
		}
	})

	return &s3Impl{
		Client: s3Client,
		Config: config,
		otel:   otel,
	}
}
