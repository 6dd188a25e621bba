package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/GTDGit/ecolux_api/internal/config"
)

// ErrStorageDisabled is returned when no bucket is configured.
var ErrStorageDisabled = errors.New("object storage is not configured")

// Object is a file to be stored.
type Object struct {
	Folder      string
	Filename    string
	ContentType string
	Data        []byte
}

// Storage persists product media and returns a public URL.
type Storage interface {
	Put(ctx context.Context, obj Object) (string, error)
}

type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Storage uploads objects to an S3 (or S3-compatible) bucket.
type S3Storage struct {
	client   objectPutter
	bucket   string
	region   string
	endpoint string
	newKey   func() string
}

// NewS3Storage creates an S3 client from cfg. Static credentials are used when
// present, otherwise the default AWS credential chain applies.
func NewS3Storage(ctx context.Context, cfg *config.S3Config) (*S3Storage, error) {
	if cfg == nil || !cfg.Enabled() {
		return nil, ErrStorageDisabled
	}

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	return newS3Storage(client, cfg), nil
}

func newS3Storage(client objectPutter, cfg *config.S3Config) *S3Storage {
	return &S3Storage{
		client:   client,
		bucket:   cfg.Bucket,
		region:   cfg.Region,
		endpoint: strings.TrimSuffix(cfg.Endpoint, "/"),
		newKey:   func() string { return uuid.New().String() },
	}
}

// Put uploads obj under Folder with a random name that keeps the file extension.
func (s *S3Storage) Put(ctx context.Context, obj Object) (string, error) {
	key := s.objectKey(obj)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(obj.Data),
		ContentType:   aws.String(obj.ContentType),
		ContentLength: aws.Int64(int64(len(obj.Data))),
	})
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("Failed to upload to S3")
		return "", fmt.Errorf("upload %s: %w", key, err)
	}

	log.Info().Str("key", key).Int("bytes", len(obj.Data)).Msg("Uploaded object to S3")
	return s.ObjectURL(key), nil
}

func (s *S3Storage) objectKey(obj Object) string {
	name := s.newKey()
	if i := strings.LastIndex(obj.Filename, "."); i >= 0 && i < len(obj.Filename)-1 {
		name += strings.ToLower(obj.Filename[i:])
	}
	folder := strings.Trim(obj.Folder, "/")
	if folder == "" {
		return name
	}
	return folder + "/" + name
}

// ObjectURL returns the public URL for key.
func (s *S3Storage) ObjectURL(key string) string {
	if s.endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", s.endpoint, s.bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}
