package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pro-master/backend/internal/config"
)

// objectAPI is the subset of *s3.Client used here.
type objectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

type S3Storage struct {
	client   objectAPI
	bucket   string
	baseURL  string
	maxBytes int
	log      *zap.Logger
}

func NewS3Client(cfg *config.Config) *s3.Client {
	opts := s3.Options{
		Region:       cfg.S3Region,
		UsePathStyle: cfg.S3Endpoint != "",
	}
	if cfg.S3AccessKeyID != "" {
		opts.Credentials = aws.NewCredentialsCache(
			credentials.NewStaticCredentialsProvider(cfg.S3AccessKeyID, cfg.S3SecretKey, ""),
		)
	}
	if cfg.S3Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.S3Endpoint)
	}
	return s3.New(opts)
}

func NewS3Storage(client objectAPI, cfg *config.Config, log *zap.Logger) *S3Storage {
	base := strings.TrimRight(cfg.S3PublicBaseURL, "/")
	if base == "" {
		base = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.S3Bucket, cfg.S3Region)
	}
	return &S3Storage{
		client:   client,
		bucket:   cfg.S3Bucket,
		baseURL:  base,
		maxBytes: cfg.ImageMaxBytes,
		log:      log,
	}
}

func (s *S3Storage) Put(ctx context.Context, folder, payload string) (StoredImage, error) {
	data, err := Transcode(payload, s.maxBytes)
	if err != nil {
		return StoredImage{}, err
	}

	key := objectKey(folder)
	if _, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("image/webp"),
	}); err != nil {
		return StoredImage{}, fmt.Errorf("upload %s: %w", key, err)
	}

	return StoredImage{Key: key, URL: s.baseURL + "/" + key}, nil
}

func (s *S3Storage) Delete(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}
	if _, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}); err != nil {
		s.log.Warn("delete object failed", zap.String("key", key), zap.Error(err))
		return err
	}
	return nil
}

func objectKey(folder string) string {
	return folder + "/" + uuid.NewString() + ".webp"
}

var _ ImageStorage = (*S3Storage)(nil)
