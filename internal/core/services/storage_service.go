package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"path"
	"strings"

	appconfig "patitas-adopciones/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// Storage errors
var (
	ErrExtensionNotAllowed = errors.New("file extension not allowed")
	ErrStorageDisabled     = errors.New("object storage not configured")
)

// PhotoStorage stores pet photos and returns their public URL
type PhotoStorage interface {
	Upload(ctx context.Context, filename, contentType string, body io.Reader) (string, error)
	Delete(ctx context.Context, photoURL string) error
	IsEnabled() bool
}

// S3Storage stores photos in an S3 bucket under mascotas/<uuid>.<ext>
type S3Storage struct {
	client  *s3.Client
	cfg     *appconfig.Config
	enabled bool
}

// NewS3Storage creates a photo storage backed by S3. Disabled when no
// bucket is configured; uploads then fail with ErrStorageDisabled and
// the handlers fall back to saving pets without a photo.
func NewS3Storage(ctx context.Context, cfg *appconfig.Config) (*S3Storage, error) {
	if cfg.S3.Bucket == "" {
		return &S3Storage{cfg: cfg, enabled: false}, nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.S3.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.S3.AccessKeyID, cfg.S3.SecretAccessKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to configure object storage: %w", err)
	}

	return &S3Storage{
		client:  s3.NewFromConfig(awsCfg),
		cfg:     cfg,
		enabled: true,
	}, nil
}

// IsEnabled checks if photo storage is configured
func (s *S3Storage) IsEnabled() bool {
	return s.enabled
}

// Upload stores a photo and returns its public URL
func (s *S3Storage) Upload(ctx context.Context, filename, contentType string, body io.Reader) (string, error) {
	if !s.enabled {
		return "", ErrStorageDisabled
	}

	ext, err := s.allowedExtension(filename)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("mascotas/%s.%s", uuid.New().String(), ext)

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.cfg.S3.Bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload photo: %w", err)
	}

	url := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.cfg.S3.Bucket, s.cfg.S3.Region, key)
	log.Printf("✅ Photo uploaded: %s", key)
	return url, nil
}

// Delete removes a previously uploaded photo. URLs outside the bucket
// are ignored.
func (s *S3Storage) Delete(ctx context.Context, photoURL string) error {
	if !s.enabled || photoURL == "" {
		return nil
	}

	prefix := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/", s.cfg.S3.Bucket, s.cfg.S3.Region)
	if !strings.HasPrefix(photoURL, prefix) {
		return nil
	}
	key := strings.TrimPrefix(photoURL, prefix)

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.cfg.S3.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete photo: %w", err)
	}

	return nil
}

// allowedExtension extracts and validates the file extension
func (s *S3Storage) allowedExtension(filename string) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(filename), "."))
	if ext == "" {
		return "", ErrExtensionNotAllowed
	}

	for _, allowed := range s.cfg.Upload.AllowedExtensions {
		if ext == allowed {
			return ext, nil
		}
	}
	return "", ErrExtensionNotAllowed
}
