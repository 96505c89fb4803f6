// Package storage stores contact avatars in an S3-compatible object store
// (MinIO in development).
package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/Nat1anWasTaken/sitcon-camp-2025/config"
)

// MaxAvatarSize is the upload size limit (5MB).
const MaxAvatarSize = 5 * 1024 * 1024

// allowedAvatarTypes are the content types accepted for avatar uploads.
var allowedAvatarTypes = []string{
	"image/jpeg", "image/jpg", "image/png", "image/gif", "image/webp",
}

// ValidateAvatar checks the upload's content type and size.
func ValidateAvatar(contentType string, size int64) error {
	allowed := false
	for _, t := range allowedAvatarTypes {
		if contentType == t {
			allowed = true
			break
		}
	}
	if !allowed {
		return fmt.Errorf("不支援的文件類型: %s。僅支援: %s", contentType, strings.Join(allowedAvatarTypes, ", "))
	}
	if size > MaxAvatarSize {
		return fmt.Errorf("文件過大: %d bytes。最大允許: %d bytes", size, MaxAvatarSize)
	}
	return nil
}

// AvatarStorage wraps the S3 client and bucket configuration.
type AvatarStorage struct {
	client *s3.Client
	bucket string
}

// NewAvatarStorage builds an S3 client pointed at the configured endpoint.
// MinIO requires path-style addressing.
func NewAvatarStorage(ctx context.Context, cfg *config.Config) (*AvatarStorage, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion("us-east-1"),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load S3 configuration: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.S3Endpoint)
		o.UsePathStyle = true
	})

	return &AvatarStorage{client: client, bucket: cfg.S3Bucket}, nil
}

// Upload stores the avatar bytes and returns the object key.
// Keys are namespaced by user and contact so a key never collides across
// ownership boundaries.
func (a *AvatarStorage) Upload(ctx context.Context, data []byte, contentType string, userID, contactID uint) (string, error) {
	ext := extensionFor(contentType)
	key := fmt.Sprintf("avatars/users/%d/contacts/%d/%s.%s", userID, contactID, uuid.New().String(), ext)

	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("文件上傳失敗: %w", err)
	}
	return key, nil
}

// Fetch returns the avatar bytes and content type for an object key.
func (a *AvatarStorage) Fetch(ctx context.Context, key string) ([]byte, string, error) {
	out, err := a.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch avatar %s: %w", key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read avatar %s: %w", key, err)
	}

	contentType := "image/jpeg"
	if out.ContentType != nil {
		contentType = *out.ContentType
	}
	return data, contentType, nil
}

// Delete removes the avatar object. A missing object is not an error.
func (a *AvatarStorage) Delete(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}
	_, err := a.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete avatar %s: %w", key, err)
	}
	return nil
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/png":
		return "png"
	case "image/gif":
		return "gif"
	case "image/webp":
		return "webp"
	default:
		return "jpg"
	}
}
