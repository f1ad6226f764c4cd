package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Default expiry duration for presigned URLs
const DefaultPresignedURLExpiry = 15 * time.Minute

var ErrUnsupportedContentType = errors.New("unsupported image content type")

//go:generate mockgen -source=$GOFILE -destination=../service/storage_mocks_test.go -package=service_test

// FileStorage defines the object storage operations used for profile avatars.
// Clients upload and download directly against presigned URLs.
type FileStorage interface {
	GeneratePresignedUploadURL(ctx context.Context, objectKey string, contentType string, expires time.Duration) (string, error)
	GeneratePresignedDownloadURL(ctx context.Context, objectKey string, expires time.Duration) (string, error)
	DeleteObject(ctx context.Context, objectKey string) error
}

var avatarExtensions = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
	"image/gif":  "gif",
}

// AvatarKey builds a fresh object key for a user's avatar image.
func AvatarKey(userID primitive.ObjectID, contentType string) (string, error) {
	ext, ok := avatarExtensions[strings.ToLower(strings.TrimSpace(contentType))]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedContentType, contentType)
	}
	return fmt.Sprintf("avatars/%s/%s.%s", userID.Hex(), uuid.NewString(), ext), nil
}
