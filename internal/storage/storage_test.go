package storage

import (
	"context"
	"strings"
	"testing"
	"time"

	"alcyxob/smartfit/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestAvatarKey(t *testing.T) {
	userID := primitive.NewObjectID()

	key, err := AvatarKey(userID, "image/PNG")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(key, "avatars/"+userID.Hex()+"/"))
	assert.True(t, strings.HasSuffix(key, ".png"))

	other, err := AvatarKey(userID, "image/png")
	require.NoError(t, err)
	assert.NotEqual(t, key, other)

	_, err = AvatarKey(userID, "application/pdf")
	assert.ErrorIs(t, err, ErrUnsupportedContentType)
}

func TestS3Storage_PresignsAgainstCustomEndpoint(t *testing.T) {
	store, err := NewS3Storage(context.Background(), config.S3Config{
		Endpoint:        "http://localhost:9000",
		Region:          "us-east-1",
		AccessKeyID:     "minio",
		SecretAccessKey: "minio-secret",
		BucketName:      "avatars",
	})
	require.NoError(t, err)

	uploadURL, err := store.GeneratePresignedUploadURL(context.Background(), "avatars/u/a.png", "image/png", time.Minute)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(uploadURL, "http://localhost:9000/avatars/avatars/u/a.png?"), uploadURL)
	assert.Contains(t, uploadURL, "X-Amz-Signature=")
	assert.Contains(t, uploadURL, "X-Amz-Expires=60")

	downloadURL, err := store.GeneratePresignedDownloadURL(context.Background(), "avatars/u/a.png", 0)
	require.NoError(t, err)
	assert.Contains(t, downloadURL, "X-Amz-Expires=900")
}
