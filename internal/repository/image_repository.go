package repository

import (
	"bytes"
	"context"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

type ImageRepository struct {
	Log      *zap.Logger
	DBObject *minio.Client
}

func NewImageRepository(zap *zap.Logger, minio *minio.Client) *ImageRepository {
	return &ImageRepository{
		Log:      zap,
		DBObject: minio,
	}
}

func (repository *ImageRepository) UploadImageObject(ctx context.Context, bucketName string, objectKey string, imageFile *bytes.Reader, imageSize int64) error {
	_, err := repository.DBObject.PutObject(ctx, bucketName, objectKey, imageFile, imageSize,
		minio.PutObjectOptions{
			ContentType:  "image/webp",
			CacheControl: "public, max-age=31536000, immutable",
		})
	if err != nil {
		return err
	}

	return nil
}
