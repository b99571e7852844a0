package usecase

import (
	"fmt"

	"github.com/furluv/furluv/internal/constant"
	"github.com/furluv/furluv/internal/model"
	"github.com/furluv/furluv/internal/repository"
	"github.com/furluv/furluv/internal/util"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/knadh/koanf/v2"
	"go.uber.org/zap"
)

type ImageUsecase struct {
	ImageRepository *repository.ImageRepository
	Log             *zap.Logger
	Config          *koanf.Koanf
}

func NewImageUsecase(imageRepository *repository.ImageRepository, zap *zap.Logger, koanf *koanf.Koanf) *ImageUsecase {
	return &ImageUsecase{
		ImageRepository: imageRepository,
		Log:             zap,
		Config:          koanf,
	}
}

// UploadImage stores the multipart "file" field as WebP and answers its public URL.
func (usecase *ImageUsecase) UploadImage(ctx *fiber.Ctx) (model.ImageUploadResponse, error) {
	fieldName := "file"
	fileHeader, err := ctx.FormFile(fieldName)
	if err != nil {
		return model.ImageUploadResponse{}, &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Image file is required to not be empty",
			Param:   fieldName,
		}
	}

	imageFile, imageSize, err := util.ValidateImage(fileHeader, fieldName, constant.MAX_IMAGE_DIMENSION)
	if err != nil {
		return model.ImageUploadResponse{}, err
	}

	bucketName := usecase.Config.String("MINIO_BUCKET_NAME")
	objectKey := fmt.Sprintf("images/%s.webp", uuid.New())

	err = usecase.ImageRepository.UploadImageObject(ctx.Context(), bucketName, objectKey, imageFile, imageSize)
	if err != nil {
		return model.ImageUploadResponse{}, err
	}

	usecase.Log.Debug("image uploaded", zap.String("objectKey", objectKey), zap.Int64("size", imageSize))

	return model.ImageUploadResponse{
		Url: usecase.ObjectURL(objectKey),
	}, nil
}

func (usecase *ImageUsecase) ObjectURL(objectKey string) string {
	return fmt.Sprintf("%s%s/%s/%s",
		usecase.Config.String("MINIO_HTTP"),
		usecase.Config.String("MINIO_URL"),
		usecase.Config.String("MINIO_BUCKET_NAME"),
		objectKey,
	)
}
