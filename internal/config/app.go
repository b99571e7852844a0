package config

import (
	"github.com/furluv/furluv/internal/backend"
	"github.com/furluv/furluv/internal/commenttree"
	http "github.com/furluv/furluv/internal/delivery/http"
	"github.com/furluv/furluv/internal/delivery/http/middleware"
	"github.com/furluv/furluv/internal/delivery/http/route"
	"github.com/furluv/furluv/internal/repository"
	"github.com/furluv/furluv/internal/usecase"
	"github.com/minio/minio-go/v7"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/knadh/koanf/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type ServerConfig struct {
	Router  *fiber.App
	DB      *pgxpool.Pool
	DBCache *redis.Client
	Log     *zap.Logger
	Config  *koanf.Koanf
	MinIO   *minio.Client
	Backend *backend.Client
}

func Server(config *ServerConfig) {
	postRepository := repository.NewPostRepository(config.Log, config.DB)
	postUsecase := usecase.NewPostUsecase(postRepository, config.Log, config.Config)
	postController := http.NewPostController(postUsecase, config.Log, config.Config)

	listingRepository := repository.NewListingRepository(config.Log, config.DB)
	listingUsecase := usecase.NewListingUsecase(listingRepository, config.Log, config.Config)
	listingController := http.NewListingController(listingUsecase, config.Log, config.Config)

	petRepository := repository.NewPetRepository(config.Log, config.DB)
	petUsecase := usecase.NewPetUsecase(petRepository, config.Log, config.Config)
	petController := http.NewPetController(petUsecase, config.Log, config.Config)

	petOwnerRepository := repository.NewPetOwnerRepository(config.Log, config.DB, config.DBCache)
	petOwnerUsecase := usecase.NewPetOwnerUsecase(petOwnerRepository, config.Log, config.Config)
	petOwnerController := http.NewPetOwnerController(petOwnerUsecase, config.Log, config.Config)

	imageRepository := repository.NewImageRepository(config.Log, config.MinIO)
	imageUsecase := usecase.NewImageUsecase(imageRepository, config.Log, config.Config)
	imageController := http.NewImageController(imageUsecase, config.Log, config.Config)

	feedRepository := repository.NewFeedRepository(config.Log, config.DBCache, config.Config.Duration("FEED_STATE_TTL"))
	feedUsecase := usecase.NewFeedUsecase(feedRepository, config.Backend, commenttree.NewClockIDs(), config.Log)
	feedController := http.NewFeedController(feedUsecase, config.Log, config.Config)

	authMiddleware := middleware.NewAuthMiddleware(config.Router, config.Log, config.Config, petOwnerUsecase)

	routeConfig := route.RouteConfig{
		App:                config.Router,
		Log:                config.Log,
		AuthMiddleware:     authMiddleware,
		PostController:     postController,
		ListingController:  listingController,
		PetController:      petController,
		PetOwnerController: petOwnerController,
		ImageController:    imageController,
		FeedController:     feedController,
	}

	routeConfig.SetupRoute()
}
