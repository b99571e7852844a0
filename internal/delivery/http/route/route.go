package route

import (
	"github.com/furluv/furluv/internal/delivery/http"
	"github.com/furluv/furluv/internal/delivery/http/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type RouteConfig struct {
	App                *fiber.App
	Log                *zap.Logger
	AuthMiddleware     *middleware.AuthMiddleware
	PostController     *http.PostController
	ListingController  *http.ListingController
	PetController      *http.PetController
	PetOwnerController *http.PetOwnerController
	ImageController    *http.ImageController
	FeedController     *http.FeedController
}

func (c *RouteConfig) SetupRoute() {
	c.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := c.App.Group("/api")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	postGroup := api.Group("/posts")
	postGroup.Get("/", c.PostController.GetPosts)
	postGroup.Post("/", c.PostController.CreatePost)
	postGroup.Get("/:postId", c.PostController.GetPost)
	postGroup.Put("/:postId", c.PostController.UpdatePost)
	postGroup.Delete("/:postId", c.PostController.DeletePost)

	listingGroup := api.Group("/pet-listings")
	listingGroup.Get("/", c.ListingController.GetListings)
	listingGroup.Post("/", c.ListingController.CreateListing)
	listingGroup.Get("/:listingId", c.ListingController.GetListing)
	listingGroup.Put("/:listingId", c.ListingController.UpdateListing)
	listingGroup.Delete("/:listingId", c.ListingController.DeleteListing)

	petGroup := api.Group("/pets")
	petGroup.Get("/", c.PetController.GetPets)
	petGroup.Post("/", c.PetController.CreatePet)
	petGroup.Get("/:petId", c.PetController.GetPet)
	petGroup.Put("/:petId", c.PetController.UpdatePet)

	authLimiter := middleware.SetupAuthRateLimiter(c.Log)

	ownerGroup := api.Group("/petowners")
	ownerGroup.Post("/", authLimiter, c.PetOwnerController.Register)
	ownerGroup.Post("/login", authLimiter, c.PetOwnerController.Login)
	ownerGroup.Get("/", c.PetOwnerController.SearchPetOwners)
	ownerGroup.Get("/me", c.AuthMiddleware.ProtectedRoute(), c.PetOwnerController.GetMe)
	ownerGroup.Post("/logout", c.AuthMiddleware.ProtectedRoute(), c.PetOwnerController.Logout)
	ownerGroup.Get("/:ownerId", c.PetOwnerController.GetPetOwner)
	ownerGroup.Put("/:ownerId", c.AuthMiddleware.ProtectedRoute(), c.PetOwnerController.UpdatePetOwner)

	imageGroup := api.Group("/images")
	imageGroup.Post("/upload", c.ImageController.UploadImage)

	feedGroup := api.Group("/feed", c.AuthMiddleware.ProtectedRoute())
	feedGroup.Get("/", c.FeedController.GetFeed)
	feedGroup.Delete("/", c.FeedController.Reset)
	feedGroup.Post("/refresh", c.FeedController.Refresh)
	feedGroup.Get("/reactions", c.FeedController.GetReactions)
	feedGroup.Post("/posts", c.FeedController.CreatePost)
	feedGroup.Delete("/posts/:postId", c.FeedController.DeletePost)
	feedGroup.Post("/posts/:postId/like", c.FeedController.ToggleLike)
	feedGroup.Post("/posts/:postId/comments/toggle", c.FeedController.ToggleComments)
	feedGroup.Post("/posts/:postId/comments", c.FeedController.AddComment)
	feedGroup.Post("/posts/:postId/comments/:commentId/reactions", c.FeedController.React)
}
