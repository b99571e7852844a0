package usecase

import (
	"errors"
	"strings"
	"time"

	"github.com/furluv/furluv/internal/constant"
	"github.com/furluv/furluv/internal/model"
	"github.com/furluv/furluv/internal/repository"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/knadh/koanf/v2"
	"go.uber.org/zap"
)

type ListingUsecase struct {
	ListingRepository *repository.ListingRepository
	Log               *zap.Logger
	Config            *koanf.Koanf
}

func NewListingUsecase(listingRepository *repository.ListingRepository, zap *zap.Logger, koanf *koanf.Koanf) *ListingUsecase {
	return &ListingUsecase{
		ListingRepository: listingRepository,
		Log:               zap,
		Config:            koanf,
	}
}

func (usecase *ListingUsecase) GetListings(ctx *fiber.Ctx, search string) ([]model.PetListingResponse, error) {
	listings, err := usecase.ListingRepository.GetListings(ctx.Context(), strings.TrimSpace(search))
	if err != nil {
		return nil, err
	}

	response := make([]model.PetListingResponse, 0, len(listings))
	for _, listing := range listings {
		response = append(response, model.NewPetListingResponse(listing))
	}

	return response, nil
}

func (usecase *ListingUsecase) GetListing(ctx *fiber.Ctx, listingIdParam string) (model.PetListingResponse, error) {
	listingId, err := parseId(listingIdParam, "listingId")
	if err != nil {
		return model.PetListingResponse{}, err
	}

	listing, err := usecase.ListingRepository.GetListing(ctx.Context(), listingId)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.PetListingResponse{}, listingNotFound()
		}

		return model.PetListingResponse{}, err
	}

	return model.NewPetListingResponse(listing), nil
}

func (usecase *ListingUsecase) CreateListing(ctx *fiber.Ctx, payload model.PetListingRequest) (model.PetListingResponse, error) {
	listing, err := newListing(payload)
	if err != nil {
		return model.PetListingResponse{}, err
	}

	now := time.Now().UTC()
	listing.CreateDatetime = now
	listing.UpdateDatetime = now

	listing.Id, err = usecase.ListingRepository.CreateListing(ctx.Context(), listing)
	if err != nil {
		return model.PetListingResponse{}, err
	}

	usecase.Log.Debug("pet listing created", zap.Int64("listingId", listing.Id))

	return model.NewPetListingResponse(listing), nil
}

func (usecase *ListingUsecase) UpdateListing(ctx *fiber.Ctx, listingIdParam string, payload model.PetListingRequest) (model.PetListingResponse, error) {
	ctxContext := ctx.Context()

	listingId, err := parseId(listingIdParam, "listingId")
	if err != nil {
		return model.PetListingResponse{}, err
	}

	listing, err := newListing(payload)
	if err != nil {
		return model.PetListingResponse{}, err
	}

	listing.Id = listingId
	listing.UpdateDatetime = time.Now().UTC()

	affected, err := usecase.ListingRepository.UpdateListing(ctxContext, listing)
	if err != nil {
		return model.PetListingResponse{}, err
	}

	if affected == 0 {
		return model.PetListingResponse{}, listingNotFound()
	}

	updated, err := usecase.ListingRepository.GetListing(ctxContext, listingId)
	if err != nil {
		return model.PetListingResponse{}, err
	}

	return model.NewPetListingResponse(updated), nil
}

func (usecase *ListingUsecase) DeleteListing(ctx *fiber.Ctx, listingIdParam string) error {
	listingId, err := parseId(listingIdParam, "listingId")
	if err != nil {
		return err
	}

	affected, err := usecase.ListingRepository.DeleteListing(ctx.Context(), listingId)
	if err != nil {
		return err
	}

	if affected == 0 {
		return listingNotFound()
	}

	return nil
}

// newListing validates the request and defaults an empty status to Available.
func newListing(payload model.PetListingRequest) (model.PetListing, error) {
	listing := model.PetListing{
		PetName:   strings.TrimSpace(payload.PetName),
		Breed:     strings.TrimSpace(payload.Breed),
		Age:       payload.Age,
		Status:    strings.TrimSpace(payload.Status),
		CreatorId: payload.CreatorId,
		ImageUrl:  model.ResolvedImage(payload.Image, payload.ImageUrl),
	}

	if listing.PetName == "" {
		return listing, &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Pet name is required to not be empty",
			Param:   "petName",
		}
	}

	if listing.Breed == "" {
		return listing, &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Breed is required to not be empty",
			Param:   "breed",
		}
	}

	if listing.Age < 0 {
		return listing, &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Age must not be negative",
			Param:   "age",
		}
	}

	if listing.Status == "" {
		listing.Status = constant.LISTING_STATUS_AVAILABLE
	}

	if listing.CreatorId != nil && *listing.CreatorId <= 0 {
		return listing, &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Creator id must be a positive integer",
			Param:   "creatorId",
		}
	}

	creatorName, err := normalizeCreatorName(payload.CreatorName)
	if err != nil {
		return listing, err
	}
	listing.CreatorName = creatorName

	return listing, nil
}

func listingNotFound() error {
	return &model.ValidationError{
		Code:    constant.ERR_NOT_FOUND_ERROR,
		Message: "Pet listing not found",
		Param:   "listingId",
	}
}
