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
	"github.com/samber/lo"
	"go.uber.org/zap"
)

type PetUsecase struct {
	PetRepository *repository.PetRepository
	Log           *zap.Logger
	Config        *koanf.Koanf
}

func NewPetUsecase(petRepository *repository.PetRepository, zap *zap.Logger, koanf *koanf.Koanf) *PetUsecase {
	return &PetUsecase{
		PetRepository: petRepository,
		Log:           zap,
		Config:        koanf,
	}
}

func (usecase *PetUsecase) GetPets(ctx *fiber.Ctx) ([]model.PetResponse, error) {
	pets, err := usecase.PetRepository.GetPets(ctx.Context())
	if err != nil {
		return nil, err
	}

	return lo.Map(pets, func(pet model.Pet, _ int) model.PetResponse {
		return model.NewPetResponse(pet)
	}), nil
}

func (usecase *PetUsecase) GetPet(ctx *fiber.Ctx, petIdParam string) (model.PetResponse, error) {
	petId, err := parseId(petIdParam, "petId")
	if err != nil {
		return model.PetResponse{}, err
	}

	pet, err := usecase.PetRepository.GetPet(ctx.Context(), petId)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.PetResponse{}, petNotFound()
		}

		return model.PetResponse{}, err
	}

	return model.NewPetResponse(pet), nil
}

func (usecase *PetUsecase) CreatePet(ctx *fiber.Ctx, payload model.PetRequest) (model.PetResponse, error) {
	pet, err := newPet(payload)
	if err != nil {
		return model.PetResponse{}, err
	}

	now := time.Now().UTC()
	pet.CreateDatetime = now
	pet.UpdateDatetime = now

	pet.Id, err = usecase.PetRepository.CreatePet(ctx.Context(), pet)
	if err != nil {
		return model.PetResponse{}, err
	}

	usecase.Log.Debug("pet profile created", zap.Int64("petId", pet.Id))

	return model.NewPetResponse(pet), nil
}

func (usecase *PetUsecase) UpdatePet(ctx *fiber.Ctx, petIdParam string, payload model.PetRequest) (model.PetResponse, error) {
	ctxContext := ctx.Context()

	petId, err := parseId(petIdParam, "petId")
	if err != nil {
		return model.PetResponse{}, err
	}

	pet, err := newPet(payload)
	if err != nil {
		return model.PetResponse{}, err
	}

	pet.Id = petId
	pet.UpdateDatetime = time.Now().UTC()

	affected, err := usecase.PetRepository.UpdatePet(ctxContext, pet)
	if err != nil {
		return model.PetResponse{}, err
	}

	if affected == 0 {
		return model.PetResponse{}, petNotFound()
	}

	updated, err := usecase.PetRepository.GetPet(ctxContext, petId)
	if err != nil {
		return model.PetResponse{}, err
	}

	return model.NewPetResponse(updated), nil
}

// newPet trims the text fields and turns blank optional text into nil.
func newPet(payload model.PetRequest) (model.Pet, error) {
	pet := model.Pet{
		Name:      strings.TrimSpace(payload.Name),
		Type:      strings.TrimSpace(payload.Type),
		Breed:     strings.TrimSpace(payload.Breed),
		Age:       payload.Age,
		Bio:       blankToNil(payload.Bio),
		Documents: blankToNil(payload.Documents),
		ImageUrl:  model.ResolvedImage(payload.Image, payload.ImageUrl),
	}

	if pet.Name == "" {
		return pet, &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Name is required to not be empty",
			Param:   "name",
		}
	}

	if len(pet.Name) > constant.MAX_PET_NAME_LENGTH {
		return pet, &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Name is too long",
			Param:   "name",
		}
	}

	if pet.Age != nil && *pet.Age < 0 {
		return pet, &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Age must not be negative",
			Param:   "age",
		}
	}

	return pet, nil
}

func blankToNil(value *string) *string {
	if value == nil {
		return nil
	}

	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}

	return &trimmed
}

func petNotFound() error {
	return &model.ValidationError{
		Code:    constant.ERR_NOT_FOUND_ERROR,
		Message: "Pet not found",
		Param:   "petId",
	}
}
