package usecase

import (
	"errors"
	"net/mail"
	"strconv"
	"strings"
	"time"

	"github.com/furluv/furluv/internal/constant"
	"github.com/furluv/furluv/internal/model"
	"github.com/furluv/furluv/internal/repository"
	"github.com/furluv/furluv/internal/util"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/knadh/koanf/v2"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type PetOwnerUsecase struct {
	PetOwnerRepository *repository.PetOwnerRepository
	Log                *zap.Logger
	Config             *koanf.Koanf
}

func NewPetOwnerUsecase(petOwnerRepository *repository.PetOwnerRepository, zap *zap.Logger, koanf *koanf.Koanf) *PetOwnerUsecase {
	return &PetOwnerUsecase{
		PetOwnerRepository: petOwnerRepository,
		Log:                zap,
		Config:             koanf,
	}
}

func (usecase *PetOwnerUsecase) Register(ctx *fiber.Ctx, payload model.PetOwnerRegisterRequest) (model.PetOwnerResponse, error) {
	ctxContext := ctx.Context()
	owner := model.PetOwnerResponse{}

	payload.FirstName = strings.TrimSpace(payload.FirstName)
	payload.LastName = strings.TrimSpace(payload.LastName)
	payload.Email = strings.ToLower(strings.TrimSpace(payload.Email))

	err := validateOwnerName(payload.FirstName, payload.LastName)
	if err != nil {
		return owner, err
	}

	err = validateEmail(payload.Email)
	if err != nil {
		return owner, err
	}

	if payload.Password == "" {
		return owner, &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Password is required to not be empty",
			Param:   "password",
		}
	} else if len(payload.Password) < 6 {
		return owner, &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Password must be at least 6 characters",
			Param:   "password",
		}
	} else if len(payload.Password) > 72 {
		return owner, &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Password must be at most 72 characters",
			Param:   "password",
		}
	}

	exists, err := usecase.PetOwnerRepository.CheckEmailUnique(ctxContext, payload.Email)
	if err != nil {
		return owner, err
	}

	if exists == 1 {
		return owner, &model.ValidationError{
			Code:    constant.ERR_CONFLICT_ERROR,
			Message: "Email is already registered",
			Param:   "email",
		}
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		return owner, err
	}

	now := time.Now().UTC()
	id, err := usecase.PetOwnerRepository.Register(ctxContext, model.PetOwner{
		FirstName:      payload.FirstName,
		LastName:       payload.LastName,
		Email:          payload.Email,
		Password:       string(hashedPassword),
		CreateDatetime: now,
		UpdateDatetime: now,
	})
	if err != nil {
		return owner, err
	}

	usecase.Log.Info("pet owner registered", zap.Int64("ownerId", id))

	return model.PetOwnerResponse{
		Id:        id,
		FirstName: payload.FirstName,
		LastName:  payload.LastName,
		Email:     payload.Email,
	}, nil
}

func (usecase *PetOwnerUsecase) Login(ctx *fiber.Ctx, payload model.PetOwnerLoginRequest) (model.PetOwnerLoginResponse, error) {
	ctxContext := ctx.Context()
	response := model.PetOwnerLoginResponse{}

	payload.Email = strings.ToLower(strings.TrimSpace(payload.Email))

	err := validateEmail(payload.Email)
	if err != nil {
		return response, err
	}

	if payload.Password == "" {
		return response, &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Password is required to not be empty",
			Param:   "password",
		}
	}

	ownerId, password, err := usecase.PetOwnerRepository.GetPetOwnerAuth(ctxContext, payload.Email)
	if err != nil {
		return response, err
	}

	err = bcrypt.CompareHashAndPassword([]byte(password), []byte(payload.Password))
	if err != nil {
		return response, &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Password is incorrect",
			Param:   "password",
		}
	}

	token, err := util.GenerateTokenResponse(ownerId, usecase.Config.String("JWT_SECRET_KEY"))
	if err != nil {
		return response, err
	}

	err = usecase.PetOwnerRepository.SetAccessTokenInCache(ctxContext, token.AccessToken, ownerId, util.AccessTokenDuration)
	if err != nil {
		return response, err
	}

	owner, err := usecase.PetOwnerRepository.GetPetOwner(ctxContext, ownerId)
	if err != nil {
		return response, err
	}

	response.Owner = owner
	response.Token = token

	return response, nil
}

func (usecase *PetOwnerUsecase) GetPetOwner(ctx *fiber.Ctx, ownerIdParam string) (model.PetOwnerResponse, error) {
	ownerId, err := parseId(ownerIdParam, "ownerId")
	if err != nil {
		return model.PetOwnerResponse{}, err
	}

	owner, err := usecase.PetOwnerRepository.GetPetOwner(ctx.Context(), ownerId)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return owner, &model.ValidationError{
				Code:    constant.ERR_NOT_FOUND_ERROR,
				Message: "Pet owner not found",
				Param:   "ownerId",
			}
		}

		return owner, err
	}

	return owner, nil
}

// UpdatePetOwner only lets owners edit their own profile.
func (usecase *PetOwnerUsecase) UpdatePetOwner(ctx *fiber.Ctx, ownerId int64, ownerIdParam string, payload model.PetOwnerUpdateRequest) (model.PetOwnerResponse, error) {
	ctxContext := ctx.Context()

	targetId, err := parseId(ownerIdParam, "ownerId")
	if err != nil {
		return model.PetOwnerResponse{}, err
	}

	if targetId != ownerId {
		return model.PetOwnerResponse{}, &model.ValidationError{
			Code:    constant.ERR_UNATHORIZED_ERROR,
			Message: "You can only update your own profile",
			Param:   "ownerId",
		}
	}

	payload.FirstName = strings.TrimSpace(payload.FirstName)
	payload.LastName = strings.TrimSpace(payload.LastName)

	err = validateOwnerName(payload.FirstName, payload.LastName)
	if err != nil {
		return model.PetOwnerResponse{}, err
	}

	affected, err := usecase.PetOwnerRepository.UpdatePetOwner(ctxContext, ownerId, payload, time.Now().UTC())
	if err != nil {
		return model.PetOwnerResponse{}, err
	}

	if affected == 0 {
		return model.PetOwnerResponse{}, &model.ValidationError{
			Code:    constant.ERR_NOT_FOUND_ERROR,
			Message: "Pet owner not found",
			Param:   "ownerId",
		}
	}

	return usecase.PetOwnerRepository.GetPetOwner(ctxContext, ownerId)
}

// SearchPetOwners matches name against "First Last"; an empty name lists owners.
func (usecase *PetOwnerUsecase) SearchPetOwners(ctx *fiber.Ctx, name string) ([]model.PetOwnerResponse, error) {
	return usecase.PetOwnerRepository.SearchPetOwners(ctx.Context(), strings.TrimSpace(name))
}

func (usecase *PetOwnerUsecase) GetAccessToken(ctx *fiber.Ctx, ownerId int64, accessToken string) error {
	hashedTokenFromCache, err := usecase.PetOwnerRepository.GetAccessTokenInCache(ctx.Context(), ownerId)
	if err != nil {
		return err
	}

	if util.HashToken(accessToken) != hashedTokenFromCache {
		return &model.ValidationError{
			Code:    constant.ERR_UNATHORIZED_ERROR,
			Message: "Authorization token is expired",
			Param:   "accessToken",
		}
	}

	return nil
}

func (usecase *PetOwnerUsecase) Logout(ctx *fiber.Ctx, ownerId int64) error {
	return usecase.PetOwnerRepository.RemoveAccessToken(ctx.Context(), ownerId)
}

func validateOwnerName(firstName string, lastName string) error {
	if firstName == "" {
		return &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "First name is required to not be empty",
			Param:   "firstName",
		}
	} else if len(firstName) > 100 {
		return &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "First name must be at most 100 characters",
			Param:   "firstName",
		}
	}

	if lastName == "" {
		return &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Last name is required to not be empty",
			Param:   "lastName",
		}
	} else if len(lastName) > 100 {
		return &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Last name must be at most 100 characters",
			Param:   "lastName",
		}
	}

	return nil
}

func validateEmail(email string) error {
	if email == "" {
		return &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Email is required to not be empty",
			Param:   "email",
		}
	}

	address, err := mail.ParseAddress(email)
	if err != nil || address.Address != email || len(email) > 255 {
		return &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Email is not a valid address",
			Param:   "email",
		}
	}

	return nil
}

func parseId(value string, param string) (int64, error) {
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id <= 0 {
		return 0, &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Id must be a positive integer",
			Param:   param,
		}
	}

	return id, nil
}

// creatorDisplayName is the "First Last" name stamped on posts and listings.
func creatorDisplayName(owner model.PetOwnerResponse) string {
	return strings.TrimSpace(owner.FirstName + " " + owner.LastName)
}
