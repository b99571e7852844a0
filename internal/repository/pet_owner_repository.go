package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/furluv/furluv/internal/constant"
	"github.com/furluv/furluv/internal/model"
	"github.com/furluv/furluv/internal/util"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type PetOwnerRepository struct {
	Log     *zap.Logger
	DB      *pgxpool.Pool
	DBCache *redis.Client
}

func NewPetOwnerRepository(zap *zap.Logger, db *pgxpool.Pool, dbCache *redis.Client) *PetOwnerRepository {
	return &PetOwnerRepository{
		Log:     zap,
		DB:      db,
		DBCache: dbCache,
	}
}

func (repository *PetOwnerRepository) Register(ctx context.Context, owner model.PetOwner) (int64, error) {
	query := "INSERT INTO pet_owners (first_name, last_name, email, password, create_datetime, update_datetime) VALUES ($1, $2, $3, $4, $5, $6) RETURNING id"

	var id int64
	err := repository.DB.QueryRow(ctx, query, owner.FirstName, owner.LastName, owner.Email, owner.Password, owner.CreateDatetime, owner.UpdateDatetime).Scan(&id)
	if err != nil {
		return 0, err
	}

	return id, nil
}

func (repository *PetOwnerRepository) CheckEmailUnique(ctx context.Context, email string) (int, error) {
	query := "SELECT 1 FROM pet_owners WHERE email = $1"

	var exists int
	err := repository.DB.QueryRow(ctx, query, email).Scan(&exists)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return exists, nil
		}

		return exists, err
	}

	return exists, nil
}

func (repository *PetOwnerRepository) GetPetOwnerAuth(ctx context.Context, email string) (int64, string, error) {
	query := "SELECT id, password FROM pet_owners WHERE email = $1"

	var id int64
	var password string
	err := repository.DB.QueryRow(ctx, query, email).Scan(&id, &password)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return id, password, &model.ValidationError{
				Code:    constant.ERR_NOT_FOUND_ERROR,
				Message: "Pet owner not found",
				Param:   "email",
			}
		}

		return id, password, err
	}

	return id, password, nil
}

func (repository *PetOwnerRepository) GetPetOwner(ctx context.Context, ownerId int64) (model.PetOwnerResponse, error) {
	query := "SELECT id, first_name, last_name, email, profile_image, cover_image FROM pet_owners WHERE id = $1"

	var owner model.PetOwnerResponse
	err := repository.DB.QueryRow(ctx, query, ownerId).Scan(&owner.Id, &owner.FirstName, &owner.LastName, &owner.Email, &owner.ProfileImage, &owner.CoverImage)
	if err != nil {
		return owner, err
	}

	return owner, nil
}

func (repository *PetOwnerRepository) UpdatePetOwner(ctx context.Context, ownerId int64, payload model.PetOwnerUpdateRequest, updateDatetime time.Time) (int64, error) {
	query := `
		UPDATE pet_owners
		SET first_name = $1, last_name = $2,
		    profile_image = COALESCE($3, profile_image),
		    cover_image = COALESCE($4, cover_image),
		    update_datetime = $5
		WHERE id = $6
	`

	tag, err := repository.DB.Exec(ctx, query, payload.FirstName, payload.LastName, payload.ProfileImage, payload.CoverImage, updateDatetime, ownerId)
	if err != nil {
		return 0, err
	}

	return tag.RowsAffected(), nil
}

func (repository *PetOwnerRepository) SearchPetOwners(ctx context.Context, name string) ([]model.PetOwnerResponse, error) {
	query := `
		SELECT id, first_name, last_name, email, profile_image, cover_image
		FROM pet_owners
		WHERE (first_name || ' ' || last_name) ILIKE $1
		ORDER BY first_name, last_name, id
		LIMIT 100
	`

	rows, err := repository.DB.Query(ctx, query, "%"+name+"%")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	owners := []model.PetOwnerResponse{}

	for rows.Next() {
		var owner model.PetOwnerResponse
		err := rows.Scan(&owner.Id, &owner.FirstName, &owner.LastName, &owner.Email, &owner.ProfileImage, &owner.CoverImage)
		if err != nil {
			return nil, err
		}

		owners = append(owners, owner)
	}

	return owners, rows.Err()
}

func accessTokenKey(ownerId int64) string {
	return fmt.Sprintf("auth:accessToken:%d", ownerId)
}

func (repository *PetOwnerRepository) SetAccessTokenInCache(ctx context.Context, accessToken string, ownerId int64, ttl time.Duration) error {
	// Hash token before storing in Redis
	hashedAccessToken := util.HashToken(accessToken)

	err := repository.DBCache.Set(ctx, accessTokenKey(ownerId), hashedAccessToken, ttl).Err()
	if err != nil {
		return err
	}

	return nil
}

func (repository *PetOwnerRepository) GetAccessTokenInCache(ctx context.Context, ownerId int64) (string, error) {
	hashedToken, err := repository.DBCache.Get(ctx, accessTokenKey(ownerId)).Result()
	if err == redis.Nil {
		return hashedToken, &model.ValidationError{
			Code:    constant.ERR_UNATHORIZED_ERROR,
			Message: "Authorization token not found or expired",
			Param:   "accessToken",
		}
	} else if err != nil {
		return hashedToken, err
	}

	return hashedToken, nil
}

func (repository *PetOwnerRepository) RemoveAccessToken(ctx context.Context, ownerId int64) error {
	err := repository.DBCache.Del(ctx, accessTokenKey(ownerId)).Err()
	if err != nil {
		return err
	}

	return nil
}
