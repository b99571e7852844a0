package repository

import (
	"context"

	"github.com/furluv/furluv/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type ListingRepository struct {
	Log *zap.Logger
	DB  *pgxpool.Pool
}

func NewListingRepository(zap *zap.Logger, db *pgxpool.Pool) *ListingRepository {
	return &ListingRepository{
		Log: zap,
		DB:  db,
	}
}

const listingColumns = "id, pet_name, breed, age, status, creator_name, creator_id, image_url, create_datetime, update_datetime"

func scanListing(row pgx.Row) (model.PetListing, error) {
	var listing model.PetListing
	err := row.Scan(&listing.Id, &listing.PetName, &listing.Breed, &listing.Age, &listing.Status, &listing.CreatorName, &listing.CreatorId, &listing.ImageUrl, &listing.CreateDatetime, &listing.UpdateDatetime)
	return listing, err
}

func (repository *ListingRepository) CreateListing(ctx context.Context, listing model.PetListing) (int64, error) {
	query := "INSERT INTO pet_listings (pet_name, breed, age, status, creator_name, creator_id, image_url, create_datetime, update_datetime) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id"

	var id int64
	err := repository.DB.QueryRow(ctx, query, listing.PetName, listing.Breed, listing.Age, listing.Status, listing.CreatorName, listing.CreatorId, listing.ImageUrl, listing.CreateDatetime, listing.UpdateDatetime).Scan(&id)
	if err != nil {
		return 0, err
	}

	return id, nil
}

// GetListings matches search case-insensitively against pet name, breed,
// status and creator name. An empty search returns every listing.
func (repository *ListingRepository) GetListings(ctx context.Context, search string) ([]model.PetListing, error) {
	var rows pgx.Rows
	var err error

	if search != "" {
		query := `
			SELECT ` + listingColumns + `
			FROM pet_listings
			WHERE pet_name ILIKE $1 OR breed ILIKE $1 OR status ILIKE $1 OR COALESCE(creator_name, '') ILIKE $1
			ORDER BY id DESC
		`
		rows, err = repository.DB.Query(ctx, query, "%"+search+"%")
	} else {
		query := "SELECT " + listingColumns + " FROM pet_listings ORDER BY id DESC"
		rows, err = repository.DB.Query(ctx, query)
	}

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	listings := []model.PetListing{}

	for rows.Next() {
		listing, err := scanListing(rows)
		if err != nil {
			return nil, err
		}

		listings = append(listings, listing)
	}

	return listings, rows.Err()
}

func (repository *ListingRepository) GetListing(ctx context.Context, listingId int64) (model.PetListing, error) {
	query := "SELECT " + listingColumns + " FROM pet_listings WHERE id = $1"

	return scanListing(repository.DB.QueryRow(ctx, query, listingId))
}

func (repository *ListingRepository) UpdateListing(ctx context.Context, listing model.PetListing) (int64, error) {
	query := `
		UPDATE pet_listings
		SET pet_name = $1, breed = $2, age = $3, status = $4,
		    creator_name = COALESCE($5, creator_name),
		    creator_id = COALESCE($6, creator_id),
		    image_url = COALESCE($7, image_url),
		    update_datetime = $8
		WHERE id = $9
	`

	tag, err := repository.DB.Exec(ctx, query, listing.PetName, listing.Breed, listing.Age, listing.Status, listing.CreatorName, listing.CreatorId, listing.ImageUrl, listing.UpdateDatetime, listing.Id)
	if err != nil {
		return 0, err
	}

	return tag.RowsAffected(), nil
}

func (repository *ListingRepository) DeleteListing(ctx context.Context, listingId int64) (int64, error) {
	query := "DELETE FROM pet_listings WHERE id = $1"

	tag, err := repository.DB.Exec(ctx, query, listingId)
	if err != nil {
		return 0, err
	}

	return tag.RowsAffected(), nil
}
