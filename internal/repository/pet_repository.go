package repository

import (
	"context"

	"github.com/furluv/furluv/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type PetRepository struct {
	Log *zap.Logger
	DB  *pgxpool.Pool
}

func NewPetRepository(zap *zap.Logger, db *pgxpool.Pool) *PetRepository {
	return &PetRepository{
		Log: zap,
		DB:  db,
	}
}

const petColumns = "id, name, type, breed, age, bio, documents, image_url, create_datetime, update_datetime"

func scanPet(row pgx.Row) (model.Pet, error) {
	var pet model.Pet
	err := row.Scan(&pet.Id, &pet.Name, &pet.Type, &pet.Breed, &pet.Age, &pet.Bio, &pet.Documents, &pet.ImageUrl, &pet.CreateDatetime, &pet.UpdateDatetime)
	return pet, err
}

func (repository *PetRepository) CreatePet(ctx context.Context, pet model.Pet) (int64, error) {
	query := "INSERT INTO pets (name, type, breed, age, bio, documents, image_url, create_datetime, update_datetime) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id"

	var id int64
	err := repository.DB.QueryRow(ctx, query, pet.Name, pet.Type, pet.Breed, pet.Age, pet.Bio, pet.Documents, pet.ImageUrl, pet.CreateDatetime, pet.UpdateDatetime).Scan(&id)
	if err != nil {
		return 0, err
	}

	return id, nil
}

func (repository *PetRepository) GetPets(ctx context.Context) ([]model.Pet, error) {
	query := "SELECT " + petColumns + " FROM pets ORDER BY id"

	rows, err := repository.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	pets := []model.Pet{}

	for rows.Next() {
		pet, err := scanPet(rows)
		if err != nil {
			return nil, err
		}

		pets = append(pets, pet)
	}

	return pets, rows.Err()
}

func (repository *PetRepository) GetPet(ctx context.Context, petId int64) (model.Pet, error) {
	query := "SELECT " + petColumns + " FROM pets WHERE id = $1"

	return scanPet(repository.DB.QueryRow(ctx, query, petId))
}

// UpdatePet replaces every profile field. The image is kept when none is given.
func (repository *PetRepository) UpdatePet(ctx context.Context, pet model.Pet) (int64, error) {
	query := `
		UPDATE pets
		SET name = $1, type = $2, breed = $3, age = $4, bio = $5, documents = $6,
		    image_url = COALESCE($7, image_url),
		    update_datetime = $8
		WHERE id = $9
	`

	tag, err := repository.DB.Exec(ctx, query, pet.Name, pet.Type, pet.Breed, pet.Age, pet.Bio, pet.Documents, pet.ImageUrl, pet.UpdateDatetime, pet.Id)
	if err != nil {
		return 0, err
	}

	return tag.RowsAffected(), nil
}
