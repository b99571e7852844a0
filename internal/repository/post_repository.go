package repository

import (
	"context"
	"time"

	"github.com/furluv/furluv/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type PostRepository struct {
	Log *zap.Logger
	DB  *pgxpool.Pool
}

func NewPostRepository(zap *zap.Logger, db *pgxpool.Pool) *PostRepository {
	return &PostRepository{
		Log: zap,
		DB:  db,
	}
}

func (repository *PostRepository) CreatePost(ctx context.Context, post model.Post) (int64, error) {
	query := "INSERT INTO posts (content, image_url, creator_name, create_datetime, update_datetime) VALUES ($1, $2, $3, $4, $5) RETURNING id"

	var id int64
	err := repository.DB.QueryRow(ctx, query, post.Content, post.ImageUrl, post.CreatorName, post.CreateDatetime, post.UpdateDatetime).Scan(&id)
	if err != nil {
		return 0, err
	}

	return id, nil
}

func (repository *PostRepository) GetPosts(ctx context.Context) ([]model.Post, error) {
	query := "SELECT id, content, image_url, creator_name, create_datetime, update_datetime FROM posts ORDER BY id DESC"

	rows, err := repository.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []model.Post{}

	for rows.Next() {
		var post model.Post
		err := rows.Scan(&post.Id, &post.Content, &post.ImageUrl, &post.CreatorName, &post.CreateDatetime, &post.UpdateDatetime)
		if err != nil {
			return nil, err
		}

		posts = append(posts, post)
	}

	return posts, rows.Err()
}

func (repository *PostRepository) GetPost(ctx context.Context, postId int64) (model.Post, error) {
	query := "SELECT id, content, image_url, creator_name, create_datetime, update_datetime FROM posts WHERE id = $1"

	var post model.Post
	err := repository.DB.QueryRow(ctx, query, postId).Scan(&post.Id, &post.Content, &post.ImageUrl, &post.CreatorName, &post.CreateDatetime, &post.UpdateDatetime)
	if err != nil {
		return post, err
	}

	return post, nil
}

// UpdatePost always replaces the content; image and creator name are only
// replaced when given.
func (repository *PostRepository) UpdatePost(ctx context.Context, postId int64, content string, imageUrl *string, creatorName *string, updateDatetime time.Time) (int64, error) {
	query := `
		UPDATE posts
		SET content = $1,
		    image_url = COALESCE($2, image_url),
		    creator_name = COALESCE($3, creator_name),
		    update_datetime = $4
		WHERE id = $5
	`

	tag, err := repository.DB.Exec(ctx, query, content, imageUrl, creatorName, updateDatetime, postId)
	if err != nil {
		return 0, err
	}

	return tag.RowsAffected(), nil
}

func (repository *PostRepository) DeletePost(ctx context.Context, postId int64) (int64, error) {
	query := "DELETE FROM posts WHERE id = $1"

	tag, err := repository.DB.Exec(ctx, query, postId)
	if err != nil {
		return 0, err
	}

	return tag.RowsAffected(), nil
}
