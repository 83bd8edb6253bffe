package store

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/arnavk09/dream-serve/apperror"
	"github.com/arnavk09/dream-serve/models"
)

// PostStore is the only place that reads or writes the posts table.
type PostStore struct {
	db *gorm.DB
}

func NewPostStore(db *gorm.DB) *PostStore {
	return &PostStore{db: db}
}

// ListAll returns every post in the store's natural order; no explicit
// sort is applied.
func (s *PostStore) ListAll(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	if err := s.db.WithContext(ctx).Find(&posts).Error; err != nil {
		return nil, storeError(err)
	}
	return posts, nil
}

// Create inserts a post record; the database assigns ID and CreatedAt.
func (s *PostStore) Create(ctx context.Context, name, prompt, photoURL string) (*models.Post, error) {
	post := models.Post{
		Name:   name,
		Prompt: prompt,
		Photo:  photoURL,
	}

	if err := s.db.WithContext(ctx).Create(&post).Error; err != nil {
		return nil, storeError(err)
	}

	return &post, nil
}

// storeError separates schema/constraint rejections from connectivity
// failures. Both surface as 500: caller input was already validated
// before it reached this layer.
func storeError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && strings.HasPrefix(pgErr.Code, "23") {
		return apperror.New(apperror.ValidationFailed, http.StatusInternalServerError, pgErr.Message)
	}
	if errors.Is(err, gorm.ErrInvalidData) || errors.Is(err, gorm.ErrInvalidValue) {
		return apperror.New(apperror.ValidationFailed, http.StatusInternalServerError, err.Error())
	}
	return apperror.New(apperror.Unavailable, http.StatusInternalServerError, err.Error())
}
