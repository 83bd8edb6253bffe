package service

import (
	"context"
	"net/http"

	"github.com/arnavk09/dream-serve/apperror"
	"github.com/arnavk09/dream-serve/models"
)

// MediaUploader stores an inline-encoded image payload and returns its
// durable public URL.
type MediaUploader interface {
	Upload(ctx context.Context, payload string) (string, error)
}

// PostStore persists and lists gallery posts.
type PostStore interface {
	Create(ctx context.Context, name, prompt, photoURL string) (*models.Post, error)
	ListAll(ctx context.Context) ([]models.Post, error)
}

// PostDraft is the client-submitted post before publishing. Photo is
// either a data URI or a URL copied from a generation result.
type PostDraft struct {
	Name   string `json:"name" validate:"required"`
	Prompt string `json:"prompt" validate:"required"`
	Photo  string `json:"photo" validate:"required"`
}

// Pipeline publishes posts: validate, upload the photo, persist the
// record. Each stage short-circuits the rest on failure.
type Pipeline struct {
	uploader MediaUploader
	store    PostStore
}

func NewPipeline(uploader MediaUploader, store PostStore) *Pipeline {
	return &Pipeline{uploader: uploader, store: store}
}

func (p *Pipeline) CreatePost(ctx context.Context, draft PostDraft) (*models.Post, error) {
	if draft.Name == "" || draft.Prompt == "" || draft.Photo == "" {
		return nil, apperror.New(apperror.InvalidInput, http.StatusBadRequest, "Name, prompt, and photo are required.")
	}

	photoURL, err := p.uploader.Upload(ctx, draft.Photo)
	if err != nil {
		return nil, err
	}

	// If the insert fails the object uploaded above is not deleted: the
	// orphaned upload stays in the bucket. There is no compensating
	// transaction across these two stages.
	post, err := p.store.Create(ctx, draft.Name, draft.Prompt, photoURL)
	if err != nil {
		return nil, err
	}

	return post, nil
}

func (p *Pipeline) ListPosts(ctx context.Context) ([]models.Post, error) {
	return p.store.ListAll(ctx)
}
