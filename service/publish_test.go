package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/arnavk09/dream-serve/apperror"
	"github.com/arnavk09/dream-serve/models"
)

type fakeUploader struct {
	url      string
	err      error
	uploaded []string
}

func (f *fakeUploader) Upload(_ context.Context, payload string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.uploaded = append(f.uploaded, payload)
	return f.url, nil
}

type fakeStore struct {
	posts     []models.Post
	createErr error
	listErr   error
}

func (f *fakeStore) Create(_ context.Context, name, prompt, photoURL string) (*models.Post, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	post := models.Post{
		ID:        uint(len(f.posts) + 1),
		Name:      name,
		Prompt:    prompt,
		Photo:     photoURL,
		CreatedAt: time.Now(),
	}
	f.posts = append(f.posts, post)
	return &post, nil
}

func (f *fakeStore) ListAll(_ context.Context) ([]models.Post, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.posts, nil
}

func validDraft() PostDraft {
	return PostDraft{
		Name:   "Ann",
		Prompt: "a cat",
		Photo:  "data:image/png;base64,iVBORw0KGgo=",
	}
}

func TestCreatePostRejectsEmptyFields(t *testing.T) {
	cases := map[string]PostDraft{
		"name":   {Prompt: "a cat", Photo: "data:image/png;base64,x"},
		"prompt": {Name: "Ann", Photo: "data:image/png;base64,x"},
		"photo":  {Name: "Ann", Prompt: "a cat"},
	}

	for field, draft := range cases {
		t.Run(field, func(t *testing.T) {
			up := &fakeUploader{url: "https://cdn.example.com/1"}
			st := &fakeStore{}
			pipeline := NewPipeline(up, st)

			_, err := pipeline.CreatePost(context.Background(), draft)

			var appErr *apperror.Error
			if !errors.As(err, &appErr) {
				t.Fatalf("error %v is not a normalized error", err)
			}
			if appErr.Kind != apperror.InvalidInput || appErr.Status != http.StatusBadRequest {
				t.Fatalf("got kind=%s status=%d, want InvalidInput/400", appErr.Kind, appErr.Status)
			}
			if len(up.uploaded) != 0 {
				t.Fatal("uploader was invoked on a validation failure")
			}
			if len(st.posts) != 0 {
				t.Fatal("store was invoked on a validation failure")
			}
		})
	}
}

func TestCreatePostStopsAfterUploadFailure(t *testing.T) {
	up := &fakeUploader{err: apperror.New(apperror.StorageRejected, 413, "payload too large")}
	st := &fakeStore{}
	pipeline := NewPipeline(up, st)

	_, err := pipeline.CreatePost(context.Background(), validDraft())

	var appErr *apperror.Error
	if !errors.As(err, &appErr) || appErr.Kind != apperror.StorageRejected {
		t.Fatalf("err = %v, want propagated upload error", err)
	}
	if len(st.posts) != 0 {
		t.Fatal("store was invoked after the upload stage failed")
	}
}

func TestCreatePostLeavesOrphanOnPersistFailure(t *testing.T) {
	up := &fakeUploader{url: "https://cdn.example.com/orphan.png"}
	st := &fakeStore{createErr: apperror.New(apperror.Unavailable, 500, "connection refused")}
	pipeline := NewPipeline(up, st)

	_, err := pipeline.CreatePost(context.Background(), validDraft())

	var appErr *apperror.Error
	if !errors.As(err, &appErr) || appErr.Kind != apperror.Unavailable {
		t.Fatalf("err = %v, want propagated store error", err)
	}
	// The uploaded object stays live; there is no rollback.
	if len(up.uploaded) != 1 {
		t.Fatalf("uploaded objects = %d, want the orphan to remain", len(up.uploaded))
	}
}

func TestCreatePostRoundTrip(t *testing.T) {
	up := &fakeUploader{url: "https://cdn.example.com/final.png"}
	st := &fakeStore{}
	pipeline := NewPipeline(up, st)

	draft := validDraft()
	created, err := pipeline.CreatePost(context.Background(), draft)
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}
	if created.ID == 0 || created.CreatedAt.IsZero() {
		t.Fatalf("created post missing store-assigned fields: %+v", created)
	}

	posts, err := pipeline.ListPosts(context.Background())
	if err != nil {
		t.Fatalf("ListPosts: %v", err)
	}
	if len(posts) != 1 {
		t.Fatalf("posts = %d, want 1", len(posts))
	}

	got := posts[0]
	if got.Name != "Ann" || got.Prompt != "a cat" {
		t.Fatalf("persisted post = %+v", got)
	}
	if got.Photo != "https://cdn.example.com/final.png" {
		t.Fatalf("photo = %q, want the uploaded URL, not the inline payload", got.Photo)
	}
}
