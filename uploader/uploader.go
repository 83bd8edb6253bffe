package uploader

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/googleapi"

	"github.com/arnavk09/dream-serve/apperror"
)

// ClientUploader writes image payloads into a single bucket folder and
// hands back the public URL. Every call creates a new object; identical
// payloads are not deduplicated.
type ClientUploader struct {
	cl         *storage.Client
	bucketName string
	uploadPath string
}

func New(ctx context.Context, bucket, folder string) (*ClientUploader, error) {
	if os.Getenv("GOOGLE_APPLICATION_CREDENTIALS") == "" {
		os.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "./credentials.json")
	}

	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	return &ClientUploader{
		cl:         client,
		bucketName: bucket,
		uploadPath: folder,
	}, nil
}

// Upload stores one inline-encoded image payload (a data URI or a
// fetchable image URL) and returns the durable public URL.
func (c *ClientUploader) Upload(ctx context.Context, payload string) (string, error) {
	data, err := payloadBytes(ctx, payload)
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, time.Second*50)
	defer cancel()

	timestamp := strconv.FormatInt(time.Now().UnixNano(), 10)
	objectPath := c.uploadPath + timestamp + "_post"

	wc := c.cl.Bucket(c.bucketName).Object(objectPath).NewWriter(ctx)
	if _, err := wc.Write(data); err != nil {
		wc.Close()
		return "", storageError(err)
	}
	if err := wc.Close(); err != nil {
		return "", storageError(err)
	}

	url := fmt.Sprintf("https://storage.googleapis.com/%s/%s", c.bucketName, objectPath)
	return url, nil
}

// MakeBucketPublic grants allUsers objectViewer on the bucket. Call this
// once for public-read galleries.
func (c *ClientUploader) MakeBucketPublic(ctx context.Context) error {
	bucket := c.cl.Bucket(c.bucketName)

	policy, err := bucket.IAM().Policy(ctx)
	if err != nil {
		return err
	}

	policy.Add("allUsers", "roles/storage.objectViewer")

	if err := bucket.IAM().SetPolicy(ctx, policy); err != nil {
		return err
	}

	return nil
}

func payloadBytes(ctx context.Context, payload string) ([]byte, error) {
	switch {
	case strings.HasPrefix(payload, "data:"):
		return decodeDataURI(payload)
	case strings.HasPrefix(payload, "http://"), strings.HasPrefix(payload, "https://"):
		return fetchImage(ctx, payload)
	case payload == "":
		return nil, apperror.New(apperror.InvalidInput, http.StatusBadRequest, "Photo payload is required.")
	default:
		return nil, apperror.New(apperror.InvalidInput, http.StatusBadRequest, "Photo must be a data URI or an image URL.")
	}
}

func decodeDataURI(payload string) ([]byte, error) {
	meta, encoded, ok := strings.Cut(payload, ",")
	if !ok || !strings.HasSuffix(meta, ";base64") {
		return nil, apperror.New(apperror.InvalidInput, http.StatusBadRequest, "Photo must be a base64 data URI.")
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, apperror.New(apperror.InvalidInput, http.StatusBadRequest, "Photo is not valid base64 image data.")
	}
	return data, nil
}

func fetchImage(ctx context.Context, imageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, apperror.New(apperror.InvalidInput, http.StatusBadRequest, "Photo URL is not valid.")
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, apperror.New(apperror.Unknown, http.StatusInternalServerError, fmt.Sprintf("failed to fetch image: %v", err))
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, apperror.New(apperror.Unknown, http.StatusInternalServerError, fmt.Sprintf("received status code %d fetching image", res.StatusCode))
	}

	// Check content type
	contentType := res.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return nil, apperror.New(apperror.InvalidInput, http.StatusBadRequest, "Photo URL does not point to an image.")
	}

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, apperror.New(apperror.Unknown, http.StatusInternalServerError, fmt.Sprintf("failed to read image: %v", err))
	}
	return data, nil
}

func storageError(err error) error {
	var gErr *googleapi.Error
	if errors.As(err, &gErr) {
		status := gErr.Code
		if status == 0 {
			status = http.StatusInternalServerError
		}
		log.Printf("storage provider rejected upload: %d %s", status, gErr.Message)
		return apperror.New(apperror.StorageRejected, status, gErr.Message)
	}
	return apperror.New(apperror.Unknown, http.StatusInternalServerError, err.Error())
}
