package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/arnavk09/dream-serve/apperror"
)

const defaultNegativePrompt = "bad quality, ugly, deformed, disfigured, blurry, low resolution, bad hands, missing fingers"

// request is the provider's text2img payload. Width/height are strings
// and seed/webhook/track_id are null, matching the wire format the
// hosted API expects.
type request struct {
	Key            string  `json:"key"`
	Prompt         string  `json:"prompt"`
	NegativePrompt string  `json:"negative_prompt"`
	Width          string  `json:"width"`
	Height         string  `json:"height"`
	SafetyChecker  bool    `json:"safety_checker"`
	Seed           *int64  `json:"seed"`
	Samples        int     `json:"samples"`
	Base64         bool    `json:"base64"`
	Webhook        *string `json:"webhook"`
	TrackID        *string `json:"track_id"`
}

type response struct {
	Status  string   `json:"status"`
	Message string   `json:"message"`
	Output  []string `json:"output"`
}

// Result holds one generation call's outcome. URL is the first element of
// Output; the full sequence is retained for callers that ever need more
// than one sample.
type Result struct {
	URL    string
	Output []string
}

// Client calls the hosted text-to-image provider. One synchronous attempt
// per call, no retries, no state kept between calls.
type Client struct {
	apiKey   string
	endpoint string
	httpc    *http.Client
}

func NewClient(apiKey, endpoint string, httpc *http.Client) *Client {
	if httpc == nil {
		httpc = http.DefaultClient
	}
	return &Client{apiKey: apiKey, endpoint: endpoint, httpc: httpc}
}

func (c *Client) Generate(ctx context.Context, prompt string) (*Result, error) {
	if prompt == "" {
		return nil, apperror.New(apperror.InvalidInput, http.StatusBadRequest, "Image prompt is required.")
	}
	if c.apiKey == "" {
		return nil, apperror.New(apperror.Misconfigured, http.StatusInternalServerError, "Image generation API key is not configured.")
	}

	payload, err := json.Marshal(request{
		Key:            c.apiKey,
		Prompt:         prompt,
		NegativePrompt: defaultNegativePrompt,
		Width:          "512",
		Height:         "512",
		SafetyChecker:  false,
		Seed:           nil,
		Samples:        1,
		Base64:         false,
		Webhook:        nil,
		TrackID:        nil,
	})
	if err != nil {
		return nil, apperror.New(apperror.Unknown, http.StatusInternalServerError, err.Error())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, apperror.New(apperror.Unknown, http.StatusInternalServerError, err.Error())
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		// Transport errors carry no HTTP status.
		return nil, apperror.New(apperror.ProviderUnavailable, http.StatusInternalServerError, err.Error())
	}
	defer resp.Body.Close()

	var out response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, providerError(resp.StatusCode, "")
	}

	if len(out.Output) == 0 || out.Output[0] == "" {
		return nil, providerError(resp.StatusCode, out.Message)
	}

	return &Result{URL: out.Output[0], Output: out.Output}, nil
}

func providerError(status int, message string) *apperror.Error {
	if status < http.StatusBadRequest {
		status = http.StatusInternalServerError
	}
	if message == "" {
		message = "Unknown error from image provider."
	}
	return apperror.New(apperror.ProviderResponseInvalid, status, "Failed to generate image: "+message)
}
