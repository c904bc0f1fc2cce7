// Package imageedit sends an image and a free-text instruction to the
// Gemini generateContent endpoint and returns the edited image as a PNG
// data URI.
package imageedit

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

const (
	DefaultModel   = "gemini-2.5-flash-image"
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
)

// Environment variables consulted for the API key, in order.
var apiKeyEnv = []string{"API_KEY", "GEMINI_API_KEY"}

var (
	// ErrMissingAPIKey is returned before any network call when no key is
	// configured.
	ErrMissingAPIKey = errors.New("API key is missing: set API_KEY or GEMINI_API_KEY")
	// ErrNoContent means the response had no candidate parts.
	ErrNoContent = errors.New("no content generated")
	// ErrNoImage means the response had parts but none carried image data.
	ErrNoImage = errors.New("no image data received from Gemini")
)

// APIError is a non-2xx response from the service.
type APIError struct {
	StatusCode int
	Status     string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("API error (%d): %s", e.StatusCode, e.Status)
	}
	return fmt.Sprintf("API error (%d): %s", e.StatusCode, e.Message)
}

// Editor edits an image according to an instruction.
type Editor interface {
	Edit(ctx context.Context, imageDataURI, instruction string) (string, error)
}

// Options configures a Client. Zero values select the defaults.
type Options struct {
	APIKey     string // empty: read API_KEY, then GEMINI_API_KEY, on each call
	Model      string
	BaseURL    string
	Timeout    time.Duration // 0: no client-side timeout
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// Client is a Gemini image edit client.
type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
}

// NewClient creates a client. It does not check the credential; a missing
// key is reported by Edit.
func NewClient(opts Options) *Client {
	c := &Client{
		apiKey:     opts.APIKey,
		model:      opts.Model,
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		httpClient: opts.HTTPClient,
		log:        opts.Logger,
	}
	if c.model == "" {
		c.model = DefaultModel
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: opts.Timeout}
	}
	if c.log == nil {
		c.log = slog.Default()
	}
	return c
}

// Model returns the model name requests are sent to.
func (c *Client) Model() string { return c.model }

func (c *Client) key() string {
	if c.apiKey != "" {
		return c.apiKey
	}
	for _, name := range apiKeyEnv {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}

type inlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

type apiErrorBody struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// Edit sends the image and instruction in a single request and returns the
// first image in the response as a PNG data URI. The image may be a data
// URI or a bare base64 payload; it is always declared as image/png.
func (c *Client) Edit(ctx context.Context, imageDataURI, instruction string) (string, error) {
	out, err := c.edit(ctx, imageDataURI, instruction)
	if err != nil {
		c.log.Error("Gemini image edit failed", "model", c.model, "error", err)
	}
	return out, err
}

func (c *Client) edit(ctx context.Context, imageDataURI, instruction string) (string, error) {
	apiKey := c.key()
	if apiKey == "" {
		return "", ErrMissingAPIKey
	}

	reqBody := generateRequest{
		Contents: []content{{
			Parts: []part{
				{Text: instruction},
				{InlineData: &inlineData{MimeType: "image/png", Data: StripDataURI(imageDataURI)}},
			},
		}},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, url.PathEscape(c.model))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(jsonBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", apiKey)

	c.log.Debug("Sending image edit", "model", c.model, "prompt_length", len(instruction), "image_length", len(reqBody.Contents[0].Parts[1].InlineData.Data))
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Status: resp.Status}
		var eb apiErrorBody
		if err := json.Unmarshal(body, &eb); err == nil && eb.Error.Message != "" {
			apiErr.Message = eb.Error.Message
		} else {
			apiErr.Message = strings.TrimSpace(string(body))
		}
		return "", apiErr
	}

	var gr generateResponse
	if err := json.Unmarshal(body, &gr); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	if len(gr.Candidates) == 0 || len(gr.Candidates[0].Content.Parts) == 0 {
		return "", ErrNoContent
	}
	for _, p := range gr.Candidates[0].Content.Parts {
		if p.InlineData != nil && p.InlineData.Data != "" {
			c.log.Debug("Received edited image", "duration", time.Since(start), "image_length", len(p.InlineData.Data))
			return WrapPNG(p.InlineData.Data), nil
		}
	}
	return "", ErrNoImage
}
