package marker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/yungbote/researchgraph-backend/internal/platform/envutil"
	"github.com/yungbote/researchgraph-backend/internal/platform/logger"
)

// ConversionResult is the converter collaborator's response for one PDF.
type ConversionResult struct {
	Markdown string         `json:"markdown"`
	Metadata map[string]any `json:"metadata"`
}

// Client talks to the PDF-to-markdown converter service.
type Client interface {
	Convert(ctx context.Context, filename string, pdf []byte) (*ConversionResult, error)
	Health(ctx context.Context) bool
}

type client struct {
	log        *logger.Logger
	baseURL    string
	httpClient *http.Client
}

func NewClient(log *logger.Logger) (Client, error) {
	if log == nil {
		return nil, fmt.Errorf("marker: logger required")
	}
	timeoutSec := envutil.Int("MARKER_TIMEOUT_SECONDS", 300)
	return &client{
		log:        log.With("client", "Marker"),
		baseURL:    envutil.Str("MARKER_URL", "http://localhost:8001"),
		httpClient: &http.Client{Timeout: time.Duration(timeoutSec) * time.Second},
	}, nil
}

func (c *client) Convert(ctx context.Context, filename string, pdf []byte) (*ConversionResult, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("marker: build request: %w", err)
	}
	if _, err := part.Write(pdf); err != nil {
		return nil, fmt.Errorf("marker: build request: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("marker: build request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/convert", &body)
	if err != nil {
		return nil, fmt.Errorf("marker: build request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("marker: convert: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("marker: convert: status %d: %s", resp.StatusCode, string(raw))
	}

	var out ConversionResult
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("marker: decode response: %w", err)
	}
	return &out, nil
}

func (c *client) Health(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return false
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn("marker health check failed", "error", err)
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}
