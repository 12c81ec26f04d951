// Package ocr talks to the external OCR service that extracts text from UPI
// payment screenshots. The verifier gate consumes the extraction only; the
// recognition itself never runs in this process.
package ocr

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
	"path"
	"time"

	"github.com/printq/printq/internal/domain/model"
)

// ErrUnreadableImage indicates the service could not process the screenshot.
var ErrUnreadableImage = errors.New("unreadable image")

// Client exposes operations to query the OCR service.
type Client interface {
	Extract(ctx context.Context, image []byte, contentType string) (*model.PaymentExtraction, error)
}

// HTTPClient implements Client via HTTP API.
type HTTPClient struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

// response mirrors the JSON payload from the OCR service.
type response struct {
	RawText       string `json:"raw_text"`
	ReceiverName  string `json:"receiver_name"`
	ReceiverPhone string `json:"receiver_phone"`
}

// NewHTTPClient creates HTTP OCR client with default timeout.
func NewHTTPClient(baseURL string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse ocr url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("ocr url must be absolute")
	}
	return &HTTPClient{
		baseURL: parsed,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

// Extract sends the screenshot and returns the recognized payment details.
func (c *HTTPClient) Extract(ctx context.Context, image []byte, contentType string) (*model.PaymentExtraction, error) {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/api/extract")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(image))
	if err != nil {
		return nil, err
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		var data response
		if err := json.Unmarshal(body, &data); err != nil {
			return nil, err
		}
		return &model.PaymentExtraction{
			RawText:       data.RawText,
			ReceiverName:  data.ReceiverName,
			ReceiverPhone: data.ReceiverPhone,
		}, nil
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return nil, ErrUnreadableImage
	default:
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("ocr request failed", slog.Int("status", resp.StatusCode), slog.String("body", string(body)))
		return nil, fmt.Errorf("ocr error: %s", resp.Status)
	}
}
