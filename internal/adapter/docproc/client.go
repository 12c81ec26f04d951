// Package docproc talks to the external document service that inspects,
// merges, and stores uploaded PDFs. The engine only consumes page counts and
// artifact references; PDF internals never enter this process.
package docproc

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

// ErrInvalidDocument indicates the service rejected an upload as not being a
// valid PDF.
var ErrInvalidDocument = errors.New("invalid document")

// ErrArtifactNotFound indicates the referenced merged artifact is gone.
var ErrArtifactNotFound = errors.New("artifact not found")

// filePayload carries one uploaded file to the document service.
type filePayload struct {
	Filename string `json:"filename"`
	Data     []byte `json:"data"`
}

// inspectResponse reports per-file page counts in upload order.
type inspectResponse struct {
	Files []model.OrderFile `json:"files"`
}

// mergeResponse references the stored merged artifact (cover page first).
type mergeResponse struct {
	ArtifactRef string `json:"artifact_ref"`
	ByteSize    int64  `json:"byte_size"`
}

// Client exposes operations of the document service.
type Client interface {
	Inspect(ctx context.Context, files []model.FileUpload) ([]model.OrderFile, error)
	Merge(ctx context.Context, student model.Student, files []model.FileUpload) (*model.MergedArtifact, error)
	FetchArtifact(ctx context.Context, ref string) ([]byte, error)
}

// HTTPClient implements Client via HTTP API.
type HTTPClient struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

type mergeRequest struct {
	StudentName string        `json:"student_name"`
	StudentID   string        `json:"student_id"`
	Files       []filePayload `json:"files"`
}

func toPayloads(files []model.FileUpload) []filePayload {
	payloads := make([]filePayload, 0, len(files))
	for _, f := range files {
		payloads = append(payloads, filePayload{Filename: f.Filename, Data: f.Data})
	}
	return payloads
}

// NewHTTPClient creates HTTP document service client with default timeout.
func NewHTTPClient(baseURL string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse document service url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("document service url must be absolute")
	}
	return &HTTPClient{
		baseURL: parsed,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}, nil
}

// Inspect returns page count and size for each uploaded file.
func (c *HTTPClient) Inspect(ctx context.Context, files []model.FileUpload) ([]model.OrderFile, error) {
	var result inspectResponse
	if err := c.postJSON(ctx, "/api/inspect", toPayloads(files), &result); err != nil {
		return nil, err
	}
	return result.Files, nil
}

// Merge builds the cover page, prepends it, merges the files in order, and
// stores the artifact.
func (c *HTTPClient) Merge(ctx context.Context, student model.Student, files []model.FileUpload) (*model.MergedArtifact, error) {
	req := mergeRequest{StudentName: student.Name, StudentID: student.StudentID, Files: toPayloads(files)}
	var result mergeResponse
	if err := c.postJSON(ctx, "/api/merge", req, &result); err != nil {
		return nil, err
	}
	return &model.MergedArtifact{Ref: result.ArtifactRef, ByteSize: result.ByteSize}, nil
}

// FetchArtifact downloads the merged artifact bytes.
func (c *HTTPClient) FetchArtifact(ctx context.Context, ref string) ([]byte, error) {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/api/artifacts/", ref)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return io.ReadAll(resp.Body)
	case http.StatusNotFound:
		return nil, ErrArtifactNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("artifact fetch failed", slog.Int("status", resp.StatusCode), slog.String("body", string(body)))
		return nil, fmt.Errorf("document service error: %s", resp.Status)
	}
}

func (c *HTTPClient) postJSON(ctx context.Context, endpointPath string, payload, out any) error {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, endpointPath)

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		return json.Unmarshal(data, out)
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return ErrInvalidDocument
	default:
		data, _ := io.ReadAll(resp.Body)
		c.logger.Error("document service request failed",
			slog.String("path", endpointPath),
			slog.Int("status", resp.StatusCode),
			slog.String("body", string(data)),
		)
		return fmt.Errorf("document service error: %s", resp.Status)
	}
}
