package test

import (
	"context"

	"github.com/printq/printq/internal/domain/model"
)

// DocumentServiceStub simulates the document collaborator.
type DocumentServiceStub struct {
	InspectFn func(context.Context, []model.FileUpload) ([]model.OrderFile, error)
	MergeFn   func(context.Context, model.Student, []model.FileUpload) (*model.MergedArtifact, error)
	FetchFn   func(context.Context, string) ([]byte, error)

	// PagesPerFile drives the default Inspect answer.
	PagesPerFile int
}

// Inspect delegates to the override or reports PagesPerFile pages per upload.
func (s DocumentServiceStub) Inspect(ctx context.Context, files []model.FileUpload) ([]model.OrderFile, error) {
	if s.InspectFn != nil {
		return s.InspectFn(ctx, files)
	}
	pages := s.PagesPerFile
	if pages == 0 {
		pages = 4
	}
	result := make([]model.OrderFile, 0, len(files))
	for _, f := range files {
		result = append(result, model.OrderFile{Filename: f.Filename, ByteSize: int64(len(f.Data)), PageCount: pages})
	}
	return result, nil
}

// Merge delegates to the override or returns a deterministic artifact.
func (s DocumentServiceStub) Merge(ctx context.Context, student model.Student, files []model.FileUpload) (*model.MergedArtifact, error) {
	if s.MergeFn != nil {
		return s.MergeFn(ctx, student, files)
	}
	var total int64
	for _, f := range files {
		total += int64(len(f.Data))
	}
	return &model.MergedArtifact{Ref: "artifact-" + student.StudentID, ByteSize: total}, nil
}

// FetchArtifact delegates to the override or returns placeholder bytes.
func (s DocumentServiceStub) FetchArtifact(ctx context.Context, ref string) ([]byte, error) {
	if s.FetchFn != nil {
		return s.FetchFn(ctx, ref)
	}
	return []byte("%PDF-merged"), nil
}

// ExtractionServiceStub simulates the OCR collaborator.
type ExtractionServiceStub struct {
	ExtractFn  func(context.Context, []byte, string) (*model.PaymentExtraction, error)
	Extraction *model.PaymentExtraction
	Err        error
}

// Extract delegates to the override or returns the canned extraction.
func (s ExtractionServiceStub) Extract(ctx context.Context, image []byte, contentType string) (*model.PaymentExtraction, error) {
	if s.ExtractFn != nil {
		return s.ExtractFn(ctx, image, contentType)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Extraction != nil {
		return s.Extraction, nil
	}
	return &model.PaymentExtraction{}, nil
}
