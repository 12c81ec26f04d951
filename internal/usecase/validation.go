package usecase

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	domainErrors "github.com/printq/printq/internal/domain/errors"
	"github.com/printq/printq/internal/domain/model"
)

const (
	maxFilesPerOrder = 10
	maxFileBytes     = 50 << 20
	maxTotalBytes    = 1 << 30
	maxCopies        = 50
	maxInstructions  = 200
)

// ValidateSubmission checks student details, print configuration, and the
// uploaded files before anything is sent to the document service.
func ValidateSubmission(student model.Student, cfg model.PrintConfig, files []model.FileUpload) error {
	if strings.TrimSpace(student.Name) == "" {
		return domainErrors.ValidationError{Field: "student_name", Reason: "must not be empty"}
	}
	if strings.TrimSpace(student.StudentID) == "" {
		return domainErrors.ValidationError{Field: "student_id", Reason: "must not be empty"}
	}
	if !validPhone(student.PhoneNumber) {
		return domainErrors.ValidationError{Field: "phone_number", Reason: "must be a 10-digit number"}
	}
	if utf8.RuneCountInString(student.Instructions) > maxInstructions {
		return domainErrors.ValidationError{
			Field:  "instructions",
			Reason: fmt.Sprintf("must be at most %d characters", maxInstructions),
		}
	}

	if err := validateConfig(cfg); err != nil {
		return err
	}
	return validateFiles(files)
}

func validateConfig(cfg model.PrintConfig) error {
	if !cfg.ColorMode.Valid() {
		return domainErrors.ValidationError{Field: "color_mode", Reason: "must be bw or color"}
	}
	if !cfg.PaperType.Valid() {
		return domainErrors.ValidationError{Field: "paper_type", Reason: "must be normal or photopaper"}
	}
	if !cfg.PrintSides.Valid() {
		return domainErrors.ValidationError{Field: "print_sides", Reason: "must be single or double"}
	}
	if !cfg.PageSize.Valid() {
		return domainErrors.ValidationError{Field: "page_size", Reason: "must be A4 or A3"}
	}
	if !cfg.Binding.Valid() {
		return domainErrors.ValidationError{Field: "binding", Reason: "must be none, spiral, or soft"}
	}
	if cfg.Copies < 1 || cfg.Copies > maxCopies {
		return domainErrors.ValidationError{
			Field:  "copies",
			Reason: fmt.Sprintf("must be between 1 and %d", maxCopies),
		}
	}
	return nil
}

func validateFiles(files []model.FileUpload) error {
	if len(files) == 0 {
		return domainErrors.ValidationError{Field: "files", Reason: "at least one file is required"}
	}
	if len(files) > maxFilesPerOrder {
		return domainErrors.ValidationError{
			Field:  "files",
			Reason: fmt.Sprintf("at most %d files per order", maxFilesPerOrder),
		}
	}

	var total int64
	for _, f := range files {
		name := strings.TrimSpace(f.Filename)
		if name == "" {
			return domainErrors.ValidationError{Field: "files", Reason: "file name must not be empty"}
		}
		if !strings.HasSuffix(strings.ToLower(name), ".pdf") {
			return domainErrors.ValidationError{
				Field:  "files",
				Reason: fmt.Sprintf("%s: only PDF files are accepted", name),
			}
		}
		if len(f.Data) == 0 {
			return domainErrors.ValidationError{
				Field:  "files",
				Reason: fmt.Sprintf("%s: file is empty", name),
			}
		}
		if int64(len(f.Data)) > maxFileBytes {
			return domainErrors.ValidationError{
				Field:  "files",
				Reason: fmt.Sprintf("%s: file exceeds 50MB", name),
			}
		}
		total += int64(len(f.Data))
	}
	if total > maxTotalBytes {
		return domainErrors.ValidationError{Field: "files", Reason: "combined upload exceeds 1GB"}
	}
	return nil
}

func validPhone(phone string) bool {
	phone = strings.TrimSpace(phone)
	if len(phone) != 10 {
		return false
	}
	for _, r := range phone {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
