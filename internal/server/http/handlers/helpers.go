package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/printq/printq/internal/adapter/docproc"
	"github.com/printq/printq/internal/adapter/ocr"
	domainErrors "github.com/printq/printq/internal/domain/errors"
	"github.com/printq/printq/internal/domain/model"
	"github.com/printq/printq/internal/server/http/dto"
	"github.com/printq/printq/internal/server/http/middleware"
)

// CurrentOperator extracts the authenticated operator login from context.
func CurrentOperator(c *gin.Context) string {
	val, ok := c.Get(middleware.OperatorContextKey)
	if !ok {
		return ""
	}
	operator, _ := val.(string)
	return operator
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, dto.ErrorResponse{Error: message})
}

// respondDomainError maps lifecycle errors to HTTP statuses.
func respondDomainError(c *gin.Context, err error) {
	var validation domainErrors.ValidationError
	var unavailable domainErrors.ServiceUnavailableError

	switch {
	case errors.As(err, &validation):
		respondError(c, http.StatusBadRequest, validation.Error())
	case errors.As(err, &unavailable):
		respondError(c, http.StatusServiceUnavailable, unavailable.Message)
	case errors.Is(err, domainErrors.ErrPaymentNotVerified):
		respondError(c, http.StatusForbidden, "payment not verified")
	case errors.Is(err, domainErrors.ErrNotFound):
		respondError(c, http.StatusNotFound, "order not found")
	case errors.Is(err, domainErrors.ErrNotFirstInQueue):
		respondError(c, http.StatusConflict, "order is not first in the queue")
	case errors.Is(err, docproc.ErrInvalidDocument):
		respondError(c, http.StatusUnprocessableEntity, "uploaded file is not a valid PDF")
	case errors.Is(err, docproc.ErrArtifactNotFound):
		respondError(c, http.StatusNotFound, "merged document is no longer available")
	case errors.Is(err, ocr.ErrUnreadableImage):
		respondError(c, http.StatusUnprocessableEntity, "screenshot could not be read")
	default:
		c.Status(http.StatusInternalServerError)
	}
}

func toOrderResponse(entry model.QueueEntry) dto.OrderResponse {
	order := entry.Order
	files := make([]dto.OrderFileResponse, 0, len(order.Files))
	for _, f := range order.Files {
		files = append(files, dto.OrderFileResponse{Filename: f.Filename, ByteSize: f.ByteSize, PageCount: f.PageCount})
	}
	return dto.OrderResponse{
		ID:           order.ID,
		StudentName:  order.Student.Name,
		StudentID:    order.Student.StudentID,
		PhoneNumber:  order.Student.PhoneNumber,
		Instructions: order.Student.Instructions,
		Files:        files,
		Config: dto.PrintConfigResponse{
			ColorMode:  string(order.Config.ColorMode),
			PaperType:  string(order.Config.PaperType),
			PrintSides: string(order.Config.PrintSides),
			PageSize:   string(order.Config.PageSize),
			Copies:     order.Config.Copies,
			Binding:    string(order.Config.Binding),
		},
		TotalPages:    order.TotalPages,
		EstimatedCost: order.EstimatedCost,
		TransactionID: order.TransactionID,
		FileSize:      order.FileSize,
		Status:        string(order.Status),
		QueuePosition: entry.QueuePosition,
		IsFirst:       entry.IsFirst,
		SubmittedAt:   order.SubmittedAt,
		CompletedAt:   order.CompletedAt,
	}
}

func toServiceStatusResponse(status model.ServiceStatus) dto.ServiceStatusResponse {
	return dto.ServiceStatusResponse{
		Active:    status.Active,
		Message:   status.Message,
		StoppedAt: status.StoppedAt,
		StoppedBy: status.StoppedBy,
	}
}
