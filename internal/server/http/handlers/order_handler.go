package handlers

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/printq/printq/internal/domain/model"
	"github.com/printq/printq/internal/server/http/dto"
	"github.com/printq/printq/internal/usecase"
)

// OrderHandler manages order lifecycle endpoints.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// Submit handles POST /api/orders. The request is multipart: student and
// print option fields plus the PDF uploads under "files".
func (h *OrderHandler) Submit(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		respondError(c, http.StatusBadRequest, "expected multipart form data")
		return
	}

	value := func(key string) string {
		if vals := form.Value[key]; len(vals) > 0 {
			return strings.TrimSpace(vals[0])
		}
		return ""
	}

	copies := 1
	if raw := value("copies"); raw != "" {
		copies, err = strconv.Atoi(raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, "copies must be a number")
			return
		}
	}

	files, err := readUploads(form.File["files"])
	if err != nil {
		respondError(c, http.StatusBadRequest, "could not read uploaded files")
		return
	}

	req := usecase.SubmitRequest{
		Student: model.Student{
			Name:         value("student_name"),
			StudentID:    value("student_id"),
			PhoneNumber:  value("phone_number"),
			Instructions: value("instructions"),
		},
		Config: model.PrintConfig{
			ColorMode:  model.ColorMode(value("color_mode")),
			PaperType:  model.PaperType(value("paper_type")),
			PrintSides: model.PrintSides(value("print_sides")),
			PageSize:   model.PageSize(value("page_size")),
			Copies:     copies,
			Binding:    model.Binding(value("binding")),
		},
		TransactionID: value("transaction_id"),
		Files:         files,
	}

	entry, err := h.facade.SubmitOrder(c.Request.Context(), req)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toOrderResponse(*entry))
}

// List handles GET /api/orders. Without a status filter it returns the
// pending queue in processing order.
func (h *OrderHandler) List(c *gin.Context) {
	status := c.Query("status")
	if status == "" {
		entries, err := h.facade.Queue(c.Request.Context())
		if err != nil {
			respondDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, entriesToResponse(entries))
		return
	}

	orders, err := h.facade.Orders(c.Request.Context(), model.OrderStatus(status))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	response := make([]dto.OrderResponse, 0, len(orders))
	for _, order := range orders {
		response = append(response, toOrderResponse(model.QueueEntry{Order: order}))
	}
	c.JSON(http.StatusOK, response)
}

// Get handles GET /api/orders/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	entry, err := h.facade.Order(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(*entry))
}

// Download handles GET /api/orders/:id/download and streams the merged PDF.
func (h *OrderHandler) Download(c *gin.Context) {
	order, data, err := h.facade.DownloadOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", downloadFilename(order)))
	c.Data(http.StatusOK, "application/pdf", data)
}

// Complete handles POST /api/orders/:id/complete.
func (h *OrderHandler) Complete(c *gin.Context) {
	if err := h.facade.CompleteOrder(c.Request.Context(), c.Param("id")); err != nil {
		respondDomainError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// NotComplete handles POST /api/orders/:id/not-complete.
func (h *OrderHandler) NotComplete(c *gin.Context) {
	if err := h.facade.NotCompleteOrder(c.Request.Context(), c.Param("id")); err != nil {
		respondDomainError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// Delete handles DELETE /api/orders/:id.
func (h *OrderHandler) Delete(c *gin.Context) {
	if err := h.facade.DeleteOrder(c.Request.Context(), c.Param("id")); err != nil {
		respondDomainError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// Stats handles GET /api/stats.
func (h *OrderHandler) Stats(c *gin.Context) {
	stats, err := h.facade.Stats(c.Request.Context())
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.StatsResponse{
		PendingCount:   stats.PendingCount,
		CompletedToday: stats.CompletedToday,
	})
}

func readUploads(headers []*multipart.FileHeader) ([]model.FileUpload, error) {
	uploads := make([]model.FileUpload, 0, len(headers))
	for _, header := range headers {
		file, err := header.Open()
		if err != nil {
			return nil, err
		}
		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			return nil, err
		}
		uploads = append(uploads, model.FileUpload{Filename: header.Filename, Data: data})
	}
	return uploads, nil
}

func entriesToResponse(entries []model.QueueEntry) []dto.OrderResponse {
	response := make([]dto.OrderResponse, 0, len(entries))
	for _, entry := range entries {
		response = append(response, toOrderResponse(entry))
	}
	return response
}

func downloadFilename(order *model.Order) string {
	id := order.Student.StudentID
	if id == "" {
		id = order.ID
	}
	return fmt.Sprintf("order_%s.pdf", id)
}
