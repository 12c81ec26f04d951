package handlers

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/printq/printq/internal/domain/errors"
	"github.com/printq/printq/internal/server/http/dto"
)

const maxScreenshotBytes = 10 << 20

// PaymentHandler processes UPI screenshot verification.
type PaymentHandler struct {
	facade PaymentFacade
}

// NewPaymentHandler constructs PaymentHandler.
func NewPaymentHandler(facade PaymentFacade) *PaymentHandler {
	return &PaymentHandler{facade: facade}
}

// Verify handles POST /api/verify-payment. The screenshot is a multipart
// upload under "screenshot".
func (h *PaymentHandler) Verify(c *gin.Context) {
	file, header, err := c.Request.FormFile("screenshot")
	if err != nil {
		respondError(c, http.StatusBadRequest, "screenshot file is required")
		return
	}
	defer file.Close()

	if header.Size > maxScreenshotBytes {
		respondError(c, http.StatusBadRequest, "screenshot exceeds 10MB")
		return
	}
	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		respondError(c, http.StatusBadRequest, "screenshot must be an image")
		return
	}

	image, err := io.ReadAll(io.LimitReader(file, maxScreenshotBytes+1))
	if err != nil {
		respondError(c, http.StatusBadRequest, "could not read screenshot")
		return
	}
	if len(image) > maxScreenshotBytes {
		respondError(c, http.StatusBadRequest, "screenshot exceeds 10MB")
		return
	}

	verification, err := h.facade.VerifyPayment(c.Request.Context(), image, contentType)
	if err != nil {
		var rejection domainErrors.VerificationError
		if errors.As(err, &rejection) {
			c.JSON(http.StatusBadRequest, dto.VerifyPaymentResponse{Reasons: rejection.Reasons})
			return
		}
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.VerifyPaymentResponse{
		Verified:      true,
		TransactionID: verification.TransactionID,
	})
}

// UPIID handles GET /api/payment/upi-id.
func (h *PaymentHandler) UPIID(c *gin.Context) {
	c.JSON(http.StatusOK, dto.UPIIDResponse{UPIID: h.facade.UPIID()})
}
