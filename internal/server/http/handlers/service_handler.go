package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/printq/printq/internal/server/http/dto"
)

// ServiceHandler flips and reads the availability switch.
type ServiceHandler struct {
	facade ServiceFacade
}

// NewServiceHandler constructs ServiceHandler.
func NewServiceHandler(facade ServiceFacade) *ServiceHandler {
	return &ServiceHandler{facade: facade}
}

// Status handles GET /api/service/status.
func (h *ServiceHandler) Status(c *gin.Context) {
	status, err := h.facade.ServiceStatus(c.Request.Context())
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, toServiceStatusResponse(*status))
}

// Stop handles POST /api/service/stop. The note in the body is optional.
func (h *ServiceHandler) Stop(c *gin.Context) {
	var req dto.StopServiceRequest
	_ = c.ShouldBindJSON(&req)

	status, err := h.facade.StopService(c.Request.Context(), req.Message, CurrentOperator(c))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, toServiceStatusResponse(*status))
}

// Start handles POST /api/service/start.
func (h *ServiceHandler) Start(c *gin.Context) {
	status, err := h.facade.StartService(c.Request.Context())
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, toServiceStatusResponse(*status))
}
