package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campuseventhub/campus-event-hub/internal/service"
	appErrors "github.com/campuseventhub/campus-event-hub/pkg/errors"
	"github.com/campuseventhub/campus-event-hub/pkg/response"
)

// AdminLogHandler exposes the audit trail.
type AdminLogHandler struct {
	service *service.AdminLogService
}

// NewAdminLogHandler creates a new handler.
func NewAdminLogHandler(svc *service.AdminLogService) *AdminLogHandler {
	return &AdminLogHandler{service: svc}
}

// List godoc
// @Summary List admin actions
// @Description List the audit trail, newest first
// @Tags Logs
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /logs [get]
func (h *AdminLogHandler) List(c *gin.Context) {
	logs, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, gin.H{"logs": logs}, len(logs))
}

// Create godoc
// @Summary Record an admin action
// @Description Append an entry to the audit trail
// @Tags Logs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body object{action=string} true "Action description"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /logs [post]
func (h *AdminLogHandler) Create(c *gin.Context) {
	var payload struct {
		Action string `json:"action"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid log payload"))
		return
	}

	entry, err := h.service.Record(c.Request.Context(), payload.Action, claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"log": entry})
}
