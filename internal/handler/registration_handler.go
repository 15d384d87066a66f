package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campuseventhub/campus-event-hub/internal/models"
	"github.com/campuseventhub/campus-event-hub/internal/service"
	appErrors "github.com/campuseventhub/campus-event-hub/pkg/errors"
	"github.com/campuseventhub/campus-event-hub/pkg/response"
)

// RegistrationHandler wires HTTP endpoints to the registration service.
type RegistrationHandler struct {
	service *service.RegistrationService
}

// NewRegistrationHandler creates a new handler.
func NewRegistrationHandler(svc *service.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{service: svc}
}

// Create godoc
// @Summary Register for an event
// @Description Sign the acting user up for an event. Registering twice returns the existing registration.
// @Tags Registrations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body object{event_id=string} true "Event to register for"
// @Success 200 {object} response.Envelope
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /registrations [post]
func (h *RegistrationHandler) Create(c *gin.Context) {
	var payload struct {
		EventID string `json:"event_id"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid registration payload"))
		return
	}

	reg, created, err := h.service.Register(c.Request.Context(), payload.EventID, claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	response.JSON(c, status, gin.H{"registration": reg})
}

// List godoc
// @Summary List registrations
// @Description Students see their own registrations, admins see all
// @Tags Registrations
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /registrations [get]
func (h *RegistrationHandler) List(c *gin.Context) {
	regs, err := h.service.List(c.Request.Context(), claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, gin.H{"registrations": regs}, len(regs))
}

// UpdateStatus godoc
// @Summary Review a registration
// @Description Move a registration to pending, approved or rejected
// @Tags Registrations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Registration ID"
// @Param payload body object{status=string} true "New status"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /registrations/{id} [patch]
func (h *RegistrationHandler) UpdateStatus(c *gin.Context) {
	var payload struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid status payload"))
		return
	}

	reg, err := h.service.UpdateStatus(c.Request.Context(), c.Param("id"), models.RegistrationStatus(payload.Status), claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"registration": reg})
}
