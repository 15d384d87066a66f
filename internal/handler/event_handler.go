package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campuseventhub/campus-event-hub/internal/service"
	appErrors "github.com/campuseventhub/campus-event-hub/pkg/errors"
	"github.com/campuseventhub/campus-event-hub/pkg/export"
	"github.com/campuseventhub/campus-event-hub/pkg/response"
)

// EventHandler wires HTTP endpoints to the event service.
type EventHandler struct {
	service *service.EventService
	exports *service.ExportService
}

// NewEventHandler creates a new handler.
func NewEventHandler(svc *service.EventService, exports *service.ExportService) *EventHandler {
	return &EventHandler{service: svc, exports: exports}
}

// List godoc
// @Summary List events
// @Description List events with filtering, search and sorting
// @Tags Events
// @Produce json
// @Param category query string false "Exact-match filter, any event field"
// @Param search query string false "Case-insensitive search over title, description and category"
// @Param sort query string false "Comma-separated sort keys, prefix with - for descending"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /events [get]
func (h *EventHandler) List(c *gin.Context) {
	events, err := h.service.List(c.Request.Context(), c.Request.URL.Query())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, gin.H{"events": events}, len(events))
}

// Get godoc
// @Summary Get event
// @Description Fetch a single event by id
// @Tags Events
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /events/{id} [get]
func (h *EventHandler) Get(c *gin.Context) {
	event, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"event": event})
}

// Create godoc
// @Summary Publish event
// @Description Create a new event owned by the acting admin
// @Tags Events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body service.CreateEventRequest true "Event payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /events [post]
func (h *EventHandler) Create(c *gin.Context) {
	var req service.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid event payload"))
		return
	}

	event, err := h.service.Create(c.Request.Context(), req, claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"event": event})
}

// Update godoc
// @Summary Update event
// @Description Apply a partial update to an event
// @Tags Events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Param payload body service.UpdateEventRequest true "Fields to change"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /events/{id} [patch]
func (h *EventHandler) Update(c *gin.Context) {
	var req service.UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid event payload"))
		return
	}

	event, err := h.service.Update(c.Request.Context(), c.Param("id"), req, claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"event": event})
}

// Delete godoc
// @Summary Delete event
// @Description Remove an event
// @Tags Events
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Success 204 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /events/{id} [delete]
func (h *EventHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id"), claimsFromContext(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ExportRegistrations godoc
// @Summary Export event roster
// @Description Download an event's registrations as CSV or PDF
// @Tags Events
// @Produce text/csv
// @Produce application/pdf
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /events/{id}/registrations/export [get]
func (h *EventHandler) ExportRegistrations(c *gin.Context) {
	format := export.Format(c.DefaultQuery("format", string(export.FormatCSV)))

	result, err := h.exports.EventRoster(c.Request.Context(), c.Param("id"), format)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+result.Filename+`"`)
	c.Data(http.StatusOK, result.ContentType, result.Content)
}
