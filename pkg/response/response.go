package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/campuseventhub/campus-event-hub/pkg/errors"
)

// Status values of the response envelope. "fail" covers client errors,
// "error" covers server-side failures.
const (
	StatusSuccess = "success"
	StatusFail    = "fail"
	StatusError   = "error"
)

// Envelope is the common response contract. Entities nest under Data keyed
// by resource name, e.g. {"data": {"events": [...]}}.
type Envelope struct {
	Status  string      `json:"status"`
	Results *int        `json:"results,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

// JSON sends a success response.
func JSON(c *gin.Context, status int, data interface{}) {
	c.Header("Cache-Control", "no-store")
	c.JSON(status, Envelope{Status: StatusSuccess, Data: data})
}

// List sends a success response carrying a result count alongside the data.
func List(c *gin.Context, data interface{}, results int) {
	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusOK, Envelope{Status: StatusSuccess, Results: &results, Data: data})
}

// Created responds with HTTP 201 Created.
func Created(c *gin.Context, data interface{}) {
	JSON(c, http.StatusCreated, data)
}

// Error sends an error response converting the error to the common envelope.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	status := StatusFail
	if appErr.Status >= http.StatusInternalServerError {
		status = StatusError
	}
	c.Header("Cache-Control", "no-store")
	c.JSON(appErr.Status, Envelope{Status: status, Message: appErr.Message})
}

// NoContent sends a 204 response.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
