package handlers

import (
	"errors"
	"net/http"

	"chemviz/internal/api"
	"chemviz/internal/service"

	"github.com/gin-gonic/gin"
)

// Common response/status constants to avoid magic strings and typos.
const (
	statusOK = "ok"

	errNotAuthenticated = "not authenticated"
	errInvalidBodyPref  = "invalid body: "
	errInvalidID        = "invalid id"
)

// statusFor maps service and backend errors onto HTTP codes. Anything not
// recognised is a failure of the upstream backend.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrNotAuthenticated), errors.Is(err, api.ErrAuthentication), errors.Is(err, api.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrNoFileSelected), errors.Is(err, service.ErrEmptyCredential):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrNoActiveAnalytics), errors.Is(err, service.ErrEntryNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrSuperseded):
		return http.StatusConflict
	default:
		return http.StatusBadGateway
	}
}

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// failWith responds with the mapped status and the error text.
func (h *Handler) failWith(c *gin.Context, logKey string, err error, kv ...interface{}) {
	h.logAndJSONError(c, statusFor(err), err.Error(), logKey, err, kv...)
}
