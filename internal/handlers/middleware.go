package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// sessionMiddleware rejects every dashboard request while no credential is
// held.
func (h *Handler) sessionMiddleware(c *gin.Context) {
	if !h.services.Authenticated() {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": errNotAuthenticated,
		})
		return
	}
	c.Next()
}
