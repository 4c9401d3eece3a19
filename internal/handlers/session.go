package handlers

import (
	"errors"
	"net/http"

	"chemviz/internal/api"

	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest is an exported model for Swagger docs of the login payload.
type LoginRequest struct {
	Username string `json:"username" example:"alice"`
	Password string `json:"password" example:"secret"`
}

// bindJSONOrBadRequest tries to bind the request body into dst and writes a 400 JSON on failure.
// Returns false if the request was already handled (aborted), true otherwise.
func (h *Handler) bindJSONOrBadRequest(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		if h.log != nil {
			h.log.Infow("bad_request_body", "path", c.FullPath(), "err", err)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return false
	}
	return true
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      Session state
// @Tags         session
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "authenticated, claims"
// @Router       /session [get]
func (h *Handler) getSession(c *gin.Context) {
	resp := gin.H{"authenticated": h.services.Authenticated()}
	if claims, ok := h.services.Claims(); ok {
		resp["claims"] = claims
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary      Log in
// @Description  Exchanges username and password for a backend credential and stores it.
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      LoginRequest  true  "Credentials"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Router       /session/login [post]
func (h *Handler) login(c *gin.Context) {
	var input loginRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	if err := h.services.SignIn(c.Request.Context(), input.Username, input.Password); err != nil {
		if errors.Is(err, api.ErrAuthentication) {
			if h.log != nil {
				h.log.Infow("session_login_rejected", "username", input.Username)
			}
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		h.failWith(c, "session_login_failed", err, "username", input.Username)
		return
	}

	c.JSON(http.StatusOK, gin.H{"authenticated": true})
}

// @Summary      Log out
// @Tags         session
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]string
// @Router       /session/logout [post]
func (h *Handler) logout(c *gin.Context) {
	if err := h.services.Logout(c.Request.Context()); err != nil {
		// memory is cleared regardless; the stored copy may linger
		h.logAndJSONError(c, http.StatusInternalServerError, "logged out, but the stored credential could not be removed", "session_logout_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"authenticated": false})
}
