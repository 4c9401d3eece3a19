package handlers

import (
	"context"
	"mime"
	"net/http"
	"strconv"

	"chemviz/internal/models"
	"chemviz/internal/service"

	"github.com/gin-gonic/gin"
)

const activeSelector = "active"

// Request DTO for selecting an upload.
type selectUploadRequest struct {
	Path string `json:"path" binding:"required"`
	Name string `json:"name,omitempty"` // defaults to the base of path
}

// SelectUploadRequest is an exported model for Swagger docs of the select payload.
type SelectUploadRequest struct {
	// Local path of a CSV or Excel workbook
	Path string `json:"path" example:"/data/batch1.csv"`
	// Name announced to the backend
	Name string `json:"name,omitempty" example:"batch1.csv"`
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidID})
		return 0, false
	}
	return id, true
}

// @Summary      Dashboard view
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  models.ViewState
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/view [get]
func (h *Handler) getView(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.Snapshot())
}

// @Summary      Upload history
// @Tags         history
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "count, entries"
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/history [get]
func (h *Handler) getHistory(c *gin.Context) {
	entries := h.services.History.List()
	c.JSON(http.StatusOK, gin.H{"count": len(entries), "entries": entries})
}

// @Summary      Refresh upload history
// @Tags         history
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "count, entries"
// @Failure      401  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /api/v1/history/refresh [post]
func (h *Handler) refreshHistory(c *gin.Context) {
	if err := h.services.Refresh(c.Request.Context()); err != nil {
		h.failWith(c, "history_refresh_failed", err)
		return
	}
	h.getHistory(c)
}

// @Summary      Select a file to upload
// @Tags         uploads
// @Accept       json
// @Produce      json
// @Param        body  body      SelectUploadRequest  true  "File reference"
// @Success      200   {object}  map[string]interface{}  "pending, can_submit"
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/v1/uploads/select [post]
func (h *Handler) selectUpload(c *gin.Context) {
	var req selectUploadRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	if err := h.services.SelectFile(models.FileRef{Name: req.Name, Path: req.Path}); err != nil {
		h.failWith(c, "upload_select_failed", err)
		return
	}
	ref, _ := h.services.Pending()
	c.JSON(http.StatusOK, gin.H{"pending": ref, "can_submit": h.services.CanSubmit()})
}

// @Summary      Submit the pending upload
// @Description  The pending file is cleared whether or not the upload succeeds.
// @Tags         uploads
// @Produce      json
// @Success      201  {object}  map[string]interface{}  "entry, view"
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /api/v1/uploads/submit [post]
func (h *Handler) submitUpload(c *gin.Context) {
	entry, err := h.services.Submit(c.Request.Context())
	if err != nil {
		h.failWith(c, "upload_submit_failed", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"entry": entry, "view": h.services.Snapshot()})
}

// @Summary      Select analytics of a history entry
// @Tags         analytics
// @Produce      json
// @Param        id   path      int  true  "History entry id"
// @Success      200  {object}  models.ActiveAnalytics
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      409  {object}  map[string]string  "superseded by a newer selection"
// @Failure      502  {object}  map[string]string
// @Router       /api/v1/analytics/{id}/select [post]
func (h *Handler) selectAnalytics(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	active, err := h.services.Select(c.Request.Context(), id)
	if err != nil {
		h.failWith(c, "analytics_select_failed", err, "id", id)
		return
	}
	c.JSON(http.StatusOK, active)
}

// @Summary      Active analytics
// @Tags         analytics
// @Produce      json
// @Success      200  {object}  models.ActiveAnalytics
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/analytics/active [get]
func (h *Handler) getActiveAnalytics(c *gin.Context) {
	active, ok := h.services.Active()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": service.ErrNoActiveAnalytics.Error()})
		return
	}
	c.JSON(http.StatusOK, active)
}

// attachmentSaver streams a report to the browser as a download.
type attachmentSaver struct {
	c *gin.Context
}

func (s attachmentSaver) Save(_ context.Context, name string, data []byte) (string, error) {
	s.c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	s.c.Data(http.StatusOK, "application/pdf", data)
	return name, nil
}

// @Summary      Download a PDF report
// @Description  id is a history entry id, or "active" for the active analytics result.
// @Tags         reports
// @Produce      application/pdf
// @Param        id   path      string  true  "History entry id or 'active'"
// @Success      200  {file}    binary
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /api/v1/reports/{id} [get]
func (h *Handler) getReport(c *gin.Context) {
	ctx := c.Request.Context()
	dst := attachmentSaver{c: c}

	if c.Param("id") == activeSelector {
		if _, err := h.services.DownloadActive(ctx, dst); err != nil {
			h.failWith(c, "report_download_failed", err, "id", activeSelector)
		}
		return
	}

	id, ok := parseID(c)
	if !ok {
		return
	}
	filename := c.Query("filename")
	if filename == "" {
		entry, found := h.services.Find(id)
		if !found {
			h.failWith(c, "report_download_failed", service.ErrEntryNotFound, "id", id)
			return
		}
		filename = entry.Filename
	}
	if _, err := h.services.Download(ctx, dst, id, filename); err != nil {
		h.failWith(c, "report_download_failed", err, "id", id)
	}
}
