package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/showcase/internal/services"
	"github.com/yoockh/showcase/internal/utils"
)

// UploadLogHandler serves the upload audit trail. svc is nil when postgres
// is not configured.
type UploadLogHandler struct {
	svc services.UploadLogService
}

func NewUploadLogHandler(svc services.UploadLogService) *UploadLogHandler {
	return &UploadLogHandler{svc: svc}
}

func (h *UploadLogHandler) List(c *gin.Context) {
	if h.svc == nil {
		writeError(c, utils.E(utils.CodeUnavailable, "UploadLogHandler.List", "upload log is not configured", nil))
		return
	}

	limit := 50
	if s := c.Query("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}

	rows, err := h.svc.List(c.Request.Context(), c.Query("record_id"), limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"record_id": c.Query("record_id"),
		"uploads":   rows,
	})
}
