package handlers

import (
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"ledgerpro/internal/core/apperror"
	"ledgerpro/internal/domain/backup"
	"ledgerpro/internal/infrastructure/http/v1/middleware"
)

// maxRestoreBytes caps how large an uploaded snapshot may be.
const maxRestoreBytes = 64 << 20

// BackupHandler serves snapshot export and restore.
type BackupHandler struct {
	base *BaseHandler
	svc  *backup.Service
}

// NewBackupHandler creates a new backup handler.
func NewBackupHandler(base *BaseHandler, svc *backup.Service) *BackupHandler {
	return &BackupHandler{base: base, svc: svc}
}

// Export streams the user's book as a downloadable snapshot. With
// ?compress=1 the payload is a zstd frame.
func (h *BackupHandler) Export(c *gin.Context) {
	uc, ok := middleware.RequireUser(c)
	if !ok {
		return
	}
	compress, _ := strconv.ParseBool(c.DefaultQuery("compress", "false"))

	data, err := h.svc.Export(c.Request.Context(), uc.UserID, compress)
	if err != nil {
		h.base.Error(c, err)
		return
	}

	name := "ledgerpro-" + time.Now().UTC().Format("2006-01-02") + ".json"
	contentType := "application/json"
	if compress {
		name += ".zst"
		contentType = "application/zstd"
	}
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Data(http.StatusOK, contentType, data)
}

// Restore replaces the user's book with an uploaded snapshot.
func (h *BackupHandler) Restore(c *gin.Context) {
	uc, ok := middleware.RequireUser(c)
	if !ok {
		return
	}

	file, _, err := c.Request.FormFile("file")
	if err != nil {
		h.base.Error(c, apperror.NewInvalidInput("Backup file is required."))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxRestoreBytes))
	if err != nil {
		h.base.Error(c, apperror.NewInternal(err))
		return
	}

	if err := h.svc.Restore(c.Request.Context(), uc.UserID, data); err != nil {
		h.base.Error(c, err)
		return
	}
	h.base.NoContent(c)
}
