package http

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/SubhajitChakrabort/ProfilePage/internal/application/service"
	"github.com/SubhajitChakrabort/ProfilePage/pkg/logger"
)

// fallbackPrefixes are the upload field names a lost file most likely came
// from. The fallback scan only considers filenames carrying one of them.
var fallbackPrefixes = []string{"profilePicture", "coverImage", "files"}

type FileHandler struct {
	store  service.BinaryStore
	logger logger.Logger
}

func NewFileHandler(store service.BinaryStore, log logger.Logger) *FileHandler {
	return &FileHandler{store: store, logger: log}
}

// ServeFile resolves /uploads/:filename. Exact hits are served with a
// long-lived cache directive. On a miss it falls back to the first stored
// file sharing the extension and a known field-name prefix; this degraded
// path can serve the wrong content and is flagged via header and log.
func (h *FileHandler) ServeFile(c *gin.Context) {
	requested := c.Param("filename")
	if requested == "" || requested == "." || strings.Contains(requested, "..") ||
		strings.ContainsAny(requested, `/\`) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid filename"})
		return
	}

	if _, err := os.Stat(h.store.Root()); os.IsNotExist(err) {
		h.notFound(c, requested, nil)
		return
	}

	if h.store.Exists(requested) {
		c.Header("Cache-Control", "public, max-age=31536000")
		c.File(h.store.Path(requested))
		return
	}

	available, err := h.store.List()
	if err != nil {
		h.logger.Error("failed to scan uploads directory", err)
		h.notFound(c, requested, nil)
		return
	}

	if fallback := findFallback(requested, available); fallback != "" {
		h.logger.Warn("serving fallback file for missing upload",
			zap.String("requested", requested),
			zap.String("served", fallback))
		c.Header("X-Fallback-File", fallback)
		c.File(h.store.Path(fallback))
		return
	}

	h.notFound(c, requested, available)
}

// findFallback picks the first stored filename with the requested extension
// and a recognized field-name prefix. Best guess only.
func findFallback(requested string, available []string) string {
	ext := strings.ToLower(filepath.Ext(requested))
	if ext == "" {
		return ""
	}
	for _, name := range available {
		if strings.ToLower(filepath.Ext(name)) != ext {
			continue
		}
		for _, prefix := range fallbackPrefixes {
			if strings.Contains(name, prefix) {
				return name
			}
		}
	}
	return ""
}

func (h *FileHandler) notFound(c *gin.Context, requested string, available []string) {
	c.JSON(http.StatusNotFound, gin.H{
		"error":          "File not found",
		"message":        "The requested file does not exist on this server",
		"requestedFile":  requested,
		"availableFiles": len(available),
		"serverTime":     time.Now().UTC().Format(time.RFC3339),
		"suggestion":     "The file may have been lost during a redeploy. Re-upload it to restore the reference.",
	})
}
