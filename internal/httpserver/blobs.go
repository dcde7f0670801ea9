package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// uploadBlob stores the multipart "file" field under the caller's prefix.
func (h *handlers) uploadBlob(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)

	fh, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.fail(c, err)
			return
		}
		abortWithError(c, http.StatusBadRequest, "multipart field \"file\" required")
		return
	}
	f, err := fh.Open()
	if err != nil {
		h.fail(c, err)
		return
	}
	defer f.Close()

	caller := callerFrom(c)
	ref, err := h.deps.Blobs.Put(c.Request.Context(), caller.Principal, fh.Filename, f)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.logger.Info("blob uploaded", zap.String("principal", caller.Principal), zap.String("path", ref.Path))
	c.JSON(http.StatusCreated, ref)
}
