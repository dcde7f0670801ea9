package httpserver

import (
	"errors"
	"net/http"

	"artisanhub/internal/domain"
	"github.com/gin-gonic/gin"
)

// getProfile answers null when the caller has no profile yet.
func (h *handlers) getProfile(c *gin.Context) {
	p, err := h.deps.Profiles.Get(c.Request.Context(), callerFrom(c))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusOK, nil)
			return
		}
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *handlers) saveProfile(c *gin.Context) {
	var req domain.UserProfile
	if !h.bind(c, &req) {
		return
	}
	if err := h.deps.Profiles.Save(c.Request.Context(), callerFrom(c), req); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlers) getRole(c *gin.Context) {
	c.JSON(http.StatusOK, roleResponse{Role: callerFrom(c).Role})
}

func (h *handlers) assignRole(c *gin.Context) {
	var req roleRequest
	if !h.bind(c, &req) {
		return
	}
	err := h.deps.Profiles.AssignRole(c.Request.Context(), callerFrom(c), c.Param("principal"), domain.Role(req.Role))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
