package httpserver

import (
	"errors"
	"net/http"

	"artisanhub/internal/domain"
	"github.com/gin-gonic/gin"
)

func (h *handlers) listArtists(c *gin.Context) {
	artists, err := h.deps.Artists.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, artists)
}

func (h *handlers) getArtist(c *gin.Context) {
	a, err := h.deps.Artists.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (h *handlers) registerArtist(c *gin.Context) {
	var req registerArtistRequest
	if !h.bind(c, &req) {
		return
	}
	a, err := h.deps.Artists.Register(c.Request.Context(), callerFrom(c), req.Name, req.Email)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, a)
}

func (h *handlers) setArtistActive(c *gin.Context) {
	var req activeRequest
	if !h.bind(c, &req) {
		return
	}
	a, err := h.deps.Artists.SetActive(c.Request.Context(), callerFrom(c), c.Param("id"), *req.IsActive)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (h *handlers) setArtistPaymentAccount(c *gin.Context) {
	var req accountRequest
	if !h.bind(c, &req) {
		return
	}
	a, err := h.deps.Artists.SetPaymentAccount(c.Request.Context(), callerFrom(c), c.Param("id"), req.AccountID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

// getStoreSettings answers null for artists that never saved settings.
func (h *handlers) getStoreSettings(c *gin.Context) {
	s, err := h.deps.Stores.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusOK, nil)
			return
		}
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *handlers) updateStoreSettings(c *gin.Context) {
	var req domain.StoreSettings
	if !h.bind(c, &req) {
		return
	}
	req.ArtistID = c.Param("id")
	saved, err := h.deps.Stores.Update(c.Request.Context(), callerFrom(c), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}
