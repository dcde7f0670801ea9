package httpserver

import (
	"net/http"

	"artisanhub/internal/domain"
	"github.com/gin-gonic/gin"
)

func (h *handlers) listProducts(c *gin.Context) {
	products, err := h.deps.Products.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *handlers) listArtistProducts(c *gin.Context) {
	products, err := h.deps.Products.ListByArtist(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *handlers) getProduct(c *gin.Context) {
	p, err := h.deps.Products.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *handlers) createProduct(c *gin.Context) {
	var req productRequest
	if !h.bind(c, &req) {
		return
	}
	p, err := h.deps.Products.Create(c.Request.Context(), callerFrom(c), req.toDomain())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *handlers) createProductsBulk(c *gin.Context) {
	var req bulkProductsRequest
	if !h.bind(c, &req) {
		return
	}
	in := make([]domain.Product, len(req.Products))
	for i, r := range req.Products {
		in[i] = r.toDomain()
	}
	created, err := h.deps.Products.CreateBulk(c.Request.Context(), callerFrom(c), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *handlers) updateProduct(c *gin.Context) {
	var req productRequest
	if !h.bind(c, &req) {
		return
	}
	p := req.toDomain()
	p.ID = c.Param("id")
	updated, err := h.deps.Products.Update(c.Request.Context(), callerFrom(c), p)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *handlers) deleteProduct(c *gin.Context) {
	if err := h.deps.Products.Delete(c.Request.Context(), callerFrom(c), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
