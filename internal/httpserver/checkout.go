package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *handlers) createCheckoutSession(c *gin.Context) {
	var req checkoutRequest
	if !h.bind(c, &req) {
		return
	}
	sess, err := h.deps.Checkout.CreateSession(c.Request.Context(), callerFrom(c), req.Items)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, sess)
}

func (h *handlers) getCheckoutSession(c *gin.Context) {
	st, err := h.deps.Checkout.SessionStatus(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}
