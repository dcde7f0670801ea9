package httpserver

import (
	"net/http"
	"strconv"

	"artisanhub/internal/domain"
	"github.com/gin-gonic/gin"
)

func (h *handlers) getCommission(c *gin.Context) {
	rate, err := h.deps.Platform.CommissionRate(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, commissionResponse{Rate: rate})
}

func (h *handlers) setCommission(c *gin.Context) {
	var req commissionRequest
	if !h.bind(c, &req) {
		return
	}
	if err := h.deps.Platform.SetCommissionRate(c.Request.Context(), callerFrom(c), *req.Rate); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, commissionResponse{Rate: *req.Rate})
}

func (h *handlers) getPaymentConfigured(c *gin.Context) {
	ok, err := h.deps.Platform.IsPaymentConfigured(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, paymentConfiguredResponse{Configured: ok})
}

func (h *handlers) setPaymentConfiguration(c *gin.Context) {
	var req paymentConfigRequest
	if !h.bind(c, &req) {
		return
	}
	cfg := domain.PaymentConfiguration{SecretKey: req.SecretKey, AllowedCountries: req.AllowedCountries}
	if err := h.deps.Platform.SetPaymentConfiguration(c.Request.Context(), callerFrom(c), cfg); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, paymentConfiguredResponse{Configured: true})
}

func (h *handlers) getPayoutAccount(c *gin.Context) {
	id, err := h.deps.Platform.PayoutAccount(c.Request.Context(), callerFrom(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, accountResponse{AccountID: id})
}

func (h *handlers) setPayoutAccount(c *gin.Context) {
	var req accountRequest
	if !h.bind(c, &req) {
		return
	}
	if err := h.deps.Platform.SetPayoutAccount(c.Request.Context(), callerFrom(c), req.AccountID); err != nil {
		h.fail(c, err)
		return
	}
	id := req.AccountID
	c.JSON(http.StatusOK, accountResponse{AccountID: &id})
}

func (h *handlers) getRevenue(c *gin.Context) {
	amount, err := strconv.ParseInt(c.Query("amount"), 10, 64)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "amount: must be an integer number of cents")
		return
	}
	b, err := h.deps.Platform.Revenue(c.Request.Context(), amount)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}
