package httpserver

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"artisanhub/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

const (
	callerKey       = "caller"
	requestIDKey    = "request_id"
	requestIDHeader = "X-Request-ID"
)

// RoleResolver maps a principal to its role.
type RoleResolver interface {
	Role(ctx context.Context, principal string) (domain.Role, error)
}

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func accessLog(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("request_id", c.GetString(requestIDKey)),
		}
		if caller := callerFrom(c); caller.Authenticated() {
			fields = append(fields, zap.String("principal", caller.Principal))
		}
		switch {
		case c.Writer.Status() >= http.StatusInternalServerError:
			logger.Error("request", fields...)
		case c.Writer.Status() >= http.StatusBadRequest:
			logger.Info("request", fields...)
		default:
			logger.Debug("request", fields...)
		}
	}
}

// principal resolves the bearer token into a caller. Requests without a token
// continue as anonymous guests; a malformed or invalid token is rejected.
func principal(secret []byte, roles RoleResolver, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Set(callerKey, domain.Caller{Role: domain.RoleGuest})
			c.Next()
			return
		}

		scheme, tokenString, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(tokenString) == "" {
			abortWithError(c, http.StatusUnauthorized, "invalid authorization header format")
			return
		}

		sub, err := subject(strings.TrimSpace(tokenString), secret)
		if err != nil {
			logger.Debug("token rejected", zap.Error(err))
			abortWithError(c, http.StatusUnauthorized, "invalid token")
			return
		}

		role, err := roles.Role(c.Request.Context(), sub)
		if err != nil {
			logger.Error("resolve role", zap.String("principal", sub), zap.Error(err))
			abortWithError(c, http.StatusInternalServerError, "internal error")
			return
		}
		c.Set(callerKey, domain.Caller{Principal: sub, Role: role})
		c.Next()
	}
}

func subject(tokenString string, secret []byte) (string, error) {
	token, err := jwt.Parse(tokenString, func(*jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return "", err
	}
	sub, err := token.Claims.GetSubject()
	if err != nil {
		return "", err
	}
	if sub == "" {
		return "", errors.New("token has no subject")
	}
	return sub, nil
}

func requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !callerFrom(c).Authenticated() {
			abortWithError(c, http.StatusUnauthorized, domain.ErrUnauthenticated.Error())
			return
		}
		c.Next()
	}
}

func requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !callerFrom(c).IsAdmin() {
			abortWithError(c, http.StatusForbidden, domain.ErrForbidden.Error())
			return
		}
		c.Next()
	}
}

func callerFrom(c *gin.Context) domain.Caller {
	if v, ok := c.Get(callerKey); ok {
		if caller, ok := v.(domain.Caller); ok {
			return caller
		}
	}
	return domain.Caller{Role: domain.RoleGuest}
}

type httpMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func newHTTPMetrics(reg prometheus.Registerer) (*httpMetrics, error) {
	m := &httpMetrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "artisanhub",
			Name:      "http_requests_total",
			Help:      "HTTP requests by status, method and route",
		}, []string{"code", "method", "path"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "artisanhub",
			Name:      "http_request_duration_seconds",
			Help:      "Spend time by processing a route",
			Buckets:   prometheus.DefBuckets,
		}, []string{"code", "method", "path"}),
	}
	if err := reg.Register(m.requests); err != nil {
		return nil, err
	}
	if err := reg.Register(m.duration); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *httpMetrics) middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		// unmatched routes share one label to bound cardinality
		path := c.FullPath()
		if path == "" {
			path = "/not-found"
		}
		code := strconv.Itoa(c.Writer.Status())
		m.requests.WithLabelValues(code, c.Request.Method, path).Inc()
		m.duration.WithLabelValues(code, c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}
