package httpapi

import (
	"time"

	"github.com/dmitrijs2005/shoppinglist/internal/common"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// requestID tags the request with the client's X-Request-ID, or a fresh
// uuid, and echoes it on the response.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(common.RequestIDHeaderName)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(ctxRequestID, id)
		c.Header(common.RequestIDHeaderName, id)
		c.Next()
	}
}

// accessLog logs every request once it is served and feeds the request
// metrics.
func (a *API) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		elapsed := time.Since(start)

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()

		if a.metrics != nil {
			a.metrics.ObserveRequest(c.Request.Method, route, status, elapsed)
		}
		a.logger.Info(c.Request.Context(), "request served",
			"request_id", c.GetString(ctxRequestID),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"latency", elapsed,
		)
	}
}

// authenticate resolves the bearer credential. On failure the request is
// answered here and the route handler never runs.
func (a *API) authenticate(c *gin.Context) {
	userID, token, err := a.gate.Authenticate(c.Request.Context(), c.GetHeader(common.AuthorizationHeaderName))
	if err != nil {
		if f, ok := common.AsFailure(err); ok && a.metrics != nil {
			a.metrics.AuthFailure(f.Kind.String())
		}
		a.fail(c, err)
		c.Abort()
		return
	}

	c.Set(ctxUserID, userID)
	c.Set(ctxToken, token)
	c.Next()
}
