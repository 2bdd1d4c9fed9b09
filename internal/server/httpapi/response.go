package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/shoppinglist/internal/common"
	"github.com/gin-gonic/gin"
)

const (
	statusSuccess = "success"
	statusFailure = "failure"

	MsgRouteNotFound    = "resource not found on this URL"
	MsgMethodNotAllowed = "method not allowed on this endpoint"

	timestampLayout = "2006-01-02 15:04:05"
)

func success(c *gin.Context, code int, msg string) {
	c.JSON(code, gin.H{"status": statusSuccess, "message": msg})
}

// fail renders err. A *common.Failure is shown verbatim; anything else is
// logged and answered with a generic 500.
func (a *API) fail(c *gin.Context, err error) {
	f, ok := common.AsFailure(err)
	if !ok {
		a.logger.Error(c.Request.Context(), "request failed",
			"request_id", c.GetString(ctxRequestID),
			"path", c.Request.URL.Path,
			"error", err,
		)
	}
	c.JSON(f.Status, gin.H{"status": statusFailure, "message": f.Message})
}

func routeNotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"status": statusFailure, "message": MsgRouteNotFound})
}

func methodNotAllowed(c *gin.Context) {
	c.JSON(http.StatusMethodNotAllowed, gin.H{"status": statusFailure, "message": MsgMethodNotAllowed})
}
