package httpapi

import "github.com/gin-gonic/gin"

// Keys under which middleware stores per-request values in gin.Context.
const (
	ctxRequestID = "requestID"
	ctxUserID    = "userID"
	ctxToken     = "token"
)

// principal returns what the auth middleware resolved for this request.
func principal(c *gin.Context) (userID int64, token string) {
	return c.GetInt64(ctxUserID), c.GetString(ctxToken)
}
