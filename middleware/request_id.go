package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/careerlift/resumeaudit/utils"
)

const requestIDHeader = "X-Request-ID"

// RequestID attaches a unique id to each request, honoring one supplied by a
// proxy, and echoes it back in the response headers.
func RequestID() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		rid := ctx.GetHeader(requestIDHeader)
		if rid == "" {
			rid = uuid.NewString()
		}
		ctx.Set(utils.RequestIDKey, rid)
		ctx.Header(requestIDHeader, rid)
		ctx.Next()
	}
}
