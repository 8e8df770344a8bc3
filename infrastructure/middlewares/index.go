package middlewares

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDMiddleware tags every request with a correlation id so log lines
// from the detection pool can be tied back to the originating call.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		requestID := ctx.GetHeader("X-Request-Id")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		ctx.Set("requestID", requestID)
		ctx.Header("X-Request-Id", requestID)
		ctx.Next()
	}
}
