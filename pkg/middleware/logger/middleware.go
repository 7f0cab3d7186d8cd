package logger

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid/v5"
)

const RequestIDHeader = "X-Request-ID"

// LogWithWriter writes one access line per request and stamps a request id.
func LogWithWriter() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		reqID := ctx.GetHeader(RequestIDHeader)
		if reqID == "" {
			if id, err := uuid.NewV4(); err == nil {
				reqID = id.String()
			}
		}
		ctx.Header(RequestIDHeader, reqID)

		ctx.Next()

		Infof(ctx, "[%s] %s %s %d %s %s",
			reqID,
			ctx.Request.Method,
			ctx.Request.URL.RequestURI(),
			ctx.Writer.Status(),
			time.Since(start),
			ctx.ClientIP(),
		)
		for _, e := range ctx.Errors {
			Errorf(ctx, "[%s] request err: %+v", reqID, e.Err)
		}
	}
}
