package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/venturely/venturely/internal/utils"
)

// LogIDKey holds the per-request log id in the gin context.
const LogIDKey = "log_id"

// RequestLogger writes one line per request after the handler chain finishes.
func RequestLogger(log *logrus.Logger) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		logID := uuid.NewString()

		ctx.Set(LogIDKey, logID)
		ctx.Header("X-Request-ID", logID)

		ctx.Next()

		fields := logrus.Fields{
			"LOG_ID":     logID,
			"API":        ctx.Request.Method + " " + ctx.Request.URL.Path,
			"Code":       ctx.Writer.Status(),
			"TOTAL_TIME": time.Since(start).Seconds() * 1000,
			"Size":       float64(ctx.Writer.Size()) / 1024,
			"client_ip":  ctx.ClientIP(),
		}

		if user, err := utils.GetCurrentUser(ctx); err == nil {
			fields["user_id"] = user.ID
		}

		entry := log.WithFields(fields)

		if len(ctx.Errors) > 0 {
			entry = entry.WithField("errors", ctx.Errors.String())
		}

		switch status := ctx.Writer.Status(); {
		case status >= 500:
			entry.Error("request failed")
		case status >= 400:
			entry.Warn("request rejected")
		default:
			entry.Info("request served")
		}
	}
}
