package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	ierr "github.com/invoiceai/invoiceai/internal/errors"
	"github.com/invoiceai/invoiceai/internal/logger"
	"github.com/invoiceai/invoiceai/internal/sentry"
	"github.com/invoiceai/invoiceai/internal/types"
)

// ErrorHandler middleware renders the last handler error as
// {message, errors?} with the status of its error kind.
func ErrorHandler(sentry *sentry.Service, logger *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		status := ierr.HTTPStatusFromErr(err)
		ctx := c.Request.Context()

		if status >= http.StatusInternalServerError {
			logger.Errorw("request failed",
				"method", c.Request.Method,
				"path", c.FullPath(),
				"status", status,
				"tenant_id", types.GetTenantID(ctx),
				"request_id", types.GetRequestID(ctx),
				"error", err,
			)
			sentry.CaptureExceptionWithContext(ctx, err, map[string]string{
				"tenant_id":  types.GetTenantID(ctx),
				"request_id": types.GetRequestID(ctx),
			})
		}

		if status == http.StatusTooManyRequests {
			if retryAfter, ok := ierr.SafeDetails(err)["retry_after"]; ok {
				c.Header(types.HeaderRetryAfter, toHeaderValue(retryAfter))
			}
		}

		if c.Writer.Written() {
			return
		}
		c.JSON(status, ierr.ToResponse(err))
	}
}
