package middleware

import (
	"net/http"

	domainerr "github.com/avesta-dev/backend-template/internal/domain/error"
	coreport "github.com/avesta-dev/backend-template/internal/domain/port/core"
	"github.com/avesta-dev/backend-template/internal/domain/result"
	"github.com/avesta-dev/backend-template/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// ErrorHandler middleware recovers from panics and returns appropriate error responses
func ErrorHandler(logger coreport.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				fields := map[string]any{
					"error":      err,
					"path":       c.Request.URL.Path,
					"method":     c.Request.Method,
					"client_ip":  c.ClientIP(),
					"request_id": c.GetHeader("X-Request-ID"),
					"user_agent": c.Request.UserAgent(),
				}

				switch v := err.(type) {
				case *result.UnwrapOnErrError:
					// A handler unwrapped a failure result without checking it
					fields["error_code"] = v.Err.Code
					fields["error_id"] = v.Err.ID
					logger.Error("Unchecked failure result in API request", fields)
				case *domainerr.UnitOfWorkStateError:
					fields["operation"] = v.Op
					logger.Error("Unit of work contract violation in API request", fields)
				default:
					logger.Error("Panic recovered in API request", fields)
				}

				c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{
					ErrorCode: domainerr.CodeInternal,
					Message:   "Internal server error",
				})
			}
		}()

		c.Next()
	}
}
