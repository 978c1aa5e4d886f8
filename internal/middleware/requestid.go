package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/evelynagreer/survey-vote/backend/internal/logger"
)

const RequestIDKey = "request_id"

// RequestID tags every request with an id and logs its completion.
func RequestID(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}

		c.Set(RequestIDKey, requestID)
		c.Writer.Header().Set("X-Request-ID", requestID)

		c.Next()

		log.WithRequestID(requestID).WithField("status", c.Writer.Status()).
			Debug(c.Request.Method + " " + c.Request.URL.Path)
	}
}
