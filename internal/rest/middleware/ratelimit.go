package middleware

import (
	"net/http"

	ierr "github.com/emeraldmart/storefront/internal/errors"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimiter applies a process-wide token bucket to the API. The store is
// single-process, so a global limiter is sufficient.
func RateLimiter(rps rate.Limit, burst int) gin.HandlerFunc {
	limiter := rate.NewLimiter(rps, burst)

	return func(c *gin.Context) {
		if !limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, ierr.ErrorResponse{
				Success: false,
				Error: ierr.ErrorDetail{
					Display: "Too many requests, please slow down",
				},
			})
			return
		}
		c.Next()
	}
}
