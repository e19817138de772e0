package middleware

import (
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"uasz.sn/utilisateursapi/pkg/apperror"
	"uasz.sn/utilisateursapi/pkg/ratelimiter"
	"uasz.sn/utilisateursapi/pkg/response"
)

const writeScope = "writes"

// RateLimitWrites throttles mutating requests per client IP. Reads pass
// through, and so does everything when Redis misbehaves.
func RateLimitWrites(limiter *ratelimiter.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Enabled() {
			c.Next()
			return
		}
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		decision, err := limiter.Allow(c.Request.Context(), c.ClientIP(), writeScope)
		if err != nil {
			log.Warn().Err(err).Str("client_ip", c.ClientIP()).Msg("rate limiter unavailable, letting request through")
			c.Next()
			return
		}
		if !decision.Allowed {
			seconds := int(math.Ceil(decision.RetryAfter.Seconds()))
			c.Header("Retry-After", strconv.Itoa(seconds))
			response.ResponseError(c, apperror.New(
				http.StatusTooManyRequests,
				fmt.Sprintf("Trop de requêtes, réessayez dans %d s", seconds),
				apperror.ErrRateLimitExceeded,
			))
			return
		}

		c.Header("X-RateLimit-Remaining", strconv.FormatInt(decision.Remaining, 10))
		c.Next()
	}
}
