package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// NewLimiter builds an in-memory limiter from a formatted rate such as "60-M".
func NewLimiter(formatted string) (*limiter.Limiter, error) {
	rate, err := limiter.NewRateFromFormatted(formatted)
	if err != nil {
		return nil, err
	}
	return limiter.New(memory.NewStore(), rate), nil
}

// RateLimit limits requests per client IP. A nil limiter lets everything through.
func RateLimit(l *limiter.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if l == nil {
			c.Next()
			return
		}

		ip := c.ClientIP()
		ctx, err := l.Get(c.Request.Context(), ip)
		if err != nil {
			logrus.WithError(err).WithField("ip", ip).Error("rate limit check failed")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "rate limit check failed"})
			return
		}

		c.Header("X-RateLimit-Limit", itoa(ctx.Limit))
		c.Header("X-RateLimit-Remaining", itoa(ctx.Remaining))

		if ctx.Reached {
			logrus.WithFields(logrus.Fields{"ip": ip, "limit": ctx.Limit}).Warn("rate limit exceeded")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"message": "too many requests, try again later"})
			return
		}
		c.Next()
	}
}

func itoa(v int64) string {
	return strconv.FormatInt(v, 10)
}
