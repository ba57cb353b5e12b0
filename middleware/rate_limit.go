package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/careerlift/resumeaudit/config"
	"github.com/careerlift/resumeaudit/utils"
)

type ipLimiter struct {
	limiter *rate.Limiter
	expires time.Time
}

var (
	limiters   = map[string]*ipLimiter{}
	limitersMu sync.Mutex
)

// RateLimit applies a per-IP token bucket to the commerce endpoints so a
// single client cannot burn through checkout sessions or upload attempts.
func RateLimit() gin.HandlerFunc {
	cfg := config.Get()
	perMinute := max(cfg.RateLimitPerMinute, 1)
	r := rate.Every(time.Minute / time.Duration(perMinute))
	burst := max(perMinute/2, 1)

	return func(ctx *gin.Context) {
		if !getLimiter(ctx.ClientIP(), r, burst).Allow() {
			utils.Fail(ctx, http.StatusTooManyRequests, "Too many requests. Please slow down.")
			ctx.Abort()
			return
		}
		ctx.Next()
	}
}

func getLimiter(key string, limit rate.Limit, burst int) *rate.Limiter {
	limitersMu.Lock()
	defer limitersMu.Unlock()

	now := time.Now()
	for k, l := range limiters {
		if now.After(l.expires) {
			delete(limiters, k)
		}
	}

	if l, ok := limiters[key]; ok {
		l.expires = now.Add(5 * time.Minute)
		return l.limiter
	}
	l := &ipLimiter{limiter: rate.NewLimiter(limit, burst), expires: now.Add(5 * time.Minute)}
	limiters[key] = l
	return l.limiter
}
