package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/careerlift/resumeaudit/config"
	"github.com/careerlift/resumeaudit/store"
	"github.com/careerlift/resumeaudit/utils"
)

// counterReader is the read side of the submission counter.
type counterReader interface {
	Read(ctx context.Context) (int64, error)
}

// CounterStatus is the public shape of the beta capacity endpoint.
type CounterStatus struct {
	Count        int64 `json:"count"`
	Limit        int   `json:"limit"`
	LimitReached bool  `json:"limitReached"`
	Remaining    int64 `json:"remaining"`
}

const counterCacheKey = "submission_counter:status"

// CounterController exposes the current submission count and remaining beta
// capacity. It never mutates state.
type CounterController struct {
	counter  counterReader
	cacheTTL time.Duration
	cacheGet func(key string, v interface{}) bool
	cacheSet func(key string, v interface{}, ttl time.Duration)
}

// NewCounterController creates a CounterController backed by the database
// counter with a short Redis cache in front.
func NewCounterController(db *gorm.DB) *CounterController {
	return &CounterController{
		counter:  store.NewCounter(db),
		cacheTTL: 5 * time.Second,
		cacheGet: utils.CacheGetJSON,
		cacheSet: utils.CacheSetJSON,
	}
}

// Status returns {count, limit, limitReached, remaining}. An absent counter
// row reads as zero; remaining is never negative.
func (c *CounterController) Status(ctx *gin.Context) {
	cfg := config.Get()

	if c.cacheGet != nil {
		var cached CounterStatus
		if c.cacheGet(counterCacheKey, &cached) {
			ctx.JSON(http.StatusOK, cached)
			return
		}
	}

	count, err := c.counter.Read(ctx.Request.Context())
	if err != nil {
		if utils.Sugar != nil {
			utils.Sugar.Errorf("submission counter read failed: %v", err)
		}
		utils.Fail(ctx, http.StatusInternalServerError, "Failed to check submission count")
		return
	}

	limit := int64(cfg.SubmissionLimit)
	status := CounterStatus{
		Count:        count,
		Limit:        cfg.SubmissionLimit,
		LimitReached: count >= limit,
		Remaining:    max(0, limit-count),
	}

	if c.cacheSet != nil {
		c.cacheSet(counterCacheKey, status, c.cacheTTL)
	}
	ctx.JSON(http.StatusOK, status)
}
