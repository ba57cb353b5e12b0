package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careerlift/resumeaudit/config"
)

func newCounterRouter(c *CounterController) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/submission-counter", c.Status)
	return r
}

func getStatus(t *testing.T, r *gin.Engine) (*httptest.ResponseRecorder, CounterStatus) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/submission-counter", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var status CounterStatus
	if w.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	}
	return w, status
}

func TestCounterStatus(t *testing.T) {
	config.Reset()
	t.Cleanup(config.Reset)
	t.Setenv("SUBMISSION_LIMIT", "50")

	tests := []struct {
		name  string
		count int64
		want  CounterStatus
	}{
		{
			name:  "empty counter",
			count: 0,
			want:  CounterStatus{Count: 0, Limit: 50, LimitReached: false, Remaining: 50},
		},
		{
			name:  "partially full",
			count: 12,
			want:  CounterStatus{Count: 12, Limit: 50, LimitReached: false, Remaining: 38},
		},
		{
			name:  "exactly at limit",
			count: 50,
			want:  CounterStatus{Count: 50, Limit: 50, LimitReached: true, Remaining: 0},
		},
		{
			name:  "over limit stays non negative",
			count: 53,
			want:  CounterStatus{Count: 53, Limit: 50, LimitReached: true, Remaining: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newCounterRouter(&CounterController{counter: &stubCounter{count: tt.count}})
			w, status := getStatus(t, r)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.want, status)
		})
	}
}

func TestCounterStatusReadFailure(t *testing.T) {
	config.Reset()
	t.Cleanup(config.Reset)

	r := newCounterRouter(&CounterController{counter: &stubCounter{readErr: errors.New("db down")}})
	req := httptest.NewRequest(http.MethodGet, "/submission-counter", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Failed to check submission count"}`, w.Body.String())
}

func TestCounterStatusServesFromCache(t *testing.T) {
	config.Reset()
	t.Cleanup(config.Reset)

	cached := CounterStatus{Count: 7, Limit: 50, Remaining: 43}
	counter := &stubCounter{count: 99}
	c := &CounterController{
		counter:  counter,
		cacheTTL: 5 * time.Second,
		cacheGet: func(key string, v interface{}) bool {
			assert.Equal(t, counterCacheKey, key)
			*(v.(*CounterStatus)) = cached
			return true
		},
	}

	w, status := getStatus(t, newCounterRouter(c))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, cached, status)
}

func TestCounterStatusPopulatesCacheOnMiss(t *testing.T) {
	config.Reset()
	t.Cleanup(config.Reset)
	t.Setenv("SUBMISSION_LIMIT", "50")

	var setKey string
	var setVal CounterStatus
	c := &CounterController{
		counter:  &stubCounter{count: 3},
		cacheTTL: 5 * time.Second,
		cacheGet: func(key string, v interface{}) bool { return false },
		cacheSet: func(key string, v interface{}, ttl time.Duration) {
			setKey = key
			setVal = v.(CounterStatus)
			assert.Equal(t, 5*time.Second, ttl)
		},
	}

	w, status := getStatus(t, newCounterRouter(c))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, counterCacheKey, setKey)
	assert.Equal(t, status, setVal)
}
