package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// limiterKey matches the key the middleware derives for httptest requests,
// whose RemoteAddr is always 192.0.2.1.
const limiterKey = "ratelimit:auth:192.0.2.1"

func newLimiterRouter(rdb *redis.Client, limit int, window time.Duration) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	rl := NewRateLimiter(rdb, limit, window)
	r.POST("/login", rl.Middleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func hitLogin(r *gin.Engine) int {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
	return w.Code
}

func TestRateLimiterThrottlesAndResets(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	r := newLimiterRouter(rdb, 2, time.Minute)

	if code := hitLogin(r); code != http.StatusOK {
		t.Fatalf("first request: expected 200, got %d", code)
	}
	if code := hitLogin(r); code != http.StatusOK {
		t.Fatalf("second request: expected 200, got %d", code)
	}
	if code := hitLogin(r); code != http.StatusTooManyRequests {
		t.Fatalf("third request: expected 429, got %d", code)
	}

	// Without a TTL the counter would outlive the window and throttle the
	// IP forever.
	if ttl := mr.TTL(limiterKey); ttl <= 0 || ttl > time.Minute {
		t.Fatalf("counter TTL = %v, want within (0, 1m]", ttl)
	}

	mr.FastForward(time.Minute + time.Second)
	if code := hitLogin(r); code != http.StatusOK {
		t.Fatalf("window expiry must reset the counter, got %d", code)
	}
}

func TestRateLimiterRepairsStaleCounter(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	// A counter left behind without a TTL, as after a crash mid-update.
	if err := mr.Set(limiterKey, "5"); err != nil {
		t.Fatalf("seed counter: %v", err)
	}

	r := newLimiterRouter(rdb, 100, time.Minute)
	if code := hitLogin(r); code != http.StatusOK {
		t.Fatalf("expected 200 under the limit, got %d", code)
	}
	if ttl := mr.TTL(limiterKey); ttl <= 0 {
		t.Fatalf("stale counter must be given a TTL, got %v", ttl)
	}
}

func TestRateLimiterFailsOpen(t *testing.T) {
	// Nothing listens here; every Redis call errors out.
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer rdb.Close()

	r := newLimiterRouter(rdb, 1, time.Minute)
	for i := 0; i < 3; i++ {
		if code := hitLogin(r); code != http.StatusOK {
			t.Fatalf("redis outage must not block the route, got %d", code)
		}
	}
}
