package middleware

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/thansetan/kalender/helper"
)

// RateLimit allows maxVisitCount requests per key in each fixed window of
// length duration.
type RateLimit struct {
	store                     *sync.Map
	keyGetter                 func(r *http.Request) string
	maxVisitCount             uint64
	duration, cleanupDuration time.Duration
}

type visitor struct {
	mu          *sync.Mutex
	windowStart time.Time
	count       uint64
}

// NewRateLimit starts a cleanup loop that runs until ctx is done.
func NewRateLimit(ctx context.Context, maxVisitCount uint64, duration, cleanupDuration time.Duration, keyGetter func(*http.Request) string) *RateLimit {
	rl := new(RateLimit)
	rl.maxVisitCount = maxVisitCount
	rl.duration = duration
	rl.cleanupDuration = cleanupDuration
	rl.keyGetter = keyGetter
	rl.store = new(sync.Map)
	go rl.cleanup(ctx)

	return rl
}

func (rl *RateLimit) Handle(next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := rl.keyGetter(r)
		valAny, _ := rl.store.LoadOrStore(key, &visitor{
			windowStart: time.Now(),
			mu:          new(sync.Mutex),
		})
		val := valAny.(*visitor)

		val.mu.Lock()
		if time.Since(val.windowStart) > rl.duration {
			val.count = 0
			val.windowStart = time.Now()
		}
		if val.count >= rl.maxVisitCount {
			retryAfter := rl.duration - time.Since(val.windowStart)
			val.mu.Unlock()
			w.Header().Set("Retry-After", strconv.Itoa(int(retryAfter.Seconds())+1))
			helper.WriteMessage(w, http.StatusTooManyRequests, "too many requests, slow down!")
			return
		}
		val.count++
		val.mu.Unlock()

		next.ServeHTTP(w, r)
	}
}

func (rl *RateLimit) cleanup(ctx context.Context) {
	ticker := time.NewTicker(rl.cleanupDuration)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		rl.store.Range(func(key, value any) bool {
			v := value.(*visitor)
			v.mu.Lock()
			windowPassed := time.Since(v.windowStart) > rl.duration
			v.mu.Unlock()
			if windowPassed {
				rl.store.Delete(key)
			}
			return true
		})
	}
}

// ClientIP keys requests by the remote host, without the port.
func ClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
