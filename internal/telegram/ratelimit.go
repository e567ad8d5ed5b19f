package telegram

import (
	"sync"
	"time"
)

// chatBucket tracks token bucket state for a single chat
type chatBucket struct {
	tokens     float64
	lastRefill time.Time
}

// rateLimiter implements per-chat token bucket rate limiting.
type rateLimiter struct {
	mu         sync.Mutex
	buckets    map[int64]*chatBucket
	maxTokens  float64
	refillRate float64 // tokens per second
}

func newRateLimiter(requestsPerMinute int) *rateLimiter {
	return &rateLimiter{
		buckets:    make(map[int64]*chatBucket),
		maxTokens:  float64(requestsPerMinute),
		refillRate: float64(requestsPerMinute) / 60.0,
	}
}

func (rl *rateLimiter) allow(chatID int64) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	bucket, ok := rl.buckets[chatID]
	if !ok {
		bucket = &chatBucket{tokens: rl.maxTokens, lastRefill: now}
		rl.buckets[chatID] = bucket
	}

	elapsed := now.Sub(bucket.lastRefill).Seconds()
	bucket.tokens += elapsed * rl.refillRate
	if bucket.tokens > rl.maxTokens {
		bucket.tokens = rl.maxTokens
	}
	bucket.lastRefill = now

	if bucket.tokens < 1 {
		return false
	}

	bucket.tokens--
	return true
}
