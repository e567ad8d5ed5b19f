package telegram

import "testing"

func TestRateLimiterExhaustsBucket(t *testing.T) {
	rl := newRateLimiter(3)

	for i := 0; i < 3; i++ {
		if !rl.allow(100) {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}

	if rl.allow(100) {
		t.Fatal("request over the limit should be rejected")
	}
}

func TestRateLimiterIsPerChat(t *testing.T) {
	rl := newRateLimiter(1)

	if !rl.allow(1) {
		t.Fatal("first chat should be allowed")
	}
	if rl.allow(1) {
		t.Fatal("first chat should be exhausted")
	}
	if !rl.allow(2) {
		t.Fatal("second chat has its own bucket")
	}
}
