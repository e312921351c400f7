package localizer

import (
	"context"
	"testing"
	"time"
)

func TestRateLimiter_TryAcquire(t *testing.T) {
	limiter := NewRateLimiter(RateLimitConfig{
		RequestsPerMinute: 60, // 1 per second
		BurstSize:         3,
	})

	// Should be able to acquire burst size immediately
	for i := 0; i < 3; i++ {
		if !limiter.TryAcquire() {
			t.Errorf("Expected to acquire token %d", i)
		}
	}

	// Fourth should fail
	if limiter.TryAcquire() {
		t.Error("Expected fourth acquire to fail")
	}
}

func TestRateLimiter_Refill(t *testing.T) {
	limiter := NewRateLimiter(RateLimitConfig{
		RequestsPerMinute: 600, // 10 per second
		BurstSize:         1,
	})

	// Drain the bucket
	limiter.TryAcquire()

	// Should fail immediately
	if limiter.TryAcquire() {
		t.Error("Expected acquire to fail after drain")
	}

	// Wait for a refill
	time.Sleep(150 * time.Millisecond)

	if !limiter.TryAcquire() {
		t.Error("Expected acquire to succeed after refill")
	}
}

func TestRateLimiter_Defaults(t *testing.T) {
	limiter := NewRateLimiter(RateLimitConfig{})

	if limiter.Available() <= 0 {
		t.Error("Expected default limiter to start with tokens")
	}
}

func TestRateLimiter_Wait(t *testing.T) {
	limiter := NewRateLimiter(RateLimitConfig{
		RequestsPerMinute: 600, // 10 per second
		BurstSize:         1,
	})

	// First wait returns immediately
	if err := limiter.Wait(context.Background()); err != nil {
		t.Fatalf("Wait failed: %v", err)
	}

	// Second wait blocks until refill
	start := time.Now()
	if err := limiter.Wait(context.Background()); err != nil {
		t.Fatalf("Wait failed: %v", err)
	}
	if time.Since(start) < 50*time.Millisecond {
		t.Error("Expected second Wait to block for a refill")
	}
}

func TestRateLimiter_WaitCancelled(t *testing.T) {
	limiter := NewRateLimiter(RateLimitConfig{
		RequestsPerMinute: 1, // Very slow refill
		BurstSize:         1,
	})

	// Drain the bucket
	limiter.TryAcquire()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := limiter.Wait(ctx)
	if err == nil {
		t.Fatal("Expected context error")
	}
}

func TestRateLimitedProvider(t *testing.T) {
	provider := newMockProvider()
	limited := NewRateLimitedProvider(provider, RateLimitConfig{
		RequestsPerMinute: 600,
		BurstSize:         10,
	})

	result, err := limited.Translate(context.Background(), TranslateRequest{
		Text:       "Hello",
		TargetLang: "es",
	})

	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if result != "Hola" {
		t.Errorf("Translate() = %q, want %q", result, "Hola")
	}
	if provider.callCount != 1 {
		t.Errorf("provider called %d times, want 1", provider.callCount)
	}
}

func TestRateLimitedProvider_Cancelled(t *testing.T) {
	provider := newMockProvider()
	limited := NewRateLimitedProvider(provider, RateLimitConfig{
		RequestsPerMinute: 1,
		BurstSize:         1,
	})

	// Drain the bucket
	limited.Limiter().TryAcquire()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := limited.Translate(ctx, TranslateRequest{Text: "Hello", TargetLang: "es"})
	if err == nil {
		t.Fatal("Expected error for cancelled wait")
	}
	if provider.callCount != 0 {
		t.Errorf("provider called %d times, want 0", provider.callCount)
	}
}
