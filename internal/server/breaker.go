package server

import (
	"resumelens/internal/config"
	"resumelens/internal/errors"

	"github.com/sony/gobreaker/v2"
)

// StoreBreaker wraps history writes with circuit breaker protection.
// When the database misbehaves repeatedly, writes are skipped instead
// of slowing down every analysis request.
type StoreBreaker struct {
	cb *gobreaker.CircuitBreaker[int64]
}

// NewStoreBreaker creates a circuit breaker from the configured
// settings. Returns nil when the breaker is disabled.
func NewStoreBreaker(cfg config.BreakerConfig, logger *errors.Logger) *StoreBreaker {
	if !cfg.Enabled {
		return nil
	}

	settings := gobreaker.Settings{
		Name:        "store-writes",
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= cfg.MinRequests &&
				failureRatio >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Info("Circuit breaker state changed",
				"name", name,
				"from", from.String(),
				"to", to.String(),
				"max_requests", cfg.MaxRequests,
				"failure_threshold", cfg.FailureThreshold)
		},
	}

	return &StoreBreaker{
		cb: gobreaker.NewCircuitBreaker[int64](settings),
	}
}

// Execute runs the provided write with circuit breaker protection
func (b *StoreBreaker) Execute(fn func() (int64, error)) (int64, error) {
	if b == nil || b.cb == nil {
		// If breaker is disabled/nil, just execute the function directly
		return fn()
	}
	return b.cb.Execute(fn)
}

// GetStats returns circuit breaker statistics
func (b *StoreBreaker) GetStats() map[string]any {
	if b == nil || b.cb == nil {
		return map[string]any{
			"enabled": false,
		}
	}

	return map[string]any{
		"name":    b.cb.Name(),
		"state":   b.cb.State().String(),
		"counts":  b.cb.Counts(),
		"enabled": true,
	}
}

// IsHealthy returns true if the circuit breaker is in closed state
func (b *StoreBreaker) IsHealthy() bool {
	if b == nil || b.cb == nil {
		return true
	}
	return b.cb.State() == gobreaker.StateClosed
}
