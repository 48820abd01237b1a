package probe

import (
	"log/slog"

	"github.com/JasonLG1979/asound-conf-wizard/pkg/alsa"
)

// BufferWindowProber determines which whole-millisecond buffer times a
// verified configuration actually accepts. It is meant to run after the
// discovery pass, for the one configuration the caller picked, so it does
// not need worker serialization.
type BufferWindowProber struct {
	backend alsa.Negotiator
	policy  Policy
	logger  *slog.Logger
}

// NewBufferWindowProber creates a buffer-window prober.
func NewBufferWindowProber(backend alsa.Negotiator, policy Policy, logger *slog.Logger) *BufferWindowProber {
	if logger == nil {
		logger = slog.Default()
	}
	return &BufferWindowProber{backend: backend, policy: policy.Normalize(), logger: logger}
}

// Scan steps through the configuration's buffer-time window in 1 ms
// increments, re-validating the full parameter set (with the derived period
// time) against a fresh session each step. It returns the accepted values
// in milliseconds; an empty result is not an error, callers fall back to
// the configuration's recommendation.
func (b *BufferWindowProber) Scan(cfg *ValidConfiguration) []int {
	minUS, maxUS := cfg.BufferWindowUS()

	var timesMS []int
	for bufferTime := minUS; bufferTime <= maxUS; bufferTime += usPerMS {
		candidate := alsa.Candidate{
			Format:       cfg.Format,
			Rate:         cfg.Rate,
			Channels:     cfg.Channels,
			BufferTimeUS: bufferTime,
			PeriodTimeUS: bufferTime / b.policy.PeriodsPerBuffer,
		}
		if b.backend.Commit(cfg.Name, cfg.Direction, candidate) {
			timesMS = append(timesMS, bufferTime/usPerMS)
		}
	}

	b.logger.Debug("buffer window scanned",
		"device", cfg.Name,
		"window_min_us", minUS,
		"window_max_us", maxUS,
		"accepted", len(timesMS))
	return timesMS
}
