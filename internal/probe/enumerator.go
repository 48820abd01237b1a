package probe

import (
	"log/slog"

	"github.com/JasonLG1979/asound-conf-wizard/internal/events"
	"github.com/JasonLG1979/asound-conf-wizard/pkg/alsa"
)

// Enumerate lists the probe-worthy hardware endpoints from the backend's hint
// source. Hints outside the raw hardware namespaces are dropped; a discovery
// failure yields an empty set, never an error, because a machine without
// sound cards is a valid machine.
func Enumerate(backend alsa.Negotiator) []alsa.Hint {
	hints, err := backend.Hints()
	if err != nil {
		return nil
	}

	filtered := hints[:0]
	for _, h := range hints {
		if IsHardwareName(h.Name) {
			filtered = append(filtered, h)
		}
	}
	return filtered
}

// Engine runs one full discovery pass: enumerate, fan endpoints out to
// per-card workers, wait, merge.
type Engine struct {
	backend alsa.Negotiator
	policy  Policy
	bus     *events.Bus
	logger  *slog.Logger
}

// NewEngine wires a discovery engine. bus may be nil; logger nil means
// slog.Default.
func NewEngine(backend alsa.Negotiator, policy Policy, bus *events.Bus, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{backend: backend, policy: policy.Normalize(), bus: bus, logger: logger}
}

// Discover performs the discovery pass and blocks until every card's worker
// has drained its queue. Workers for different cards probe in parallel; all
// probing for one card happens on that card's single worker.
func (e *Engine) Discover() (playback, capture []Endpoint) {
	prober := NewProber(e.backend, e.policy, e.bus, e.logger)
	dispatcher := NewDispatcher(prober)

	hints := Enumerate(e.backend)
	e.logger.Debug("discovery pass starting", "endpoints", len(hints))

	for _, h := range hints {
		dispatcher.AddJob(h.Name, h.Direction)
	}
	playback, capture = dispatcher.Finalize()

	e.logger.Info("discovery pass finished",
		"playback", len(playback), "capture", len(capture))
	e.bus.Publish(events.DiscoveryDoneEvent{
		Playback: len(playback),
		Capture:  len(capture),
	})
	return playback, capture
}
