package probe

import (
	"log/slog"

	"github.com/JasonLG1979/asound-conf-wizard/internal/events"
	"github.com/JasonLG1979/asound-conf-wizard/pkg/alsa"
)

// Prober determines what an endpoint genuinely accepts. Every trial goes
// through the backend as a self-contained fresh session, so a rejected
// parameter can never poison a later trial.
type Prober struct {
	backend alsa.Negotiator
	policy  Policy
	bus     *events.Bus
	logger  *slog.Logger
}

// NewProber creates a prober. bus may be nil; logger nil means slog.Default.
func NewProber(backend alsa.Negotiator, policy Policy, bus *events.Bus, logger *slog.Logger) *Prober {
	if logger == nil {
		logger = slog.Default()
	}
	return &Prober{
		backend: backend,
		policy:  policy.Normalize(),
		bus:     bus,
		logger:  logger,
	}
}

// ProbeEndpoint runs the full capability probe and configuration search for
// one endpoint. It returns nil for endpoints that cannot be opened, accept
// no software-mixable format, or end up with zero verified configurations;
// none of these are errors, the endpoint is simply excluded.
func (p *Prober) ProbeEndpoint(name, cardKey string, dir alsa.Direction) *Endpoint {
	logger := p.logger.With("device", name, "direction", dir.String())

	info, err := p.backend.Info(name, dir)
	if err != nil {
		logger.Debug("endpoint not openable", "error", err)
		p.bus.Publish(events.EndpointIgnoredEvent{Name: name, Reason: "could not be opened"})
		return nil
	}

	ep := &Endpoint{
		Name:            name,
		Description:     info.Description,
		Direction:       dir,
		CardKey:         cardKey,
		DeviceNumber:    info.DeviceNumber,
		SubDeviceNumber: info.SubDeviceNumber,
		HasBuiltinMixer: info.SubDeviceCount > 1,
		RealHardware:    true,
	}

	ep.Formats = p.probeFormats(name, dir)
	if len(ep.Formats) == 0 {
		logger.Info("no software-mixable formats, ignoring endpoint")
		p.bus.Publish(events.EndpointIgnoredEvent{
			Name:   name,
			Reason: "supports no formats usable by dmix/dsnoop and is not software mixable",
		})
		return nil
	}
	ep.SoftwareMixable = true

	var ratesReal, channelsReal bool
	ep.Rates, ratesReal = p.probeRates(name, dir)
	ep.Channels, channelsReal = p.probeChannels(name, dir)
	ep.RealHardware = ratesReal && channelsReal

	configs := p.verifiedConfigurations(ep)
	if len(configs) == 0 {
		logger.Info("no valid configurations, ignoring endpoint")
		p.bus.Publish(events.EndpointIgnoredEvent{Name: name, Reason: "has no valid configurations"})
		return nil
	}
	ep.applyVerified(configs)

	logger.Debug("endpoint verified",
		"formats", len(ep.Formats),
		"rates", len(ep.Rates),
		"channels", len(ep.Channels),
		"configurations", len(ep.ValidConfigurations),
		"real_hardware", ep.RealHardware)
	p.bus.Publish(events.EndpointVerifiedEvent{
		Name:           name,
		Direction:      dir.String(),
		Configurations: len(ep.ValidConfigurations),
	})
	return ep
}

// probeFormats tests the fixed candidate list, one fresh session per format.
func (p *Prober) probeFormats(name string, dir alsa.Direction) []alsa.Format {
	var formats []alsa.Format
	for _, f := range alsa.CandidateFormats() {
		if p.backend.Test(name, dir, alsa.Candidate{Format: f}) {
			formats = append(formats, f)
		}
	}
	return formats
}

// probeRates scans every integer rate in the device's claimed window. The
// claimed bounds are optimistic, so each value is tested literally; a scan
// that reaches the ceiling marks a converting device and falls back to the
// curated standard-rate list.
func (p *Prober) probeRates(name string, dir alsa.Direction) ([]int, bool) {
	lo, hi, err := p.backend.Bounds(name, dir, alsa.ParamRate, alsa.Candidate{})
	if err != nil || lo <= 0 || hi <= 0 {
		lo, hi = p.policy.MinRate, p.policy.MaxRate
	}
	lo = max(lo, p.policy.MinRate)
	hi = min(hi, p.policy.MaxRate)

	rates := make([]int, 0, p.policy.ScanCeiling)
	for r := lo; r <= hi; r++ {
		if !p.backend.Test(name, dir, alsa.Candidate{Rate: r}) {
			continue
		}
		rates = append(rates, r)
		if len(rates) >= p.policy.ScanCeiling {
			p.demote(name, "rate")
			return p.scanValues(name, dir, p.policy.FallbackRates, func(v int) alsa.Candidate {
				return alsa.Candidate{Rate: v}
			}), false
		}
	}
	return rates, true
}

// probeChannels is the same capped-scan-with-curated-fallback algorithm over
// the channel-count range.
func (p *Prober) probeChannels(name string, dir alsa.Direction) ([]int, bool) {
	lo, hi, err := p.backend.Bounds(name, dir, alsa.ParamChannels, alsa.Candidate{})
	if err != nil || lo <= 0 || hi <= 0 {
		lo, hi = 1, p.policy.MaxChannels
	}
	lo = max(lo, 1)
	hi = min(hi, p.policy.MaxChannels)

	channels := make([]int, 0, p.policy.ScanCeiling)
	for ch := lo; ch <= hi; ch++ {
		if !p.backend.Test(name, dir, alsa.Candidate{Channels: ch}) {
			continue
		}
		channels = append(channels, ch)
		if len(channels) >= p.policy.ScanCeiling {
			p.demote(name, "channels")
			return p.scanValues(name, dir, p.policy.FallbackChannels, func(v int) alsa.Candidate {
				return alsa.Candidate{Channels: v}
			}), false
		}
	}
	return channels, true
}

// scanValues tests a curated candidate list, one fresh session per value.
func (p *Prober) scanValues(name string, dir alsa.Direction, candidates []int, build func(int) alsa.Candidate) []int {
	accepted := make([]int, 0, len(candidates))
	for _, v := range candidates {
		if p.backend.Test(name, dir, build(v)) {
			accepted = append(accepted, v)
		}
	}
	return accepted
}

func (p *Prober) demote(name, param string) {
	p.logger.Warn("enumeration ceiling reached, treating endpoint as a converted device",
		"device", name, "param", param, "ceiling", p.policy.ScanCeiling)
	p.bus.Publish(events.EndpointDemotedEvent{
		Name:    name,
		Param:   param,
		Ceiling: p.policy.ScanCeiling,
	})
}
