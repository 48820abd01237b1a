package probe

import "github.com/JasonLG1979/asound-conf-wizard/pkg/alsa"

// verifiedConfigurations walks the candidate (format, rate, channels) space
// with early pruning: a format is tested alone before any rate is tried
// against it, and a (format, rate) pair before any channel count. Each trial
// is a full fresh session, which is exactly why pruning matters. Only the
// innermost level performs the full parameter commit.
func (p *Prober) verifiedConfigurations(ep *Endpoint) []ValidConfiguration {
	var configs []ValidConfiguration

	for _, format := range ep.Formats {
		if !p.backend.Test(ep.Name, ep.Direction, alsa.Candidate{Format: format}) {
			continue
		}
		for _, rate := range ep.Rates {
			if !p.backend.Test(ep.Name, ep.Direction, alsa.Candidate{Format: format, Rate: rate}) {
				continue
			}
			for _, channels := range ep.Channels {
				candidate := alsa.Candidate{Format: format, Rate: rate, Channels: channels}
				if !p.backend.Commit(ep.Name, ep.Direction, candidate) {
					continue
				}
				configs = append(configs, p.newValidConfiguration(ep, format, rate, channels))
			}
		}
	}
	return configs
}

// newValidConfiguration binds a verified triple to its endpoint identity and
// captures the buffer-time window for it while the card is still exclusively
// owned by this worker.
func (p *Prober) newValidConfiguration(ep *Endpoint, format alsa.Format, rate, channels int) ValidConfiguration {
	base := alsa.Candidate{Format: format, Rate: rate, Channels: channels}

	minUS, maxUS, err := p.backend.Bounds(ep.Name, ep.Direction, alsa.ParamBufferTime, base)
	if err != nil || minUS <= 0 || maxUS <= 0 {
		minUS, maxUS = p.policy.MinBufferTimeUS, p.policy.MaxBufferTimeUS
	}

	// Floor both bounds to whole milliseconds, then clamp to the absolutes.
	minUS = max((minUS/usPerMS)*usPerMS, p.policy.MinBufferTimeUS)
	maxUS = min((maxUS/usPerMS)*usPerMS, p.policy.MaxBufferTimeUS)

	cfg := ValidConfiguration{
		Name:            ep.Name,
		Description:     ep.Description,
		Direction:       ep.Direction,
		CardKey:         ep.CardKey,
		DeviceNumber:    ep.DeviceNumber,
		SubDeviceNumber: ep.SubDeviceNumber,
		RealHardware:    ep.RealHardware,
		Format:          format,
		Rate:            rate,
		Channels:        channels,
		bufferTimeMinUS: minUS,
		bufferTimeMaxUS: maxUS,
	}
	cfg.BufferTimeMS = cfg.RecommendedBufferTimeMS()
	return cfg
}
