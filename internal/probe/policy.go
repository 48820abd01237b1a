package probe

const usPerMS = 1000

// Policy holds the tunable probing constants. The enumeration ceiling and
// the curated fallback lists are empirical policy against conversion-capable
// devices, not hardware facts, so they are configuration rather than code.
type Policy struct {
	// ScanCeiling is the maximum number of accepted values collected by a
	// linear rate or channel scan. Reaching it is taken as evidence of
	// hidden sample conversion behind the device.
	ScanCeiling int `toml:"scan_ceiling"`

	// MinRate/MaxRate are the absolute sampling-rate bounds in Hz.
	MinRate int `toml:"min_rate"`
	MaxRate int `toml:"max_rate"`

	// FallbackRates is the curated standard-rate list probed after a rate
	// scan overflows the ceiling.
	FallbackRates []int `toml:"fallback_rates"`

	// MaxChannels is the absolute channel-count ceiling.
	MaxChannels int `toml:"max_channels"`

	// FallbackChannels is the curated channel list probed after a channel
	// scan overflows the ceiling.
	FallbackChannels []int `toml:"fallback_channels"`

	// PeriodsPerBuffer derives the period time from a buffer time.
	PeriodsPerBuffer int `toml:"periods_per_buffer"`

	// MinBufferTimeUS/MaxBufferTimeUS are the absolute buffer-time bounds
	// in microseconds.
	MinBufferTimeUS int `toml:"min_buffer_time_us"`
	MaxBufferTimeUS int `toml:"max_buffer_time_us"`
}

// DefaultPolicy returns the stock probing policy.
func DefaultPolicy() Policy {
	return Policy{
		ScanCeiling: 100,
		MinRate:     8000,
		MaxRate:     768000,
		FallbackRates: []int{
			8000, 11025, 16000, 22050, 32000, 44100, 48000,
			88200, 96000, 176400, 192000, 352800, 384000, 705600, 768000,
		},
		MaxChannels:      255,
		FallbackChannels: []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12},
		PeriodsPerBuffer: 5,
		MinBufferTimeUS:  1000,
		MaxBufferTimeUS:  1000000,
	}
}

// Normalize fills zero-valued fields from the defaults so a partial TOML
// override never produces a degenerate policy.
func (p Policy) Normalize() Policy {
	def := DefaultPolicy()
	if p.ScanCeiling <= 0 {
		p.ScanCeiling = def.ScanCeiling
	}
	if p.MinRate <= 0 {
		p.MinRate = def.MinRate
	}
	if p.MaxRate <= 0 {
		p.MaxRate = def.MaxRate
	}
	if len(p.FallbackRates) == 0 {
		p.FallbackRates = def.FallbackRates
	}
	if p.MaxChannels <= 0 {
		p.MaxChannels = def.MaxChannels
	}
	if len(p.FallbackChannels) == 0 {
		p.FallbackChannels = def.FallbackChannels
	}
	if p.PeriodsPerBuffer <= 0 {
		p.PeriodsPerBuffer = def.PeriodsPerBuffer
	}
	if p.MinBufferTimeUS <= 0 {
		p.MinBufferTimeUS = def.MinBufferTimeUS
	}
	if p.MaxBufferTimeUS <= 0 {
		p.MaxBufferTimeUS = def.MaxBufferTimeUS
	}
	return p
}
