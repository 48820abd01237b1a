package wizard

import (
	"github.com/JasonLG1979/asound-conf-wizard/internal/probe"
	"github.com/JasonLG1979/asound-conf-wizard/pkg/alsa"
)

// The stepped format → rate → channels selection narrows a configuration set
// one field at a time. These helpers are pure so each prompt only ever offers
// values that still lead to at least one verified configuration.

func uniqueFormats(configs []probe.ValidConfiguration) []alsa.Format {
	var out []alsa.Format
	seen := make(map[alsa.Format]bool)
	for _, c := range configs {
		if !seen[c.Format] {
			seen[c.Format] = true
			out = append(out, c.Format)
		}
	}
	return out
}

func uniqueRates(configs []probe.ValidConfiguration) []int {
	var out []int
	seen := make(map[int]bool)
	for _, c := range configs {
		if !seen[c.Rate] {
			seen[c.Rate] = true
			out = append(out, c.Rate)
		}
	}
	return out
}

func uniqueChannels(configs []probe.ValidConfiguration) []int {
	var out []int
	seen := make(map[int]bool)
	for _, c := range configs {
		if !seen[c.Channels] {
			seen[c.Channels] = true
			out = append(out, c.Channels)
		}
	}
	return out
}

func withFormat(configs []probe.ValidConfiguration, f alsa.Format) []probe.ValidConfiguration {
	var out []probe.ValidConfiguration
	for _, c := range configs {
		if c.Format == f {
			out = append(out, c)
		}
	}
	return out
}

func withRate(configs []probe.ValidConfiguration, rate int) []probe.ValidConfiguration {
	var out []probe.ValidConfiguration
	for _, c := range configs {
		if c.Rate == rate {
			out = append(out, c)
		}
	}
	return out
}

func withChannels(configs []probe.ValidConfiguration, channels int) []probe.ValidConfiguration {
	var out []probe.ValidConfiguration
	for _, c := range configs {
		if c.Channels == channels {
			out = append(out, c)
		}
	}
	return out
}

// nearestBufferTime snaps a requested millisecond value to the closest probed
// one, preferring the smaller on ties.
func nearestBufferTime(timesMS []int, wantMS int) int {
	if len(timesMS) == 0 {
		return wantMS
	}
	best := timesMS[0]
	for _, t := range timesMS[1:] {
		db, dt := abs(best-wantMS), abs(t-wantMS)
		if dt < db {
			best = t
		}
	}
	return best
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
