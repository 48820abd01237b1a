package probe

import (
	"slices"
	"strings"

	"github.com/JasonLG1979/asound-conf-wizard/pkg/alsa"
)

// Endpoint is one probed playback- or capture-direction device path together
// with its verified capabilities. The capability lists only ever contain
// values that occur in at least one ValidConfiguration.
type Endpoint struct {
	Name            string
	Description     string
	Direction       alsa.Direction
	CardKey         string
	DeviceNumber    int
	SubDeviceNumber int

	// SoftwareMixable is true when the endpoint accepts at least one
	// dmix/dsnoop-compatible sample format.
	SoftwareMixable bool
	// HasBuiltinMixer is true when the hardware exposes more than one
	// subdevice and can mix streams itself.
	HasBuiltinMixer bool
	// RealHardware is false when capability scans overflowed the ceiling,
	// which marks a device doing hidden sample or channel conversion.
	RealHardware bool

	Formats  []alsa.Format
	Rates    []int
	Channels []int

	ValidConfigurations []ValidConfiguration
}

// ValidConfiguration is one fully negotiable (format, rate, channels) triple
// bound to its endpoint's identity. Immutable once created, except for the
// caller-chosen BufferTimeMS.
type ValidConfiguration struct {
	Name            string
	Description     string
	Direction       alsa.Direction
	CardKey         string
	DeviceNumber    int
	SubDeviceNumber int
	RealHardware    bool

	Format   alsa.Format
	Rate     int
	Channels int

	// BufferTimeMS starts at the default recommendation (half the window
	// maximum, floored to the window minimum) and may be replaced by an
	// explicit caller choice.
	BufferTimeMS int

	bufferTimeMinUS int
	bufferTimeMaxUS int
}

// BufferWindowUS returns the probed buffer-time negotiation window in
// microseconds, already floored to whole milliseconds and clamped to the
// policy absolutes.
func (c *ValidConfiguration) BufferWindowUS() (minUS, maxUS int) {
	return c.bufferTimeMinUS, c.bufferTimeMaxUS
}

// RecommendedBufferTimeMS is the fallback buffer time for callers that
// decline to pick one explicitly.
func (c *ValidConfiguration) RecommendedBufferTimeMS() int {
	return max(c.bufferTimeMaxUS/2, c.bufferTimeMinUS) / usPerMS
}

// applyVerified installs the verified configurations and rebuilds the
// capability lists as their projection, in one pass over a finished set.
// No value survives that is absent from every configuration.
func (e *Endpoint) applyVerified(configs []ValidConfiguration) {
	e.ValidConfigurations = configs

	e.Formats = slices.DeleteFunc(e.Formats, func(f alsa.Format) bool {
		return !slices.ContainsFunc(configs, func(c ValidConfiguration) bool { return c.Format == f })
	})
	e.Rates = slices.DeleteFunc(e.Rates, func(r int) bool {
		return !slices.ContainsFunc(configs, func(c ValidConfiguration) bool { return c.Rate == r })
	})
	e.Channels = slices.DeleteFunc(e.Channels, func(ch int) bool {
		return !slices.ContainsFunc(configs, func(c ValidConfiguration) bool { return c.Channels == ch })
	})
}

// CardKey extracts the physical-card key from an alsa-lib device name: the
// substring between the first '=' (or the name start) and the first ','
// (or the name end), trimmed. "hw:CARD=Intel,DEV=0" keys as "Intel".
func CardKey(name string) string {
	key := name
	if i := strings.IndexByte(key, ','); i >= 0 {
		key = key[:i]
	}
	if i := strings.IndexByte(key, '='); i >= 0 {
		key = key[i+1:]
	}
	return strings.TrimSpace(key)
}

// hardwareNamespaces are the raw hardware-class name prefixes worth probing.
// Everything else (default, plug, dmix wrappers) already hides the hardware.
var hardwareNamespaces = []string{"hw:", "hdmi:", "iec958:"}

// IsHardwareName reports whether a hint name addresses raw hardware.
func IsHardwareName(name string) bool {
	for _, prefix := range hardwareNamespaces {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}
