package probe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JasonLG1979/asound-conf-wizard/pkg/alsa"
)

func TestProbeEndpointStereoCard(t *testing.T) {
	backend := newMockBackend()
	backend.addDevice("hw:CARD=Mock,DEV=0", alsa.Playback, stereoCard())

	prober := NewProber(backend, testPolicy(), nil, nil)
	ep := prober.ProbeEndpoint("hw:CARD=Mock,DEV=0", "Mock", alsa.Playback)

	require.NotNil(t, ep)
	assert.True(t, ep.RealHardware)
	assert.True(t, ep.SoftwareMixable)
	assert.False(t, ep.HasBuiltinMixer, "single subdevice means no builtin mixer")
	assert.Equal(t, []int{44100, 48000}, ep.Rates)
	assert.Equal(t, []int{2}, ep.Channels)
	require.Len(t, ep.Formats, 1)
}

func TestProbeEndpointMultiSubdeviceHasBuiltinMixer(t *testing.T) {
	dev := stereoCard()
	dev.info.SubDeviceCount = 4

	backend := newMockBackend()
	backend.addDevice("hw:CARD=Mock,DEV=0", alsa.Playback, dev)

	prober := NewProber(backend, testPolicy(), nil, nil)
	ep := prober.ProbeEndpoint("hw:CARD=Mock,DEV=0", "Mock", alsa.Playback)

	require.NotNil(t, ep)
	assert.True(t, ep.HasBuiltinMixer)
}

func TestProbeEndpointNoFormatsIsDropped(t *testing.T) {
	dev := stereoCard()
	dev.formats = nil

	backend := newMockBackend()
	backend.addDevice("hw:CARD=Mock,DEV=0", alsa.Playback, dev)

	prober := NewProber(backend, testPolicy(), nil, nil)
	assert.Nil(t, prober.ProbeEndpoint("hw:CARD=Mock,DEV=0", "Mock", alsa.Playback))
}

func TestProbeEndpointUnopenableIsDropped(t *testing.T) {
	backend := newMockBackend()
	prober := NewProber(backend, testPolicy(), nil, nil)
	assert.Nil(t, prober.ProbeEndpoint("hw:CARD=Gone,DEV=0", "Gone", alsa.Playback))
}

// A device that accepts every rate in its claimed window is doing hidden
// conversion: the scan must stop at the ceiling, demote the endpoint and
// re-probe only the curated standard rates.
func TestRateScanCeilingDemotesToFallback(t *testing.T) {
	dev := stereoCard()
	dev.rateLo, dev.rateHi = 8000, 768000
	dev.rateOK = func(int) bool { return true }

	backend := newMockBackend()
	backend.addDevice("hw:CARD=Conv,DEV=0", alsa.Playback, dev)

	policy := testPolicy()
	prober := NewProber(backend, policy, nil, nil)
	ep := prober.ProbeEndpoint("hw:CARD=Conv,DEV=0", "Conv", alsa.Playback)

	require.NotNil(t, ep)
	assert.False(t, ep.RealHardware)
	assert.Subset(t, policy.FallbackRates, ep.Rates)
	assert.LessOrEqual(t, len(ep.Rates), len(policy.FallbackRates))
	for _, r := range ep.Rates {
		assert.LessOrEqual(t, r, policy.MaxRate)
	}
}

func TestChannelScanCeilingDemotesToFallback(t *testing.T) {
	dev := stereoCard()
	dev.chanLo, dev.chanHi = 1, 255
	dev.chanOK = func(int) bool { return true }

	backend := newMockBackend()
	backend.addDevice("hw:CARD=Conv,DEV=0", alsa.Playback, dev)

	policy := testPolicy()
	prober := NewProber(backend, policy, nil, nil)
	ep := prober.ProbeEndpoint("hw:CARD=Conv,DEV=0", "Conv", alsa.Playback)

	require.NotNil(t, ep)
	assert.False(t, ep.RealHardware)
	assert.Subset(t, policy.FallbackChannels, ep.Channels)
}

// Bounds queries can fail outright; the scan then covers the policy's
// absolute window instead of erroring out.
func TestRateBoundsFailureFallsBackToAbsoluteWindow(t *testing.T) {
	dev := stereoCard()
	dev.rateLo, dev.rateHi = 0, 0 // bounds query refused
	dev.rateOK = oneOf(8000)

	backend := newMockBackend()
	backend.addDevice("hw:CARD=Mock,DEV=0", alsa.Playback, dev)

	policy := testPolicy()
	policy.MinRate = 8000
	policy.MaxRate = 8002 // keep the absolute-window scan tiny

	prober := NewProber(backend, policy, nil, nil)
	ep := prober.ProbeEndpoint("hw:CARD=Mock,DEV=0", "Mock", alsa.Playback)

	require.NotNil(t, ep)
	assert.Equal(t, []int{8000}, ep.Rates)
	assert.True(t, ep.RealHardware)
}

// Claimed bounds wider than the engine absolutes are clamped before scanning.
func TestRateBoundsClampedToPolicy(t *testing.T) {
	dev := stereoCard()
	dev.rateLo, dev.rateHi = 1, 10_000_000
	dev.rateOK = oneOf(44100, 48000)

	backend := newMockBackend()
	backend.addDevice("hw:CARD=Mock,DEV=0", alsa.Playback, dev)

	policy := testPolicy()
	policy.MinRate = 44100
	policy.MaxRate = 48000

	prober := NewProber(backend, policy, nil, nil)
	ep := prober.ProbeEndpoint("hw:CARD=Mock,DEV=0", "Mock", alsa.Playback)

	require.NotNil(t, ep)
	assert.Equal(t, []int{44100, 48000}, ep.Rates)
}

func TestPolicyNormalizeFillsZeroFields(t *testing.T) {
	p := Policy{ScanCeiling: 42}.Normalize()
	def := DefaultPolicy()

	assert.Equal(t, 42, p.ScanCeiling)
	assert.Equal(t, def.MinRate, p.MinRate)
	assert.Equal(t, def.MaxRate, p.MaxRate)
	assert.Equal(t, def.FallbackRates, p.FallbackRates)
	assert.Equal(t, def.FallbackChannels, p.FallbackChannels)
	assert.Equal(t, def.PeriodsPerBuffer, p.PeriodsPerBuffer)
	assert.Equal(t, def.MinBufferTimeUS, p.MinBufferTimeUS)
	assert.Equal(t, def.MaxBufferTimeUS, p.MaxBufferTimeUS)
}
