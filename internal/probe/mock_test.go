package probe

import (
	"fmt"
	"sync"
	"time"

	"github.com/JasonLG1979/asound-conf-wizard/pkg/alsa"
)

// mockDevice scripts what one endpoint accepts. Nil predicate fields accept
// everything, zero bounds make the Bounds query fail.
type mockDevice struct {
	info    alsa.Info
	formats []alsa.Format

	rateLo, rateHi int
	rateOK         func(int) bool

	chanLo, chanHi int
	chanOK         func(int) bool

	bufLoUS, bufHiUS int
	bufOK            func(us int) bool

	// commitOK vetoes the full-application step on top of the Test checks.
	commitOK func(alsa.Candidate) bool
}

// mockBackend is a scripted Negotiator that also polices the per-card
// serialization guarantee: any two overlapping trials for the same card key
// are recorded as a violation.
type mockBackend struct {
	hints     []alsa.Hint
	hintsErr  error
	devices   map[string]*mockDevice
	delay     time.Duration // held inside each trial to widen overlap windows
	recordBuf bool

	mu         sync.Mutex
	active     map[string]bool
	overlapped bool
	trials     int
	bufTrials  []alsa.Candidate
}

func newMockBackend() *mockBackend {
	return &mockBackend{
		devices: make(map[string]*mockDevice),
		active:  make(map[string]bool),
	}
}

func deviceKey(name string, dir alsa.Direction) string {
	return name + "/" + dir.String()
}

func (m *mockBackend) addDevice(name string, dir alsa.Direction, d *mockDevice) {
	m.hints = append(m.hints, alsa.Hint{Name: name, Description: d.info.Description, Direction: dir})
	m.devices[deviceKey(name, dir)] = d
}

// enter marks the device's card busy for the duration of one trial.
func (m *mockBackend) enter(name string) func() {
	key := CardKey(name)
	m.mu.Lock()
	if m.active[key] {
		m.overlapped = true
	}
	m.active[key] = true
	m.trials++
	m.mu.Unlock()

	if m.delay > 0 {
		time.Sleep(m.delay)
	}
	return func() {
		m.mu.Lock()
		m.active[key] = false
		m.mu.Unlock()
	}
}

func (m *mockBackend) device(name string, dir alsa.Direction) (*mockDevice, error) {
	d, ok := m.devices[deviceKey(name, dir)]
	if !ok {
		return nil, fmt.Errorf("no such device %s", name)
	}
	return d, nil
}

func (m *mockBackend) Hints() ([]alsa.Hint, error) {
	return m.hints, m.hintsErr
}

func (m *mockBackend) Info(name string, dir alsa.Direction) (alsa.Info, error) {
	defer m.enter(name)()
	d, err := m.device(name, dir)
	if err != nil {
		return alsa.Info{}, err
	}
	return d.info, nil
}

func (m *mockBackend) Bounds(name string, dir alsa.Direction, kind alsa.ParamKind, _ alsa.Candidate) (int, int, error) {
	defer m.enter(name)()
	d, err := m.device(name, dir)
	if err != nil {
		return 0, 0, err
	}

	var lo, hi int
	switch kind {
	case alsa.ParamRate:
		lo, hi = d.rateLo, d.rateHi
	case alsa.ParamChannels:
		lo, hi = d.chanLo, d.chanHi
	case alsa.ParamBufferTime:
		lo, hi = d.bufLoUS, d.bufHiUS
	}
	if lo == 0 && hi == 0 {
		return 0, 0, fmt.Errorf("bounds query refused for %s", name)
	}
	return lo, hi, nil
}

func (m *mockBackend) Test(name string, dir alsa.Direction, c alsa.Candidate) bool {
	defer m.enter(name)()
	d, err := m.device(name, dir)
	if err != nil {
		return false
	}
	return d.accepts(c)
}

func (m *mockBackend) Commit(name string, dir alsa.Direction, c alsa.Candidate) bool {
	defer m.enter(name)()
	d, err := m.device(name, dir)
	if err != nil {
		return false
	}
	if m.recordBuf && c.BufferTimeUS > 0 {
		m.mu.Lock()
		m.bufTrials = append(m.bufTrials, c)
		m.mu.Unlock()
	}
	if !d.accepts(c) {
		return false
	}
	if d.commitOK != nil {
		return d.commitOK(c)
	}
	return true
}

func (d *mockDevice) accepts(c alsa.Candidate) bool {
	if c.Format != alsa.FormatNone {
		found := false
		for _, f := range d.formats {
			if f == c.Format {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if c.Rate > 0 && d.rateOK != nil && !d.rateOK(c.Rate) {
		return false
	}
	if c.Channels > 0 && d.chanOK != nil && !d.chanOK(c.Channels) {
		return false
	}
	if c.BufferTimeUS > 0 && d.bufOK != nil && !d.bufOK(c.BufferTimeUS) {
		return false
	}
	return true
}

func (m *mockBackend) sawOverlap() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.overlapped
}

// oneOf builds a membership predicate for scripted accepted values.
func oneOf(values ...int) func(int) bool {
	set := make(map[int]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return func(v int) bool { return set[v] }
}

// stereoCard scripts a well-behaved fixed-function device: S16 host-order,
// 44100/48000 Hz, stereo only.
func stereoCard() *mockDevice {
	formats := alsa.CandidateFormats()
	return &mockDevice{
		info:    alsa.Info{Description: "Mock Stereo", DeviceNumber: 0, SubDeviceNumber: 0, SubDeviceCount: 1},
		formats: []alsa.Format{formats[1]}, // S16 in host endianness
		rateLo:  44100, rateHi: 48000,
		rateOK: oneOf(44100, 48000),
		chanLo: 2, chanHi: 2,
		chanOK:  oneOf(2),
		bufLoUS: 1000, bufHiUS: 5000,
	}
}

// fastCard narrows the claimed rate window to a single value so tests that
// slow every trial down (overlap detection) stay quick.
func fastCard() *mockDevice {
	d := stereoCard()
	d.rateLo, d.rateHi = 48000, 48000
	d.rateOK = oneOf(48000)
	return d
}

// testPolicy keeps linear scans short enough for unit tests.
func testPolicy() Policy {
	p := DefaultPolicy()
	p.ScanCeiling = 10
	p.FallbackRates = []int{44100, 48000, 96000}
	p.FallbackChannels = []int{1, 2, 4}
	return p
}
