//go:build linux

package alsa

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"unsafe"
)

// maxCards bounds the /dev/snd/controlC* scan. Card numbers can be sparse
// after hot-unplug, so missing entries are skipped rather than terminal.
const maxCards = 32

const (
	streamPlayback = 0
	streamCapture  = 1
)

type negotiator struct {
	mu    sync.Mutex
	cards map[string]int // card ID -> card number
}

func newPlatformNegotiator() Negotiator {
	return &negotiator{cards: make(map[string]int)}
}

// kernelFormat maps a Format to the kernel's SNDRV_PCM_FORMAT_* value.
func kernelFormat(f Format) uint32 {
	switch f {
	case FormatU8:
		return 1
	case FormatS16LE:
		return 2
	case FormatS16BE:
		return 3
	case FormatS24LE:
		return 6
	case FormatS24BE:
		return 7
	case FormatS32LE:
		return 10
	case FormatS32BE:
		return 11
	case FormatS243LE:
		return 32
	case FormatS243BE:
		return 33
	default:
		return 0
	}
}

// Hints enumerates every PCM device on every card, both directions.
// Enumeration failures degrade to an empty (or partial) result.
func (n *negotiator) Hints() ([]Hint, error) {
	var hints []Hint

	n.mu.Lock()
	defer n.mu.Unlock()

	for cardNum := 0; cardNum < maxCards; cardNum++ {
		ctlFd, err := syscall.Open(fmt.Sprintf("/dev/snd/controlC%d", cardNum), syscall.O_RDONLY, 0)
		if err != nil {
			continue
		}

		cardInfo := sndCtlCardInfo{}
		if err := ioctl(uintptr(ctlFd), sndrvCtlIoctlCardInfo, unsafe.Pointer(&cardInfo)); err != nil {
			syscall.Close(ctlFd)
			continue
		}

		cardID := cstr(cardInfo.id[:])
		n.cards[cardID] = cardNum

		deviceNum := int32(-1)
		for {
			if err := ioctl(uintptr(ctlFd), sndrvCtlIoctlPCMNextDevice, unsafe.Pointer(&deviceNum)); err != nil || deviceNum < 0 {
				break
			}

			for _, stream := range []int32{streamPlayback, streamCapture} {
				pcmInfo := sndPCMInfo{
					device: uint32(deviceNum),
					stream: stream,
				}
				if err := ioctl(uintptr(ctlFd), sndrvCtlIoctlPCMInfo, unsafe.Pointer(&pcmInfo)); err != nil {
					continue // stream not supported by this device
				}

				dir := Playback
				if stream == streamCapture {
					dir = Capture
				}

				hints = append(hints, Hint{
					Name:        fmt.Sprintf("hw:CARD=%s,DEV=%d", cardID, deviceNum),
					Description: cstr(cardInfo.longname[:]) + ", " + cstr(pcmInfo.name[:]),
					Direction:   dir,
				})
			}
		}

		syscall.Close(ctlFd)
	}

	return hints, nil
}

// Info opens the endpoint once and reads its identity from the kernel.
func (n *negotiator) Info(name string, dir Direction) (Info, error) {
	fd, err := n.openPCM(name, dir)
	if err != nil {
		return Info{}, err
	}
	defer syscall.Close(fd)

	pcmInfo := sndPCMInfo{}
	if err := ioctl(uintptr(fd), sndrvPCMIoctlInfo, unsafe.Pointer(&pcmInfo)); err != nil {
		return Info{}, fmt.Errorf("pcm info %s: %w", name, err)
	}

	return Info{
		Description:     cstr(pcmInfo.name[:]),
		CardNumber:      int(pcmInfo.card),
		DeviceNumber:    int(pcmInfo.device),
		SubDeviceNumber: int(pcmInfo.subdevice),
		SubDeviceCount:  int(pcmInfo.subdevicesCount),
	}, nil
}

// Bounds refines a fresh parameter space with the base candidate applied and
// reports the resulting min/max for the requested parameter.
func (n *negotiator) Bounds(name string, dir Direction, kind ParamKind, base Candidate) (int, int, error) {
	fd, err := n.openPCM(name, dir)
	if err != nil {
		return 0, 0, err
	}
	defer syscall.Close(fd)

	params := sndPCMHwParams{}
	params.init()
	applyCandidate(&params, base)

	if err := ioctl(uintptr(fd), sndrvPCMIoctlHwRefine, unsafe.Pointer(&params)); err != nil {
		return 0, 0, fmt.Errorf("hw refine %s: %w", name, err)
	}

	var param uint32
	switch kind {
	case ParamRate:
		param = sndrvPCMHwParamRate
	case ParamChannels:
		param = sndrvPCMHwParamChannels
	case ParamBufferTime:
		param = sndrvPCMHwParamBufferTime
	default:
		return 0, 0, fmt.Errorf("unknown parameter kind %d", kind)
	}

	lo, hi := params.getInterval(param)
	return int(lo), int(hi), nil
}

// Test refines a fresh parameter space against the candidate without
// applying it. Rejection and read-back disagreement both report false.
func (n *negotiator) Test(name string, dir Direction, c Candidate) bool {
	fd, err := n.openPCM(name, dir)
	if err != nil {
		return false
	}
	defer syscall.Close(fd)

	params := sndPCMHwParams{}
	params.init()
	applyCandidate(&params, c)

	if err := ioctl(uintptr(fd), sndrvPCMIoctlHwRefine, unsafe.Pointer(&params)); err != nil {
		return false
	}
	return verifyCandidate(&params, c)
}

// Commit refines and then fully applies the candidate to the device.
func (n *negotiator) Commit(name string, dir Direction, c Candidate) bool {
	fd, err := n.openPCM(name, dir)
	if err != nil {
		return false
	}
	defer syscall.Close(fd)

	params := sndPCMHwParams{}
	params.init()
	applyCandidate(&params, c)

	if err := ioctl(uintptr(fd), sndrvPCMIoctlHwRefine, unsafe.Pointer(&params)); err != nil {
		return false
	}
	if !verifyCandidate(&params, c) {
		return false
	}
	if err := ioctl(uintptr(fd), sndrvPCMIoctlHwParams, unsafe.Pointer(&params)); err != nil {
		return false
	}
	return verifyCandidate(&params, c)
}

func applyCandidate(p *sndPCMHwParams, c Candidate) {
	p.setMask(sndrvPCMHwParamAccess, sndrvPCMAccessRwInterleaved)
	if c.Format != FormatNone {
		p.setMask(sndrvPCMHwParamFormat, kernelFormat(c.Format))
	}
	if c.Rate > 0 {
		p.setInterval(sndrvPCMHwParamRate, uint32(c.Rate))
	}
	if c.Channels > 0 {
		p.setInterval(sndrvPCMHwParamChannels, uint32(c.Channels))
	}
	if c.BufferTimeUS > 0 {
		p.setInterval(sndrvPCMHwParamBufferTime, uint32(c.BufferTimeUS))
	}
	if c.PeriodTimeUS > 0 {
		p.setInterval(sndrvPCMHwParamPeriodTime, uint32(c.PeriodTimeUS))
	}
}

func verifyCandidate(p *sndPCMHwParams, c Candidate) bool {
	if c.Format != FormatNone && !p.checkMask(sndrvPCMHwParamFormat, kernelFormat(c.Format)) {
		return false
	}
	if c.Rate > 0 && !p.intervalIs(sndrvPCMHwParamRate, uint32(c.Rate)) {
		return false
	}
	if c.Channels > 0 && !p.intervalIs(sndrvPCMHwParamChannels, uint32(c.Channels)) {
		return false
	}
	if c.BufferTimeUS > 0 && !p.intervalIs(sndrvPCMHwParamBufferTime, uint32(c.BufferTimeUS)) {
		return false
	}
	if c.PeriodTimeUS > 0 && !p.intervalIs(sndrvPCMHwParamPeriodTime, uint32(c.PeriodTimeUS)) {
		return false
	}
	return true
}

// openPCM opens the raw PCM node for one negotiation session. Every caller
// closes the descriptor before returning; sessions are never reused.
func (n *negotiator) openPCM(name string, dir Direction) (int, error) {
	card, device, err := n.resolve(name)
	if err != nil {
		return 0, err
	}

	suffix := byte('p')
	if dir == Capture {
		suffix = 'c'
	}
	path := fmt.Sprintf("/dev/snd/pcmC%dD%d%c", card, device, suffix)

	fd, err := syscall.Open(path, syscall.O_RDWR|syscall.O_NONBLOCK, 0)
	if err != nil {
		return 0, fmt.Errorf("open %s: %w", path, err)
	}
	syscall.SetNonblock(fd, false)
	return fd, nil
}

// resolve parses an alsa-lib style device name ("hw:CARD=Intel,DEV=0",
// "hw:0,0", "hdmi:CARD=HDMI") down to kernel card and device numbers.
func (n *negotiator) resolve(name string) (card, device int, err error) {
	spec := name
	if i := strings.IndexByte(name, ':'); i >= 0 {
		spec = name[i+1:]
	}

	cardTok := ""
	for i, tok := range strings.Split(spec, ",") {
		tok = strings.TrimSpace(tok)
		switch {
		case strings.HasPrefix(tok, "CARD="):
			cardTok = strings.TrimPrefix(tok, "CARD=")
		case strings.HasPrefix(tok, "DEV="):
			device, err = strconv.Atoi(strings.TrimPrefix(tok, "DEV="))
			if err != nil {
				return 0, 0, fmt.Errorf("bad device in %q: %w", name, err)
			}
		case i == 0:
			cardTok = tok
		case i == 1:
			device, err = strconv.Atoi(tok)
			if err != nil {
				return 0, 0, fmt.Errorf("bad device in %q: %w", name, err)
			}
		}
	}

	if cardTok == "" {
		return 0, 0, fmt.Errorf("no card in device name %q", name)
	}
	if num, aerr := strconv.Atoi(cardTok); aerr == nil {
		return num, device, nil
	}

	n.mu.Lock()
	num, ok := n.cards[cardTok]
	n.mu.Unlock()
	if !ok {
		// Cache miss: a caller may resolve by ID without a prior Hints scan.
		if _, herr := n.Hints(); herr != nil {
			return 0, 0, herr
		}
		n.mu.Lock()
		num, ok = n.cards[cardTok]
		n.mu.Unlock()
		if !ok {
			return 0, 0, fmt.Errorf("unknown card %q", cardTok)
		}
	}
	return num, device, nil
}
