//go:build linux

package alsa

// init opens the full configuration space: every mask bit set, every
// interval unbounded, all parameters marked for refinement.
func (p *sndPCMHwParams) init() {
	for i := range p.masks {
		p.masks[i].bits[0] = 0xFFFFFFFF
		p.masks[i].bits[1] = 0xFFFFFFFF
	}
	for i := range p.intervals {
		p.intervals[i].maxVal = 0xFFFFFFFF
	}
	p.rmask = 0xFFFFFFFF
	p.cmask = 0
	p.info = 0xFFFFFFFF
}

func (p *sndPCMHwParams) setMask(param, val uint32) {
	p.masks[param].bits = [8]uint32{}
	p.masks[param].bits[val>>5] = 1 << (val & 0x1F)
}

func (p *sndPCMHwParams) checkMask(param, val uint32) bool {
	return p.masks[param].bits[val>>5]&(1<<(val&0x1F)) > 0
}

// setInterval pins an interval parameter to a single integer value.
func (p *sndPCMHwParams) setInterval(param, val uint32) {
	iv := &p.intervals[param-sndrvPCMHwParamFirstInterval]
	iv.minVal = val
	iv.maxVal = val
	iv.flags = intervalInteger
}

func (p *sndPCMHwParams) getInterval(param uint32) (minVal, maxVal uint32) {
	iv := &p.intervals[param-sndrvPCMHwParamFirstInterval]
	return iv.minVal, iv.maxVal
}

// intervalIs reports whether an interval collapsed to exactly val after
// refinement. A device that quietly moved the value counts as a rejection.
func (p *sndPCMHwParams) intervalIs(param, val uint32) bool {
	lo, hi := p.getInterval(param)
	return lo == val && hi == val
}
