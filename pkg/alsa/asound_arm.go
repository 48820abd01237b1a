//go:build linux && arm && !arm64

package alsa

import "unsafe"

// Compile-time struct size assertions for 32-bit ARM. snd_pcm_uframes_t is
// 32 bits wide here, which shrinks the hw_params struct and changes the
// size-encoded ioctl numbers.
var (
	_ [376]byte = [unsafe.Sizeof(sndCtlCardInfo{})]byte{}
	_ [288]byte = [unsafe.Sizeof(sndPCMInfo{})]byte{}
	_ [32]byte  = [unsafe.Sizeof(sndMask{})]byte{}
	_ [12]byte  = [unsafe.Sizeof(sndInterval{})]byte{}
	_ [604]byte = [unsafe.Sizeof(sndPCMHwParams{})]byte{}
)

// IOCTL constants for 32-bit ARM.
const (
	// Control interface IOCTLs (no pointer-sized fields, same as 64-bit).
	sndrvCtlIoctlCardInfo      = 0x81785501
	sndrvCtlIoctlPCMNextDevice = 0x80045530
	sndrvCtlIoctlPCMInfo       = 0xc1205531

	// PCM IOCTLs (hw_params is 604 bytes on 32-bit vs 608 on 64-bit).
	sndrvPCMIoctlInfo     = 0x81204101
	sndrvPCMIoctlHwRefine = 0xc25c4110
	sndrvPCMIoctlHwParams = 0xc25c4111
)

// Hardware parameter indexes and masks (identical across architectures).
const (
	sndrvPCMHwParamAccess        = 0
	sndrvPCMHwParamFormat        = 1
	sndrvPCMHwParamFirstMask     = 0
	sndrvPCMHwParamLastMask      = 2
	sndrvPCMHwParamChannels      = 10
	sndrvPCMHwParamRate          = 11
	sndrvPCMHwParamPeriodTime    = 12
	sndrvPCMHwParamBufferTime    = 16
	sndrvPCMHwParamFirstInterval = 8
	sndrvPCMHwParamLastInterval  = 19

	sndrvMaskMax = 256

	sndrvPCMAccessRwInterleaved = 3

	// snd_interval flag bits.
	intervalOpenMin = 0x1
	intervalOpenMax = 0x2
	intervalInteger = 0x4
	intervalEmpty   = 0x8
)

// sndCtlCardInfo has size 376 bytes.
type sndCtlCardInfo struct {
	card       int32
	_          [4]byte
	id         [16]byte
	driver     [16]byte
	name       [32]byte
	longname   [80]byte
	reserved   [16]byte
	mixername  [80]byte
	components [128]byte
}

// sndPCMInfo has size 288 bytes.
type sndPCMInfo struct {
	device          uint32
	subdevice       uint32
	stream          int32
	card            int32
	id              [64]byte
	name            [80]byte
	subname         [32]byte
	devClass        int32
	devSubclass     int32
	subdevicesCount uint32
	subdevicesAvail uint32
	_               [16]byte
	reserved        [64]byte
}

// sndMask has size 32 bytes.
type sndMask struct {
	bits [(sndrvMaskMax + 31) / 32]uint32
}

// sndInterval has size 12 bytes.
type sndInterval struct {
	minVal uint32
	maxVal uint32
	flags  uint32
}

// sndPCMHwParams has size 604 bytes.
type sndPCMHwParams struct {
	flags     uint32
	masks     [sndrvPCMHwParamLastMask - sndrvPCMHwParamFirstMask + 1]sndMask
	mres      [5]sndMask
	intervals [sndrvPCMHwParamLastInterval - sndrvPCMHwParamFirstInterval + 1]sndInterval
	ires      [9]sndInterval
	rmask     uint32
	cmask     uint32
	info      uint32
	msbits    uint32
	rateNum   uint32
	rateDen   uint32
	fifoSize  uint32 // snd_pcm_uframes_t is 32 bits here
	reserved  [64]byte
}
