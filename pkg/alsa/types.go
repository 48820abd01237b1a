package alsa

import "encoding/binary"

// Direction selects the playback or capture stream of a PCM device.
type Direction int

// Stream directions.
const (
	Playback Direction = iota
	Capture
)

// String returns the direction name.
func (d Direction) String() string {
	if d == Capture {
		return "Capture"
	}
	return "Playback"
}

// Format identifies a PCM sample format. The zero value means "unconstrained"
// so that a zero Candidate leaves the format free.
type Format int

// Sample formats understood by the negotiator. The set covers everything
// dmix/dsnoop can mix plus both endiannesses.
const (
	FormatNone Format = iota
	FormatU8
	FormatS16LE
	FormatS16BE
	FormatS243LE
	FormatS243BE
	FormatS24LE
	FormatS24BE
	FormatS32LE
	FormatS32BE
)

// String returns the ALSA configuration-file name of the format.
func (f Format) String() string {
	switch f {
	case FormatU8:
		return "U8"
	case FormatS16LE:
		return "S16_LE"
	case FormatS16BE:
		return "S16_BE"
	case FormatS243LE:
		return "S24_3LE"
	case FormatS243BE:
		return "S24_3BE"
	case FormatS24LE:
		return "S24_LE"
	case FormatS24BE:
		return "S24_BE"
	case FormatS32LE:
		return "S32_LE"
	case FormatS32BE:
		return "S32_BE"
	default:
		return "NONE"
	}
}

var hostBigEndian = binary.NativeEndian.Uint16([]byte{0x01, 0x00}) == 0x0100

// CandidateFormats returns the probe-worthy formats in host byte order,
// narrowest first. U8 has no byte order and is always included.
func CandidateFormats() []Format {
	if hostBigEndian {
		return []Format{FormatU8, FormatS16BE, FormatS243BE, FormatS24BE, FormatS32BE}
	}
	return []Format{FormatU8, FormatS16LE, FormatS243LE, FormatS24LE, FormatS32LE}
}

// ParamKind names a negotiable hardware parameter for bounds queries.
type ParamKind int

// Bounds-queryable parameters.
const (
	ParamRate ParamKind = iota
	ParamChannels
	ParamBufferTime
)

// Hint describes one discovered PCM endpoint, one direction.
type Hint struct {
	Name        string
	Description string
	Direction   Direction
}

// Info carries the identity of an opened PCM endpoint.
type Info struct {
	Description     string
	CardNumber      int
	DeviceNumber    int
	SubDeviceNumber int
	// SubDeviceCount is the number of hardware subdevices behind the PCM.
	// More than one means the hardware can mix streams itself.
	SubDeviceCount int
}

// Candidate is one combination of hardware parameters to negotiate. Zero
// fields are left unconstrained. Times are in microseconds.
type Candidate struct {
	Format       Format
	Rate         int
	Channels     int
	BufferTimeUS int
	PeriodTimeUS int
}

// Negotiator is the hardware negotiation surface. Every call is a complete,
// self-contained session: implementations open the device fresh and discard
// all state before returning, so a failed call never poisons a later one.
//
// Test and Commit report rejection as false, never as an error; a parameter
// the device quietly changes on read-back counts as rejected.
type Negotiator interface {
	// Hints lists candidate PCM endpoints, both directions.
	Hints() ([]Hint, error)

	// Info resolves the identity of the named endpoint.
	Info(name string, dir Direction) (Info, error)

	// Bounds reports the device's min/max for one parameter with the base
	// candidate's constraints already applied.
	Bounds(name string, dir Direction, kind ParamKind, base Candidate) (min, max int, err error)

	// Test asks whether the candidate survives constraint refinement.
	Test(name string, dir Direction, c Candidate) bool

	// Commit refines the candidate and fully applies it to the device.
	Commit(name string, dir Direction, c Candidate) bool
}

// New returns the negotiator for the current platform.
func New() Negotiator {
	return newPlatformNegotiator()
}
