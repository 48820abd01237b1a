// Package events carries typed probe progress events from worker goroutines
// to the user-facing layers over an in-process dispatcher.
package events

// Event type constants for kelindar/event.
const (
	TypeEndpointIgnored uint32 = iota + 1
	TypeEndpointDemoted
	TypeEndpointVerified
	TypeDiscoveryDone
)

// Event interface required by kelindar/event.
type Event interface {
	Type() uint32
}

// EndpointIgnoredEvent reports an endpoint excluded from the results.
type EndpointIgnoredEvent struct {
	Name   string
	Reason string
}

// Type returns the event type identifier for EndpointIgnoredEvent.
func (e EndpointIgnoredEvent) Type() uint32 { return TypeEndpointIgnored }

// EndpointDemotedEvent reports an endpoint that blew through the enumeration
// ceiling and was demoted to not-real-hardware.
type EndpointDemotedEvent struct {
	Name string
	// Param is the scanned parameter that overflowed ("rate" or "channels").
	Param   string
	Ceiling int
}

// Type returns the event type identifier for EndpointDemotedEvent.
func (e EndpointDemotedEvent) Type() uint32 { return TypeEndpointDemoted }

// EndpointVerifiedEvent reports an endpoint that survived probing with at
// least one verified configuration.
type EndpointVerifiedEvent struct {
	Name           string
	Direction      string
	Configurations int
}

// Type returns the event type identifier for EndpointVerifiedEvent.
func (e EndpointVerifiedEvent) Type() uint32 { return TypeEndpointVerified }

// DiscoveryDoneEvent reports the end of a discovery pass.
type DiscoveryDoneEvent struct {
	Playback int
	Capture  int
}

// Type returns the event type identifier for DiscoveryDoneEvent.
func (e DiscoveryDoneEvent) Type() uint32 { return TypeDiscoveryDone }
