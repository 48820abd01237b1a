//go:build !linux

package alsa

import "fmt"

type stubNegotiator struct{}

func newPlatformNegotiator() Negotiator {
	return stubNegotiator{}
}

func (stubNegotiator) Hints() ([]Hint, error) {
	return nil, fmt.Errorf("ALSA negotiation is not supported on this platform")
}

func (stubNegotiator) Info(string, Direction) (Info, error) {
	return Info{}, fmt.Errorf("ALSA negotiation is not supported on this platform")
}

func (stubNegotiator) Bounds(string, Direction, ParamKind, Candidate) (int, int, error) {
	return 0, 0, fmt.Errorf("ALSA negotiation is not supported on this platform")
}

func (stubNegotiator) Test(string, Direction, Candidate) bool { return false }

func (stubNegotiator) Commit(string, Direction, Candidate) bool { return false }
