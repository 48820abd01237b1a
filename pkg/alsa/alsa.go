// Package alsa provides pure Go bindings to the ALSA (Advanced Linux Sound
// Architecture) kernel API for PCM device enumeration and hardware-parameter
// negotiation.
//
// This package does not use cgo, enabling simple cross-compilation for
// different Linux architectures (amd64, arm64, arm).
//
// # Negotiation model
//
// ALSA hardware-parameter spaces are single-use: once a requested constraint
// is rejected the space is permanently invalid. Every Test, Commit and Bounds
// call therefore opens a fresh PCM node and a fresh parameter space, and
// closes both before returning. Callers never hold or reuse a session.
//
//	neg := alsa.New()
//	hints, _ := neg.Hints()
//	for _, h := range hints {
//	    ok := neg.Test(h.Name, h.Direction, alsa.Candidate{Format: alsa.FormatS16LE, Rate: 48000})
//	    ...
//	}
package alsa
