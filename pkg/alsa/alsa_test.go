package alsa

import (
	"strings"
	"testing"
)

func TestFormatString(t *testing.T) {
	tests := []struct {
		name     string
		format   Format
		expected string
	}{
		{name: "none", format: FormatNone, expected: "NONE"},
		{name: "U8", format: FormatU8, expected: "U8"},
		{name: "S16_LE", format: FormatS16LE, expected: "S16_LE"},
		{name: "S16_BE", format: FormatS16BE, expected: "S16_BE"},
		{name: "S24_3LE", format: FormatS243LE, expected: "S24_3LE"},
		{name: "S24_3BE", format: FormatS243BE, expected: "S24_3BE"},
		{name: "S24_LE", format: FormatS24LE, expected: "S24_LE"},
		{name: "S24_BE", format: FormatS24BE, expected: "S24_BE"},
		{name: "S32_LE", format: FormatS32LE, expected: "S32_LE"},
		{name: "S32_BE", format: FormatS32BE, expected: "S32_BE"},
		{name: "unknown", format: Format(99), expected: "NONE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.format.String(); got != tt.expected {
				t.Errorf("Format(%d).String() = %q, want %q", tt.format, got, tt.expected)
			}
		})
	}
}

func TestCandidateFormatsMatchHostEndianness(t *testing.T) {
	formats := CandidateFormats()

	if len(formats) != 5 {
		t.Fatalf("expected 5 candidate formats, got %d", len(formats))
	}
	if formats[0] != FormatU8 {
		t.Errorf("expected U8 first, got %s", formats[0])
	}

	wantSuffix := "_LE"
	if hostBigEndian {
		wantSuffix = "_BE"
	}
	for _, f := range formats[1:] {
		if !strings.HasSuffix(f.String(), wantSuffix) {
			t.Errorf("format %s does not match host byte order (%s)", f, wantSuffix)
		}
	}
}

func TestDirectionString(t *testing.T) {
	if Playback.String() != "Playback" {
		t.Errorf("Playback.String() = %q", Playback.String())
	}
	if Capture.String() != "Capture" {
		t.Errorf("Capture.String() = %q", Capture.String())
	}
}
