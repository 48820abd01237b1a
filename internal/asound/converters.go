package asound

import (
	"path/filepath"
	"strings"
)

// convertersGlob matches the sample-rate converter plugins alsa-lib loads at
// runtime; each match can be named in defaults.pcm.rate_converter.
const convertersGlob = "/usr/lib/*/alsa-lib/libasound_module_rate_*"

const converterPrefix = "libasound_module_rate_"

// RateConverters lists the installed alsa-lib sample-rate converter names.
// An empty result means only the built-in converter is available.
func RateConverters() []string {
	matches, err := filepath.Glob(convertersGlob)
	if err != nil {
		return nil
	}

	converters := make([]string, 0, len(matches))
	for _, path := range matches {
		if name := converterName(path); name != "" {
			converters = append(converters, name)
		}
	}
	return converters
}

// converterName extracts the converter name from a plugin path:
// "/usr/lib/x86_64-linux-gnu/alsa-lib/libasound_module_rate_samplerate.so"
// names the "samplerate" converter.
func converterName(path string) string {
	base := filepath.Base(path)
	if !strings.HasPrefix(base, converterPrefix) {
		return ""
	}
	name := strings.TrimPrefix(base, converterPrefix)
	if i := strings.Index(name, ".so"); i >= 0 {
		name = name[:i]
	}
	return strings.TrimSpace(name)
}
