package asound

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// conflictingSoftware maps binaries that own the audio stack when installed.
// This utility is for systems that run bare ALSA; a sound server would
// immediately fight over the devices and the generated dmix/dsnoop setup.
var conflictingSoftware = [][2]string{
	{"pulseaudio", "PulseAudio"},
	{"pipewire", "PipeWire"},
	{"jackd", "JACK Audio"},
}

// CheckWritable verifies write access to the configuration directory by
// creating and removing a dummy file. Probing the directory beats parsing
// uid/mode bits; it is the least brittle answer to "can we write here".
func CheckWritable(path string) error {
	dir := filepath.Dir(path)
	f, err := os.CreateTemp(dir, ".asound-conf-wizard-*")
	if err != nil {
		return fmt.Errorf("this utility requires write privileges to %s: %w", dir, err)
	}
	name := f.Name()
	f.Close()
	os.Remove(name)
	return nil
}

// CheckConflicts refuses to proceed when a sound server is installed.
func CheckConflicts() error {
	var conflicts []string
	for _, entry := range conflictingSoftware {
		if _, err := exec.LookPath(entry[0]); err == nil {
			conflicts = append(conflicts, entry[1])
		}
	}
	if len(conflicts) > 0 {
		return fmt.Errorf("this utility is not compatible with %s: it is intended for systems that run bare ALSA",
			strings.Join(conflicts, " / "))
	}
	return nil
}
