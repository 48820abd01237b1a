// Package asound renders and installs /etc/asound.conf from verified
// hardware configurations. It reproduces the stock dmix/dsnoop/asym layout
// from alsa-lib's own configuration files, filled in with only parameters
// the hardware was proven to accept.
package asound

import (
	"fmt"
	"os"
	"strings"
	"text/template"
	"time"

	"github.com/JasonLG1979/asound-conf-wizard/internal/probe"
	"github.com/JasonLG1979/asound-conf-wizard/pkg/alsa"
)

// DefaultPath is where ALSA looks for the system-wide configuration.
const DefaultPath = "/etc/asound.conf"

const usPerMS = 1000

// slaveTemplate is one dmix (playback) or dsnoop (capture) pcm block. The
// ipc/tstamp settings defer to alsa-lib's own defaults, mirroring
// https://github.com/alsa-project/alsa-lib/blob/master/src/conf/pcm/dmix.conf
const slaveTemplate = `pcm.{{.PCMName}} {
    type {{.PluginType}}
    ipc_key {
        @func refer
        name defaults.pcm.ipc_key
    }
    ipc_gid {
        @func refer
        name defaults.pcm.ipc_gid
    }
    ipc_perm {
        @func refer
        name defaults.pcm.ipc_perm
    }
    tstamp_type {
        @func refer
        name defaults.pcm.tstamp_type
    }
    slave {
        pcm {
            type hw
            card {{.Card}}
            device {{.Device}}
            subdevice {{.SubDevice}}
        }
        channels {{.Channels}}
        rate {{.Rate}}
        format {{.Format}}
        period_size 0
        buffer_size 0
        periods 0
        buffer_time {{.BufferTimeUS}}
        period_time {{.PeriodTimeUS}}
    }
}`

// asymTemplate routes default playback and capture through the plug wrappers,
// per https://github.com/alsa-project/alsa-lib/blob/master/src/pcm/pcm_asym.c
const asymTemplate = `pcm.!default {
    type asym
    capture.pcm {
        type plug
        slave.pcm {{.InputPCM}}
    }
    playback.pcm {
        type plug
        slave.pcm {{.OutputPCM}}
    }
}`

const controlTemplate = `ctl.!default {
    type hw
    card {{.Card}}
}`

var (
	slaveTmpl   = template.Must(template.New("slave").Parse(slaveTemplate))
	asymTmpl    = template.Must(template.New("asym").Parse(asymTemplate))
	controlTmpl = template.Must(template.New("control").Parse(controlTemplate))
)

type slaveParams struct {
	PCMName      string
	PluginType   string
	Card         string
	Device       int
	SubDevice    int
	Channels     int
	Rate         int
	Format       string
	BufferTimeUS int
	PeriodTimeUS int
}

func newSlaveParams(c *probe.ValidConfiguration, periodsPerBuffer int) slaveParams {
	p := slaveParams{
		PCMName:    "playback",
		PluginType: "dmix",
		Card:       c.CardKey,
		Device:     c.DeviceNumber,
		SubDevice:  c.SubDeviceNumber,
		Channels:   c.Channels,
		Rate:       c.Rate,
		Format:     c.Format.String(),
	}
	if c.Direction == alsa.Capture {
		p.PCMName = "capture"
		p.PluginType = "dsnoop"
	}
	p.BufferTimeUS = c.BufferTimeMS * usPerMS
	p.PeriodTimeUS = p.BufferTimeUS / periodsPerBuffer
	return p
}

// Build renders the full asound.conf text. Either configuration may be nil;
// the corresponding default direction then routes to the null device.
func Build(playback, capture *probe.ValidConfiguration, rateConverter string, periodsPerBuffer int) string {
	var blocks []string
	inputPCM, outputPCM := `"null"`, `"null"`
	controlCard := ""

	if rateConverter != "" {
		blocks = append(blocks, fmt.Sprintf("defaults.pcm.rate_converter %s\n", rateConverter))
	}

	if playback != nil {
		outputPCM = `"playback"`
		blocks = append(blocks, render(slaveTmpl, newSlaveParams(playback, periodsPerBuffer))+"\n")
		controlCard = playback.CardKey
	}

	if capture != nil {
		inputPCM = `"capture"`
		blocks = append(blocks, render(slaveTmpl, newSlaveParams(capture, periodsPerBuffer))+"\n")
		if controlCard == "" {
			controlCard = capture.CardKey
		}
	}

	blocks = append(blocks, render(asymTmpl, struct{ InputPCM, OutputPCM string }{inputPCM, outputPCM}))

	if controlCard != "" {
		blocks = append(blocks, "\n"+render(controlTmpl, struct{ Card string }{controlCard}))
	}

	return strings.Join(blocks, "\n")
}

func render(tmpl *template.Template, data any) string {
	var sb strings.Builder
	// The templates only reference struct fields, so execution cannot fail.
	_ = tmpl.Execute(&sb, data)
	return sb.String()
}

// Backup renames an existing configuration out of the way. It returns the
// backup path, or "" when there was nothing to back up.
func Backup(path string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		return "", nil
	}
	backupPath := fmt.Sprintf("%s.bak%d", path, time.Now().Unix())
	if err := os.Rename(path, backupPath); err != nil {
		return "", fmt.Errorf("backing up %s: %w", path, err)
	}
	return backupPath, nil
}

// Install writes the rendered configuration to path.
func Install(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
