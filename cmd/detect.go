package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/JasonLG1979/asound-conf-wizard/internal/events"
	"github.com/JasonLG1979/asound-conf-wizard/internal/logging"
	"github.com/JasonLG1979/asound-conf-wizard/internal/probe"
	"github.com/JasonLG1979/asound-conf-wizard/pkg/alsa"
)

// capabilityReport is the non-interactive discovery output.
type capabilityReport struct {
	Playback []endpointReport `toml:"playback" json:"playback"`
	Capture  []endpointReport `toml:"capture" json:"capture"`
}

type endpointReport struct {
	Name         string   `toml:"name" json:"name"`
	Description  string   `toml:"description" json:"description"`
	Card         string   `toml:"card" json:"card"`
	Device       int      `toml:"device" json:"device"`
	Subdevice    int      `toml:"subdevice" json:"subdevice"`
	RealHardware bool     `toml:"real_hardware" json:"real_hardware"`
	Formats      []string `toml:"formats" json:"formats"`
	Rates        []int    `toml:"rates" json:"rates"`
	Channels     []int    `toml:"channels" json:"channels"`

	Configurations []configReport `toml:"configurations" json:"configurations"`
}

type configReport struct {
	Format       string `toml:"format" json:"format"`
	Rate         int    `toml:"rate" json:"rate"`
	Channels     int    `toml:"channels" json:"channels"`
	BufferTimeMS int    `toml:"buffer_time_ms" json:"buffer_time_ms"`
}

func newEndpointReport(ep probe.Endpoint) endpointReport {
	r := endpointReport{
		Name:         ep.Name,
		Description:  ep.Description,
		Card:         ep.CardKey,
		Device:       ep.DeviceNumber,
		Subdevice:    ep.SubDeviceNumber,
		RealHardware: ep.RealHardware,
		Rates:        ep.Rates,
		Channels:     ep.Channels,
	}
	for _, f := range ep.Formats {
		r.Formats = append(r.Formats, f.String())
	}
	for _, c := range ep.ValidConfigurations {
		r.Configurations = append(r.Configurations, configReport{
			Format:       c.Format.String(),
			Rate:         c.Rate,
			Channels:     c.Channels,
			BufferTimeMS: c.BufferTimeMS,
		})
	}
	return r
}

// newDetectCmd builds the non-interactive discovery subcommand.
func newDetectCmd(opts *Options) *cobra.Command {
	var outputFile string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "detect",
		Short: "Probe hardware and report verified capabilities",
		Long: `Runs the full discovery pass without any prompts and reports every
endpoint's verified formats, rates, channel counts and configurations as TOML
(or JSON) on stdout or to a file.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			policy := setup(cmd, opts)
			logger := logging.GetLogger("probe")

			bus := events.New()
			defer bus.Subscribe(func(e events.EndpointIgnoredEvent) {
				logger.Warn("endpoint ignored", "name", e.Name, "reason", e.Reason)
			})()
			defer bus.Subscribe(func(e events.EndpointDemotedEvent) {
				logger.Warn("endpoint converts internally", "name", e.Name, "param", e.Param)
			})()

			engine := probe.NewEngine(alsa.New(), policy, bus, logger)
			playback, capture := engine.Discover()

			report := capabilityReport{}
			for _, ep := range playback {
				report.Playback = append(report.Playback, newEndpointReport(ep))
			}
			for _, ep := range capture {
				report.Capture = append(report.Capture, newEndpointReport(ep))
			}

			var data []byte
			var err error
			if asJSON {
				data, err = json.MarshalIndent(report, "", "  ")
			} else {
				data, err = toml.Marshal(report)
			}
			if err != nil {
				return fmt.Errorf("encoding report: %w", err)
			}

			if outputFile == "" {
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			}
			if err := os.WriteFile(outputFile, data, 0o644); err != nil {
				return fmt.Errorf("writing report: %w", err)
			}
			logger.Info("capability report written", "path", outputFile)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Write the report to a file instead of stdout")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Encode the report as JSON instead of TOML")
	return cmd
}
