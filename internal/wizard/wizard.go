// Package wizard drives the interactive discovery and configuration flow:
// environment checks, the probing pass, stepped selection of a verified
// configuration per direction, buffer-time choice, and writing the result.
package wizard

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/JasonLG1979/asound-conf-wizard/internal/asound"
	"github.com/JasonLG1979/asound-conf-wizard/internal/events"
	"github.com/JasonLG1979/asound-conf-wizard/internal/probe"
	"github.com/JasonLG1979/asound-conf-wizard/pkg/alsa"
)

// Options controls the wizard run.
type Options struct {
	// OutputPath is where the rendered configuration is written.
	OutputPath string
	// SkipChecks bypasses the conflict and write-permission checks.
	SkipChecks bool
}

// Wizard owns one interactive session.
type Wizard struct {
	backend alsa.Negotiator
	policy  probe.Policy
	bus     *events.Bus
	logger  *slog.Logger
	prompt  *prompter
	out     io.Writer
	opts    Options
}

// New creates a wizard reading answers from in and writing to out.
func New(backend alsa.Negotiator, policy probe.Policy, logger *slog.Logger, in io.Reader, out io.Writer, opts Options) *Wizard {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.OutputPath == "" {
		opts.OutputPath = asound.DefaultPath
	}
	return &Wizard{
		backend: backend,
		policy:  policy.Normalize(),
		bus:     events.New(),
		logger:  logger,
		prompt:  newPrompter(in, out),
		out:     out,
		opts:    opts,
	}
}

// Run executes the full interactive flow. A user declining a confirmation is
// a clean exit, not an error.
func (w *Wizard) Run() error {
	headline.Fprintln(w.out, "\nThis utility will probe your audio hardware and generate a configuration for bare ALSA systems.")
	fmt.Fprintf(w.out, "\nIt will overwrite %s (a backup is made first).\n", w.opts.OutputPath)

	ok, err := w.prompt.confirm("Continue?")
	if err != nil {
		return err
	}
	if !ok {
		headline.Fprintln(w.out, "\nNothing was changed.")
		return nil
	}

	if !w.opts.SkipChecks {
		if err := asound.CheckConflicts(); err != nil {
			return err
		}
		if err := asound.CheckWritable(w.opts.OutputPath); err != nil {
			return err
		}
	}

	playback, capture := w.discover()
	if len(playback) == 0 && len(capture) == 0 {
		failure.Fprintln(w.out, "\nNo usable audio endpoints were found.")
		return nil
	}

	playbackCfg, err := w.chooseConfiguration(playback)
	if err != nil {
		return err
	}
	captureCfg, err := w.chooseConfiguration(capture)
	if err != nil {
		return err
	}

	converter, err := w.chooseConverter()
	if err != nil {
		return err
	}

	if playbackCfg != nil {
		printConfigurationTable(w.out, playbackCfg)
	}
	if captureCfg != nil {
		printConfigurationTable(w.out, captureCfg)
	}

	ok, err = w.prompt.confirm(fmt.Sprintf("Write this configuration to %s?", w.opts.OutputPath))
	if err != nil {
		return err
	}
	if !ok {
		headline.Fprintln(w.out, "\nNothing was changed.")
		return nil
	}

	if backupPath, backupErr := asound.Backup(w.opts.OutputPath); backupErr != nil {
		return backupErr
	} else if backupPath != "" {
		headline.Fprintf(w.out, "\n%s already exists, renamed to %s\n", w.opts.OutputPath, backupPath)
	}

	conf := asound.Build(playbackCfg, captureCfg, converter, w.policy.PeriodsPerBuffer)
	if err := asound.Install(w.opts.OutputPath, conf); err != nil {
		return err
	}

	headline.Fprintf(w.out, "\n%s was written successfully.\n", w.opts.OutputPath)
	alert.Fprintf(w.out, "\nIf you experience issues you may need to manually edit %s to correct them.\n", w.opts.OutputPath)
	return nil
}

// discover runs the probing pass, echoing progress warnings as they happen.
func (w *Wizard) discover() (playback, capture []probe.Endpoint) {
	headline.Fprintln(w.out, "\nProbing hardware, this can take a while...")

	unsubIgnored := w.bus.Subscribe(func(e events.EndpointIgnoredEvent) {
		fmt.Fprintf(w.out, "\n%s %s, it will be ignored.\n", e.Name, e.Reason)
	})
	defer unsubIgnored()
	unsubDemoted := w.bus.Subscribe(func(e events.EndpointDemotedEvent) {
		alert.Fprintf(w.out, "\n%s accepts every %s value; it converts internally and only standard values will be shown.\n", e.Name, e.Param)
	})
	defer unsubDemoted()

	engine := probe.NewEngine(w.backend, w.policy, w.bus, w.logger)
	return engine.Discover()
}

// chooseConfiguration narrows one direction's endpoints down to a single
// verified configuration with a chosen buffer time. A direction with no
// endpoints yields nil.
func (w *Wizard) chooseConfiguration(endpoints []probe.Endpoint) (*probe.ValidConfiguration, error) {
	if len(endpoints) == 0 {
		return nil, nil
	}

	direction := endpoints[0].Direction
	fmt.Fprintln(w.out)
	for i, ep := range endpoints {
		printEndpointTable(w.out, i, ep)
	}

	index := 0
	if len(endpoints) == 1 {
		headline.Fprintf(w.out, "\nThere is only one available %s device.\n", direction)
	} else {
		var err error
		index, err = w.prompt.pickIndex(fmt.Sprintf("Please choose a %s device", direction), len(endpoints))
		if err != nil {
			return nil, err
		}
	}
	ep := endpoints[index]

	configs := ep.ValidConfigurations
	format, err := pickValue(w.prompt, "format", uniqueFormats(configs))
	if err != nil {
		return nil, err
	}
	configs = withFormat(configs, format)

	rate, err := pickValue(w.prompt, "sampling rate", uniqueRates(configs))
	if err != nil {
		return nil, err
	}
	configs = withRate(configs, rate)

	channels, err := pickValue(w.prompt, "channel count", uniqueChannels(configs))
	if err != nil {
		return nil, err
	}
	configs = withChannels(configs, channels)

	cfg := configs[0]
	if err := w.chooseBufferTime(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// chooseBufferTime scans the configuration's buffer window and lets the user
// pick a probed value; requests between probed values snap to the nearest.
func (w *Wizard) chooseBufferTime(cfg *probe.ValidConfiguration) error {
	headline.Fprintln(w.out, "\nProbing buffer times...")

	timesMS := probe.NewBufferWindowProber(w.backend, w.policy, w.logger).Scan(cfg)
	switch len(timesMS) {
	case 0:
		alert.Fprintf(w.out, "\nNo buffer time could be verified, using the default of %d ms.\n", cfg.RecommendedBufferTimeMS())
		cfg.BufferTimeMS = cfg.RecommendedBufferTimeMS()
		return nil
	case 1:
		headline.Fprintf(w.out, "\nThere is only one available buffer time: %d ms\n", timesMS[0])
		cfg.BufferTimeMS = timesMS[0]
		return nil
	}

	fmt.Fprintf(w.out, "\nAccepted buffer times (ms): %s\n", joinInts(timesMS))
	wantMS, err := w.prompt.pickNumber("Please choose a buffer time in ms", timesMS[0], timesMS[len(timesMS)-1])
	if err != nil {
		return err
	}
	cfg.BufferTimeMS = nearestBufferTime(timesMS, wantMS)
	if cfg.BufferTimeMS != wantMS {
		headline.Fprintf(w.out, "\n%d ms is not supported, using the closest value: %d ms\n", wantMS, cfg.BufferTimeMS)
	}
	return nil
}

// chooseConverter offers the installed sample-rate converters, if any.
func (w *Wizard) chooseConverter() (string, error) {
	converters := asound.RateConverters()
	if len(converters) == 0 {
		return "", nil
	}
	return pickValue(w.prompt, "sample rate converter", converters)
}

// RunInteractive is the package entry point used by the CLI.
func RunInteractive(backend alsa.Negotiator, policy probe.Policy, logger *slog.Logger, opts Options) error {
	return New(backend, policy, logger, os.Stdin, os.Stdout, opts).Run()
}
