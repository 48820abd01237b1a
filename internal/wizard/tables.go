package wizard

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/JasonLG1979/asound-conf-wizard/internal/probe"
	"github.com/JasonLG1979/asound-conf-wizard/pkg/alsa"
)

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ", ")
}

func joinFormats(values []alsa.Format) string {
	parts := make([]string, len(values))
	for i, f := range values {
		parts[i] = f.String()
	}
	return strings.Join(parts, ", ")
}

// printEndpointTable renders one endpoint with its filtered capabilities.
func printEndpointTable(w io.Writer, index int, ep probe.Endpoint) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{strings.ToUpper(ep.Direction.String()) + ": " + strconv.Itoa(index+1)})
	table.SetAutoWrapText(false)
	table.Append([]string{fmt.Sprintf("CARD: %s", ep.CardKey)})
	table.Append([]string{fmt.Sprintf("DEV: %d", ep.DeviceNumber)})
	table.Append([]string{fmt.Sprintf("DESCRIPTION: %s", ep.Description)})
	table.Append([]string{fmt.Sprintf("FORMATS: %s", joinFormats(ep.Formats))})
	table.Append([]string{fmt.Sprintf("RATES: %s", joinInts(ep.Rates))})
	table.Append([]string{fmt.Sprintf("CHANNELS: %s", joinInts(ep.Channels))})
	if !ep.RealHardware {
		table.Append([]string{"NOTE: device converts internally, showing standard values"})
	}
	table.Render()
}

// printConfigurationTable renders the chosen configuration for confirmation.
func printConfigurationTable(w io.Writer, cfg *probe.ValidConfiguration) {
	headline.Fprintf(w, "\n%s Configuration:\n\n", cfg.Direction)

	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	table.Append([]string{fmt.Sprintf("CARD: %s", cfg.CardKey)})
	table.Append([]string{fmt.Sprintf("DEV: %d", cfg.DeviceNumber)})
	table.Append([]string{fmt.Sprintf("SUBDEV: %d", cfg.SubDeviceNumber)})
	table.Append([]string{fmt.Sprintf("FORMAT: %s", cfg.Format)})
	table.Append([]string{fmt.Sprintf("RATE: %d", cfg.Rate)})
	table.Append([]string{fmt.Sprintf("CHANNELS: %d", cfg.Channels)})
	table.Append([]string{fmt.Sprintf("BUFFER TIME: %d ms", cfg.BufferTimeMS)})
	table.Render()
}
