package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JasonLG1979/asound-conf-wizard/internal/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version and build information",
		Run: func(cmd *cobra.Command, _ []string) {
			info := version.Get()
			fmt.Fprintf(cmd.OutOrStdout(), "asound-conf-wizard %s (%s, %s, %s)\n",
				info.Version, info.GitCommit, info.GoVersion, info.Platform)
		},
	}
}
