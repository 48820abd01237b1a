package main

import (
	"os"

	"github.com/JasonLG1979/asound-conf-wizard/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
