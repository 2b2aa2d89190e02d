package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/knight-skies/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration the game would run with, after --config,
--difficulty and derived geometry are applied, as YAML.

Copy the output to ~/.skies/configs/skies.yaml to customise the game.

Examples:
  skies config
  skies config --difficulty hard`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func runConfig(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		fail("%v", err)
	}

	data, err := config.Marshal(cfg.Resolve())
	if err != nil {
		fail("%v", err)
	}
	fmt.Print(string(data))
}
