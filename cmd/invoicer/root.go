package main

import (
	"fmt"
	"os"

	"Invoice-Processing-System/internal/utils"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:           "invoicer",
	Short:         "Invoice processing backend",
	Long:          "Extracts structured data from uploaded invoice PDFs with a vision model and serves the stored records over HTTP.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config.yaml", "config file path")
	rootCmd.AddCommand(serveCmd, migrateCmd)
}

// loadRuntime reads the configuration and builds the application logger.
func loadRuntime() (utils.Config, *logrus.Logger, error) {
	cfg, err := utils.LoadConfig(cfgFile)
	if err != nil {
		return utils.Config{}, nil, fmt.Errorf("config: %w", err)
	}
	return cfg, utils.NewLogger(cfg.LogLevel, cfg.LogFormat, os.Stdout), nil
}
