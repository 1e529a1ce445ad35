package main

import (
	"github.com/spf13/cobra"

	"nmapview/internal/config"
	"nmapview/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "nmapview",
	Short: "Summarize Nmap XML scan results",
	Long: `nmapview turns Nmap XML output into per-port host records and per-OS
open-port groups. It can serve them over HTTP, print them, or export them
into SQLite.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("scan-file") {
			cfg.ScanFile = scanFileFlag
		}
		if cmd.Flags().Changed("debug") {
			cfg.Debug = debugMode
		}
		logging.SetDebug(cfg.Debug)
		appConfig = cfg
		return nil
	},
}

var (
	debugMode    bool
	scanFileFlag string

	appConfig *config.Config
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&scanFileFlag, "scan-file", config.DefaultScanFile, "Nmap XML file to read")
}
