// Package main implements the plcc CLI.
package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"plcc/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "plcc",
	Short: "Structured Text to PLCopenXML exporter",
	Long:  `plcc scans IEC 61131-3 Structured Text sources and exports them as vendor-flavored PLCopenXML for Sysmac Studio`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")

	cobra.OnInitialize(applyColorMode)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func applyColorMode() {
	mode, err := rootCmd.PersistentFlags().GetString("color")
	if err != nil {
		return
	}
	switch mode {
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	}
}
