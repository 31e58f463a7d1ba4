// Package cli implements ifwctl: an operator tool for inspecting and
// exercising the intent firewall's rule store against a directory of
// rule files, without running inside the host dispatcher.
package cli

import (
	"github.com/spf13/cobra"
)

var (
	configPath string
	dataDir    string
)

var rootCmd = &cobra.Command{
	Use:   "ifwctl",
	Short: "ifwctl - inspect and test intent firewall rules",
	Long: `ifwctl loads a directory of intent firewall rule files the same way
the daemon does, and lets an operator check a simulated dispatch
against them, watch for live reloads, or print per-kind rule counts.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config YAML file (default: <data-dir>/ifw/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", ".", "Host data-system directory (rules live under <data-dir>/ifw)")
}

func Execute() error {
	return rootCmd.Execute()
}
