package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "pulseboard",
	Short: "PulseBoard - e-commerce dashboard driven by scheduled agents",
	Long: `PulseBoard runs four scheduled agents (content, marketing, customer, analytics)
against text-generation and commerce APIs and serves their state as a JSON dashboard.`,
	RunE: runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Path to configuration file (default $CONFIG_PATH or configs/config.yaml)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(configCmd)
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
