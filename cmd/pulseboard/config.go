package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration commands",
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration file",
	RunE:  runConfigValidate,
}

func init() {
	configCmd.AddCommand(configValidateCmd)
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Configuration is valid")
	fmt.Fprintf(out, "  Listen address: %s\n", cfg.Server.Addr)
	fmt.Fprintf(out, "  Target revenue: %.0f\n", cfg.Dashboard.TargetRevenue)
	fmt.Fprintf(out, "  OpenAI: %v | Claude: %v\n", cfg.Providers.OpenAI.APIKey != "", cfg.Providers.Claude.APIKey != "")
	fmt.Fprintf(out, "  Commerce: %s\n", orNone(cfg.Commerce.BaseURL))
	fmt.Fprintf(out, "  Telegram alerts: %v\n", cfg.TelegramEnabled())
	fmt.Fprintf(out, "  Run journal: %s\n", orNone(cfg.Database.SQLitePath))
	fmt.Fprintf(out, "  Schedules: content=%s marketing=%s customer=%s analytics=%s\n",
		cfg.Schedule.Content, cfg.Schedule.Marketing, cfg.Schedule.Customer, cfg.Schedule.Analytics)
	return nil
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
