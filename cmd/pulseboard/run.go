package main

import (
	"context"
	"encoding/json"
	"fmt"

	"PulseBoard/internal/model"

	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:       "run <agent>",
	Short:     "Run one agent once and print its stats",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"content", "marketing", "customer", "analytics"},
	RunE:      runAgent,
}

func runAgent(cmd *cobra.Command, args []string) error {
	name, ok := model.ParseAgentName(args[0])
	if !ok {
		return fmt.Errorf("unknown agent %q", args[0])
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a := newApp(ctx, cfg)
	defer a.close()

	if err := a.scheduler.RunNow(ctx, name); err != nil {
		return fmt.Errorf("%s agent: %w", name, err)
	}

	stats, _ := a.store.Agents().Stats(name)
	out, err := json.MarshalIndent(stats, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
