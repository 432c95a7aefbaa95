package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/OFTGNOV/Sa-helper-bot/internal/core"
	logx "github.com/OFTGNOV/Sa-helper-bot/pkg/logger"
)

func newRootCmd() *cobra.Command {
	var cfg AppConfig

	cmd := &cobra.Command{
		Use:           "sa-helper-bot",
		Short:         "Website chat assistant: grounded Gemini answers with keyword fallback",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			loaded, err := loadConfig()
			if err != nil {
				return err
			}
			cfg = loaded
			logx.Init(logx.LoggerOpts{Environment: cfg.env(), Output: os.Stderr})
			return nil
		},
	}

	config := func() AppConfig { return cfg }
	cmd.AddCommand(newServeCmd(config))
	cmd.AddCommand(newAskCmd(config))
	cmd.AddCommand(newTestAPICmd(config))
	cmd.AddCommand(newKnowledgeCmd(config))
	return cmd
}

func Execute() {
	logx.Init(logx.LoggerOpts{Environment: core.Development, Output: os.Stderr})
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}
