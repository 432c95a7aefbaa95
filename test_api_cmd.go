package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newTestAPICmd(config func() AppConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "test-api [message]",
		Short: "Send one request to Gemini with the saved settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), config())
			if err != nil {
				return err
			}
			defer a.Close()

			text, err := a.engine.TestConnection(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return fmt.Errorf("api test failed: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}
}
