package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/OFTGNOV/Sa-helper-bot/internal/agent/textutil"
	"github.com/OFTGNOV/Sa-helper-bot/internal/agent/validator"
	logx "github.com/OFTGNOV/Sa-helper-bot/pkg/logger"
)

func newKnowledgeCmd(config func() AppConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "knowledge",
		Short: "Read or edit the knowledge base",
	}
	cmd.AddCommand(newKnowledgeGetCmd(config), newKnowledgeSetCmd(config), newRefusalsCmd(config))
	return cmd
}

func newKnowledgeGetCmd(config func() AppConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "get [section]",
		Short: "Print one section, or all of them",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), config())
			if err != nil {
				return err
			}
			defer a.Close()

			kb := a.engine.Deps().Knowledge.Load(cmd.Context())
			w := cmd.OutOrStdout()
			if len(args) == 1 {
				fmt.Fprintln(w, kb.Section(args[0]))
				return nil
			}
			for _, name := range kb.Names() {
				fmt.Fprintf(w, "== %s (%s)\n%s\n\n", textutil.SectionTitle(name), name, kb.Section(name))
			}
			return nil
		},
	}
}

func newKnowledgeSetCmd(config func() AppConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "set <section> [content|-]",
		Short: "Replace one section; reads stdin when content is - or omitted",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			content := ""
			if len(args) == 2 && args[1] != "-" {
				content = args[1]
			} else {
				b, err := io.ReadAll(os.Stdin)
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
				content = string(b)
			}

			cfg := config()
			if cfg.StorageDriver == StorageMemory {
				logx.Warn().Msg("STORAGE_DRIVER is memory; the change is discarded when this command exits")
			}
			a, err := newApp(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.engine.Deps().Knowledge.SetSection(cmd.Context(), args[0], strings.TrimSpace(content)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "saved %s\n", args[0])
			return nil
		},
	}
}

func newRefusalsCmd(config func() AppConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "refusals",
		Short: "Read or replace the phrases that mark a generated reply as a refusal",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "get",
		Short: "Print the active refusal phrases",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context(), config())
			if err != nil {
				return err
			}
			defer a.Close()

			patterns := a.engine.Deps().Settings.RefusalPatterns(cmd.Context())
			w := cmd.OutOrStdout()
			if len(patterns) == 0 {
				fmt.Fprintln(w, "# built-in")
				patterns = validator.DefaultRefusalPatterns
			}
			for _, p := range patterns {
				fmt.Fprintln(w, p)
			}
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "set [phrase...]",
		Short: "Replace the refusal phrases; no phrases restores the built-in list",
		RunE: func(cmd *cobra.Command, args []string) error {
			patterns := make([]string, 0, len(args))
			for _, p := range args {
				if p = strings.TrimSpace(p); p != "" {
					patterns = append(patterns, p)
				}
			}

			cfg := config()
			if cfg.StorageDriver == StorageMemory {
				logx.Warn().Msg("STORAGE_DRIVER is memory; the change is discarded when this command exits")
			}
			a, err := newApp(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.engine.Deps().Settings.SaveRefusalPatterns(cmd.Context(), patterns); err != nil {
				return err
			}
			if len(patterns) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "restored built-in refusal phrases")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "saved %d refusal phrases\n", len(patterns))
			return nil
		},
	})
	return cmd
}
