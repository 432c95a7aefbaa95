package main

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/OFTGNOV/Sa-helper-bot/internal/agent/model"
)

type askOptions struct {
	Session   string
	PageURL   string
	PageTitle string
	Page      string
}

func newAskCmd(config func() AppConfig) *cobra.Command {
	var opts askOptions

	cmd := &cobra.Command{
		Use:   "ask <message>",
		Short: "Answer one message through the full engine and print the reply",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), config())
			if err != nil {
				return err
			}
			defer a.Close()

			session := opts.Session
			if session == "" {
				session = uuid.NewString()
			}
			out, err := a.engine.Respond(cmd.Context(), model.ChatRequest{
				SessionToken: session,
				Message:      strings.Join(args, " "),
				PageContent:  opts.Page,
				PageURL:      opts.PageURL,
				PageTitle:    opts.PageTitle,
			})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintln(w, out.Response)
			fmt.Fprintln(w)
			fmt.Fprintf(w, "source: %s  session: %s  turns: %d\n", out.Source, out.SessionStats.SessionID, out.SessionStats.Count)
			for _, s := range out.Suggestions {
				fmt.Fprintf(w, "  - %s\n", s)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Session, "session", "", "session token to continue (random when empty)")
	cmd.Flags().StringVar(&opts.Page, "page-content", "", "visible page text to ground on")
	cmd.Flags().StringVar(&opts.PageURL, "page-url", "", "page URL recorded with the turn")
	cmd.Flags().StringVar(&opts.PageTitle, "page-title", "", "page title recorded with the turn")
	return cmd
}
