package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-contactform/pkg/contact"
	"github.com/goliatone/go-contactform/pkg/renderers/tui"
)

func newPromptCmd(a *app) *cobra.Command {
	var (
		format      string
		confirm     bool
		maxAttempts int
	)

	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Fill in the form interactively in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			outputFormat, ok := tui.ParseOutputFormat(format)
			if !ok {
				return fmt.Errorf("unknown format %q (want json, form or pretty)", format)
			}
			registry, err := newRegistry(a.cfg,
				tui.WithOutputFormat(outputFormat),
				tui.WithConfirmSubmit(confirm),
				tui.WithMaxAttempts(maxAttempts),
			)
			if err != nil {
				return err
			}
			r, err := registry.Get(tui.Name)
			if err != nil {
				return err
			}
			opts, err := renderOptions(a.cfg, a.logger)
			if err != nil {
				return err
			}

			out, err := r.Render(cmd.Context(), contact.Snapshot{}, opts)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return err
		},
	}

	cmd.Flags().StringVar(&format, "format", string(tui.OutputFormatPrettyText), "output format: json, form or pretty")
	cmd.Flags().BoolVar(&confirm, "confirm", true, "ask before submitting")
	cmd.Flags().IntVar(&maxAttempts, "max-attempts", 0, "give up after this many invalid answers per field (0 = unlimited)")
	return cmd
}
