package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-contactform/pkg/contact"
	"github.com/goliatone/go-contactform/pkg/renderers/vanilla"
)

func newRenderCmd(a *app) *cobra.Command {
	var (
		values   contact.Values
		submit   bool
		output   string
		renderer string
		snapshot bool
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the form for the given values",
		Long: `Applies each value flag as a change event, optionally submits, and writes
the rendered form. Only fields passed on the command line count as touched.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			form := contact.NewFormWithValidator(contact.NewValidator(a.cfg.Rules))
			for _, field := range contact.Fields {
				if cmd.Flags().Changed(flagName(field)) {
					form.Change(field, values.Get(field))
				}
			}
			if submit {
				form.Submit()
			}

			var body []byte
			if snapshot {
				data, err := json.MarshalIndent(form.Snapshot(), "", "  ")
				if err != nil {
					return fmt.Errorf("encode snapshot: %w", err)
				}
				body = append(data, '\n')
			} else {
				registry, err := newRegistry(a.cfg)
				if err != nil {
					return err
				}
				r, err := registry.Get(renderer)
				if err != nil {
					return err
				}
				opts, err := renderOptions(a.cfg, a.logger)
				if err != nil {
					return err
				}
				body, err = r.Render(cmd.Context(), form.Snapshot(), opts)
				if err != nil {
					return err
				}
			}

			if output != "" {
				if err := os.WriteFile(output, body, 0o644); err != nil {
					return fmt.Errorf("write output: %w", err)
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Form written to %s\n", output)
				return nil
			}
			_, err := cmd.OutOrStdout().Write(body)
			return err
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&values.FirstName, flagName(contact.FieldFirstName), "", "first name")
	flags.StringVar(&values.LastName, flagName(contact.FieldLastName), "", "last name")
	flags.StringVar(&values.Email, flagName(contact.FieldEmail), "", "email address")
	flags.StringVar(&values.Message, flagName(contact.FieldMessage), "", "message")
	flags.BoolVar(&submit, "submit", false, "submit after applying the values")
	flags.StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	flags.StringVar(&renderer, "renderer", vanilla.Name, "renderer to use")
	flags.BoolVar(&snapshot, "snapshot", false, "write the form snapshot as JSON instead of rendering")
	return cmd
}

func flagName(field contact.Field) string {
	switch field {
	case contact.FieldFirstName:
		return "first-name"
	case contact.FieldLastName:
		return "last-name"
	default:
		return string(field)
	}
}
