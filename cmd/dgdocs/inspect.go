package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ALIKZH777/dgdocs/internal/docx"
	"github.com/ALIKZH777/dgdocs/internal/extract"
	"github.com/ALIKZH777/dgdocs/internal/field"
)

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <template.docx>",
		Short: "Detect catalog fields in a template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			blob, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			content, err := docx.ReadDocument(blob)
			if err != nil {
				return err
			}

			catalog := field.NewCatalog()
			values := extract.New(catalog).Extract(content)

			for _, def := range catalog.Definitions() {
				if v, ok := values[def.ID]; ok {
					fmt.Fprintf(cmd.OutOrStdout(), "%-22s %s = %s\n", def.ID, def.Label, v)
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d of %d fields detected\n", len(values), len(catalog.Definitions()))
			return nil
		},
	}
}
