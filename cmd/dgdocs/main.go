// Command dgdocs generates personalized document batches from the terminal,
// without running the HTTP server.
//
//	dgdocs inspect template.docx
//	dgdocs generate template.docx records.xlsx -o outputs.zip
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "dgdocs",
		Short:         "Batch document personalization from a docx template",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newInspectCmd())
	root.AddCommand(newGenerateCmd())
	return root
}
