package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ALIKZH777/dgdocs/internal/batch"
	"github.com/ALIKZH777/dgdocs/internal/docx"
	"github.com/ALIKZH777/dgdocs/internal/domain"
	"github.com/ALIKZH777/dgdocs/internal/extract"
	"github.com/ALIKZH777/dgdocs/internal/field"
	"github.com/ALIKZH777/dgdocs/internal/recordsheet"
)

func newGenerateCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "generate <template.docx> <records.xlsx|records.csv>",
		Short: "Produce one personalized document per record sheet row",
		Args:  cobra.ExactArgs(2),
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
			if len(values) == 0 {
				return fmt.Errorf("no catalog fields detected in %s", args[0])
			}

			records, err := readRecords(catalog, args[1])
			if err != nil {
				return err
			}
			if len(records) == 0 {
				return fmt.Errorf("no records in %s", args[1])
			}

			onProgress := func(pct float64, status string) {
				fmt.Fprintf(cmd.ErrOrStderr(), "\r%3.0f%% %-40s", pct, status)
			}
			report, err := batch.NewOrchestrator(0).Run(
				cmd.Context(), records, blob, content, values, onProgress)
			fmt.Fprintln(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			if err := os.WriteFile(output, report.Archive, 0o644); err != nil {
				return err
			}
			for _, o := range report.Outcomes {
				if !o.Success {
					fmt.Fprintf(cmd.ErrOrStderr(), "record %s failed: %s\n", o.RecordID, o.Error)
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d of %d documents written to %s\n",
				report.ProcessedCount, report.TotalCount, output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "outputs.zip", "output archive path")
	return cmd
}

func readRecords(catalog *field.Catalog, path string) ([]domain.ReplacementRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	reader := recordsheet.NewReader(catalog)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return reader.ReadXLSX(f)
	case ".csv":
		return reader.ReadCSV(f)
	default:
		return nil, fmt.Errorf("unsupported record sheet format %q (use .xlsx or .csv)", filepath.Ext(path))
	}
}
