// Package batch drives substitution and repackaging for a queue of
// replacement records and bundles the outputs into one ZIP archive.
package batch

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/ALIKZH777/dgdocs/internal/docx"
	"github.com/ALIKZH777/dgdocs/internal/domain"
	"github.com/ALIKZH777/dgdocs/internal/field"
	"github.com/ALIKZH777/dgdocs/internal/substitute"
)

// ProgressFunc receives the overall percentage and a status label while a
// batch runs. May be nil.
type ProgressFunc func(percent float64, status string)

// recordShare is the portion of overall progress spent on per-record
// processing; the remainder is reserved for archive assembly.
const recordShare = 90.0

// RepackFunc produces a packaged document from the original template
// container and a rewritten body.
type RepackFunc func(template []byte, body string) ([]byte, error)

// Orchestrator processes record queues strictly sequentially. The template
// blob, content, and original values are shared read-only inputs; each
// record works on its own copy of the content.
type Orchestrator struct {
	pause  time.Duration
	repack RepackFunc
}

// NewOrchestrator creates an Orchestrator repackaging docx containers.
// pause, when positive, is a short cooperative delay between records to
// keep a host UI responsive; zero disables it.
func NewOrchestrator(pause time.Duration) *Orchestrator {
	return NewOrchestratorWithRepack(pause, docx.ReplaceDocument)
}

// NewOrchestratorWithRepack creates an Orchestrator with a custom
// repackaging step.
func NewOrchestratorWithRepack(pause time.Duration, repack RepackFunc) *Orchestrator {
	return &Orchestrator{pause: pause, repack: repack}
}

// Run processes records in queue order. Per-record substitution or
// repackaging failures are recorded in the report and never abort the loop;
// only context cancellation and archive finalization failure terminate the
// run with an error. Outputs packaged before a later failure are kept.
func (o *Orchestrator) Run(
	ctx context.Context,
	records []domain.ReplacementRecord,
	template []byte,
	content string,
	original map[string]string,
	onProgress ProgressFunc,
) (*domain.BatchReport, error) {
	report := &domain.BatchReport{TotalCount: len(records)}
	progress := func(pct float64, status string) {
		if onProgress != nil {
			onProgress(pct, status)
		}
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	seen := make(map[string]int)
	now := time.Now()

	for i, rec := range records {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("batch canceled after %d of %d records: %w",
				report.ProcessedCount, len(records), err)
		}
		if o.pause > 0 && i > 0 {
			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("batch canceled after %d of %d records: %w",
					report.ProcessedCount, len(records), ctx.Err())
			case <-time.After(o.pause):
			}
		}

		progress(float64(i)/float64(len(records))*recordShare,
			fmt.Sprintf("processing record %d of %d", i+1, len(records)))

		outcome := o.processRecord(zw, rec, template, content, original, seen, now)
		report.Outcomes = append(report.Outcomes, outcome)
		if outcome.Success {
			report.ProcessedCount++
		} else {
			log.Printf("batch.Run: record %s failed: %s", rec.ID, outcome.Error)
		}

		progress(float64(i+1)/float64(len(records))*recordShare,
			fmt.Sprintf("processed record %d of %d", i+1, len(records)))
	}

	progress(recordShare, "assembling archive")
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrArchiveFinalize, err)
	}
	report.Archive = buf.Bytes()
	progress(100, "completed")

	log.Printf("batch.Run: completed %d/%d records, archive %d bytes",
		report.ProcessedCount, report.TotalCount, len(report.Archive))
	return report, nil
}

func (o *Orchestrator) processRecord(
	zw *zip.Writer,
	rec domain.ReplacementRecord,
	template []byte,
	content string,
	original map[string]string,
	seen map[string]int,
	now time.Time,
) domain.BatchOutcome {
	rewritten, stats := substitute.Substitute(content, original, rec.SelectedFields, rec.NewValues)
	for id, n := range stats.Replacements {
		if n == 0 {
			log.Printf("batch.processRecord: record %s: no occurrences of field %s", rec.ID, id)
		}
	}

	packaged, err := o.repack(template, rewritten)
	if err != nil {
		return domain.BatchOutcome{RecordID: rec.ID, Error: fmt.Sprintf("repackaging: %v", err)}
	}

	name := uniqueName(outputBase(rec), now, seen)
	w, err := zw.Create(name)
	if err != nil {
		return domain.BatchOutcome{RecordID: rec.ID, Error: fmt.Sprintf("adding archive entry: %v", err)}
	}
	if _, err := w.Write(packaged); err != nil {
		return domain.BatchOutcome{RecordID: rec.ID, Error: fmt.Sprintf("writing archive entry: %v", err)}
	}
	return domain.BatchOutcome{RecordID: rec.ID, Success: true, Filename: name}
}

// outputBase picks the human identifying value for a record's file name:
// the replacement owner name when present, otherwise the first non-empty
// selected value, otherwise the record id.
func outputBase(rec domain.ReplacementRecord) string {
	if v := rec.NewValues[field.OwnerFullName]; strings.TrimSpace(v) != "" {
		return v
	}
	for _, id := range rec.SelectedFields {
		if v := rec.NewValues[id]; strings.TrimSpace(v) != "" {
			return v
		}
	}
	return rec.ID
}

func uniqueName(base string, now time.Time, seen map[string]int) string {
	name := BuildOutputName(base, now)
	seen[name]++
	if n := seen[name]; n > 1 {
		name = fmt.Sprintf("%s_%d.docx", strings.TrimSuffix(name, ".docx"), n)
	}
	return name
}
