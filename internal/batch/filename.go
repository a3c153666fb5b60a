package batch

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// unsafeChars matches characters that are not safe in archive entry names.
// Persian letters are kept; only filesystem-reserved and control characters
// are substituted.
var unsafeChars = regexp.MustCompile(`[\\/:*?"<>|\x00-\x1f]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a free-text identifying value for use as an
// archive entry name. Replaces unsafe characters and spaces with _,
// collapses consecutive underscores, and truncates to 100 runes.
func SanitizeFilename(name string) string {
	s := unsafeChars.ReplaceAllString(name, "_")
	s = strings.ReplaceAll(s, " ", "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if r := []rune(s); len(r) > 100 {
		s = string(r[:100])
	}
	return s
}

// BuildOutputName returns the dated entry name for one output document.
// Format: {sanitized_base}_{YYYY-MM-DD}.docx
func BuildOutputName(base string, now time.Time) string {
	sanitized := SanitizeFilename(base)
	if sanitized == "" {
		sanitized = "document"
	}
	return fmt.Sprintf("%s_%s.docx", sanitized, now.Format("2006-01-02"))
}

// BuildArchiveName returns the dated name of the bundled download.
func BuildArchiveName(base string, now time.Time) string {
	sanitized := SanitizeFilename(base)
	if sanitized == "" {
		sanitized = "documents"
	}
	return fmt.Sprintf("%s_%s.zip", sanitized, now.Format("2006-01-02"))
}
