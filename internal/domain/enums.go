package domain

// BatchState represents the lifecycle of one batch run.
type BatchState string

const (
	BatchStateIdle      BatchState = "idle"
	BatchStateRunning   BatchState = "running"
	BatchStateCompleted BatchState = "completed"
	BatchStateAborted   BatchState = "aborted"
)

// AllowedExtensions maps accepted upload extensions (without dot) to their
// MIME content type. Only Word document packages are accepted.
var AllowedExtensions = map[string]string{
	"docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}
