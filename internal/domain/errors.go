package domain

import "errors"

var (
	ErrNotFound            = errors.New("resource not found")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrTemplateCorrupt     = errors.New("template container is not a readable document package")
	ErrMissingDocumentPart = errors.New("template container has no document body part")
	ErrEmptyQueue          = errors.New("no records queued for this template")
	ErrQueueFull           = errors.New("record queue is full")
	ErrFieldNotDetected    = errors.New("selected field was not detected in the template")
	ErrIncompleteRecord    = errors.New("record is missing a value for a selected field")
	ErrBatchRunning        = errors.New("a batch run is already in progress for this template")
	ErrArchiveFinalize     = errors.New("output archive finalization failed")
)
