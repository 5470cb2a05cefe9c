package domain

import (
	"time"

	"github.com/google/uuid"
)

type DocumentStatus string

const (
	DocumentStatusUploaded   DocumentStatus = "uploaded"
	DocumentStatusProcessing DocumentStatus = "processing"
	DocumentStatusReady      DocumentStatus = "ready"
	DocumentStatusSigned     DocumentStatus = "signed"
	DocumentStatusCompleted  DocumentStatus = "completed"
)

// Document is an immutable record of an uploaded file. The workflow core
// references documents by id and never mutates their content.
type Document struct {
	ID           string
	Filename     string
	OriginalName string
	MimeType     string
	Size         int64
	UploadedBy   string
	Status       DocumentStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func NewDocument(filename, originalName, mimeType string, size int64, uploadedBy string) *Document {
	now := time.Now()
	return &Document{
		ID:           uuid.NewString(),
		Filename:     filename,
		OriginalName: originalName,
		MimeType:     mimeType,
		Size:         size,
		UploadedBy:   uploadedBy,
		Status:       DocumentStatusUploaded,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
