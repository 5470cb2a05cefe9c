package domain

import (
	"context"
	"time"
)

// BlobStore holds uploaded file contents keyed by an opaque storage key.
type BlobStore interface {
	Store(ctx context.Context, data []byte, ext string) (key string, err error)
	Fetch(ctx context.Context, key string) ([]byte, error)
	Exists(ctx context.Context, key string) bool
}

// Notifier delivers workflow emails. Delivery failures are advisory: callers
// log them and keep going.
type Notifier interface {
	SendSignatureRequest(ctx context.Context, toEmail, recipientName, documentName, signingURL string, roleNumber int) error
	SendCompletionNotice(ctx context.Context, toEmail, documentName, downloadURL string) error
}

// BackendSigner describes one signer in an external signature request.
type BackendSigner struct {
	Email string
	Name  string
	Role  string
	Order int
}

type BackendUpload struct {
	DocumentID string
	Filename   string
	Size       int
	UploadedAt time.Time
}

type BackendRequest struct {
	RequestID  string
	DocumentID string
	Status     string
	CreatedAt  time.Time
}

// SignatureBackend is the external e-signature system of record. The bundled
// implementation is a stub returning synthetic identifiers.
type SignatureBackend interface {
	UploadDocument(ctx context.Context, pdf []byte, filename string) (*BackendUpload, error)
	CreateSignatureRequest(ctx context.Context, backendDocumentID string, signers []BackendSigner) (*BackendRequest, error)
}

// NotificationQueue buffers pending notifications between the API server and
// the delivery worker.
type NotificationQueue interface {
	// Enqueue adds a notification for delivery
	Enqueue(ctx context.Context, n *Notification) error
	// Dequeue retrieves the next pending notification.
	// Blocks until one is available or the timeout is reached.
	// Returns nil, nil if the timeout expires with nothing pending.
	Dequeue(ctx context.Context, timeout time.Duration) (*Notification, error)
	// Ack acknowledges successful delivery, removing the notification for good
	Ack(ctx context.Context, n *Notification) error
	// Nack returns the notification to the queue with its attempt count bumped
	Nack(ctx context.Context, n *Notification) error
	// Close gracefully shuts down the queue connection
	Close() error
}
