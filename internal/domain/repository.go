package domain

import (
	"context"
	"time"
)

type WorkflowRepository interface {
	CreateWorkflow(ctx context.Context, workflow *Workflow) error
	GetWorkflow(ctx context.Context, id string) (*Workflow, error)
	// UpdateWorkflow persists the workflow using optimistic concurrency: the
	// write only succeeds when the stored version matches workflow.Version,
	// otherwise ErrConflict is returned.
	UpdateWorkflow(ctx context.Context, workflow *Workflow) error
	// MarkRoleNotified records successful delivery of a signing request email.
	MarkRoleNotified(ctx context.Context, workflowID string, roleNumber int) error
	// ListAwaitingSignature returns active workflows untouched since the cutoff,
	// used to re-send signature requests to the current role.
	ListAwaitingSignature(ctx context.Context, cutoff time.Time, limit int) ([]*Workflow, error)
}

type DocumentRepository interface {
	CreateDocument(ctx context.Context, document *Document) error
	GetDocument(ctx context.Context, id string) (*Document, error)
}
