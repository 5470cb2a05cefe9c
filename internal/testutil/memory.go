package testutil

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rohan-lakhani/eSign-Workflow/internal/domain"
)

// In-memory ports for service and handler tests. The workflow store enforces
// the same version check as the postgres repository so conflict handling is
// exercised without a database.

type MemoryWorkflowRepository struct {
	mu        sync.Mutex
	workflows map[string]*domain.Workflow
}

func NewMemoryWorkflowRepository() *MemoryWorkflowRepository {
	return &MemoryWorkflowRepository{workflows: make(map[string]*domain.Workflow)}
}

func (r *MemoryWorkflowRepository) CreateWorkflow(_ context.Context, workflow *domain.Workflow) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.workflows[workflow.ID]; ok {
		return fmt.Errorf("workflow %s already exists", workflow.ID)
	}
	clone := *workflow
	clone.Roles = append([]domain.Role(nil), workflow.Roles...)
	r.workflows[workflow.ID] = &clone
	return nil
}

func (r *MemoryWorkflowRepository) GetWorkflow(_ context.Context, id string) (*domain.Workflow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.workflows[id]
	if !ok {
		return nil, nil
	}
	clone := *stored
	clone.Roles = append([]domain.Role(nil), stored.Roles...)
	return &clone, nil
}

func (r *MemoryWorkflowRepository) UpdateWorkflow(_ context.Context, workflow *domain.Workflow) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.workflows[workflow.ID]
	if !ok || stored.Version != workflow.Version {
		return domain.ErrConflict
	}
	clone := *workflow
	clone.Version++
	clone.Roles = append([]domain.Role(nil), workflow.Roles...)
	r.workflows[workflow.ID] = &clone
	workflow.Version++
	return nil
}

func (r *MemoryWorkflowRepository) MarkRoleNotified(_ context.Context, workflowID string, roleNumber int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.workflows[workflowID]
	if !ok {
		return domain.ErrWorkflowNotFound
	}
	role := stored.RoleByNumber(roleNumber)
	if role == nil {
		return fmt.Errorf("%w: role %d does not exist", domain.ErrInvalidInput, roleNumber)
	}
	if role.Status == domain.RoleStatusPending {
		role.Status = domain.RoleStatusNotified
		stored.Version++
	}
	return nil
}

func (r *MemoryWorkflowRepository) ListAwaitingSignature(_ context.Context, cutoff time.Time, limit int) ([]*domain.Workflow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Workflow
	for _, stored := range r.workflows {
		if len(out) >= limit {
			break
		}
		if stored.Status == domain.WorkflowStatusActive && stored.UpdatedAt.Before(cutoff) {
			clone := *stored
			clone.Roles = append([]domain.Role(nil), stored.Roles...)
			out = append(out, &clone)
		}
	}
	return out, nil
}

type MemoryDocumentRepository struct {
	mu        sync.Mutex
	documents map[string]*domain.Document
}

func NewMemoryDocumentRepository() *MemoryDocumentRepository {
	return &MemoryDocumentRepository{documents: make(map[string]*domain.Document)}
}

func (r *MemoryDocumentRepository) CreateDocument(_ context.Context, document *domain.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *document
	r.documents[document.ID] = &clone
	return nil
}

func (r *MemoryDocumentRepository) GetDocument(_ context.Context, id string) (*domain.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.documents[id]
	if !ok {
		return nil, nil
	}
	clone := *stored
	return &clone, nil
}

type MemoryBlobStore struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

func NewMemoryBlobStore() *MemoryBlobStore {
	return &MemoryBlobStore{blobs: make(map[string][]byte)}
}

func (s *MemoryBlobStore) Store(_ context.Context, data []byte, ext string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := uuid.NewString() + ext
	s.blobs[key] = append([]byte(nil), data...)
	return key, nil
}

func (s *MemoryBlobStore) Fetch(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.blobs[key]
	if !ok {
		return nil, fmt.Errorf("blob %s not found", key)
	}
	return append([]byte(nil), data...), nil
}

func (s *MemoryBlobStore) Exists(_ context.Context, key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.blobs[key]
	return ok
}

// CapturePublisher records published notifications for assertions.
type CapturePublisher struct {
	mu            sync.Mutex
	Notifications []domain.Notification
}

func NewCapturePublisher() *CapturePublisher {
	return &CapturePublisher{}
}

func (p *CapturePublisher) Publish(_ context.Context, notifications []domain.Notification) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Notifications = append(p.Notifications, notifications...)
}

func (p *CapturePublisher) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Notifications = nil
}
