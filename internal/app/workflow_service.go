package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/rohan-lakhani/eSign-Workflow/internal/domain"
	"github.com/rohan-lakhani/eSign-Workflow/internal/token"
)

type CreateWorkflowInput struct {
	DocumentID  string
	Name        string
	Description string
	CreatedBy   string
	Roles       []domain.RoleInput
}

type SignInput struct {
	Signature  string
	Role3Email string
}

type WorkflowService interface {
	Create(ctx context.Context, in CreateWorkflowInput) (*WorkflowView, error)
	Submit(ctx context.Context, id string) (*WorkflowView, error)
	Sign(ctx context.Context, id string, access token.RoleAccess, in SignInput) (*WorkflowView, error)
	Get(ctx context.Context, id string) (*WorkflowView, error)
}

type workflowService struct {
	workflows domain.WorkflowRepository
	documents domain.DocumentRepository
	blobs     domain.BlobStore
	backend   domain.SignatureBackend
	publisher NotificationPublisher
	secret    string
	tokenTTL  time.Duration
	logger    *slog.Logger
}

func NewWorkflowService(
	workflows domain.WorkflowRepository,
	documents domain.DocumentRepository,
	blobs domain.BlobStore,
	backend domain.SignatureBackend,
	publisher NotificationPublisher,
	secret string,
	tokenTTL time.Duration,
	logger *slog.Logger,
) WorkflowService {
	return &workflowService{
		workflows: workflows,
		documents: documents,
		blobs:     blobs,
		backend:   backend,
		publisher: publisher,
		secret:    secret,
		tokenTTL:  tokenTTL,
		logger:    logger,
	}
}

func (s *workflowService) Create(ctx context.Context, in CreateWorkflowInput) (*WorkflowView, error) {
	doc, err := s.documents.GetDocument(ctx, in.DocumentID)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, domain.ErrDocumentNotFound
	}

	if len(in.Roles) != domain.RoleCount {
		return nil, fmt.Errorf("%w: exactly %d roles are required", domain.ErrInvalidInput, domain.RoleCount)
	}

	tokens := make([]string, 0, domain.RoleCount)
	for i := range in.Roles {
		t, err := token.Issue(in.DocumentID, i+1, s.secret, s.tokenTTL)
		if err != nil {
			return nil, fmt.Errorf("mint role %d token: %w", i+1, err)
		}
		tokens = append(tokens, t)
	}

	name := in.Name
	if name == "" {
		name = "Workflow for " + doc.OriginalName
	}
	createdBy := in.CreatedBy
	if createdBy == "" && in.Roles[0].Email != nil {
		createdBy = *in.Roles[0].Email
	}

	workflow, err := domain.NewWorkflow(in.DocumentID, name, in.Description, createdBy, in.Roles, tokens)
	if err != nil {
		return nil, err
	}

	if err := s.workflows.CreateWorkflow(ctx, workflow); err != nil {
		return nil, err
	}

	s.logger.Info("workflow created",
		"workflow_id", workflow.ID,
		"document_id", workflow.DocumentID)

	return newWorkflowView(workflow, doc), nil
}

func (s *workflowService) Submit(ctx context.Context, id string) (*WorkflowView, error) {
	workflow, err := s.workflows.GetWorkflow(ctx, id)
	if err != nil {
		return nil, err
	}
	if workflow == nil {
		return nil, domain.ErrWorkflowNotFound
	}
	if workflow.Status != domain.WorkflowStatusDraft {
		return nil, fmt.Errorf("%w: workflow already submitted", domain.ErrInvalidState)
	}

	doc, err := s.documents.GetDocument(ctx, workflow.DocumentID)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, domain.ErrDocumentNotFound
	}

	pdf, err := s.blobs.Fetch(ctx, doc.Filename)
	if err != nil {
		return nil, fmt.Errorf("fetch document file: %w", err)
	}

	upload, err := s.backend.UploadDocument(ctx, pdf, doc.OriginalName)
	if err != nil {
		return nil, fmt.Errorf("upload document to signing backend: %w", err)
	}

	signers := make([]domain.BackendSigner, 0, len(workflow.Roles))
	for _, role := range workflow.Roles {
		email := ""
		if role.Email != nil {
			email = *role.Email
		}
		signers = append(signers, domain.BackendSigner{
			Email: email,
			Name:  role.Name,
			Role:  fmt.Sprintf("role%d", role.RoleNumber),
			Order: role.RoleNumber,
		})
	}

	request, err := s.backend.CreateSignatureRequest(ctx, upload.DocumentID, signers)
	if err != nil {
		return nil, fmt.Errorf("create signature request: %w", err)
	}

	next, notifications, err := domain.Submit(*workflow, domain.SubmitRegistration{
		ExternalDocumentID: upload.DocumentID,
		RequestID:          request.RequestID,
	}, time.Now())
	if err != nil {
		return nil, err
	}

	if err := s.workflows.UpdateWorkflow(ctx, &next); err != nil {
		return nil, err
	}

	s.logger.Info("workflow submitted for signing",
		"workflow_id", next.ID,
		"external_document_id", upload.DocumentID,
		"request_id", request.RequestID)

	s.publish(ctx, notifications, doc)

	return newWorkflowView(&next, doc), nil
}

func (s *workflowService) Sign(ctx context.Context, id string, access token.RoleAccess, in SignInput) (*WorkflowView, error) {
	// One retry on a version conflict: re-read and re-check preconditions.
	for attempt := 0; ; attempt++ {
		workflow, err := s.workflows.GetWorkflow(ctx, id)
		if err != nil {
			return nil, err
		}
		if workflow == nil {
			return nil, domain.ErrWorkflowNotFound
		}
		if access.DocumentID != workflow.DocumentID {
			return nil, fmt.Errorf("%w: token is for a different document", domain.ErrInvalidCredential)
		}

		doc, err := s.documents.GetDocument(ctx, workflow.DocumentID)
		if err != nil {
			return nil, err
		}
		if doc == nil {
			return nil, domain.ErrDocumentNotFound
		}

		next, notifications, err := domain.Sign(*workflow, access.RoleNumber, in.Signature, in.Role3Email, time.Now())
		if err != nil {
			return nil, err
		}

		err = s.workflows.UpdateWorkflow(ctx, &next)
		if errors.Is(err, domain.ErrConflict) && attempt == 0 {
			continue
		}
		if err != nil {
			return nil, err
		}

		s.logger.Info("role signed",
			"workflow_id", next.ID,
			"role", access.RoleNumber,
			"status", next.Status)

		s.publish(ctx, notifications, doc)

		return newWorkflowView(&next, doc), nil
	}
}

func (s *workflowService) Get(ctx context.Context, id string) (*WorkflowView, error) {
	workflow, err := s.workflows.GetWorkflow(ctx, id)
	if err != nil {
		return nil, err
	}
	if workflow == nil {
		return nil, domain.ErrWorkflowNotFound
	}

	doc, err := s.documents.GetDocument(ctx, workflow.DocumentID)
	if err != nil {
		return nil, err
	}

	return newWorkflowView(workflow, doc), nil
}

// publish hands notifications off after the state is durable. The document
// name travels with each notification so the dispatcher needs no extra reads.
func (s *workflowService) publish(ctx context.Context, notifications []domain.Notification, doc *domain.Document) {
	if len(notifications) == 0 {
		return
	}
	for i := range notifications {
		notifications[i].DocumentName = doc.OriginalName
	}
	s.publisher.Publish(ctx, notifications)
}
