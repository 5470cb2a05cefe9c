package esign

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/rohan-lakhani/eSign-Workflow/internal/domain"
)

// StubBackend stands in for the external e-signature provider: it accepts
// uploads and request creation and answers with synthetic identifiers.
type StubBackend struct{}

func NewStubBackend() *StubBackend {
	return &StubBackend{}
}

var _ domain.SignatureBackend = (*StubBackend)(nil)

func (b *StubBackend) UploadDocument(_ context.Context, pdf []byte, filename string) (*domain.BackendUpload, error) {
	return &domain.BackendUpload{
		DocumentID: "doc-" + uuid.NewString(),
		Filename:   filename,
		Size:       len(pdf),
		UploadedAt: time.Now(),
	}, nil
}

func (b *StubBackend) CreateSignatureRequest(_ context.Context, backendDocumentID string, signers []domain.BackendSigner) (*domain.BackendRequest, error) {
	return &domain.BackendRequest{
		RequestID:  "req-" + uuid.NewString(),
		DocumentID: backendDocumentID,
		Status:     "pending",
		CreatedAt:  time.Now(),
	}, nil
}
