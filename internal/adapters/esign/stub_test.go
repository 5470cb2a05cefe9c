package esign

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rohan-lakhani/eSign-Workflow/internal/domain"
)

func TestStubBackend(t *testing.T) {
	backend := NewStubBackend()
	ctx := context.Background()

	upload, err := backend.UploadDocument(ctx, []byte("%PDF-1.4"), "contract.pdf")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(upload.DocumentID, "doc-"))
	assert.Equal(t, "contract.pdf", upload.Filename)
	assert.Equal(t, 8, upload.Size)

	request, err := backend.CreateSignatureRequest(ctx, upload.DocumentID, []domain.BackendSigner{
		{Email: "a@x.com", Name: "A", Role: "role1", Order: 1},
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(request.RequestID, "req-"))
	assert.Equal(t, upload.DocumentID, request.DocumentID)
	assert.Equal(t, "pending", request.Status)
}
