package email

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rohan-lakhani/eSign-Workflow/internal/config"
	"github.com/rohan-lakhani/eSign-Workflow/internal/testutil"
)

func TestSMTPNotifierMockMode(t *testing.T) {
	logger, logged := testutil.NewCaptureLogger()
	notifier := NewSMTPNotifier(config.SMTPConfig{}, logger)
	ctx := context.Background()

	err := notifier.SendSignatureRequest(ctx, "a@x.com", "A", "contract.pdf", "http://front.local/sign/wf-1?token=tok", 1)
	assert.NoError(t, err)

	err = notifier.SendCompletionNotice(ctx, "a@x.com", "contract.pdf", "http://back.local/api/documents/doc-1/download")
	assert.NoError(t, err)

	assert.Contains(t, logged.String(), "mocking email delivery")
	assert.Contains(t, logged.String(), "Signature Required: contract.pdf")
	assert.Contains(t, logged.String(), "Document Completed: contract.pdf")
}
