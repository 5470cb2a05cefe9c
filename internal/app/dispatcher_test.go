package app

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rohan-lakhani/eSign-Workflow/internal/domain"
	"github.com/rohan-lakhani/eSign-Workflow/internal/testutil"
)

// MockNotifier is a mock implementation of domain.Notifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) SendSignatureRequest(ctx context.Context, toEmail, recipientName, documentName, signingURL string, roleNumber int) error {
	args := m.Called(ctx, toEmail, recipientName, documentName, signingURL, roleNumber)
	return args.Error(0)
}

func (m *MockNotifier) SendCompletionNotice(ctx context.Context, toEmail, documentName, downloadURL string) error {
	args := m.Called(ctx, toEmail, documentName, downloadURL)
	return args.Error(0)
}

func seedActiveWorkflow(t *testing.T, repo *testutil.MemoryWorkflowRepository) *domain.Workflow {
	t.Helper()
	workflow, err := domain.NewWorkflow(
		"doc-1", "Test", "", "a@x.com",
		rolesInput(),
		[]string{"tok-1", "tok-2", "tok-3"})
	require.NoError(t, err)
	require.NoError(t, repo.CreateWorkflow(context.Background(), workflow))
	return workflow
}

func TestDispatcherSignatureRequest(t *testing.T) {
	repo := testutil.NewMemoryWorkflowRepository()
	workflow := seedActiveWorkflow(t, repo)

	notifier := &MockNotifier{}
	dispatcher := NewDispatcher(notifier, repo, "http://front.local", "http://back.local", slog.Default())

	notifier.On("SendSignatureRequest",
		mock.Anything, "a@x.com", "A", "contract.pdf",
		"http://front.local/sign/"+workflow.ID+"?token=tok-1", 1).
		Return(nil)

	err := dispatcher.Dispatch(context.Background(), &domain.Notification{
		Type:          domain.NotificationSignatureRequest,
		WorkflowID:    workflow.ID,
		DocumentID:    "doc-1",
		DocumentName:  "contract.pdf",
		RoleNumber:    1,
		Email:         "a@x.com",
		RecipientName: "A",
		AccessToken:   "tok-1",
	})
	require.NoError(t, err)
	notifier.AssertExpectations(t)

	stored, err := repo.GetWorkflow(context.Background(), workflow.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleStatusNotified, stored.RoleByNumber(1).Status)
}

func TestDispatcherSignatureRequestFailure(t *testing.T) {
	repo := testutil.NewMemoryWorkflowRepository()
	workflow := seedActiveWorkflow(t, repo)

	notifier := &MockNotifier{}
	dispatcher := NewDispatcher(notifier, repo, "http://front.local", "http://back.local", slog.Default())

	notifier.On("SendSignatureRequest",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("smtp down"))

	err := dispatcher.Dispatch(context.Background(), &domain.Notification{
		Type:       domain.NotificationSignatureRequest,
		WorkflowID: workflow.ID,
		RoleNumber: 1,
		Email:      "a@x.com",
	})
	require.Error(t, err)

	stored, err := repo.GetWorkflow(context.Background(), workflow.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleStatusPending, stored.RoleByNumber(1).Status)
}

func TestDispatcherCompletion(t *testing.T) {
	notifier := &MockNotifier{}
	dispatcher := NewDispatcher(notifier, testutil.NewMemoryWorkflowRepository(),
		"http://front.local", "http://back.local", slog.Default())

	notifier.On("SendCompletionNotice",
		mock.Anything, "c@x.com", "contract.pdf",
		"http://back.local/api/documents/doc-1/download").
		Return(nil)

	err := dispatcher.Dispatch(context.Background(), &domain.Notification{
		Type:         domain.NotificationCompletion,
		WorkflowID:   "wf-1",
		DocumentID:   "doc-1",
		DocumentName: "contract.pdf",
		Email:        "c@x.com",
	})
	require.NoError(t, err)
	notifier.AssertExpectations(t)
}

func TestDispatcherUnknownType(t *testing.T) {
	dispatcher := NewDispatcher(&MockNotifier{}, testutil.NewMemoryWorkflowRepository(),
		"http://front.local", "http://back.local", slog.Default())

	err := dispatcher.Dispatch(context.Background(), &domain.Notification{Type: "bogus"})
	assert.Error(t, err)
}

func TestAsyncPublisherDeliversDetached(t *testing.T) {
	repo := testutil.NewMemoryWorkflowRepository()
	workflow := seedActiveWorkflow(t, repo)

	delivered := make(chan string, 1)
	notifier := &MockNotifier{}
	notifier.On("SendSignatureRequest",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { delivered <- args.String(1) }).
		Return(nil)

	dispatcher := NewDispatcher(notifier, repo, "http://front.local", "http://back.local", slog.Default())
	publisher := NewAsyncPublisher(dispatcher, slog.Default())

	// The caller's context being cancelled must not stop delivery.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	publisher.Publish(ctx, []domain.Notification{{
		Type:       domain.NotificationSignatureRequest,
		WorkflowID: workflow.ID,
		RoleNumber: 1,
		Email:      "a@x.com",
	}})

	select {
	case email := <-delivered:
		assert.Equal(t, "a@x.com", email)
	case <-time.After(2 * time.Second):
		t.Fatal("notification was never delivered")
	}
}

func TestQueuePublisher(t *testing.T) {
	queue := &MockNotificationQueue{}
	publisher := NewQueuePublisher(queue, slog.Default())

	queue.On("Enqueue", mock.Anything, mock.AnythingOfType("*domain.Notification")).
		Return(nil).Once()
	queue.On("Enqueue", mock.Anything, mock.AnythingOfType("*domain.Notification")).
		Return(errors.New("redis down")).Once()

	// The second enqueue failing must not panic or abort the batch.
	publisher.Publish(context.Background(), []domain.Notification{
		{Type: domain.NotificationSignatureRequest, WorkflowID: "wf-1"},
		{Type: domain.NotificationCompletion, WorkflowID: "wf-1"},
	})
	queue.AssertExpectations(t)
}
