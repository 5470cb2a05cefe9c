package domain

type NotificationType string

const (
	// NotificationSignatureRequest asks a role to sign via its emailed link.
	NotificationSignatureRequest NotificationType = "signature_request"
	// NotificationCompletion tells a signer the document is fully signed.
	NotificationCompletion NotificationType = "completion"
)

// Notification is a pending email emitted by a state transition. Transitions
// return notifications instead of sending mail themselves; the application
// layer dispatches them after the workflow row is persisted. Delivery is
// best-effort and never rolls a transition back.
type Notification struct {
	Type          NotificationType `json:"type"`
	WorkflowID    string           `json:"workflowId"`
	DocumentID    string           `json:"documentId"`
	DocumentName  string           `json:"documentName"`
	RoleNumber    int              `json:"roleNumber"`
	Email         string           `json:"email"`
	RecipientName string           `json:"recipientName"`
	AccessToken   string           `json:"accessToken,omitempty"`
	Attempts      int              `json:"attempts"`
}
