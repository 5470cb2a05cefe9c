package domain

import (
	"fmt"
	"time"
)

// Transitions are pure functions over a Workflow value: they validate
// preconditions, return the next state and the notifications the caller
// should dispatch once that state is persisted. They never touch I/O.

// SubmitRegistration carries the identifiers returned by the external signing
// backend when the document was registered with it.
type SubmitRegistration struct {
	ExternalDocumentID string
	RequestID          string
}

// Submit moves a draft workflow to active and requests notification of role 1.
func Submit(w Workflow, reg SubmitRegistration, now time.Time) (Workflow, []Notification, error) {
	if w.Status != WorkflowStatusDraft {
		return w, nil, fmt.Errorf("%w: workflow already submitted", ErrInvalidState)
	}

	next := w.clone()
	next.Status = WorkflowStatusActive
	next.Metadata.ExternalDocumentID = reg.ExternalDocumentID
	next.Metadata.RequestID = reg.RequestID
	next.UpdatedAt = now

	role1 := next.RoleByNumber(1)
	notifications := []Notification{{
		Type:          NotificationSignatureRequest,
		WorkflowID:    next.ID,
		DocumentID:    next.DocumentID,
		RoleNumber:    role1.RoleNumber,
		Email:         *role1.Email,
		RecipientName: role1.Name,
		AccessToken:   role1.AccessToken,
	}}

	return next, notifications, nil
}

// Sign records the current role's signature and advances the workflow. Role 2
// must supply role 3's email. On the final signature the workflow completes
// and every signer with a known email is asked to be notified.
func Sign(w Workflow, roleNumber int, signature, role3Email string, now time.Time) (Workflow, []Notification, error) {
	if w.CurrentRole != roleNumber {
		return w, nil, fmt.Errorf("%w: not your turn to sign", ErrInvalidState)
	}

	current := w.RoleByNumber(roleNumber)
	if current == nil {
		return w, nil, fmt.Errorf("%w: role %d does not exist", ErrInvalidInput, roleNumber)
	}
	if current.Status == RoleStatusSigned {
		return w, nil, fmt.Errorf("%w: already signed", ErrInvalidState)
	}
	if roleNumber == 2 && role3Email == "" {
		return w, nil, fmt.Errorf("%w: role 3 email is required", ErrInvalidInput)
	}

	next := w.clone()

	if roleNumber == 2 {
		next.RoleByNumber(3).Email = &role3Email
	}

	if signature == "" {
		signature = "mock-signature"
	}

	signer := next.RoleByNumber(roleNumber)
	signedAt := now
	signer.Status = RoleStatusSigned
	signer.SignedAt = &signedAt
	signer.SignatureData = &SignatureData{Signature: signature, SignedAt: now}
	next.Metadata.CompletedSignatures++

	if roleNumber < RoleCount {
		next.CurrentRole = roleNumber + 1
	} else {
		completedAt := now
		next.Status = WorkflowStatusCompleted
		next.CompletedAt = &completedAt
	}
	next.UpdatedAt = now

	var notifications []Notification
	if next.Status == WorkflowStatusCompleted {
		for _, role := range next.Roles {
			if role.Email == nil {
				continue
			}
			notifications = append(notifications, Notification{
				Type:          NotificationCompletion,
				WorkflowID:    next.ID,
				DocumentID:    next.DocumentID,
				RoleNumber:    role.RoleNumber,
				Email:         *role.Email,
				RecipientName: role.Name,
			})
		}
	} else if nextRole := next.CurrentRoleEntry(); nextRole != nil && nextRole.Email != nil {
		notifications = append(notifications, Notification{
			Type:          NotificationSignatureRequest,
			WorkflowID:    next.ID,
			DocumentID:    next.DocumentID,
			RoleNumber:    nextRole.RoleNumber,
			Email:         *nextRole.Email,
			RecipientName: nextRole.Name,
			AccessToken:   nextRole.AccessToken,
		})
	}

	return next, notifications, nil
}

// clone returns a deep copy so transitions never alias the input's role slice.
func (w Workflow) clone() Workflow {
	next := w
	next.Roles = make([]Role, len(w.Roles))
	copy(next.Roles, w.Roles)
	for i := range next.Roles {
		if e := next.Roles[i].Email; e != nil {
			v := *e
			next.Roles[i].Email = &v
		}
		if s := next.Roles[i].SignedAt; s != nil {
			v := *s
			next.Roles[i].SignedAt = &v
		}
		if d := next.Roles[i].SignatureData; d != nil {
			v := *d
			next.Roles[i].SignatureData = &v
		}
	}
	if c := w.CompletedAt; c != nil {
		v := *c
		next.CompletedAt = &v
	}
	return next
}
