package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type WorkflowStatus string

const (
	WorkflowStatusDraft     WorkflowStatus = "draft"
	WorkflowStatusActive    WorkflowStatus = "active"
	WorkflowStatusCompleted WorkflowStatus = "completed"
	WorkflowStatusCancelled WorkflowStatus = "cancelled"
)

type RoleStatus string

const (
	RoleStatusPending   RoleStatus = "pending"
	RoleStatusNotified  RoleStatus = "notified"
	RoleStatusViewed    RoleStatus = "viewed"
	RoleStatusSigned    RoleStatus = "signed"
	RoleStatusCompleted RoleStatus = "completed"
)

// RoleCount is fixed: every workflow has exactly three signers acting in order.
const RoleCount = 3

type SignatureData struct {
	Signature string    `json:"signature"`
	SignedAt  time.Time `json:"signedAt"`
}

type Role struct {
	RoleNumber    int            `json:"roleNumber"`
	Email         *string        `json:"email"`
	Name          string         `json:"name"`
	Status        RoleStatus     `json:"status"`
	SignedAt      *time.Time     `json:"signedAt,omitempty"`
	AccessToken   string         `json:"accessToken"`
	SignatureData *SignatureData `json:"signatureData,omitempty"`
}

type WorkflowMetadata struct {
	TotalSignatures     int    `json:"totalSignatures"`
	CompletedSignatures int    `json:"completedSignatures"`
	ExternalDocumentID  string `json:"externalDocumentId,omitempty"`
	RequestID           string `json:"requestId,omitempty"`
}

type Workflow struct {
	ID          string
	DocumentID  string
	Name        string
	Description string
	Status      WorkflowStatus
	CurrentRole int
	Roles       []Role
	CreatedBy   string
	CompletedAt *time.Time
	Metadata    WorkflowMetadata
	Version     int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// RoleInput is the caller-supplied shape for one signer at workflow creation.
type RoleInput struct {
	Email *string
	Name  string
}

// NewWorkflow builds a draft workflow for a document. Roles 1 and 2 must carry
// an email; role 3's email may be supplied later by role 2 at sign time.
// Tokens must already be minted, one per role in order.
func NewWorkflow(documentID, name, description, createdBy string, roles []RoleInput, tokens []string) (*Workflow, error) {
	if len(roles) != RoleCount {
		return nil, fmt.Errorf("%w: exactly %d roles are required", ErrInvalidInput, RoleCount)
	}
	if len(tokens) != RoleCount {
		return nil, fmt.Errorf("%w: exactly %d access tokens are required", ErrInvalidInput, RoleCount)
	}
	for i := 0; i < 2; i++ {
		if roles[i].Email == nil || *roles[i].Email == "" {
			return nil, fmt.Errorf("%w: role %d email is required", ErrInvalidInput, i+1)
		}
	}

	now := time.Now()
	w := &Workflow{
		ID:          uuid.NewString(),
		DocumentID:  documentID,
		Name:        name,
		Description: description,
		Status:      WorkflowStatusDraft,
		CurrentRole: 1,
		Roles:       make([]Role, 0, RoleCount),
		CreatedBy:   createdBy,
		Metadata: WorkflowMetadata{
			TotalSignatures:     RoleCount,
			CompletedSignatures: 0,
		},
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}

	for i, r := range roles {
		roleName := r.Name
		if roleName == "" {
			roleName = fmt.Sprintf("Role %d", i+1)
		}
		var email *string
		if r.Email != nil && *r.Email != "" {
			e := *r.Email
			email = &e
		}
		w.Roles = append(w.Roles, Role{
			RoleNumber:  i + 1,
			Email:       email,
			Name:        roleName,
			Status:      RoleStatusPending,
			AccessToken: tokens[i],
		})
	}

	return w, nil
}

// RoleByNumber returns the role entry for roleNumber, or nil if out of range.
func (w *Workflow) RoleByNumber(roleNumber int) *Role {
	for i := range w.Roles {
		if w.Roles[i].RoleNumber == roleNumber {
			return &w.Roles[i]
		}
	}
	return nil
}

// CurrentRoleEntry returns the role whose turn it is to act.
func (w *Workflow) CurrentRoleEntry() *Role {
	return w.RoleByNumber(w.CurrentRole)
}
