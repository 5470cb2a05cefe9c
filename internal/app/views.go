package app

import (
	"time"

	"github.com/rohan-lakhani/eSign-Workflow/internal/domain"
)

// WorkflowView is the outward projection of a workflow. Access tokens are
// deliberately absent: they travel only inside signing emails.
type WorkflowView struct {
	ID          string                   `json:"id"`
	Name        string                   `json:"name"`
	Description string                   `json:"description,omitempty"`
	Status      domain.WorkflowStatus    `json:"status"`
	CurrentRole int                      `json:"currentRole"`
	Document    *DocumentRef             `json:"document,omitempty"`
	Roles       []RoleView               `json:"roles"`
	Metadata    *domain.WorkflowMetadata `json:"metadata,omitempty"`
	CreatedAt   time.Time                `json:"createdAt"`
	CompletedAt *time.Time               `json:"completedAt,omitempty"`
}

type DocumentRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type RoleView struct {
	RoleNumber int               `json:"roleNumber"`
	Email      *string           `json:"email"`
	Name       string            `json:"name"`
	Status     domain.RoleStatus `json:"status"`
	SignedAt   *time.Time        `json:"signedAt,omitempty"`
}

func newWorkflowView(w *domain.Workflow, doc *domain.Document) *WorkflowView {
	view := &WorkflowView{
		ID:          w.ID,
		Name:        w.Name,
		Description: w.Description,
		Status:      w.Status,
		CurrentRole: w.CurrentRole,
		Roles:       make([]RoleView, 0, len(w.Roles)),
		Metadata:    &w.Metadata,
		CreatedAt:   w.CreatedAt,
		CompletedAt: w.CompletedAt,
	}
	if doc != nil {
		view.Document = &DocumentRef{ID: doc.ID, Name: doc.OriginalName}
	}
	for _, role := range w.Roles {
		view.Roles = append(view.Roles, RoleView{
			RoleNumber: role.RoleNumber,
			Email:      role.Email,
			Name:       role.Name,
			Status:     role.Status,
			SignedAt:   role.SignedAt,
		})
	}
	return view
}

// RoleViewByNumber picks one role projection out of a view, used to attach
// currentUserRole to authenticated reads.
func (v *WorkflowView) RoleViewByNumber(roleNumber int) *RoleView {
	for i := range v.Roles {
		if v.Roles[i].RoleNumber == roleNumber {
			return &v.Roles[i]
		}
	}
	return nil
}
