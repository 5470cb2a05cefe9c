package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rohan-lakhani/eSign-Workflow/internal/domain"
)

const workflowColumns = `id, document_id, name, description, status, current_role_number,
	roles, created_by, completed_at, metadata, version, created_at, updated_at`

type PostgresWorkflowRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresWorkflowRepository(pool *pgxpool.Pool) domain.WorkflowRepository {
	return &PostgresWorkflowRepository{pool: pool}
}

func (r *PostgresWorkflowRepository) CreateWorkflow(ctx context.Context, workflow *domain.Workflow) error {
	roles, err := json.Marshal(workflow.Roles)
	if err != nil {
		return fmt.Errorf("marshal roles: %w", err)
	}
	metadata, err := json.Marshal(workflow.Metadata)
	if err != nil {
		return fmt.Errorf("marshal metadata: %w", err)
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO workflows (
			id, document_id, name, description, status, current_role_number,
			roles, created_by, completed_at, metadata, version, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		workflow.ID,
		workflow.DocumentID,
		workflow.Name,
		workflow.Description,
		workflow.Status,
		workflow.CurrentRole,
		roles,
		workflow.CreatedBy,
		workflow.CompletedAt,
		metadata,
		workflow.Version,
		workflow.CreatedAt,
		workflow.UpdatedAt,
	)
	return err
}

func (r *PostgresWorkflowRepository) GetWorkflow(ctx context.Context, id string) (*domain.Workflow, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+workflowColumns+` FROM workflows WHERE id = $1`, id)

	workflow, err := scanWorkflow(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return workflow, nil
}

func (r *PostgresWorkflowRepository) UpdateWorkflow(ctx context.Context, workflow *domain.Workflow) error {
	roles, err := json.Marshal(workflow.Roles)
	if err != nil {
		return fmt.Errorf("marshal roles: %w", err)
	}
	metadata, err := json.Marshal(workflow.Metadata)
	if err != nil {
		return fmt.Errorf("marshal metadata: %w", err)
	}

	tag, err := r.pool.Exec(ctx, `
		UPDATE workflows
		SET name = $1, description = $2, status = $3, current_role_number = $4,
			roles = $5, completed_at = $6, metadata = $7,
			version = version + 1, updated_at = $8
		WHERE id = $9 AND version = $10`,
		workflow.Name,
		workflow.Description,
		workflow.Status,
		workflow.CurrentRole,
		roles,
		workflow.CompletedAt,
		metadata,
		workflow.UpdatedAt,
		workflow.ID,
		workflow.Version,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrConflict
	}

	workflow.Version++
	return nil
}

func (r *PostgresWorkflowRepository) MarkRoleNotified(ctx context.Context, workflowID string, roleNumber int) error {
	// Read-modify-write under the version check; a couple of retries absorbs
	// races with concurrent sign calls.
	for attempt := 0; attempt < 3; attempt++ {
		workflow, err := r.GetWorkflow(ctx, workflowID)
		if err != nil {
			return err
		}
		if workflow == nil {
			return domain.ErrWorkflowNotFound
		}

		role := workflow.RoleByNumber(roleNumber)
		if role == nil {
			return fmt.Errorf("%w: role %d does not exist", domain.ErrInvalidInput, roleNumber)
		}
		if role.Status != domain.RoleStatusPending {
			return nil
		}

		role.Status = domain.RoleStatusNotified
		workflow.UpdatedAt = time.Now()

		err = r.UpdateWorkflow(ctx, workflow)
		if errors.Is(err, domain.ErrConflict) {
			continue
		}
		return err
	}
	return domain.ErrConflict
}

func (r *PostgresWorkflowRepository) ListAwaitingSignature(ctx context.Context, cutoff time.Time, limit int) ([]*domain.Workflow, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+workflowColumns+`
		FROM workflows
		WHERE status = $1 AND updated_at < $2
		ORDER BY updated_at ASC
		LIMIT $3`,
		domain.WorkflowStatusActive, cutoff, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var workflows []*domain.Workflow
	for rows.Next() {
		workflow, err := scanWorkflow(rows)
		if err != nil {
			return nil, err
		}
		workflows = append(workflows, workflow)
	}
	return workflows, rows.Err()
}

func scanWorkflow(row pgx.Row) (*domain.Workflow, error) {
	var (
		workflow domain.Workflow
		roles    []byte
		metadata []byte
	)
	err := row.Scan(
		&workflow.ID,
		&workflow.DocumentID,
		&workflow.Name,
		&workflow.Description,
		&workflow.Status,
		&workflow.CurrentRole,
		&roles,
		&workflow.CreatedBy,
		&workflow.CompletedAt,
		&metadata,
		&workflow.Version,
		&workflow.CreatedAt,
		&workflow.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(roles, &workflow.Roles); err != nil {
		return nil, fmt.Errorf("unmarshal roles: %w", err)
	}
	if err := json.Unmarshal(metadata, &workflow.Metadata); err != nil {
		return nil, fmt.Errorf("unmarshal metadata: %w", err)
	}
	return &workflow, nil
}
