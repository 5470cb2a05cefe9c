package database

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rohan-lakhani/eSign-Workflow/internal/domain"
)

type PostgresDocumentRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresDocumentRepository(pool *pgxpool.Pool) domain.DocumentRepository {
	return &PostgresDocumentRepository{pool: pool}
}

func (r *PostgresDocumentRepository) CreateDocument(ctx context.Context, document *domain.Document) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO documents (
			id, filename, original_name, mime_type, size, uploaded_by, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		document.ID,
		document.Filename,
		document.OriginalName,
		document.MimeType,
		document.Size,
		document.UploadedBy,
		document.Status,
		document.CreatedAt,
		document.UpdatedAt,
	)
	return err
}

func (r *PostgresDocumentRepository) GetDocument(ctx context.Context, id string) (*domain.Document, error) {
	var document domain.Document
	err := r.pool.QueryRow(ctx, `
		SELECT id, filename, original_name, mime_type, size, uploaded_by, status, created_at, updated_at
		FROM documents WHERE id = $1`, id).Scan(
		&document.ID,
		&document.Filename,
		&document.OriginalName,
		&document.MimeType,
		&document.Size,
		&document.UploadedBy,
		&document.Status,
		&document.CreatedAt,
		&document.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &document, nil
}
