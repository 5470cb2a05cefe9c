package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const MigrationSQL = `
-- Documents table
CREATE TABLE documents (
	id UUID PRIMARY KEY,
	filename VARCHAR(255) NOT NULL UNIQUE,
	original_name VARCHAR(255) NOT NULL,
	mime_type VARCHAR(100) NOT NULL,
	size BIGINT NOT NULL,
	uploaded_by VARCHAR(255) NOT NULL,
	status TEXT NOT NULL DEFAULT 'uploaded',
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

-- Workflows table
CREATE TABLE workflows (
	id UUID PRIMARY KEY,
	document_id UUID NOT NULL REFERENCES documents(id),
	name VARCHAR(255) NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL DEFAULT 'draft',
	current_role_number INTEGER NOT NULL DEFAULT 1,
	roles JSONB NOT NULL,
	created_by VARCHAR(255) NOT NULL,
	completed_at TIMESTAMPTZ,
	metadata JSONB NOT NULL DEFAULT '{}',
	version INTEGER NOT NULL DEFAULT 1,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

-- Indexes
CREATE INDEX idx_workflows_status_created_at ON workflows(status, created_at DESC);
CREATE INDEX idx_workflows_status_updated_at ON workflows(status, updated_at);
CREATE INDEX idx_documents_uploaded_by ON documents(uploaded_by, created_at DESC);
`

func SetupTestDatabase(t *testing.T, ctx context.Context) (testcontainers.Container, *pgxpool.Pool) {
	pgContainer, err := postgres.Run(ctx,
		"postgres:15",
		postgres.WithDatabase("esign_test"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	require.NoError(t, err)

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)

	_, err = pool.Exec(ctx, MigrationSQL)
	require.NoError(t, err)

	return pgContainer, pool
}

func CleanupTestDatabase(t *testing.T, ctx context.Context, container testcontainers.Container, pool *pgxpool.Pool) {
	if pool != nil {
		pool.Close()
	}
	if container != nil {
		err := container.Terminate(ctx)
		require.NoError(t, err)
	}
}

func TruncateTables(t *testing.T, ctx context.Context, pool *pgxpool.Pool) {
	_, err := pool.Exec(ctx, "TRUNCATE TABLE workflows, documents CASCADE")
	require.NoError(t, err)
}
