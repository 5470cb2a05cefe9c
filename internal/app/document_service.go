package app

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/rohan-lakhani/eSign-Workflow/internal/domain"
)

type DocumentService interface {
	Upload(ctx context.Context, originalName, mimeType string, data []byte, uploadedBy string) (*domain.Document, error)
	Get(ctx context.Context, id string) (*domain.Document, error)
	FileBuffer(ctx context.Context, id string) (*domain.Document, []byte, error)
}

type documentService struct {
	documents domain.DocumentRepository
	blobs     domain.BlobStore
	logger    *slog.Logger
}

func NewDocumentService(documents domain.DocumentRepository, blobs domain.BlobStore, logger *slog.Logger) DocumentService {
	return &documentService{
		documents: documents,
		blobs:     blobs,
		logger:    logger,
	}
}

func (s *documentService) Upload(ctx context.Context, originalName, mimeType string, data []byte, uploadedBy string) (*domain.Document, error) {
	if uploadedBy == "" {
		uploadedBy = "anonymous"
	}

	key, err := s.blobs.Store(ctx, data, filepath.Ext(originalName))
	if err != nil {
		return nil, fmt.Errorf("store document file: %w", err)
	}

	doc := domain.NewDocument(key, originalName, mimeType, int64(len(data)), uploadedBy)
	if err := s.documents.CreateDocument(ctx, doc); err != nil {
		return nil, err
	}

	s.logger.Info("document uploaded",
		"document_id", doc.ID,
		"original_name", doc.OriginalName,
		"size", doc.Size)

	return doc, nil
}

func (s *documentService) Get(ctx context.Context, id string) (*domain.Document, error) {
	doc, err := s.documents.GetDocument(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, domain.ErrDocumentNotFound
	}
	return doc, nil
}

func (s *documentService) FileBuffer(ctx context.Context, id string) (*domain.Document, []byte, error) {
	doc, err := s.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	data, err := s.blobs.Fetch(ctx, doc.Filename)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: file missing from storage", domain.ErrDocumentNotFound)
	}
	return doc, data, nil
}
