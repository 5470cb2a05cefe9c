package http

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rohan-lakhani/eSign-Workflow/internal/app"
	"github.com/rohan-lakhani/eSign-Workflow/internal/domain"
)

type DocumentHandler struct {
	documents      app.DocumentService
	maxUploadBytes int64
}

func NewDocumentHandler(documents app.DocumentService, maxUploadBytes int64) *DocumentHandler {
	return &DocumentHandler{documents: documents, maxUploadBytes: maxUploadBytes}
}

func (h *DocumentHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no file uploaded"})
		return
	}
	if fileHeader.Size > h.maxUploadBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("file exceeds %d bytes", h.maxUploadBytes)})
		return
	}
	if !isPDF(fileHeader.Filename, fileHeader.Header.Get("Content-Type")) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "only PDF files are allowed"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	doc, err := h.documents.Upload(c, fileHeader.Filename, "application/pdf", data, c.PostForm("uploadedBy"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"document": gin.H{
			"id":           doc.ID,
			"filename":     doc.Filename,
			"originalName": doc.OriginalName,
			"status":       doc.Status,
			"createdAt":    doc.CreatedAt,
		},
	})
}

func (h *DocumentHandler) Preview(c *gin.Context) {
	doc, data, err := h.documents.FileBuffer(c, c.Param("documentId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", doc.OriginalName))
	c.Header("Cache-Control", "public, max-age=3600")
	c.Data(http.StatusOK, "application/pdf", data)
}

func (h *DocumentHandler) Download(c *gin.Context) {
	doc, data, err := h.documents.FileBuffer(c, c.Param("documentId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.OriginalName))
	c.Header("Content-Length", fmt.Sprintf("%d", doc.Size))
	c.Data(http.StatusOK, "application/pdf", data)
}

type WorkflowHandler struct {
	workflows app.WorkflowService
}

func NewWorkflowHandler(workflows app.WorkflowService) *WorkflowHandler {
	return &WorkflowHandler{workflows: workflows}
}

type RoleRequest struct {
	Email *string `json:"email"`
	Name  string  `json:"name"`
}

type CreateWorkflowRequest struct {
	DocumentID  string        `json:"documentId" binding:"required"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Roles       []RoleRequest `json:"roles" binding:"required"`
}

type SignRequest struct {
	Signature  string `json:"signature"`
	Role3Email string `json:"role3Email"`
}

func (h *WorkflowHandler) Create(c *gin.Context) {
	var req CreateWorkflowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	roles := make([]domain.RoleInput, 0, len(req.Roles))
	for _, r := range req.Roles {
		roles = append(roles, domain.RoleInput{Email: r.Email, Name: r.Name})
	}

	view, err := h.workflows.Create(c, app.CreateWorkflowInput{
		DocumentID:  req.DocumentID,
		Name:        req.Name,
		Description: req.Description,
		Roles:       roles,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "workflow": view})
}

func (h *WorkflowHandler) Submit(c *gin.Context) {
	view, err := h.workflows.Submit(c, c.Param("workflowId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "workflow": view})
}

func (h *WorkflowHandler) Sign(c *gin.Context) {
	access, ok := RoleAccessFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no access token provided"})
		return
	}

	var req SignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	view, err := h.workflows.Sign(c, c.Param("workflowId"), *access, app.SignInput{
		Signature:  req.Signature,
		Role3Email: req.Role3Email,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"message":     "Document signed successfully",
		"id":          view.ID,
		"status":      view.Status,
		"currentRole": view.CurrentRole,
		"completedAt": view.CompletedAt,
	})
}

func (h *WorkflowHandler) Get(c *gin.Context) {
	access, ok := RoleAccessFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no access token provided"})
		return
	}

	view, err := h.workflows.Get(c, c.Param("workflowId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"workflow": struct {
			*app.WorkflowView
			CurrentUserRole *app.RoleView `json:"currentUserRole,omitempty"`
		}{view, view.RoleViewByNumber(access.RoleNumber)},
	})
}

func isPDF(filename, contentType string) bool {
	if strings.EqualFold(filepath.Ext(filename), ".pdf") {
		return true
	}
	return contentType == "application/pdf"
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrDocumentNotFound), errors.Is(err, domain.ErrWorkflowNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrInvalidState):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalidCredential):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
