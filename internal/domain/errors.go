package domain

import "errors"

// ErrDocumentNotFound indicates the referenced document does not exist.
var ErrDocumentNotFound = errors.New("document not found")

// ErrWorkflowNotFound indicates the requested workflow does not exist.
var ErrWorkflowNotFound = errors.New("workflow not found")

// ErrInvalidInput indicates a request was rejected before any mutation took place.
var ErrInvalidInput = errors.New("invalid input")

// ErrInvalidState indicates a transition was attempted out of order.
var ErrInvalidState = errors.New("invalid state")

// ErrInvalidCredential indicates a role-access credential does not match the workflow.
var ErrInvalidCredential = errors.New("invalid credential")

// ErrConflict indicates a concurrent mutation was detected at write time.
var ErrConflict = errors.New("workflow was modified concurrently")
