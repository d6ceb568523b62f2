// Package api implements the REST dispatcher for the QMS Hub backend.
//
// Every backend reply follows the envelope convention: success is a 2xx with
// {"response": <payload>}, failure is a non-2xx with {"message": <string>}.
// The analyze endpoint is the one exception and returns its payload bare.
package api

import (
	"context"

	"github.com/hiai-demo-qms/qmshub/internal/client/models"
)

// TokenSource supplies the current bearer token for authenticated requests.
// An empty string means there is no active session.
type TokenSource interface {
	Token() string
}

// DocumentUpload carries the multipart fields for document create/update.
// Zero-value fields are omitted from the form, which makes the same struct
// usable for PATCH with partial updates.
type DocumentUpload struct {
	Code              string
	Title             string
	Description       string
	CategoryID        int
	Version           string
	FileName          string
	File              []byte
	AnalyzeResponseID int
}

// Client is the surface of the QMS Hub backend consumed by the client
// services. One method per endpoint.
type Client interface {
	// Identity.
	SignIn(ctx context.Context, email, password string) (*models.TokenPair, error)
	SignUp(ctx context.Context, fullname, email, password string) (*models.TokenPair, error)
	CurrentUser(ctx context.Context) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)

	// Document registry.
	ListCategories(ctx context.Context) ([]models.Category, error)
	ListDocuments(ctx context.Context) ([]models.Document, error)
	ListDocumentsByUser(ctx context.Context) ([]models.Document, error)
	ListDocumentsByCategory(ctx context.Context, categoryID int) ([]models.Document, error)
	GetDocument(ctx context.Context, id int) (*models.Document, error)
	UploadDocument(ctx context.Context, upload DocumentUpload) (*models.Document, error)
	UpdateDocument(ctx context.Context, id int, upload DocumentUpload) (*models.Document, error)
	DeleteDocument(ctx context.Context, id int) error
	DownloadURL(ctx context.Context, id int) (string, error)

	// Bookmarks (server-backed, authoritative).
	ListBookmarked(ctx context.Context) ([]models.Document, error)
	AddBookmark(ctx context.Context, id int) error
	RemoveBookmark(ctx context.Context, id int) error

	// Chatbot.
	Analyze(ctx context.Context, fileName string, contents []byte) (*models.RawAnalyzeResponse, error)
	Chat(ctx context.Context, question string) (string, error)
}
