package services

import (
	"context"
	"sync"

	"github.com/hiai-demo-qms/qmshub/internal/client/api"
	"github.com/hiai-demo-qms/qmshub/internal/client/models"
	"github.com/hiai-demo-qms/qmshub/internal/logging"
)

// DocumentService is a thin facade over the document endpoints with locally
// cached collections. The cache is updated from successful responses only;
// the server stays the authority (last write wins, no conflict resolution).
type DocumentService struct {
	client api.Client
	log    logging.Logger

	mu         sync.RWMutex
	documents  []models.Document
	bookmarked []models.Document
}

func NewDocumentService(client api.Client, log logging.Logger) *DocumentService {
	return &DocumentService{client: client, log: log}
}

// Documents returns a snapshot of the cached document list.
func (s *DocumentService) Documents() []models.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Document, len(s.documents))
	copy(out, s.documents)
	return out
}

// Bookmarked returns a snapshot of the cached bookmarked set.
func (s *DocumentService) Bookmarked() []models.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Document, len(s.bookmarked))
	copy(out, s.bookmarked)
	return out
}

// Fetch loads the public document list into the cache.
func (s *DocumentService) Fetch(ctx context.Context) error {
	docs, err := s.client.ListDocuments(ctx)
	if err != nil {
		return err
	}
	s.setDocuments(docs)
	return nil
}

// FetchByUser loads the current user's documents into the cache.
func (s *DocumentService) FetchByUser(ctx context.Context) error {
	docs, err := s.client.ListDocumentsByUser(ctx)
	if err != nil {
		return err
	}
	s.setDocuments(docs)
	return nil
}

// FetchByCategory loads one category's documents into the cache.
func (s *DocumentService) FetchByCategory(ctx context.Context, categoryID int) error {
	docs, err := s.client.ListDocumentsByCategory(ctx, categoryID)
	if err != nil {
		return err
	}
	s.setDocuments(docs)
	return nil
}

func (s *DocumentService) setDocuments(docs []models.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.documents = docs
}

func (s *DocumentService) Categories(ctx context.Context) ([]models.Category, error) {
	return s.client.ListCategories(ctx)
}

func (s *DocumentService) Get(ctx context.Context, id int) (*models.Document, error) {
	return s.client.GetDocument(ctx, id)
}

func (s *DocumentService) DownloadURL(ctx context.Context, id int) (string, error) {
	return s.client.DownloadURL(ctx, id)
}

// Upload creates a document; the upload may carry the analyzeResponseId
// handed over by the analyzer's side channel.
func (s *DocumentService) Upload(ctx context.Context, upload api.DocumentUpload) (*models.Document, error) {
	doc, err := s.client.UploadDocument(ctx, upload)
	if err != nil {
		return nil, err
	}
	s.log.Info(ctx, "document uploaded", "id", doc.ID, "title", doc.Title)
	return doc, nil
}

// Update patches a document and merges the partial response into the
// matching cached item.
func (s *DocumentService) Update(ctx context.Context, id int, upload api.DocumentUpload) (*models.Document, error) {
	updated, err := s.client.UpdateDocument(ctx, id, upload)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	for i := range s.documents {
		if s.documents[i].ID == id {
			mergeDocument(&s.documents[i], *updated)
			break
		}
	}
	s.mu.Unlock()
	return updated, nil
}

// mergeDocument overlays non-zero fields of src onto dst.
func mergeDocument(dst *models.Document, src models.Document) {
	if src.Code != "" {
		dst.Code = src.Code
	}
	if src.Title != "" {
		dst.Title = src.Title
	}
	if src.Description != "" {
		dst.Description = src.Description
	}
	if src.CategoryID != 0 {
		dst.CategoryID = src.CategoryID
	}
	if src.Version != "" {
		dst.Version = src.Version
	}
	if src.UpdatedAt != "" {
		dst.UpdatedAt = src.UpdatedAt
	}
	if src.FileName != "" {
		dst.FileName = src.FileName
	}
	if src.FilePath != "" {
		dst.FilePath = src.FilePath
	}
	if src.Category.ID != 0 {
		dst.Category = src.Category
	}
}

// Delete removes the document server-side, then drops exactly that entry
// from the cache, preserving the order of the rest. A failed delete leaves
// the cache unchanged.
func (s *DocumentService) Delete(ctx context.Context, id int) error {
	if err := s.client.DeleteDocument(ctx, id); err != nil {
		return err
	}

	s.mu.Lock()
	kept := s.documents[:0]
	for _, doc := range s.documents {
		if doc.ID != id {
			kept = append(kept, doc)
		}
	}
	s.documents = kept
	s.mu.Unlock()

	s.log.Info(ctx, "document deleted", "id", id)
	return nil
}

// RefreshBookmarked re-fetches the authoritative bookmarked set.
func (s *DocumentService) RefreshBookmarked(ctx context.Context) error {
	docs, err := s.client.ListBookmarked(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.bookmarked = docs
	s.mu.Unlock()
	return nil
}

// IsBookmarked checks the cached bookmarked set.
func (s *DocumentService) IsBookmarked(id int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, doc := range s.bookmarked {
		if doc.ID == id {
			return true
		}
	}
	return false
}

// ToggleBookmark adds or removes the bookmark server-side depending on the
// cached membership, then re-fetches the authoritative set. The cache is
// deliberately not mutated optimistically: latency is traded for
// consistency.
func (s *DocumentService) ToggleBookmark(ctx context.Context, id int) error {
	var err error
	if s.IsBookmarked(id) {
		err = s.client.RemoveBookmark(ctx, id)
	} else {
		err = s.client.AddBookmark(ctx, id)
	}
	if err != nil {
		return err
	}
	return s.RefreshBookmarked(ctx)
}
