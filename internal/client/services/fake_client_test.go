package services

import (
	"context"

	"github.com/hiai-demo-qms/qmshub/internal/client/api"
	"github.com/hiai-demo-qms/qmshub/internal/client/models"
)

// fakeClient implements api.Client for unit tests. Each endpoint records a
// call and delegates to the corresponding function field when set.
type fakeClient struct {
	Calls []string

	SignInFn        func(ctx context.Context, email, password string) (*models.TokenPair, error)
	SignUpFn        func(ctx context.Context, fullname, email, password string) (*models.TokenPair, error)
	CurrentUserFn   func(ctx context.Context) (*models.User, error)
	ChatFn          func(ctx context.Context, question string) (string, error)
	AnalyzeFn       func(ctx context.Context, fileName string, contents []byte) (*models.RawAnalyzeResponse, error)
	ListDocumentsFn func(ctx context.Context) ([]models.Document, error)
	ListByUserFn    func(ctx context.Context) ([]models.Document, error)
	ListByCatFn     func(ctx context.Context, categoryID int) ([]models.Document, error)
	GetDocumentFn   func(ctx context.Context, id int) (*models.Document, error)
	UploadFn        func(ctx context.Context, upload api.DocumentUpload) (*models.Document, error)
	UpdateFn        func(ctx context.Context, id int, upload api.DocumentUpload) (*models.Document, error)
	DeleteFn        func(ctx context.Context, id int) error
	DownloadURLFn   func(ctx context.Context, id int) (string, error)
	BookmarkedFn    func(ctx context.Context) ([]models.Document, error)
	AddBookmarkFn   func(ctx context.Context, id int) error
	RemoveBkFn      func(ctx context.Context, id int) error
}

func (f *fakeClient) record(name string) { f.Calls = append(f.Calls, name) }

func (f *fakeClient) CallCount(name string) int {
	n := 0
	for _, c := range f.Calls {
		if c == name {
			n++
		}
	}
	return n
}

func (f *fakeClient) SignIn(ctx context.Context, email, password string) (*models.TokenPair, error) {
	f.record("sign-in")
	if f.SignInFn != nil {
		return f.SignInFn(ctx, email, password)
	}
	return &models.TokenPair{}, nil
}

func (f *fakeClient) SignUp(ctx context.Context, fullname, email, password string) (*models.TokenPair, error) {
	f.record("sign-up")
	if f.SignUpFn != nil {
		return f.SignUpFn(ctx, fullname, email, password)
	}
	return &models.TokenPair{}, nil
}

func (f *fakeClient) CurrentUser(ctx context.Context) (*models.User, error) {
	f.record("current-user")
	if f.CurrentUserFn != nil {
		return f.CurrentUserFn(ctx)
	}
	return &models.User{}, nil
}

func (f *fakeClient) ListUsers(ctx context.Context) ([]models.User, error) {
	f.record("list-users")
	return nil, nil
}

func (f *fakeClient) ListCategories(ctx context.Context) ([]models.Category, error) {
	f.record("list-categories")
	return nil, nil
}

func (f *fakeClient) ListDocuments(ctx context.Context) ([]models.Document, error) {
	f.record("list-documents")
	if f.ListDocumentsFn != nil {
		return f.ListDocumentsFn(ctx)
	}
	return nil, nil
}

func (f *fakeClient) ListDocumentsByUser(ctx context.Context) ([]models.Document, error) {
	f.record("list-by-user")
	if f.ListByUserFn != nil {
		return f.ListByUserFn(ctx)
	}
	return nil, nil
}

func (f *fakeClient) ListDocumentsByCategory(ctx context.Context, categoryID int) ([]models.Document, error) {
	f.record("list-by-category")
	if f.ListByCatFn != nil {
		return f.ListByCatFn(ctx, categoryID)
	}
	return nil, nil
}

func (f *fakeClient) GetDocument(ctx context.Context, id int) (*models.Document, error) {
	f.record("get-document")
	if f.GetDocumentFn != nil {
		return f.GetDocumentFn(ctx, id)
	}
	return &models.Document{ID: id}, nil
}

func (f *fakeClient) UploadDocument(ctx context.Context, upload api.DocumentUpload) (*models.Document, error) {
	f.record("upload")
	if f.UploadFn != nil {
		return f.UploadFn(ctx, upload)
	}
	return &models.Document{}, nil
}

func (f *fakeClient) UpdateDocument(ctx context.Context, id int, upload api.DocumentUpload) (*models.Document, error) {
	f.record("update")
	if f.UpdateFn != nil {
		return f.UpdateFn(ctx, id, upload)
	}
	return &models.Document{ID: id}, nil
}

func (f *fakeClient) DeleteDocument(ctx context.Context, id int) error {
	f.record("delete")
	if f.DeleteFn != nil {
		return f.DeleteFn(ctx, id)
	}
	return nil
}

func (f *fakeClient) DownloadURL(ctx context.Context, id int) (string, error) {
	f.record("download-url")
	if f.DownloadURLFn != nil {
		return f.DownloadURLFn(ctx, id)
	}
	return "", nil
}

func (f *fakeClient) ListBookmarked(ctx context.Context) ([]models.Document, error) {
	f.record("list-bookmarked")
	if f.BookmarkedFn != nil {
		return f.BookmarkedFn(ctx)
	}
	return nil, nil
}

func (f *fakeClient) AddBookmark(ctx context.Context, id int) error {
	f.record("add-bookmark")
	if f.AddBookmarkFn != nil {
		return f.AddBookmarkFn(ctx, id)
	}
	return nil
}

func (f *fakeClient) RemoveBookmark(ctx context.Context, id int) error {
	f.record("remove-bookmark")
	if f.RemoveBkFn != nil {
		return f.RemoveBkFn(ctx, id)
	}
	return nil
}

func (f *fakeClient) Analyze(ctx context.Context, fileName string, contents []byte) (*models.RawAnalyzeResponse, error) {
	f.record("analyze")
	if f.AnalyzeFn != nil {
		return f.AnalyzeFn(ctx, fileName, contents)
	}
	return &models.RawAnalyzeResponse{AnalyzeResponseID: 1}, nil
}

func (f *fakeClient) Chat(ctx context.Context, question string) (string, error) {
	f.record("chat")
	if f.ChatFn != nil {
		return f.ChatFn(ctx, question)
	}
	return "", nil
}

var _ api.Client = (*fakeClient)(nil)
