package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hiai-demo-qms/qmshub/internal/client/models"
	"github.com/hiai-demo-qms/qmshub/internal/common"
	"github.com/hiai-demo-qms/qmshub/internal/logging"
)

// envelope is the JSON wrapper used by every backend reply: exactly one of
// Response (2xx) or Message (non-2xx) is populated.
type envelope struct {
	Response json.RawMessage `json:"response"`
	Message  string          `json:"message"`
}

// HTTPClient implements Client over net/http. The bearer token is read from
// the TokenSource on every call, so a login performed after construction is
// picked up automatically.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	log     logging.Logger
}

func NewHTTPClient(baseURL string, timeout time.Duration, tokens TokenSource, log logging.Logger) *HTTPClient {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &HTTPClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
		log:     log,
	}
}

func (c *HTTPClient) newRequest(ctx context.Context, method, path, contentType string, body io.Reader, authenticated bool) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("X-Request-Id", uuid.NewString())
	if authenticated && c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	return req, nil
}

// roundTrip executes the request and decodes the reply. When bare is false
// the 2xx payload is unwrapped from the {"response": ...} envelope; an empty
// envelope leaves out untouched (some mutating endpoints reply with no
// payload). When bare is true the body is decoded directly into out.
func (c *HTTPClient) roundTrip(req *http.Request, out any, bare bool) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrNetwork, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: reading response: %v", common.ErrNetwork, err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		var env envelope
		_ = json.Unmarshal(data, &env)
		c.log.Warn(req.Context(), "request rejected",
			"method", req.Method, "path", req.URL.Path, "status", resp.StatusCode, "message", env.Message)
		return &ServerError{Status: resp.StatusCode, Message: env.Message}
	}

	if out == nil {
		return nil
	}

	if bare {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
		return nil
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return fmt.Errorf("decoding envelope: %w", err)
	}
	if len(env.Response) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Response, out); err != nil {
		return fmt.Errorf("decoding payload: %w", err)
	}
	return nil
}

func (c *HTTPClient) getJSON(ctx context.Context, path string, authenticated bool, out any) error {
	req, err := c.newRequest(ctx, http.MethodGet, path, "", nil, authenticated)
	if err != nil {
		return err
	}
	return c.roundTrip(req, out, false)
}

func (c *HTTPClient) sendJSON(ctx context.Context, method, path string, body any, authenticated bool, out any) error {
	encoded, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encoding request: %w", err)
	}
	req, err := c.newRequest(ctx, method, path, "application/json", bytes.NewReader(encoded), authenticated)
	if err != nil {
		return err
	}
	return c.roundTrip(req, out, false)
}

func (c *HTTPClient) sendMultipart(ctx context.Context, method, path string, form DocumentUpload, out any, bare bool) error {
	contentType, body, err := form.encode()
	if err != nil {
		return err
	}
	req, err := c.newRequest(ctx, method, path, contentType, body, true)
	if err != nil {
		return err
	}
	return c.roundTrip(req, out, bare)
}

func (c *HTTPClient) SignIn(ctx context.Context, email, password string) (*models.TokenPair, error) {
	body := map[string]string{"email": email, "password": password}
	tokens := &models.TokenPair{}
	if err := c.sendJSON(ctx, http.MethodPost, "sign-in", body, false, tokens); err != nil {
		return nil, err
	}
	return tokens, nil
}

func (c *HTTPClient) SignUp(ctx context.Context, fullname, email, password string) (*models.TokenPair, error) {
	body := map[string]string{"fullname": fullname, "email": email, "password": password}
	tokens := &models.TokenPair{}
	if err := c.sendJSON(ctx, http.MethodPost, "sign-up", body, false, tokens); err != nil {
		return nil, err
	}
	return tokens, nil
}

func (c *HTTPClient) CurrentUser(ctx context.Context) (*models.User, error) {
	user := &models.User{}
	if err := c.getJSON(ctx, "api/user", true, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ListUsers hits the same path as CurrentUser; for admin tokens the backend
// replies with the full user collection.
func (c *HTTPClient) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := c.getJSON(ctx, "api/user", true, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *HTTPClient) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := c.getJSON(ctx, "api/document/get-categories", false, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *HTTPClient) ListDocuments(ctx context.Context) ([]models.Document, error) {
	var docs []models.Document
	if err := c.getJSON(ctx, "api/document", false, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

func (c *HTTPClient) ListDocumentsByUser(ctx context.Context) ([]models.Document, error) {
	var docs []models.Document
	if err := c.getJSON(ctx, "api/document/user", true, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

func (c *HTTPClient) ListDocumentsByCategory(ctx context.Context, categoryID int) ([]models.Document, error) {
	var docs []models.Document
	path := fmt.Sprintf("api/document/category?categoryId=%d", categoryID)
	if err := c.getJSON(ctx, path, true, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

func (c *HTTPClient) GetDocument(ctx context.Context, id int) (*models.Document, error) {
	doc := &models.Document{}
	if err := c.getJSON(ctx, fmt.Sprintf("api/document/%d", id), true, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (c *HTTPClient) UploadDocument(ctx context.Context, upload DocumentUpload) (*models.Document, error) {
	doc := &models.Document{}
	if err := c.sendMultipart(ctx, http.MethodPost, "api/document", upload, doc, false); err != nil {
		return nil, err
	}
	return doc, nil
}

func (c *HTTPClient) UpdateDocument(ctx context.Context, id int, upload DocumentUpload) (*models.Document, error) {
	doc := &models.Document{}
	path := fmt.Sprintf("api/document/%d", id)
	if err := c.sendMultipart(ctx, http.MethodPatch, path, upload, doc, false); err != nil {
		return nil, err
	}
	return doc, nil
}

func (c *HTTPClient) DeleteDocument(ctx context.Context, id int) error {
	req, err := c.newRequest(ctx, http.MethodDelete, fmt.Sprintf("api/document/%d", id), "", nil, true)
	if err != nil {
		return err
	}
	return c.roundTrip(req, nil, false)
}

func (c *HTTPClient) DownloadURL(ctx context.Context, id int) (string, error) {
	var url string
	if err := c.getJSON(ctx, fmt.Sprintf("api/document/%d/download", id), true, &url); err != nil {
		return "", err
	}
	if url == "" {
		return "", fmt.Errorf("%w: no download url in response", common.ErrServer)
	}
	return url, nil
}

func (c *HTTPClient) ListBookmarked(ctx context.Context) ([]models.Document, error) {
	var docs []models.Document
	if err := c.getJSON(ctx, "api/document/bookmarked", true, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

func (c *HTTPClient) AddBookmark(ctx context.Context, id int) error {
	req, err := c.newRequest(ctx, http.MethodPost, fmt.Sprintf("api/document/bookmark/%d", id), "", nil, true)
	if err != nil {
		return err
	}
	return c.roundTrip(req, nil, false)
}

func (c *HTTPClient) RemoveBookmark(ctx context.Context, id int) error {
	req, err := c.newRequest(ctx, http.MethodDelete, fmt.Sprintf("api/document/bookmark/%d", id), "", nil, true)
	if err != nil {
		return err
	}
	return c.roundTrip(req, nil, false)
}

// Analyze submits the file for compliance scoring. The endpoint replies with
// the analysis object directly, not wrapped in the envelope.
func (c *HTTPClient) Analyze(ctx context.Context, fileName string, contents []byte) (*models.RawAnalyzeResponse, error) {
	form := DocumentUpload{FileName: fileName, File: contents}
	raw := &models.RawAnalyzeResponse{}
	if err := c.sendMultipart(ctx, http.MethodPost, "api/chatbot/analyze", form, raw, true); err != nil {
		return nil, err
	}
	if raw.AnalyzeResponseID == 0 {
		return nil, fmt.Errorf("%w: analysis response missing analyzeResponseId", common.ErrServer)
	}
	return raw, nil
}

func (c *HTTPClient) Chat(ctx context.Context, question string) (string, error) {
	body := map[string]string{"question": question}
	var answer string
	if err := c.sendJSON(ctx, http.MethodPost, "api/chatbot/chat", body, true, &answer); err != nil {
		return "", err
	}
	return answer, nil
}

var _ Client = (*HTTPClient)(nil)
