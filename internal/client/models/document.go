package models

// Category is a document category from api/document/get-categories.
type Category struct {
	ID           int    `json:"id"`
	CategoryName string `json:"categoryName"`
	Description  string `json:"description"`
}

// DocumentOwner is the embedded uploader info on a Document.
type DocumentOwner struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

// DocumentCategory is the embedded category info on a Document.
type DocumentCategory struct {
	ID           int    `json:"id"`
	CategoryName string `json:"categoryName"`
}

// Document is an ISO-compliance document record.
type Document struct {
	ID          int              `json:"id"`
	Code        string           `json:"code"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	CategoryID  int              `json:"categoryId"`
	UserID      string           `json:"userId"`
	Version     string           `json:"version"`
	UploadedAt  string           `json:"uploadedAt"`
	UpdatedAt   string           `json:"updatedAt"`
	FileName    string           `json:"fileName"`
	FilePath    string           `json:"filePath"`
	User        DocumentOwner    `json:"user"`
	Category    DocumentCategory `json:"category"`
}
