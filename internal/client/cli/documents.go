package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/hiai-demo-qms/qmshub/internal/client/api"
	"github.com/hiai-demo-qms/qmshub/internal/client/models"
)

// parseID extracts the numeric id argument of commands like "doc 3".
func parseID(args []string) (int, error) {
	if len(args) == 0 {
		return 0, fmt.Errorf("an id argument is required")
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", args[0])
	}
	return id, nil
}

func printDocuments(docs []models.Document) {
	if len(docs) == 0 {
		printlnFn("No documents.")
		return
	}
	for _, d := range docs {
		printlnFn(fmt.Sprintf("%4d  %-10s  %-40s  %s", d.ID, d.Code, d.Title, d.Category.CategoryName))
	}
}

func (a *App) Docs(ctx context.Context) error {
	if err := a.documents.Fetch(ctx); err != nil {
		printlnFn("Cannot load documents:", err.Error())
		return err
	}
	printDocuments(a.documents.Documents())
	return nil
}

func (a *App) MyDocs(ctx context.Context) error {
	if err := a.documents.FetchByUser(ctx); err != nil {
		printlnFn("Cannot load your documents:", err.Error())
		return err
	}
	printDocuments(a.documents.Documents())
	return nil
}

func (a *App) Categories(ctx context.Context) error {
	categories, err := a.documents.Categories(ctx)
	if err != nil {
		printlnFn("Cannot load categories:", err.Error())
		return err
	}
	for _, c := range categories {
		printlnFn(fmt.Sprintf("%4d  %-30s  %s", c.ID, c.CategoryName, c.Description))
	}
	return nil
}

func (a *App) ByCategory(ctx context.Context, args []string) error {
	id, err := parseID(args)
	if err != nil {
		printlnFn(err.Error())
		return err
	}
	if err := a.documents.FetchByCategory(ctx, id); err != nil {
		printlnFn("Cannot load documents:", err.Error())
		return err
	}
	printDocuments(a.documents.Documents())
	return nil
}

func (a *App) ShowDoc(ctx context.Context, args []string) error {
	id, err := parseID(args)
	if err != nil {
		printlnFn(err.Error())
		return err
	}
	doc, err := a.documents.Get(ctx, id)
	if err != nil {
		printlnFn("Cannot load document:", err.Error())
		return err
	}
	printlnFn(fmt.Sprintf("#%d %s (%s)", doc.ID, doc.Title, doc.Code))
	printlnFn("Category:", doc.Category.CategoryName)
	printlnFn("Version:", doc.Version, " Uploaded:", doc.UploadedAt)
	printlnFn("By:", doc.User.FullName, "<"+doc.User.Email+">")
	printlnFn(doc.Description)
	return nil
}

func (a *App) Download(ctx context.Context, args []string) error {
	id, err := parseID(args)
	if err != nil {
		printlnFn(err.Error())
		return err
	}
	url, err := a.documents.DownloadURL(ctx, id)
	if err != nil {
		printlnFn("Cannot get download link:", err.Error())
		return err
	}
	printlnFn("Download link:", url)
	return nil
}

// Upload prompts for the document fields, reads the file from disk, and
// creates the record. A compliance analysis run just before the upload is
// linked via its analyzeResponseId.
func (a *App) Upload(ctx context.Context) error {
	code, err := getSimpleText(a.reader, "Document code", os.Stdout)
	if err != nil {
		return err
	}
	title, err := getSimpleText(a.reader, "Title", os.Stdout)
	if err != nil {
		return err
	}
	description, err := getSimpleText(a.reader, "Description", os.Stdout)
	if err != nil {
		return err
	}
	categoryRaw, err := getSimpleText(a.reader, "Category id", os.Stdout)
	if err != nil {
		return err
	}
	categoryID, err := strconv.Atoi(categoryRaw)
	if err != nil {
		printlnFn("Invalid category id:", categoryRaw)
		return err
	}
	version, err := getSimpleText(a.reader, "Version", os.Stdout)
	if err != nil {
		return err
	}
	path, err := getSimpleText(a.reader, "Path to the PDF file", os.Stdout)
	if err != nil {
		return err
	}
	contents, err := os.ReadFile(path)
	if err != nil {
		printlnFn("Cannot read file:", err.Error())
		return err
	}

	doc, err := a.documents.Upload(ctx, api.DocumentUpload{
		Code:              code,
		Title:             title,
		Description:       description,
		CategoryID:        categoryID,
		Version:           version,
		FileName:          filepath.Base(path),
		File:              contents,
		AnalyzeResponseID: a.lastAnalyzeID,
	})
	if err != nil {
		printlnFn("Upload failed:", err.Error())
		return err
	}

	// the analysis id is linked once, then the analyzer starts fresh
	a.lastAnalyzeID = 0
	a.analyzer.Reset()

	printlnFn(fmt.Sprintf("Uploaded #%d %s", doc.ID, doc.Title))
	return nil
}

// UpdateDoc prompts for new values; empty answers leave fields unchanged.
func (a *App) UpdateDoc(ctx context.Context, args []string) error {
	id, err := parseID(args)
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	title, err := getSimpleText(a.reader, "New title (empty keeps current)", os.Stdout)
	if err != nil {
		return err
	}
	description, err := getSimpleText(a.reader, "New description (empty keeps current)", os.Stdout)
	if err != nil {
		return err
	}
	version, err := getSimpleText(a.reader, "New version (empty keeps current)", os.Stdout)
	if err != nil {
		return err
	}

	upload := api.DocumentUpload{Title: title, Description: description, Version: version}

	path, err := getSimpleText(a.reader, "New file path (empty keeps current)", os.Stdout)
	if err != nil {
		return err
	}
	if path != "" {
		contents, err := os.ReadFile(path)
		if err != nil {
			printlnFn("Cannot read file:", err.Error())
			return err
		}
		upload.FileName = filepath.Base(path)
		upload.File = contents
	}

	if _, err := a.documents.Update(ctx, id, upload); err != nil {
		printlnFn("Update failed:", err.Error())
		return err
	}
	printlnFn("Updated.")
	return nil
}

func (a *App) DeleteDoc(ctx context.Context, args []string) error {
	id, err := parseID(args)
	if err != nil {
		printlnFn(err.Error())
		return err
	}
	if err := a.documents.Delete(ctx, id); err != nil {
		printlnFn("Delete failed:", err.Error())
		return err
	}
	printlnFn("Deleted.")
	return nil
}

func (a *App) Bookmarks(ctx context.Context) error {
	if err := a.documents.RefreshBookmarked(ctx); err != nil {
		printlnFn("Cannot load bookmarks:", err.Error())
		return err
	}
	printDocuments(a.documents.Bookmarked())
	return nil
}

func (a *App) Bookmark(ctx context.Context, args []string) error {
	id, err := parseID(args)
	if err != nil {
		printlnFn(err.Error())
		return err
	}
	if err := a.documents.ToggleBookmark(ctx, id); err != nil {
		printlnFn("Cannot update bookmark:", err.Error())
		return err
	}
	if a.documents.IsBookmarked(id) {
		printlnFn("Bookmarked.")
	} else {
		printlnFn("Bookmark removed.")
	}
	return nil
}
