package api

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"strconv"
)

// encode renders the upload as a multipart/form-data body. Empty text fields
// are omitted so PATCH requests only carry the fields being changed.
func (u DocumentUpload) encode() (string, *bytes.Buffer, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	fields := []struct {
		name  string
		value string
	}{
		{"code", u.Code},
		{"title", u.Title},
		{"description", u.Description},
		{"version", u.Version},
	}
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		if err := w.WriteField(f.name, f.value); err != nil {
			return "", nil, fmt.Errorf("writing field %s: %w", f.name, err)
		}
	}
	if u.CategoryID != 0 {
		if err := w.WriteField("categoryId", strconv.Itoa(u.CategoryID)); err != nil {
			return "", nil, fmt.Errorf("writing field categoryId: %w", err)
		}
	}
	if u.AnalyzeResponseID != 0 {
		if err := w.WriteField("analyzeResponseId", strconv.Itoa(u.AnalyzeResponseID)); err != nil {
			return "", nil, fmt.Errorf("writing field analyzeResponseId: %w", err)
		}
	}

	if len(u.File) > 0 {
		part, err := w.CreateFormFile("file", u.FileName)
		if err != nil {
			return "", nil, fmt.Errorf("creating file part: %w", err)
		}
		if _, err := part.Write(u.File); err != nil {
			return "", nil, fmt.Errorf("writing file part: %w", err)
		}
	}

	if err := w.Close(); err != nil {
		return "", nil, fmt.Errorf("finalizing form: %w", err)
	}
	return w.FormDataContentType(), buf, nil
}
