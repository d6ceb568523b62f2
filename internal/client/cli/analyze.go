package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Analyze reads a PDF from disk, runs the compliance analysis, and prints
// the overall verdict plus the per-clause breakdown. The result id is kept
// around so a following upload can link to it.
func (a *App) Analyze(ctx context.Context, args []string) error {
	if len(args) == 0 {
		printlnFn("Usage: analyze <file>")
		return fmt.Errorf("a file argument is required")
	}
	path := args[0]

	contents, err := os.ReadFile(path)
	if err != nil {
		printlnFn("Cannot read file:", err.Error())
		return err
	}
	if len(contents) == 0 {
		printlnFn("Cannot analyze an empty file:", path)
		return fmt.Errorf("file %s is empty", path)
	}
	a.analyzer.SelectFile(filepath.Base(path), contents)

	printlnFn("Analyzing", filepath.Base(path), "...")
	result, err := a.analyzer.Analyze(ctx)
	if err != nil {
		printlnFn("Analysis failed:", a.analyzer.LastError())
		return err
	}
	if result == nil {
		return nil
	}

	printlnFn(fmt.Sprintf("Overall: %d%% (%s)", result.Score, result.Status))
	for _, c := range result.ClauseResults {
		printlnFn(fmt.Sprintf("  %-40s  %5.1f  %-10s  %s", c.Title, c.Score, c.Status, c.Keywords))
	}
	printlnFn("Run `upload` now to attach this analysis to a new document.")
	return nil
}
