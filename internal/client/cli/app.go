// Package cli is the interactive command surface of the QMS Hub client: a
// REPL whose available commands depend on the login state, with handlers
// that log their own errors and never crash the loop.
package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"github.com/hiai-demo-qms/qmshub/internal/client/api"
	"github.com/hiai-demo-qms/qmshub/internal/client/config"
	"github.com/hiai-demo-qms/qmshub/internal/client/repositories/state"
	"github.com/hiai-demo-qms/qmshub/internal/client/services"
	"github.com/hiai-demo-qms/qmshub/internal/logging"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

type App struct {
	config    *config.Config
	log       logging.Logger
	db        *sql.DB
	apiClient api.Client
	session   services.SessionService
	chat      *services.ChatService
	analyzer  *services.AnalyzerService
	documents *services.DocumentService
	reader    *bufio.Reader

	// lastAnalyzeID is the analyzer's side-channel id, attached to the next
	// document upload and then consumed.
	lastAnalyzeID int
}

func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()

	db, err := state.Open(ctx, c.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("initializing local state: %w", err)
	}

	log := logging.NewTextLogger(os.Stderr, slog.LevelWarn)

	states := state.NewSQLiteRepository(db)
	tokens := services.NewTokenHolder()
	apiClient := api.NewHTTPClient(c.BaseURL, c.RequestTimeout, tokens, log)

	a := &App{
		config:    c,
		log:       log,
		db:        db,
		apiClient: apiClient,
		session:   services.NewSessionService(apiClient, states, tokens, log),
		chat:      services.NewChatService(apiClient, tokens, log),
		analyzer:  services.NewAnalyzerService(apiClient, log),
		documents: services.NewDocumentService(apiClient, log),
		reader:    bufio.NewReader(os.Stdin),
	}
	a.analyzer.OnResult(func(id int) { a.lastAnalyzeID = id })
	return a, nil
}

// Run restores any persisted session, then hands control to the REPL.
func (a *App) Run(ctx context.Context) {
	defer a.db.Close()

	if err := a.session.Restore(ctx); err != nil {
		a.log.Warn(ctx, "session restore failed", "error", err)
	}

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.status, scanner)
}

func (a *App) status() string {
	if !a.isLoggedIn() {
		return "not signed in"
	}
	user := a.session.CurrentUser()
	if user.IsAdmin() {
		return user.Email + " (admin)"
	}
	return user.Email
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

func (a *App) isAdmin() bool {
	return a.session.CurrentUser().IsAdmin()
}
