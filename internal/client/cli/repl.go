package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs. The real
// App type satisfies it; tests provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	isAdmin() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error
	Users(ctx context.Context) error
	Docs(ctx context.Context) error
	MyDocs(ctx context.Context) error
	Categories(ctx context.Context) error
	ByCategory(ctx context.Context, args []string) error
	ShowDoc(ctx context.Context, args []string) error
	Download(ctx context.Context, args []string) error
	Upload(ctx context.Context) error
	UpdateDoc(ctx context.Context, args []string) error
	DeleteDoc(ctx context.Context, args []string) error
	Bookmarks(ctx context.Context) error
	Bookmark(ctx context.Context, args []string) error
	Chat(ctx context.Context) error
	Analyze(ctx context.Context, args []string) error
}

const (
	helpAnonymous = "Available commands: register, login, docs, categories, bycat <categoryId>, doc <id>, help, exit"
	helpUser      = "Available commands: docs, mydocs, categories, bycat <categoryId>, doc <id>, download <id>, upload, update <id>, delete <id>, bookmarks, bookmark <id>, chat, analyze <file>, whoami, logout, exit"
)

// runREPL reads a line, parses the first token as the command, and
// dispatches to methods on a. Unknown commands are reported back. The loop
// exits on scanner EOF or "exit"/"quit".
//
// Errors returned by handlers are ignored here; handlers report their own
// failures. That keeps the loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("qms> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				help := helpUser
				if a.isAdmin() {
					help += ", users"
				}
				printlnFn(help)
			} else {
				printlnFn(helpAnonymous)
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			_ = a.Whoami(ctx)

		case "users":
			_ = a.Users(ctx)

		case "docs":
			_ = a.Docs(ctx)

		case "mydocs":
			_ = a.MyDocs(ctx)

		case "categories":
			_ = a.Categories(ctx)

		case "bycat":
			_ = a.ByCategory(ctx, args)

		case "doc":
			_ = a.ShowDoc(ctx, args)

		case "download":
			_ = a.Download(ctx, args)

		case "upload":
			_ = a.Upload(ctx)

		case "update":
			_ = a.UpdateDoc(ctx, args)

		case "delete":
			_ = a.DeleteDoc(ctx, args)

		case "bookmarks":
			_ = a.Bookmarks(ctx)

		case "bookmark":
			_ = a.Bookmark(ctx, args)

		case "chat":
			_ = a.Chat(ctx)

		case "analyze":
			_ = a.Analyze(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
