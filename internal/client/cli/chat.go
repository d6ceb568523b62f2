package cli

import (
	"context"
	"errors"
	"os"

	"github.com/hiai-demo-qms/qmshub/internal/common"
)

// Chat runs the chatbot sub-loop until the user types /quit. Each accepted
// line is one turn; failed turns stay in the transcript with their reason.
func (a *App) Chat(ctx context.Context) error {
	printlnFn("QMS assistant ready. Type your question, /quit to leave.")

	for {
		question, err := getSimpleText(a.reader, "you", os.Stdout)
		if err != nil {
			return err
		}
		if question == "/quit" {
			return nil
		}

		if err := a.chat.Send(ctx, question); err != nil {
			if errors.Is(err, common.ErrUnauthorized) {
				printlnFn("You need to sign in to use the chatbot.")
				return nil
			}
			printlnFn("assistant>", a.chat.LastError())
			continue
		}

		msgs := a.chat.Messages()
		if len(msgs) > 0 {
			printlnFn("assistant>", msgs[len(msgs)-1].Content)
		}
	}
}
