package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hiai-demo-qms/qmshub/internal/client/api"
	"github.com/hiai-demo-qms/qmshub/internal/client/models"
	"github.com/hiai-demo-qms/qmshub/internal/common"
	"github.com/hiai-demo-qms/qmshub/internal/logging"
)

// TurnState is the named state of the chat turn machine. The machine is
// single-flight: a Send while AwaitingResponse is silently ignored, never
// queued.
type TurnState string

const (
	TurnIdle             TurnState = "idle"
	TurnAwaitingResponse TurnState = "awaiting_response"
)

// PlaceholderContent is the sentinel body of the provisional assistant entry
// shown while the backend call is in flight.
const PlaceholderContent = "processing"

// ChatService manages the turn-taking state machine for one chat session.
// The log is append-only: a failed turn stays visible as a Failed assistant
// entry rather than being rolled back.
type ChatService struct {
	client api.Client
	tokens api.TokenSource
	log    logging.Logger

	mu       sync.Mutex
	state    TurnState
	messages []models.Message
	lastErr  string
}

func NewChatService(client api.Client, tokens api.TokenSource, log logging.Logger) *ChatService {
	return &ChatService{client: client, tokens: tokens, log: log, state: TurnIdle}
}

// Send runs one chat turn. For every accepted call exactly one user entry
// and exactly one assistant entry are added, regardless of outcome: the
// Pending placeholder is replaced in place with either the Delivered answer
// or a Failed entry carrying the reason.
//
// No-ops: a whitespace-only question, and a call while another turn is
// awaiting its response. A missing session token fails locally without any
// network call or log mutation.
func (s *ChatService) Send(ctx context.Context, question string) error {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil
	}

	if s.tokens.Token() == "" {
		s.mu.Lock()
		s.lastErr = "you need to sign in to use the chatbot"
		s.mu.Unlock()
		return fmt.Errorf("%w: no active session", common.ErrUnauthorized)
	}

	s.mu.Lock()
	if s.state == TurnAwaitingResponse {
		s.mu.Unlock()
		return nil
	}
	s.state = TurnAwaitingResponse
	now := time.Now()
	s.messages = append(s.messages,
		models.Message{
			ID:        uuid.NewString(),
			Role:      models.RoleUser,
			Content:   question,
			Timestamp: now,
			Delivery:  models.DeliveryDelivered,
		},
		models.Message{
			ID:        uuid.NewString(),
			Role:      models.RoleAssistant,
			Content:   PlaceholderContent,
			Timestamp: now,
			Delivery:  models.DeliveryPending,
		})
	s.mu.Unlock()

	// The network call runs without the lock so readers can render the
	// pending placeholder.
	answer, err := s.client.Chat(ctx, question)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = TurnIdle

	idx := s.lastAssistantIndex()
	if idx < 0 {
		// Unreachable while single-flight holds; kept as a guard.
		return fmt.Errorf("no assistant placeholder to replace")
	}

	if err != nil {
		s.messages[idx].Content = err.Error()
		s.messages[idx].Delivery = models.DeliveryFailed
		s.messages[idx].FailReason = err.Error()
		s.messages[idx].Timestamp = time.Now()
		s.lastErr = err.Error()
		s.log.Warn(ctx, "chat turn failed", "error", err)
		return err
	}

	s.messages[idx].Content = answer
	s.messages[idx].Delivery = models.DeliveryDelivered
	s.messages[idx].FailReason = ""
	s.messages[idx].Timestamp = time.Now()
	s.lastErr = ""
	return nil
}

// lastAssistantIndex scans backward for the most recent assistant entry.
// Single-flight guarantees it is this turn's placeholder.
func (s *ChatService) lastAssistantIndex() int {
	for i := len(s.messages) - 1; i >= 0; i-- {
		if s.messages[i].Role == models.RoleAssistant {
			return i
		}
	}
	return -1
}

// Messages returns a snapshot of the conversation log in insertion order.
func (s *ChatService) Messages() []models.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

func (s *ChatService) State() TurnState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// LastError returns the banner text of the most recent failure, or "" after
// a successful turn.
func (s *ChatService) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}
