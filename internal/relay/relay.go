// Package relay forwards free-text questions about hype terms to a chat
// model and keeps a short conversation history.
package relay

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hypelessli/hypeless/internal/llm"
)

// Relay defaults.
const (
	DefaultHistoryLimit = 12
	DefaultModel        = "llama-3.3-70b-versatile"
	NoAnswer            = "[No answer returned]"
)

// SystemPrompt frames every conversation.
const SystemPrompt = `You are HypeLessLi, an assistant that helps users critically read scientific texts by highlighting hype-like, subjective, promotional, and vague terms. You provide clear, concise explanations for why a term is considered hype, and always suggest less hyped, more objective alternatives for any term or phrase the user asks about. If the user does not specify, always include a suggestion for a more objective or neutral alternative. If the user asks a follow-up, use the previous questions and answers in this conversation for context. Always try to resolve ambiguous or short follow-ups by referencing the last exchange.`

// Exchange is one answered question.
type Exchange struct {
	ID        string    `json:"id"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	Timestamp time.Time `json:"ts"`
}

// History keeps the most recent exchanges.
type History struct {
	mu      sync.Mutex
	limit   int
	entries []Exchange
}

// NewHistory returns a history holding at most limit exchanges. A
// non-positive limit uses DefaultHistoryLimit.
func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &History{limit: limit}
}

// Add records an exchange, evicting the oldest beyond the limit.
func (h *History) Add(question, answer string) Exchange {
	e := Exchange{
		ID:        uuid.New().String(),
		Question:  question,
		Answer:    answer,
		Timestamp: time.Now().UTC(),
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = append(h.entries, e)
	if over := len(h.entries) - h.limit; over > 0 {
		h.entries = append([]Exchange(nil), h.entries[over:]...)
	}
	return e
}

// All returns the exchanges, oldest first.
func (h *History) All() []Exchange {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]Exchange{}, h.entries...)
}

var followupStart = regexp.MustCompile(`(?i)^(what|which|and|also|more|how about|the second|the first|that one|this one|another|other|else|too|again|continue|next|previous|last|first|second|third|fourth|fifth|sixth|seventh|eighth|ninth|tenth|it|he|she|they|him|her|them|those|these|such|so|then|now|why|how|where|when|who|whose|whom|is|are|was|were|do|does|did|can|could|should|would|will|shall|may|might|must|has|have|had|doesn't|didn't|isn't|aren't|wasn't|weren't|hasn't|haven't|hadn't|won't|wouldn't|can't|couldn't|shouldn't|mightn't|mustn't|doesnt|didnt|isnt|arent|wasnt|werent|hasnt|havent|hadnt|wont|wouldnt|cant|couldnt|shouldnt|mightnt|mustnt)\b`)

// IsLikelyFollowup reports whether q reads as a continuation of the
// previous exchange: it is short or starts with a pronoun or function word.
func IsLikelyFollowup(q string) bool {
	q = strings.TrimSpace(q)
	return len([]rune(q)) < 20 || followupStart.MatchString(q)
}

// BuildMessages assembles the chat for question. Every stored exchange is
// replayed; a likely follow-up also gets a system note naming the last
// question so the model resolves it against that exchange.
func BuildMessages(history []Exchange, question string) []llm.Message {
	msgs := []llm.Message{{Role: llm.RoleSystem, Content: SystemPrompt}}
	for _, e := range history {
		msgs = append(msgs,
			llm.Message{Role: llm.RoleUser, Content: e.Question},
			llm.Message{Role: llm.RoleAssistant, Content: e.Answer},
		)
	}
	if len(history) > 0 && IsLikelyFollowup(question) {
		last := history[len(history)-1]
		msgs = append(msgs, llm.Message{
			Role:    llm.RoleSystem,
			Content: fmt.Sprintf("The next question is a follow-up to the last exchange (%q).", last.Question),
		})
	}
	return append(msgs, llm.Message{Role: llm.RoleUser, Content: question})
}

// Service answers questions through a provider.
type Service struct {
	provider llm.Provider
	model    string
	history  *History
}

// NewService returns a Service. A nil provider makes every Ask fail with
// llm.ErrNotConfigured.
func NewService(provider llm.Provider, model string, history *History) *Service {
	if history == nil {
		history = NewHistory(DefaultHistoryLimit)
	}
	return &Service{provider: provider, model: model, history: history}
}

// History returns the service's history.
func (s *Service) History() *History { return s.history }

// Ask sends question with the conversation so far and records the answer.
func (s *Service) Ask(ctx context.Context, question string) (string, error) {
	if s.provider == nil {
		return "", llm.ErrNotConfigured
	}
	resp, err := s.provider.Complete(ctx, llm.CompletionRequest{
		Model:    s.model,
		Messages: BuildMessages(s.history.All(), question),
	})
	if err != nil {
		return "", err
	}
	answer := resp.Content
	if strings.TrimSpace(answer) == "" {
		answer = NoAnswer
	}
	s.history.Add(question, answer)
	return answer, nil
}
