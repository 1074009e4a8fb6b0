package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"campusevents_backend/internals/configs"
	"campusevents_backend/internals/features/chatbot/dto"
)

const (
	groqBaseURL = "https://api.groq.com/openai/v1"
	groqModel   = "llama-3.1-70b-versatile"

	// Number of prior turns sent back to the model as context.
	contextWindow = 10

	fallbackReply = "Sorry, I am having trouble answering right now. Please try again in a moment."

	systemPrompt = "You are a helpful assistant for a campus event management platform. " +
		"You help students find events, understand how registration, check-in and feedback work, " +
		"and answer general questions about campus activities. " +
		"Be concise and friendly. If you do not know something, say so."
)

type groqChatRequest struct {
	Model       string        `json:"model"`
	Messages    []groqMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type groqMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type groqChatResponse struct {
	Choices []struct {
		Message groqMessage `json:"message"`
	} `json:"choices"`
}

// GroqService talks to the Groq OpenAI-compatible chat completions API and
// keeps per-conversation context in memory.
type GroqService struct {
	apiKey        string
	model         string
	baseURL       string
	httpClient    *http.Client
	conversations *ConversationStore
}

func NewGroqService() *GroqService {
	return &GroqService{
		apiKey:        configs.GroqAPIKey,
		model:         groqModel,
		baseURL:       groqBaseURL,
		httpClient:    &http.Client{Timeout: 30 * time.Second},
		conversations: NewConversationStore(),
	}
}

// Chat sends the user message with recent conversation context and returns the
// assistant reply. A new conversation id is minted when none is given. Upstream
// failures degrade to a fixed apology instead of an error so the endpoint never
// breaks on provider hiccups.
func (s *GroqService) Chat(ctx context.Context, message, conversationID string) (dto.ChatResponse, error) {
	if conversationID == "" {
		conversationID = uuid.NewString()
	}

	history := s.conversations.Get(conversationID)
	if len(history) > contextWindow {
		history = history[len(history)-contextWindow:]
	}

	reply, err := s.complete(ctx, history, message)
	if err != nil {
		log.Printf("[ERROR] Chatbot upstream failed: %v", err)
		reply = fallbackReply
	}

	now := time.Now()
	s.conversations.Append(conversationID,
		dto.ChatMessage{ID: uuid.NewString(), Role: "user", Content: message, Timestamp: now},
		dto.ChatMessage{ID: uuid.NewString(), Role: "assistant", Content: reply, Timestamp: now},
	)

	return dto.ChatResponse{
		Message:        reply,
		ConversationID: conversationID,
		Timestamp:      now,
	}, nil
}

func (s *GroqService) complete(ctx context.Context, history []dto.ChatMessage, message string) (string, error) {
	if s.apiKey == "" {
		return "", fmt.Errorf("GROQ_API_KEY is not configured")
	}

	messages := make([]groqMessage, 0, len(history)+2)
	messages = append(messages, groqMessage{Role: "system", Content: systemPrompt})
	for _, m := range history {
		messages = append(messages, groqMessage{Role: m.Role, Content: m.Content})
	}
	messages = append(messages, groqMessage{Role: "user", Content: message})

	payload, err := json.Marshal(groqChatRequest{
		Model:       s.model,
		Messages:    messages,
		Temperature: 0.7,
		MaxTokens:   1024,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("groq returned status %d", resp.StatusCode)
	}

	var body groqChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", err
	}
	if len(body.Choices) == 0 {
		return "", fmt.Errorf("groq returned no choices")
	}
	return body.Choices[0].Message.Content, nil
}

// History returns the stored messages for a conversation, empty when unknown.
func (s *GroqService) History(conversationID string) dto.ConversationHistory {
	return dto.ConversationHistory{
		ConversationID: conversationID,
		Messages:       s.conversations.Get(conversationID),
	}
}

// ClearConversation drops a conversation; reports whether it existed.
func (s *GroqService) ClearConversation(conversationID string) bool {
	return s.conversations.Clear(conversationID)
}
