package service

import (
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"campusevents_backend/internals/features/chatbot/dto"
)

const (
	maxConversations        = 512
	conversationIdleTTL     = 30 * time.Minute
	maxMessagesPerConversat = 40
)

// ConversationStore is the chatbot's only state: a capacity-bounded LRU with
// idle TTL eviction, so abandoned conversations cannot grow process memory
// without limit.
type ConversationStore struct {
	mu    sync.Mutex
	cache *expirable.LRU[string, []dto.ChatMessage]
}

func NewConversationStore() *ConversationStore {
	return &ConversationStore{
		cache: expirable.NewLRU[string, []dto.ChatMessage](maxConversations, nil, conversationIdleTTL),
	}
}

func (s *ConversationStore) Get(conversationID string) []dto.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	msgs, _ := s.cache.Get(conversationID)
	return msgs
}

// Append adds messages to a conversation, trimming the oldest turns once the
// per-conversation cap is reached.
func (s *ConversationStore) Append(conversationID string, msgs ...dto.ChatMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	history, _ := s.cache.Get(conversationID)
	history = append(history, msgs...)
	if len(history) > maxMessagesPerConversat {
		history = history[len(history)-maxMessagesPerConversat:]
	}
	s.cache.Add(conversationID, history)
}

func (s *ConversationStore) Clear(conversationID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.Remove(conversationID)
}

func (s *ConversationStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.Len()
}
