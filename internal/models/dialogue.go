package models

import (
	"strings"
	"time"
)

// DialogueState is the current step of a transfer conversation
type DialogueState string

const (
	StateIdle                  DialogueState = "idle"
	StateCollectingAmount      DialogueState = "collecting_amount"
	StateCollectingCountry     DialogueState = "collecting_country"
	StateCollectingRecipient   DialogueState = "collecting_recipient"
	StateCollectingBankDetails DialogueState = "collecting_bank_details"
	StateConfirming            DialogueState = "confirming"
)

// MaxHistoryEntries bounds the per-session conversation history
const MaxHistoryEntries = 5

// ConversationEntry is one turn of context kept for extraction and the AI fallback
type ConversationEntry struct {
	Role      string    `json:"role"` // "user" or "bot"
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// Session holds the conversation state for one phone number
type Session struct {
	PhoneNumber   string              `json:"phone_number"`
	State         DialogueState       `json:"state"`
	Amount        float64             `json:"amount"` // USD, 0 = not set
	Country       string              `json:"country"`
	Currency      string              `json:"currency"`
	RecipientName string              `json:"recipient_name"`
	BankDetails   map[string]string   `json:"bank_details"`
	Language      string              `json:"language"` // "", "en" or "es"
	History       []ConversationEntry `json:"history"`
	CreatedAt     time.Time           `json:"created_at"`
	LastActivity  time.Time           `json:"last_activity"`
}

// ClearTransfer wipes all transfer fields and returns the session to idle.
// Used by cancel, inactivity resets and post-submission cleanup.
func (s *Session) ClearTransfer() {
	s.State = StateIdle
	s.Amount = 0
	s.Country = ""
	s.Currency = ""
	s.RecipientName = ""
	s.BankDetails = nil
}

// AddHistory appends a conversation entry, keeping only the last MaxHistoryEntries
func (s *Session) AddHistory(role, text string) {
	s.History = append(s.History, ConversationEntry{
		Role:      role,
		Text:      text,
		Timestamp: time.Now(),
	})
	if len(s.History) > MaxHistoryEntries {
		s.History = s.History[len(s.History)-MaxHistoryEntries:]
	}
}

// RecentMessages returns history lines formatted for the AI fallback prompt
func (s *Session) RecentMessages() []string {
	lines := make([]string, 0, len(s.History))
	for _, entry := range s.History {
		lines = append(lines, entry.Role+": "+entry.Text)
	}
	return lines
}

// RecentUserText concatenates recent user turns, newest last. The country
// collector uses it to resolve a destination mentioned a message earlier.
func (s *Session) RecentUserText() string {
	var parts []string
	for _, entry := range s.History {
		if entry.Role == "user" {
			parts = append(parts, entry.Text)
		}
	}
	return strings.Join(parts, "\n")
}
