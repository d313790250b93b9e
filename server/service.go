package server

import (
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/samber/lo"

	"sms-viewer/clock"
)

const (
	// DefaultMaxMessageLength is counted in characters, not bytes.
	DefaultMaxMessageLength = 140

	// timestampLayout renders send times as e.g. "10/19/26 9:05 AM".
	timestampLayout = "1/2/06 3:04 PM"
)

// Status strings returned by SendShortMessage.
const (
	StatusSent        = "Message send successfully"
	StatusEmpty       = "Message can not be empty!"
	StatusNoRecipient = "No recipient specified!"
	NoMessages        = "No messages"
)

type ShortMessage struct {
	Sender    string
	Recipient string
	Text      string
	SentAt    time.Time
}

// ShortMessageService is an in-memory message store with a fixed set of
// agents. It never forgets a message while running and keeps nothing on
// disk.
type ShortMessageService struct {
	clock     clock.Clock
	maxLength int

	mu       sync.RWMutex
	agents   map[string]string // login name → argon2id hash
	messages []ShortMessage
}

func NewShortMessageService(clk clock.Clock) *ShortMessageService {
	return &ShortMessageService{
		clock:     clk,
		maxLength: DefaultMaxMessageLength,
		agents:    make(map[string]string),
	}
}

// AddAgent registers (or re-keys) a login.
func (s *ShortMessageService) AddAgent(name, password string) error {
	if name == "" {
		return fmt.Errorf("agent name is required")
	}
	hash, err := HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash password for %s: %w", name, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.agents[name] = hash
	return nil
}

// Authenticate checks a login against its stored hash.
func (s *ShortMessageService) Authenticate(name, password string) bool {
	s.mu.RLock()
	hash, ok := s.agents[name]
	s.mu.RUnlock()
	if !ok {
		return false
	}
	match, err := ComparePassword(password, hash)
	return err == nil && match
}

// SendShortMessage stores text from sender to recipient. Every outcome,
// rejections included, is a status line meant for the user.
func (s *ShortMessageService) SendShortMessage(sender, recipient, text string) string {
	if recipient == "" {
		return StatusNoRecipient
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.agents[recipient]; !ok {
		return fmt.Sprintf("There exists no agent for '%s'!", recipient)
	}
	if text == "" {
		return StatusEmpty
	}
	if utf8.RuneCountInString(text) > s.maxLength {
		return fmt.Sprintf("Message too long! (Maximum: %d)", s.maxLength)
	}

	s.messages = append(s.messages, ShortMessage{
		Sender:    sender,
		Recipient: recipient,
		Text:      text,
		SentAt:    s.clock.Now(),
	})
	return StatusSent
}

// GetShortMessagesAsString renders every message agent sent or received,
// oldest first, one per line.
func (s *ShortMessageService) GetShortMessagesAsString(agent string) string {
	s.mu.RLock()
	visible := lo.Filter(s.messages, func(m ShortMessage, _ int) bool {
		return m.Sender == agent || m.Recipient == agent
	})
	s.mu.RUnlock()

	if len(visible) == 0 {
		return NoMessages
	}

	var sb strings.Builder
	for _, m := range visible {
		fmt.Fprintf(&sb, "%s from %s to %s : %s\n", m.SentAt.Format(timestampLayout), m.Sender, m.Recipient, m.Text)
	}
	return sb.String()
}

// ParseAgents reads "name:password,name:password".
func ParseAgents(list string) (map[string]string, error) {
	agents := make(map[string]string)
	for _, entry := range strings.Split(list, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		name, password, ok := strings.Cut(entry, ":")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid agent %q, want name:password", entry)
		}
		agents[name] = password
	}
	return agents, nil
}
