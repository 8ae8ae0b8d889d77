package conversation

import "strings"

// contextWindow is how many recent messages feed the LLM prompt.
const contextWindow = 10

// Memory holds the rolling transcript for one session. Oldest messages are
// evicted once the cap is reached. Not safe for concurrent use; the engine
// serializes access per session.
type Memory struct {
	messages []ChatMessage
	max      int
}

// NewMemory creates a transcript capped at max messages.
func NewMemory(max int) *Memory {
	if max <= 0 {
		max = 25
	}
	return &Memory{max: max}
}

// Add appends a message, evicting the oldest beyond the cap.
func (m *Memory) Add(role, content string) {
	m.messages = append(m.messages, ChatMessage{Role: role, Content: content})
	if len(m.messages) > m.max {
		m.messages = m.messages[len(m.messages)-m.max:]
	}
}

// Context renders the most recent messages as a prompt block:
//
//	User: ...
//	Assistant: ...
func (m *Memory) Context() string {
	if len(m.messages) == 0 {
		return ""
	}
	start := 0
	if len(m.messages) > contextWindow {
		start = len(m.messages) - contextWindow
	}
	var lines []string
	for _, msg := range m.messages[start:] {
		role := "Assistant"
		if msg.Role == ChatRoleUser {
			role = "User"
		}
		lines = append(lines, role+": "+msg.Content)
	}
	return strings.Join(lines, "\n")
}

// Messages returns a copy of the transcript.
func (m *Memory) Messages() []ChatMessage {
	out := make([]ChatMessage, len(m.messages))
	copy(out, m.messages)
	return out
}

// Restore replaces the transcript, trimming to the cap.
func (m *Memory) Restore(messages []ChatMessage) {
	if len(messages) > m.max {
		messages = messages[len(messages)-m.max:]
	}
	m.messages = append(m.messages[:0], messages...)
}

// Len reports the number of retained messages.
func (m *Memory) Len() int {
	return len(m.messages)
}

// Reset clears the transcript.
func (m *Memory) Reset() {
	m.messages = nil
}
