package bus

import (
	"sort"

	"github.com/anjy7/ascendo/internal/model"
)

// ConversationStatus is derived from the message types seen in a thread.
type ConversationStatus string

const (
	ConversationOpen     ConversationStatus = "open"
	ConversationDisputed ConversationStatus = "disputed"
	ConversationResolved ConversationStatus = "resolved"
)

// Conversation is a reconstructed view over the messages sharing a
// conversation ID. Nothing here is stored redundantly; it is computed from
// history on demand.
type Conversation struct {
	ID           string
	Messages     []model.Message
	Participants []string
	Status       ConversationStatus
}

// Conversation reconstructs the thread with the given ID from history.
// Status rules: a DISPUTE with no later RESPONSE/CONFIRM leaves the thread
// disputed; a RESPONSE or CONFIRM after the last DISPUTE resolves it; a
// thread whose final message still requires a response stays open.
func (b *Bus) Conversation(id string) Conversation {
	msgs := b.History(HistoryFilter{ConversationID: id})

	conv := Conversation{ID: id, Messages: msgs, Status: ConversationOpen}

	seen := make(map[string]bool)
	for _, m := range msgs {
		if !seen[m.Sender] {
			seen[m.Sender] = true
			conv.Participants = append(conv.Participants, m.Sender)
		}
	}
	sort.Strings(conv.Participants)

	lastDispute := -1
	lastSettle := -1
	for i, m := range msgs {
		switch m.Type {
		case model.MessageDispute:
			lastDispute = i
		case model.MessageResponse, model.MessageConfirm:
			lastSettle = i
		}
	}

	switch {
	case lastDispute >= 0 && lastDispute > lastSettle:
		conv.Status = ConversationDisputed
	case lastSettle >= 0:
		conv.Status = ConversationResolved
	}

	if n := len(msgs); n > 0 && msgs[n-1].RequiresResponse {
		conv.Status = ConversationOpen
	}
	return conv
}

// Conversations lists every conversation ID seen in history, in first-seen
// order.
func (b *Bus) Conversations() []string {
	b.mu.Lock()
	defer b.mu.Unlock()

	var ids []string
	seen := make(map[string]bool)
	for _, m := range b.history {
		if m.ConversationID == "" || seen[m.ConversationID] {
			continue
		}
		seen[m.ConversationID] = true
		ids = append(ids, m.ConversationID)
	}
	return ids
}
