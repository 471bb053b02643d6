// Package bus is the in-process router agents use to talk to each other:
// point-to-point call/response, broadcast, a pending queue for recipients
// that have not subscribed yet, and a full history log for auditing.
package bus

import (
	"sync"

	"go.uber.org/zap"

	"github.com/anjy7/ascendo/internal/model"
)

// Handler processes an incoming message and may return a synchronous
// response. A nil return means no response.
type Handler func(model.Message) *model.Message

// Bus routes messages between agents. One pipeline run is single-threaded,
// but serve and batch modes run pipelines from several goroutines, so
// internal maps are mutex-guarded. Handlers are invoked outside the lock so
// they may send messages of their own.
type Bus struct {
	log *zap.Logger

	mu          sync.Mutex
	subscribers map[string][]Handler
	history     []model.Message
	pending     map[string][]model.Message
}

// New creates an empty bus. A nil logger disables message tracing.
func New(log *zap.Logger) *Bus {
	if log == nil {
		log = zap.NewNop()
	}
	return &Bus{
		log:         log,
		subscribers: make(map[string][]Handler),
		pending:     make(map[string][]model.Message),
	}
}

// Subscribe registers a handler for an agent name. An agent may register
// several handlers; point-to-point delivery invokes them in registration
// order until one responds.
func (b *Bus) Subscribe(agentName string, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers[agentName] = append(b.subscribers[agentName], h)
}

// Unsubscribe removes all handlers for an agent.
func (b *Bus) Unsubscribe(agentName string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.subscribers, agentName)
}

// Send routes a message. Every send is recorded in history, deliverable or
// not.
//
//   - Recipient model.Broadcast: fire-and-forget delivery to every subscriber
//     except the sender; responses are discarded and Send returns nil.
//   - Registered recipient: handlers run in order; the first non-nil response
//     is recorded in history and returned to the caller.
//   - Unregistered recipient: the message is queued for a later subscriber
//     instead of being dropped.
//
// The bus never retries and never errors on a missing recipient. A panicking
// handler propagates to the caller; catching it is the agent wrapper's job.
func (b *Bus) Send(msg model.Message) *model.Message {
	b.mu.Lock()
	b.history = append(b.history, msg)

	b.log.Debug("bus: send",
		zap.String("sender", msg.Sender),
		zap.String("recipient", msg.Recipient),
		zap.String("type", string(msg.Type)),
		zap.String("action", msg.Action),
		zap.String("conversation", msg.ConversationID),
	)

	if msg.Recipient == model.Broadcast {
		type target struct {
			name     string
			handlers []Handler
		}
		var targets []target
		for name, hs := range b.subscribers {
			if name == msg.Sender {
				continue
			}
			targets = append(targets, target{name, append([]Handler(nil), hs...)})
		}
		b.mu.Unlock()

		for _, t := range targets {
			for _, h := range t.handlers {
				h(msg)
			}
		}
		return nil
	}

	handlers, ok := b.subscribers[msg.Recipient]
	if !ok {
		b.pending[msg.Recipient] = append(b.pending[msg.Recipient], msg)
		b.mu.Unlock()
		return nil
	}
	handlers = append([]Handler(nil), handlers...)
	b.mu.Unlock()

	for _, h := range handlers {
		if resp := h(msg); resp != nil {
			b.mu.Lock()
			b.history = append(b.history, *resp)
			b.mu.Unlock()
			b.log.Debug("bus: response",
				zap.String("sender", resp.Sender),
				zap.String("recipient", resp.Recipient),
				zap.String("action", resp.Action),
			)
			return resp
		}
	}
	return nil
}

// PendingMessages drains and returns the queued messages for an agent, in
// arrival order. A second call returns nothing until new messages queue up.
func (b *Bus) PendingMessages(agentName string) []model.Message {
	b.mu.Lock()
	defer b.mu.Unlock()
	msgs := b.pending[agentName]
	delete(b.pending, agentName)
	return msgs
}

// HistoryFilter selects messages from the history log. Zero-value fields
// match everything; set fields combine with AND semantics.
type HistoryFilter struct {
	Sender         string
	Recipient      string
	ConversationID string
}

// History returns recorded messages matching the filter, in send order.
func (b *Bus) History(f HistoryFilter) []model.Message {
	b.mu.Lock()
	defer b.mu.Unlock()

	var out []model.Message
	for _, m := range b.history {
		if f.Sender != "" && m.Sender != f.Sender {
			continue
		}
		if f.Recipient != "" && m.Recipient != f.Recipient {
			continue
		}
		if f.ConversationID != "" && m.ConversationID != f.ConversationID {
			continue
		}
		out = append(out, m)
	}
	return out
}
