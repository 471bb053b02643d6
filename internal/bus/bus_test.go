package bus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anjy7/ascendo/internal/model"
)

func record(into *[]model.Message) Handler {
	return func(m model.Message) *model.Message {
		*into = append(*into, m)
		return nil
	}
}

func TestSendPointToPoint_ReturnsFirstResponse(t *testing.T) {
	b := New(nil)

	b.Subscribe("silent", func(m model.Message) *model.Message { return nil })
	b.Subscribe("responder", func(m model.Message) *model.Message {
		resp := model.NewMessage("responder", m.Sender, model.MessageResponse,
			model.IndustryResponse{CompanyName: "Acme", Industry: "Manufacturing"},
			m.ConversationID)
		return &resp
	})

	req := model.NewMessage("asker", "responder", model.MessageRequest,
		model.IndustryRequest{CompanyName: "Acme"}, "")
	resp := b.Send(req)

	require.NotNil(t, resp)
	assert.Equal(t, "asker", resp.Recipient)
	assert.Equal(t, req.ConversationID, resp.ConversationID)
	assert.Equal(t, "industry_response", resp.Action)

	// Both request and response are recorded.
	hist := b.History(HistoryFilter{ConversationID: req.ConversationID})
	require.Len(t, hist, 2)
	assert.Equal(t, model.MessageRequest, hist[0].Type)
	assert.Equal(t, model.MessageResponse, hist[1].Type)
}

func TestSendBroadcast_ExcludesSender(t *testing.T) {
	b := New(nil)

	var toA, toB, toSelf []model.Message
	b.Subscribe("a", record(&toA))
	b.Subscribe("b", record(&toB))
	b.Subscribe("announcer", record(&toSelf))

	resp := b.Send(model.NewMessage("announcer", model.Broadcast, model.MessageStatus,
		model.PhaseComplete{Phase: "scrape"}, ""))

	assert.Nil(t, resp)
	assert.Len(t, toA, 1)
	assert.Len(t, toB, 1)
	assert.Empty(t, toSelf, "broadcast must not loop back to the sender")
}

func TestSendUnregisteredRecipient_QueuesPending(t *testing.T) {
	b := New(nil)

	first := model.NewMessage("a", "late", model.MessageRequest,
		model.EnrichRequest{CompanyName: "One"}, "")
	second := model.NewMessage("a", "late", model.MessageRequest,
		model.EnrichRequest{CompanyName: "Two"}, "")
	assert.Nil(t, b.Send(first))
	assert.Nil(t, b.Send(second))

	queued := b.PendingMessages("late")
	require.Len(t, queued, 2)
	assert.Equal(t, first.ID, queued[0].ID, "pending drains in arrival order")
	assert.Equal(t, second.ID, queued[1].ID)

	// Drained: a second call finds nothing until new messages queue up.
	assert.Empty(t, b.PendingMessages("late"))

	// Undeliverable sends still land in history.
	assert.Len(t, b.History(HistoryFilter{Recipient: "late"}), 2)
}

func TestUnsubscribe(t *testing.T) {
	b := New(nil)

	var got []model.Message
	b.Subscribe("x", record(&got))
	b.Unsubscribe("x")

	b.Send(model.NewMessage("a", "x", model.MessageRequest,
		model.EnrichRequest{CompanyName: "Acme"}, ""))

	assert.Empty(t, got)
	assert.Len(t, b.PendingMessages("x"), 1, "messages after unsubscribe queue as pending")
}

func TestHistoryFilters(t *testing.T) {
	b := New(nil)

	b.Send(model.NewMessage("a", "b", model.MessageRequest, model.IndustryRequest{CompanyName: "1"}, "conv-1"))
	b.Send(model.NewMessage("b", "a", model.MessageResponse, model.IndustryResponse{CompanyName: "1"}, "conv-1"))
	b.Send(model.NewMessage("a", "c", model.MessageRequest, model.IndustryRequest{CompanyName: "2"}, "conv-2"))

	assert.Len(t, b.History(HistoryFilter{}), 3)
	assert.Len(t, b.History(HistoryFilter{Sender: "a"}), 2)
	assert.Len(t, b.History(HistoryFilter{Recipient: "a"}), 1)
	assert.Len(t, b.History(HistoryFilter{ConversationID: "conv-1"}), 2)
	assert.Len(t, b.History(HistoryFilter{Sender: "a", ConversationID: "conv-1"}), 1)
	assert.Empty(t, b.History(HistoryFilter{Sender: "nobody"}))
}

func TestHandlerMaySendFromInsideHandler(t *testing.T) {
	b := New(nil)

	var relayed []model.Message
	b.Subscribe("sink", record(&relayed))
	b.Subscribe("relay", func(m model.Message) *model.Message {
		b.Send(model.NewMessage("relay", "sink", model.MessageStatus,
			model.PhaseComplete{Phase: "relay"}, m.ConversationID))
		return nil
	})

	b.Send(model.NewMessage("a", "relay", model.MessageRequest,
		model.IndustryRequest{CompanyName: "Acme"}, ""))

	require.Len(t, relayed, 1)
	assert.Equal(t, "relay", relayed[0].Sender)
}
