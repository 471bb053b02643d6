// Package agent implements the cooperating agents that score conference
// companies against the ICP and negotiate disagreements over the bus.
package agent

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/anjy7/ascendo/internal/bus"
	"github.com/anjy7/ascendo/internal/model"
	"github.com/anjy7/ascendo/internal/state"
)

// Agent is one worker in the pipeline. Process runs the agent's phase
// against the shared state; Handle answers a message from another agent and
// may return a synchronous response.
type Agent interface {
	Name() string
	Process(ctx context.Context, st *state.State) error
	Handle(msg model.Message) *model.Message
}

// base carries the plumbing every agent shares: its name, the bus, and a
// named logger.
type base struct {
	name string
	bus  *bus.Bus
	log  *zap.Logger
}

func newBase(name string, b *bus.Bus, log *zap.Logger) base {
	if log == nil {
		log = zap.L()
	}
	return base{name: name, bus: b, log: log.Named(name)}
}

func (b *base) Name() string { return b.name }

// register subscribes the agent's handler on the bus. Called once from each
// constructor, after the concrete agent exists.
func (b *base) register(h bus.Handler) {
	b.bus.Subscribe(b.name, h)
}

// send builds an envelope and routes it, returning any synchronous response.
func (b *base) send(recipient string, typ model.MessageType, payload model.Payload) *model.Message {
	return b.bus.Send(model.NewMessage(b.name, recipient, typ, payload, ""))
}

// reply builds a response in the same conversation as the incoming message.
func (b *base) reply(to model.Message, typ model.MessageType, payload model.Payload) *model.Message {
	msg := model.NewMessage(b.name, to.Sender, typ, payload, to.ConversationID)
	return &msg
}

// Execute runs one agent's phase with the failure discipline of the
// pipeline: pending messages are drained first, and any error or panic is
// recorded in the state's error list instead of aborting the run.
func Execute(ctx context.Context, a Agent, b *bus.Bus, st *state.State) {
	st.SetCurrentAgent(a.Name())

	for _, msg := range b.PendingMessages(a.Name()) {
		a.Handle(msg)
	}

	defer func() {
		if r := recover(); r != nil {
			err := fmt.Sprintf("%s: panic: %v", a.Name(), r)
			zap.L().Error("agent panicked", zap.String("agent", a.Name()), zap.Any("panic", r))
			st.AddError(err)
		}
	}()

	if err := a.Process(ctx, st); err != nil {
		zap.L().Error("agent failed", zap.String("agent", a.Name()), zap.Error(err))
		st.AddError(fmt.Sprintf("%s: %v", a.Name(), err))
	}
}
