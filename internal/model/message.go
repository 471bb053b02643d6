package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// MessageType classifies bus traffic between agents.
type MessageType string

const (
	MessageRequest  MessageType = "REQUEST"
	MessageResponse MessageType = "RESPONSE"
	MessageDispute  MessageType = "DISPUTE"
	MessageConfirm  MessageType = "CONFIRM"
	MessageError    MessageType = "ERROR"
	MessageStatus   MessageType = "STATUS"
)

// Broadcast is the reserved recipient name that delivers a message to every
// subscribed agent except the sender.
const Broadcast = "ALL"

// Payload is the typed body of a Message. Each action the agents exchange has
// its own variant; Kind returns the action name used for routing.
type Payload interface {
	Kind() string
}

// Message is the immutable envelope routed by the bus. ConversationID links a
// request to its response, dispute, and resolution.
type Message struct {
	ID               string      `json:"id"`
	Sender           string      `json:"sender"`
	Recipient        string      `json:"recipient"`
	Type             MessageType `json:"type"`
	Action           string      `json:"action"`
	Payload          Payload     `json:"payload,omitempty"`
	RequiresResponse bool        `json:"requires_response"`
	ConversationID   string      `json:"conversation_id"`
	Timestamp        time.Time   `json:"timestamp"`
}

// NewMessage builds a message envelope. The action is taken from the payload
// kind; an empty conversation ID gets a fresh one so replies can correlate.
func NewMessage(sender, recipient string, typ MessageType, payload Payload, conversationID string) Message {
	action := ""
	if payload != nil {
		action = payload.Kind()
	}
	if conversationID == "" {
		conversationID = uuid.NewString()[:8]
	}
	return Message{
		ID:             uuid.NewString()[:8],
		Sender:         sender,
		Recipient:      recipient,
		Type:           typ,
		Action:         action,
		Payload:        payload,
		ConversationID: conversationID,
		Timestamp:      time.Now(),
	}
}

func (m Message) String() string {
	return fmt.Sprintf("[%s -> %s] %s: %s", m.Sender, m.Recipient, m.Type, m.Action)
}

// EnrichRequest asks the enricher for additional company data.
type EnrichRequest struct {
	CompanyName string         `json:"company_name"`
	Known       CompanyDetails `json:"known"`
}

func (EnrichRequest) Kind() string { return "enrich_company" }

// EnrichResult carries enrichment data back to the requester.
type EnrichResult struct {
	CompanyName string     `json:"company_name"`
	Data        Enrichment `json:"data"`
}

func (EnrichResult) Kind() string { return "company_enriched" }

// IndustryRequest asks for a quick industry classification of a company name.
type IndustryRequest struct {
	CompanyName string `json:"company_name"`
}

func (IndustryRequest) Kind() string { return "get_industry" }

// IndustryResponse answers an IndustryRequest.
type IndustryResponse struct {
	CompanyName string `json:"company_name"`
	Industry    string `json:"industry"`
}

func (IndustryResponse) Kind() string { return "industry_response" }

// ValidateRequest asks the validator to score a single company.
type ValidateRequest struct {
	CompanyName string         `json:"company_name"`
	Details     CompanyDetails `json:"details"`
}

func (ValidateRequest) Kind() string { return "validate_company" }

// ValidateResult carries a freshly computed score back to the requester.
type ValidateResult struct {
	Result ScoreResult `json:"result"`
}

func (ValidateResult) Kind() string { return "validation_result" }

// ReviewRequest asks the quality reviewer for a second opinion on a score.
type ReviewRequest struct {
	CompanyName string         `json:"company_name"`
	Result      ScoreResult    `json:"result"`
	Details     CompanyDetails `json:"details"`
}

func (ReviewRequest) Kind() string { return "review_score" }

// Dispute challenges an existing score. SuggestedScore is the reviewer's
// replacement proposal; it is not applied until resolution.
type Dispute struct {
	CompanyName    string `json:"company_name"`
	Reason         string `json:"reason"`
	SuggestedScore *int   `json:"suggested_score,omitempty"`
}

func (Dispute) Kind() string { return "dispute_score" }

// DisputeResolved reports the outcome of a dispute back to the reviewer.
// Accepted is false when the resolver kept the original score, which is a
// normal protocol outcome rather than a failure.
type DisputeResolved struct {
	CompanyName   string `json:"company_name"`
	OriginalScore int    `json:"original_score"`
	RevisedScore  int    `json:"revised_score"`
	Accepted      bool   `json:"accepted"`
}

func (DisputeResolved) Kind() string { return "dispute_resolved" }

// ScoreConfirmed reports that a review found no grounds for dispute.
type ScoreConfirmed struct {
	CompanyName string `json:"company_name"`
}

func (ScoreConfirmed) Kind() string { return "score_confirmed" }

// PhaseComplete is a phase-level status notification to the orchestrator.
type PhaseComplete struct {
	Phase  string         `json:"phase"`
	Counts map[string]int `json:"counts,omitempty"`
}

func (p PhaseComplete) Kind() string { return p.Phase + "_complete" }

// AgentError reports an unexpected failure inside an agent.
type AgentError struct {
	Agent string `json:"agent"`
	Err   string `json:"error"`
}

func (AgentError) Kind() string { return "agent_error" }
