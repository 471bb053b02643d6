package oracle

import (
	"context"
	"encoding/json"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/anjy7/ascendo/internal/icp"
	"github.com/anjy7/ascendo/internal/model"
)

// Messenger abstracts the Anthropic messages API so tests can substitute a
// canned responder.
type Messenger interface {
	CreateMessage(ctx context.Context, system, user string) (string, error)
}

// sdkMessenger implements Messenger using the official anthropic-sdk-go.
type sdkMessenger struct {
	client sdk.Client
	model  string
}

func (m *sdkMessenger) CreateMessage(ctx context.Context, system, user string) (string, error) {
	msg, err := m.client.Messages.New(ctx, sdk.MessageNewParams{
		Model:     sdk.Model(m.model),
		MaxTokens: 1024,
		System: []sdk.TextBlockParam{
			{Text: system},
		},
		Messages: []sdk.MessageParam{
			sdk.NewUserMessage(sdk.NewTextBlock(user)),
		},
	})
	if err != nil {
		return "", eris.Wrap(err, "oracle: create message")
	}

	for _, block := range msg.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}
	return "", eris.New("oracle: empty claude response")
}

// Claude is the Anthropic-backed Oracle. Requests pass through a rate
// limiter so a large conference does not trip API limits.
type Claude struct {
	messenger Messenger
	limiter   *rate.Limiter
	log       *zap.Logger
}

// Option configures a Claude oracle.
type Option func(*Claude)

// WithMessenger swaps the API transport, used by tests.
func WithMessenger(m Messenger) Option {
	return func(c *Claude) { c.messenger = m }
}

// WithRateLimit caps requests per second.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Claude) { c.limiter = rate.NewLimiter(rate.Limit(rps), burst) }
}

// NewClaude builds a Claude oracle for the given API key and model ID.
func NewClaude(apiKey, modelID string, opts ...Option) *Claude {
	c := &Claude{
		messenger: &sdkMessenger{
			client: sdk.NewClient(option.WithAPIKey(apiKey)),
			model:  modelID,
		},
		limiter: rate.NewLimiter(rate.Limit(2), 4),
		log:     zap.L().Named("oracle"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Claude) ask(ctx context.Context, system string, payload any, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return eris.Wrap(err, "oracle: rate limit wait")
	}

	user, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return eris.Wrap(err, "oracle: marshal request")
	}

	text, err := c.messenger.CreateMessage(ctx, system, string(user))
	if err != nil {
		return err
	}

	raw, err := extractJSON(text)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return eris.Wrap(err, "oracle: parse response JSON")
	}
	return nil
}

// ScoreCompany asks Claude for a full ICP breakdown.
func (c *Claude) ScoreCompany(ctx context.Context, details model.CompanyDetails, criteria icp.Criteria) (*ScoreVerdict, error) {
	req := struct {
		Company  model.CompanyDetails `json:"company"`
		Criteria icp.Criteria         `json:"icp_criteria"`
	}{details, criteria}

	var v ScoreVerdict
	if err := c.ask(ctx, scorePrompt, req, &v); err != nil {
		return nil, err
	}

	v.Score = clampScore(v.Score)
	if v.FitLevel == "" {
		v.FitLevel = model.FitLow
	}
	return &v, nil
}

// EnrichCompany asks Claude to fill in industry, size, and headquarters.
func (c *Claude) EnrichCompany(ctx context.Context, name string, known model.CompanyDetails) (*model.Enrichment, error) {
	req := struct {
		CompanyName string               `json:"company_name"`
		Known       model.CompanyDetails `json:"known_info"`
	}{name, known}

	var e model.Enrichment
	if err := c.ask(ctx, enrichPrompt, req, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// ReviewScore asks Claude whether an existing score should be disputed.
func (c *Claude) ReviewScore(ctx context.Context, result model.ScoreResult, details model.CompanyDetails) (*ReviewVerdict, error) {
	req := struct {
		Result  model.ScoreResult    `json:"validation_result"`
		Company model.CompanyDetails `json:"company"`
	}{result, details}

	var v ReviewVerdict
	if err := c.ask(ctx, reviewPrompt, req, &v); err != nil {
		return nil, err
	}
	if v.SuggestedScore != nil {
		clamped := clampScore(*v.SuggestedScore)
		v.SuggestedScore = &clamped
	}
	return &v, nil
}

// ResolveDispute asks Claude to arbitrate between the original score and the
// reviewer's suggestion.
func (c *Claude) ResolveDispute(ctx context.Context, original model.ScoreResult, dispute model.Dispute, details model.CompanyDetails) (*Resolution, error) {
	req := struct {
		Original model.ScoreResult    `json:"original"`
		Dispute  model.Dispute        `json:"dispute"`
		Company  model.CompanyDetails `json:"company"`
	}{original, dispute, details}

	var r Resolution
	if err := c.ask(ctx, resolvePrompt, req, &r); err != nil {
		return nil, err
	}
	r.FinalScore = clampScore(r.FinalScore)
	return &r, nil
}
