package narration

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"go.uber.org/zap"

	"github.com/grimwire/crusade/internal/game/character"
)

// DefaultModel is the model used when configuration does not name one.
const DefaultModel = "claude-3-5-haiku-latest"

// maxShoutTokens bounds the generated shout length.
const maxShoutTokens = 100

// Anthropic is a Narrator backed by the Anthropic Messages API. Every call
// is bounded by the configured timeout; any failure (missing credential,
// timeout, transport error, empty completion) degrades to the fallback table
// or, with fallbacks disabled, to Unavailable.
type Anthropic struct {
	client    anthropic.Client
	hasKey    bool
	model     anthropic.Model
	timeout   time.Duration
	fallbacks bool
	logger    *zap.Logger
}

// NewAnthropic creates an Anthropic narrator. An empty apiKey produces a
// narrator that never calls the API and serves fallbacks only. An empty
// model selects DefaultModel.
//
// Precondition: timeout > 0; logger must be non-nil.
func NewAnthropic(apiKey, model string, timeout time.Duration, fallbacks bool, logger *zap.Logger) *Anthropic {
	if timeout <= 0 {
		panic("narration: NewAnthropic called with non-positive timeout")
	}
	if model == "" {
		model = DefaultModel
	}
	return &Anthropic{
		client:    anthropic.NewClient(option.WithAPIKey(apiKey)),
		hasKey:    apiKey != "",
		model:     anthropic.Model(model),
		timeout:   timeout,
		fallbacks: fallbacks,
		logger:    logger,
	}
}

// Available reports whether an API credential is configured.
func (a *Anthropic) Available() bool { return a.hasKey }

// Shout generates a battle cry for the request. The call is bounded by the
// configured timeout and never returns an error: every failure mode is
// absorbed into the fallback table or Unavailable.
func (a *Anthropic) Shout(ctx context.Context, req Request) Result {
	if !a.hasKey {
		return a.fallback(req)
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	msg, err := a.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     a.model,
		MaxTokens: maxShoutTokens,
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt(req.Archetype)},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt(req))),
		},
	})
	if err != nil {
		a.logger.Warn("narration request failed",
			zap.String("archetype", string(req.Archetype)),
			zap.Error(err),
		)
		return a.fallback(req)
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	shout := strings.TrimSpace(sb.String())
	if shout == "" {
		a.logger.Warn("narration returned empty completion",
			zap.String("archetype", string(req.Archetype)),
		)
		return a.fallback(req)
	}
	return Ok(shout)
}

func (a *Anthropic) fallback(req Request) Result {
	if !a.fallbacks {
		return Unavailable
	}
	return Ok(FallbackShout(req.Archetype, req.Hit))
}

func systemPrompt(archetype character.Archetype) string {
	return fmt.Sprintf("You are %s in the Warhammer 40,000 universe.", Voice(archetype))
}

func userPrompt(req Request) string {
	outcome := "the attack lands"
	if !req.Hit {
		outcome = "the attack misses"
	}
	return fmt.Sprintf(
		"Situation: %s\nDice roll: %d\nOutcome: %s\n\n"+
			"Write the short shout (1-2 sentences at most) this character lets out in this situation. "+
			"It must match the character's voice and the situation. No explanations, only the shout.",
		req.Situation, req.Roll, outcome,
	)
}
