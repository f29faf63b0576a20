package ai

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/milo-garden/mindful-garden/backend/internal/apperr"
	"github.com/milo-garden/mindful-garden/backend/internal/config"
)

// ErrEmptyReply is returned when the model answers with no text.
var ErrEmptyReply = errors.New("empty response from language model")

// Service relays a single user message to the chat model.
type Service struct {
	cfg   config.AIConfig
	chain compose.Runnable[map[string]any, *schema.Message]
}

// NewService compiles the prompt chain around chatModel.
func NewService(ctx context.Context, chatModel model.BaseChatModel, cfg config.AIConfig) (*Service, error) {
	if chatModel == nil {
		return nil, fmt.Errorf("chat model is nil")
	}

	templates := make([]schema.MessagesTemplate, 0, 2)
	if strings.TrimSpace(cfg.SystemPrompt) != "" {
		templates = append(templates, schema.SystemMessage("{system}"))
	}
	templates = append(templates, schema.UserMessage("{query}"))

	promptTemplate := prompt.FromMessages(schema.FString, templates...)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(&providerModel{inner: chatModel})

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile chat chain: %w", err)
	}

	return &Service{
		cfg:   cfg,
		chain: runnable,
	}, nil
}

// Reply returns the model's answer to message. Provider failures come back
// as upstream errors carrying the provider's own text; any other chain
// failure is internal.
func (s *Service) Reply(ctx context.Context, message string) (string, error) {
	input := map[string]any{
		"query": message,
	}
	if strings.TrimSpace(s.cfg.SystemPrompt) != "" {
		input["system"] = s.cfg.SystemPrompt
	}

	response, err := s.chain.Invoke(ctx, input)
	if err != nil {
		return "", classifyChainError(err)
	}
	if response == nil || strings.TrimSpace(response.Content) == "" {
		return "", apperr.Upstream(ErrEmptyReply)
	}

	log.Printf("[ai] generated reply model=%s length=%d", s.cfg.Model, len(response.Content))
	return response.Content, nil
}

// classifyChainError strips eino's node framing from provider failures.
func classifyChainError(err error) error {
	var provErr *providerError
	if errors.As(err, &provErr) {
		return apperr.Upstream(provErr.err)
	}
	return apperr.Internal(err)
}

// providerError marks an error returned by the chat model itself, so it can
// be recovered from eino's node-error wrapping.
type providerError struct {
	err error
}

func (e *providerError) Error() string { return e.err.Error() }
func (e *providerError) Unwrap() error { return e.err }

// providerModel tags every model failure as a providerError.
type providerModel struct {
	inner model.BaseChatModel
}

func (m *providerModel) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	out, err := m.inner.Generate(ctx, input, opts...)
	if err != nil {
		return nil, &providerError{err: err}
	}
	return out, nil
}

func (m *providerModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	out, err := m.inner.Stream(ctx, input, opts...)
	if err != nil {
		return nil, &providerError{err: err}
	}
	return out, nil
}
