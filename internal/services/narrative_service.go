// internal/services/narrative_service.go
// Executive-summary generation for the report front page via OpenAI chat
// completion. Optional; disabled when no API key is configured.

package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"circuitsense/internal/config"
)

const narrativeSystem = "Você é um engenheiro eletricista. Escreva um resumo executivo curto (máx. 3 parágrafos) dos resultados de análise de qualidade de energia a seguir, destacando nível nominal detectado, eventos fora da faixa de tolerância e picos de demanda."

type NarrativeService struct {
	api   *openai.Client
	model string
}

func NewNarrativeService(cfg *config.Config) (*NarrativeService, error) {
	key := strings.TrimSpace(cfg.LLM.APIKey)
	if key == "" {
		return nil, errors.New("OPENAI_API_KEY not set")
	}

	oc := openai.DefaultConfig(key)
	if base := strings.TrimSpace(cfg.LLM.APIBase); base != "" {
		oc.BaseURL = base
	}

	return &NarrativeService{
		api:   openai.NewClientWithConfig(oc),
		model: cfg.LLM.Model,
	}, nil
}

func (n *NarrativeService) Summarize(ctx context.Context, payload map[string]any) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	resp, err := n.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: n.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: narrativeSystem},
			{Role: openai.ChatMessageRoleUser, Content: string(body)},
		},
		Temperature: 0.2,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("empty completion")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
