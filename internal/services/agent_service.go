// internal/services/agent_service.go
// Forwards finished reports to the n8n document webhook. The webhook owns
// PDF rendering; this side only ships the JSON body.

package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"circuitsense/internal/config"
)

type AgentService struct {
	url    string
	client *http.Client
}

// NewAgentService picks the dev or prod webhook URL by APP_ENV. Returns nil
// when no URL is configured so callers can skip forwarding entirely.
func NewAgentService(cfg *config.Config) *AgentService {
	url := cfg.Agent.DevURL
	if cfg.AppEnv == "production" {
		url = cfg.Agent.ProdURL
	}
	if url == "" {
		return nil
	}
	return &AgentService{
		url:    url,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

func (a *AgentService) Forward(ctx context.Context, rep *Report) error {
	body, err := json.Marshal(map[string]any{
		"id":           rep.ID,
		"nome_arquivo": rep.FileName,
		"relatorio":    rep.Payload,
	})
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("post to agent: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("agent returned status %d", resp.StatusCode)
	}
	return nil
}
