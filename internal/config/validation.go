package config

import (
	"fmt"
	"strings"
)

func validate(c *Config) error {
	if err := c.AI.validate(); err != nil {
		return err
	}
	if err := c.Notify.validate(); err != nil {
		return err
	}
	if err := c.Pipeline.validate(); err != nil {
		return err
	}
	return nil
}

func (a *AIConfig) validate() error {
	if strings.TrimSpace(a.APIKey) == "" {
		return fmt.Errorf("ai.api_key is required (or set OPENROUTER_API_KEY)")
	}
	if strings.TrimSpace(a.Model) == "" {
		return fmt.Errorf("ai.model is required")
	}
	return nil
}

func (n *NotifyConfig) validate() error {
	if !n.Telegram.Enabled {
		return nil
	}
	if strings.TrimSpace(n.Telegram.BotToken) == "" {
		return fmt.Errorf("notify.telegram.bot_token is required when telegram is enabled")
	}
	if strings.TrimSpace(n.Telegram.ChatID) == "" {
		return fmt.Errorf("notify.telegram.chat_id is required when telegram is enabled")
	}
	return nil
}

func (p *PipelineConfig) validate() error {
	switch p.Mode {
	case "full", "batch":
	default:
		return fmt.Errorf("pipeline.mode must be \"full\" or \"batch\", got %q", p.Mode)
	}
	if p.AlertThreshold > 100 {
		return fmt.Errorf("pipeline.alert_threshold must be <= 100")
	}
	return nil
}
