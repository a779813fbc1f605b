package notifier

import (
	"fmt"
	"strings"
	"time"
)

const maxAlertMessageLen = 3800

// AlertMessage is the structured Telegram push for a high-confidence insight.
type AlertMessage struct {
	Symbol    string
	Score     int
	Insight   string
	Timestamp time.Time
}

// RenderMarkdown produces the alert body, clipped to Telegram's limits.
func (m AlertMessage) RenderMarkdown() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🚨 *%s Institutional Insight* 🚨\n", strings.ToUpper(strings.TrimSpace(m.Symbol))))
	b.WriteString(fmt.Sprintf("Confidence: %d%%\n\n", m.Score))
	if insight := strings.TrimSpace(m.Insight); insight != "" {
		b.WriteString(sanitize(insight))
		b.WriteString("\n")
	}
	if !m.Timestamp.IsZero() {
		b.WriteString("\n")
		b.WriteString(m.Timestamp.UTC().Format("2006-01-02 15:04:05 MST"))
	}
	body := strings.TrimSpace(b.String())
	if len(body) > maxAlertMessageLen {
		body = body[:maxAlertMessageLen] + "..."
	}
	return body
}

func sanitize(s string) string {
	s = strings.ReplaceAll(s, "```", "'''")
	return s
}
