package notifier

import "context"

// TextNotifier defines a minimal text notification interface.
// It is intentionally small so different components can depend on it without
// importing concrete implementations (e.g. Telegram). The context bounds the
// whole delivery attempt, retries included.
type TextNotifier interface {
	SendText(ctx context.Context, text string) error
}
