// Package notify dispatches outbound lead and account mail. Delivery is
// best-effort everywhere: callers log failures and move on.
package notify

import "github.com/rs/zerolog"

type Notifier interface {
	Notify(to, subject, body string) error
}

// ConsoleNotifier logs instead of sending; the dev default when no SMTP host
// is configured.
type ConsoleNotifier struct {
	Log zerolog.Logger
}

func (c ConsoleNotifier) Notify(to, subject, body string) error {
	c.Log.Info().Str("to", to).Str("subject", subject).Msg("notify (console)")
	return nil
}
