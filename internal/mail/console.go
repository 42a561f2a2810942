package mail

import "log/slog"

// ConsoleSender logs mail instead of sending it. Used in development and
// whenever no SendGrid key is configured.
type ConsoleSender struct {
	subjPrefix string
}

var _ Sender = (*ConsoleSender)(nil)

func NewConsoleSender(appName string) *ConsoleSender {
	return &ConsoleSender{subjPrefix: "[" + appName + "] "}
}

func (s *ConsoleSender) Send(msg Message) {
	slog.Info("mail (console)",
		"to", msg.To,
		"subject", s.subjPrefix+msg.Subject,
		"body", msg.Body,
	)
}
