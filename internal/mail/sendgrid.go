package mail

import (
	"log/slog"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

type SendgridSender struct {
	client     *sendgrid.Client
	from       *sgmail.Email
	subjPrefix string
}

var _ Sender = (*SendgridSender)(nil)

func NewSendgridSender(apiKey, appName, fromEmail string) *SendgridSender {
	return &SendgridSender{
		client:     sendgrid.NewSendClient(apiKey),
		from:       sgmail.NewEmail(appName, fromEmail),
		subjPrefix: "[" + appName + "] ",
	}
}

func (s *SendgridSender) Send(msg Message) {
	go func() {
		m := sgmail.NewSingleEmail(
			s.from,
			s.subjPrefix+msg.Subject,
			sgmail.NewEmail(msg.ToName, msg.To),
			msg.Body,
			"",
		)
		resp, err := s.client.Send(m)
		if err != nil {
			slog.Error("sendgrid send failed", "to", msg.To, "err", err)
			return
		}
		if resp.StatusCode >= 400 {
			slog.Error("sendgrid rejected message", "to", msg.To, "status", resp.StatusCode)
		}
	}()
}
