package mailservice

import (
	"fmt"
	"time"

	"github.com/go-mail/mail/v2"
)

const dialTimeout = 5 * time.Second

// NewMailer sends through the SMTP server at host:port, signing every message as sender.
func NewMailer(host string, port int, username, password, sender string, r Renderer) *Mail {
	dialer := mail.NewDialer(host, port, username, password)
	dialer.Timeout = dialTimeout

	return &Mail{
		dialer:   dialer,
		renderer: r,
		sender:   sender,
	}
}

// send renders templateFile with data and delivers it to recipient as a multipart text and HTML email.
func (m *Mail) send(recipient string, data any, templateFile string) error {
	rendered, err := m.renderer.Render(templateFile, data)
	if err != nil {
		return err
	}

	if err := m.dialer.DialAndSend(m.compose(recipient, rendered)); err != nil {
		return fmt.Errorf("could not send %s to %s: %w", templateFile, recipient, err)
	}

	return nil
}

func (m *Mail) compose(recipient string, rendered *Message) *mail.Message {
	msg := mail.NewMessage()
	msg.SetHeaders(map[string][]string{
		"From":    {m.sender},
		"To":      {recipient},
		"Subject": {rendered.Subject},
	})
	msg.SetBody("text/plain", rendered.PlainBody)
	msg.AddAlternative("text/html", rendered.HTMLBody)

	return msg
}
