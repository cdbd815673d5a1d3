package mailservice

import (
	"context"
	"time"

	"github.com/go-mail/mail/v2"
	"github.com/sushihentaime/bloglist/internal/common"
)

const welcomeTemplate = "welcome_email.html"

type MailService struct {
	mb         common.MessageConsumer
	m          Mailer
	logger     MailLogger
	maxRetries int
	baseDelay  time.Duration
	ctx        context.Context
	cancel     context.CancelFunc
}

type MailLogger interface {
	Error(msg string, args ...any)
	Info(msg string, args ...any)
}

type Mail struct {
	dialer   Dialer
	renderer Renderer
	sender   string
}

type Mailer interface {
	send(recipient string, data any, templateFile string) error
}

type Dialer interface {
	DialAndSend(m ...*mail.Message) error
}

type Renderer interface {
	Render(name string, data any) (*Message, error)
}

// welcomeData is rendered into the welcome email template.
type welcomeData struct {
	Username string
	Name     string
}
