package mailservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sushihentaime/bloglist/internal/common"
	"golang.org/x/exp/rand"
)

var ErrNoRecipient = errors.New("event has no email address")

func NewMailService(mb common.MessageConsumer, host, username, password, sender string, port int, logger *slog.Logger) *MailService {
	ctx, cancel := context.WithCancel(context.Background())
	return &MailService{
		mb:         mb,
		m:          NewMailer(host, port, username, password, sender, NewTemplate()),
		logger:     logger,
		maxRetries: 5,
		baseDelay:  500 * time.Millisecond,
		ctx:        ctx,
		cancel:     cancel,
	}
}

// SendWelcomeEmail consumes user.created events and mails each new user a welcome message.
// It returns once the consumer is running; deliveries are handled in the background until Close.
func (s *MailService) SendWelcomeEmail() error {
	msgs, err := s.mb.Consume(common.UserCreatedKey, common.UserExchange, common.UserCreatedQueue)
	if err != nil {
		return err
	}

	go func() {
		for {
			select {
			case msg, ok := <-msgs:
				if !ok {
					return
				}

				if err := s.handle(msg.Body); err != nil {
					s.logger.Error("could not send welcome email", slog.String("error", err.Error()))
				}

				// failed deliveries are dropped rather than requeued
				if err := msg.Ack(false); err != nil {
					s.logger.Error("could not ack message", slog.String("error", err.Error()))
				}

			case <-s.ctx.Done():
				s.logger.Info("stopping SendWelcomeEmail due to context cancellation")
				return
			}
		}
	}()

	return nil
}

// handle decodes one user.created event and sends the welcome email, retrying with
// exponential backoff and jitter.
func (s *MailService) handle(body []byte) error {
	var event common.UserCreatedEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return fmt.Errorf("could not unmarshal message: %w", err)
	}

	if event.Email == "" {
		return ErrNoRecipient
	}

	data := welcomeData{Username: event.Username, Name: event.Name}

	var err error
	for attempt := 0; attempt < s.maxRetries; attempt++ {
		err = s.m.send(event.Email, data, welcomeTemplate)
		if err == nil {
			s.logger.Info("welcome email sent", slog.String("email", event.Email))
			return nil
		}

		delay := time.Duration(rand.Int63n(int64(s.baseDelay) << uint(attempt)))
		s.logger.Info("delaying welcome email", slog.String("email", event.Email), slog.Int("attempt", attempt), slog.Duration("delay", delay))

		select {
		case <-time.After(delay):
		case <-s.ctx.Done():
			return s.ctx.Err()
		}
	}

	return fmt.Errorf("gave up on %s after %d attempts: %w", event.Email, s.maxRetries, err)
}

func (s *MailService) Close() {
	s.cancel()
}
