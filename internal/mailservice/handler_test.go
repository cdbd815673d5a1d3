package mailservice

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/sushihentaime/bloglist/internal/common"
)

func newTestService(mc common.MessageConsumer, m Mailer) *MailService {
	ctx, cancel := context.WithCancel(context.Background())
	return &MailService{
		mb:         mc,
		m:          m,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		maxRetries: 3,
		baseDelay:  time.Millisecond,
		ctx:        ctx,
		cancel:     cancel,
	}
}

func TestHandle(t *testing.T) {
	testCases := []struct {
		name        string
		body        string
		sendErrs    []error
		sends       int
		expectedErr error
		wantErr     bool
	}{
		{
			name:     "sent first time",
			body:     `{"email":"test@example.com","username":"root","name":"Superuser"}`,
			sendErrs: []error{nil},
			sends:    1,
		},
		{
			name:     "sent after retry",
			body:     `{"email":"test@example.com","username":"root","name":"Superuser"}`,
			sendErrs: []error{errors.New("smtp down"), nil},
			sends:    2,
		},
		{
			name:     "gives up",
			body:     `{"email":"test@example.com","username":"root","name":"Superuser"}`,
			sendErrs: []error{errors.New("smtp down"), errors.New("smtp down"), errors.New("smtp down")},
			sends:    3,
			wantErr:  true,
		},
		{
			name:        "no email",
			body:        `{"username":"root"}`,
			expectedErr: ErrNoRecipient,
		},
		{
			name:    "malformed body",
			body:    `{"email":`,
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mailer := new(MockMailer)
			for _, err := range tc.sendErrs {
				mailer.On("send", "test@example.com", welcomeData{Username: "root", Name: "Superuser"}, welcomeTemplate).Return(err).Once()
			}

			s := newTestService(nil, mailer)
			defer s.Close()

			err := s.handle([]byte(tc.body))
			switch {
			case tc.expectedErr != nil:
				assert.ErrorIs(t, err, tc.expectedErr)
			case tc.wantErr:
				assert.Error(t, err)
			default:
				assert.NoError(t, err)
			}

			mailer.AssertNumberOfCalls(t, "send", tc.sends)
		})
	}
}

func TestHandle_StopsOnClose(t *testing.T) {
	mailer := new(MockMailer)
	mailer.On("send", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("smtp down"))

	s := newTestService(nil, mailer)
	s.baseDelay = time.Hour
	s.Close()

	err := s.handle([]byte(`{"email":"test@example.com","username":"root"}`))
	assert.ErrorIs(t, err, context.Canceled)
	mailer.AssertNumberOfCalls(t, "send", 1)
}

func TestSendWelcomeEmail(t *testing.T) {
	acks := newAckRecorder(2)
	mc := &MockMessageConsumer{
		bodies: [][]byte{
			[]byte(`{"email":"test@example.com","username":"root","name":"Superuser"}`),
			[]byte(`not json`),
		},
		acks: acks,
	}
	mc.On("Consume", common.UserCreatedKey, common.UserExchange, common.UserCreatedQueue).Return(nil)

	mailer := new(MockMailer)
	mailer.On("send", "test@example.com", welcomeData{Username: "root", Name: "Superuser"}, welcomeTemplate).Return(nil).Once()

	s := newTestService(mc, mailer)
	t.Cleanup(s.Close)

	require.NoError(t, s.SendWelcomeEmail())

	select {
	case <-acks.done:
	case <-time.After(5 * time.Second):
		t.Fatal("messages were not acked")
	}

	// every delivery is acked, including the one that failed
	assert.Equal(t, []uint64{1, 2}, acks.tags)
	mc.AssertExpectations(t)
	mailer.AssertExpectations(t)
}

func TestSendWelcomeEmail_ConsumeError(t *testing.T) {
	mc := &MockMessageConsumer{}
	mc.On("Consume", common.UserCreatedKey, common.UserExchange, common.UserCreatedQueue).Return(errors.New("channel closed"))

	s := newTestService(mc, new(MockMailer))
	t.Cleanup(s.Close)

	assert.Error(t, s.SendWelcomeEmail())
}
