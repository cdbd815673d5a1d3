package mailservice

import (
	"sync"

	"github.com/go-mail/mail/v2"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/mock"
	"github.com/sushihentaime/bloglist/internal/common"
)

type MockRenderer struct {
	mock.Mock
}

func (m *MockRenderer) Render(name string, data any) (*Message, error) {
	args := m.Called(name, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Message), args.Error(1)
}

type MockDialer struct {
	mock.Mock
}

func (d *MockDialer) DialAndSend(m ...*mail.Message) error {
	args := d.Called(m)
	return args.Error(0)
}

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) send(recipient string, data any, templateFile string) error {
	args := m.Called(recipient, data, templateFile)
	return args.Error(0)
}

// MockMessageConsumer delivers bodies once and then closes the channel.
type MockMessageConsumer struct {
	mock.Mock
	bodies [][]byte
	acks   *ackRecorder
}

func (m *MockMessageConsumer) Consume(key common.BindingKey, exchange common.Exchange, queue common.Queue) (<-chan amqp.Delivery, error) {
	args := m.Called(key, exchange, queue)
	if err := args.Error(0); err != nil {
		return nil, err
	}

	msgs := make(chan amqp.Delivery)
	go func() {
		defer close(msgs)
		for i, body := range m.bodies {
			msgs <- amqp.Delivery{Acknowledger: m.acks, DeliveryTag: uint64(i + 1), Body: body}
		}
	}()

	return msgs, nil
}

type ackRecorder struct {
	mu   sync.Mutex
	tags []uint64
	done chan struct{}
	want int
}

func newAckRecorder(want int) *ackRecorder {
	return &ackRecorder{done: make(chan struct{}), want: want}
}

func (a *ackRecorder) Ack(tag uint64, multiple bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.tags = append(a.tags, tag)
	if len(a.tags) == a.want {
		close(a.done)
	}
	return nil
}

func (a *ackRecorder) Nack(tag uint64, multiple, requeue bool) error {
	return nil
}

func (a *ackRecorder) Reject(tag uint64, requeue bool) error {
	return nil
}
