package queue

import (
	"context"
	"sync"

	"github.com/samber/do"
)

const bufferSize = 64

var _ do.Shutdownable = (*Service)(nil)

// Service hands user lines from the reader goroutine to the dialogue loop.
type Service struct {
	queue chan Message

	closeOnce sync.Once
	done      chan struct{}
}

type Message struct {
	Text string
}

func New(_ *do.Injector) (*Service, error) {
	return NewService(), nil
}

func NewService() *Service {
	return &Service{
		queue: make(chan Message, bufferSize),
		done:  make(chan struct{}),
	}
}

// Push blocks until the line is queued. It returns false when ctx ends or the queue is closed.
func (s *Service) Push(ctx context.Context, text string) bool {
	select {
	case <-s.done:
		return false
	default:
	}

	select {
	case s.queue <- Message{Text: text}:
		return true
	case <-s.done:
		return false
	case <-ctx.Done():
		return false
	}
}

// Close marks the end of input. Already queued lines are still delivered.
func (s *Service) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
	})
}

// Next returns the next line. ok is false once the queue is closed and drained.
func (s *Service) Next(ctx context.Context) (Message, bool, error) {
	select {
	case msg := <-s.queue:
		return msg, true, nil
	default:
	}

	select {
	case msg := <-s.queue:
		return msg, true, nil
	case <-s.done:
		select {
		case msg := <-s.queue:
			return msg, true, nil
		default:
			return Message{}, false, nil
		}
	case <-ctx.Done():
		return Message{}, false, ctx.Err()
	}
}

func (s *Service) Shutdown() error {
	s.Close()

	return nil
}
