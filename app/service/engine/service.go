package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"politix/app/config"
	"politix/app/service/conversation"
	"politix/app/service/queue"

	"github.com/google/uuid"
	"github.com/samber/do"
)

var ErrInputClosed = errors.New("input closed")

type Service struct {
	cfg             *config.Config
	out             io.Writer
	conversationSvc *conversation.Service
	queueSvc        *queue.Service
}

func New(di *do.Injector) (*Service, error) {
	return NewService(
		do.MustInvoke[*config.Config](di),
		os.Stdout,
		do.MustInvoke[*conversation.Service](di),
		do.MustInvoke[*queue.Service](di),
	), nil
}

func NewService(cfg *config.Config, out io.Writer, conversationSvc *conversation.Service, queueSvc *queue.Service) *Service {
	return &Service{
		cfg:             cfg,
		out:             out,
		conversationSvc: conversationSvc,
		queueSvc:        queueSvc,
	}
}

// Run greets the user and processes lines until the farewell. It returns nil only when the
// conversation ended with a farewell.
func (s *Service) Run(ctx context.Context) error {
	logger := slog.With("session", uuid.NewString())
	logger.Info("Conversation started")

	if _, err := fmt.Fprintf(s.out, "%s: %s\n", s.cfg.Bot.Name, s.cfg.Bot.Greeting); err != nil {
		return fmt.Errorf("failed to write greeting: %w", err)
	}

	for {
		if _, err := fmt.Fprint(s.out, s.cfg.Bot.Prompt); err != nil {
			return fmt.Errorf("failed to write prompt: %w", err)
		}

		msg, ok, err := s.queueSvc.Next(ctx)
		if err != nil || !ok {
			_, _ = fmt.Fprintln(s.out)
			if err != nil {
				logger.Info("Conversation interrupted")
				return err
			}
			logger.Info("Conversation ended, input closed")
			return ErrInputClosed
		}

		start := time.Now()

		status, err := s.conversationSvc.ProcessMessage(ctx, msg.Text)
		if err != nil {
			return fmt.Errorf("ProcessMessage: %w", err)
		}

		logger.Debug("Processed message",
			"text", msg.Text,
			"status", status,
			"duration", time.Since(start))

		if status == conversation.Terminated {
			logger.Info("Conversation finished")
			return nil
		}
	}
}
