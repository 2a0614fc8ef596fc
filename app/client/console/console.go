package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"politix/app/service/queue"

	"github.com/samber/do"
)

const maxLineSize = 1024 * 1024

// Client reads user lines from stdin and feeds them to the queue.
type Client struct {
	in       io.Reader
	queueSvc *queue.Service
}

func NewClient(di *do.Injector) (*Client, error) {
	return NewReader(os.Stdin, do.MustInvoke[*queue.Service](di)), nil
}

func NewReader(in io.Reader, queueSvc *queue.Service) *Client {
	return &Client{
		in:       in,
		queueSvc: queueSvc,
	}
}

// Run pushes every line until input ends or ctx is cancelled, then closes the queue.
func (c *Client) Run(ctx context.Context) error {
	defer c.queueSvc.Close()

	scanner := bufio.NewScanner(c.in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	for scanner.Scan() {
		if !c.queueSvc.Push(ctx, scanner.Text()) {
			return ctx.Err()
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	slog.Debug("Input closed")

	return nil
}
