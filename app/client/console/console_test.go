package console

import (
	"strings"
	"testing"

	"politix/app/service/queue"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_PushesLinesAndCloses(t *testing.T) {
	queueSvc := queue.NewService()
	reader := NewReader(strings.NewReader("hello\r\n\nwhat about elections?\nbye"), queueSvc)

	require.NoError(t, reader.Run(t.Context()))

	var got []string
	for {
		msg, ok, err := queueSvc.Next(t.Context())
		require.NoError(t, err)
		if !ok {
			break
		}
		got = append(got, msg.Text)
	}

	assert.Equal(t, []string{"hello", "", "what about elections?", "bye"}, got)
}
