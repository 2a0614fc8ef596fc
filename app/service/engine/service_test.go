package engine

import (
	"bytes"
	"context"
	"math/rand/v2"
	"strings"
	"testing"

	"politix/app/client/console"
	"politix/app/config"
	"politix/app/service/conversation"
	"politix/app/service/queue"
	"politix/app/service/responses"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T, input string) (*Service, *bytes.Buffer) {
	t.Helper()

	cfg := config.Default()
	cfg.Bot.Name = "Bot"

	var out bytes.Buffer
	conversationSvc := conversation.NewService(conversation.Deps{
		BotName: cfg.Bot.Name,
		Out:     &out,
		Table: responses.NewTable(map[string][]string{
			"default":   {"Hmm."},
			"elections": {"Vote!"},
			"farewell":  {"Bye!"},
		}),
		Picker: responses.NewPicker(rand.New(rand.NewPCG(3, 4))),
	})

	queueSvc := queue.NewService()
	require.NoError(t, console.NewReader(strings.NewReader(input), queueSvc).Run(t.Context()))

	return NewService(&cfg, &out, conversationSvc, queueSvc), &out
}

func TestRun_FarewellEndsConversation(t *testing.T) {
	s, out := newTestEngine(t, "elections?\n\nsay farewell\nnever read\n")

	require.NoError(t, s.Run(t.Context()))

	assert.Equal(t,
		"Bot: Hi! I'm your political chatbot. Ask me anything about politics.\n"+
			"You: Bot: Vote!\n"+
			"You: "+
			"You: Bot: Bye!\n",
		out.String())
}

func TestRun_InputClosed(t *testing.T) {
	s, out := newTestEngine(t, "hello\n")

	require.ErrorIs(t, s.Run(t.Context()), ErrInputClosed)
	assert.True(t, strings.HasSuffix(out.String(), "You: Bot: Hmm.\nYou: \n"))
}

func TestRun_Cancelled(t *testing.T) {
	cfg := config.Default()

	var out bytes.Buffer
	conversationSvc := conversation.NewService(conversation.Deps{
		BotName: cfg.Bot.Name,
		Out:     &out,
		Table:   responses.NewTable(map[string][]string{"default": {"Hmm."}}),
		Picker:  responses.NewPicker(nil),
	})

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	s := NewService(&cfg, &out, conversationSvc, queue.NewService())
	require.ErrorIs(t, s.Run(ctx), context.Canceled)
}
