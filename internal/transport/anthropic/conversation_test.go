package anthropic

import (
	"context"
	"errors"
	"testing"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errOverloaded = errors.New("overloaded")

type fakeMessages struct {
	requests []sdk.MessageNewParams
	replies  []*sdk.Message
	errs     []error
}

func (that *fakeMessages) New(_ context.Context, body sdk.MessageNewParams, _ ...option.RequestOption) (*sdk.Message, error) {
	n := len(that.requests)
	that.requests = append(that.requests, body)

	if n < len(that.errs) && that.errs[n] != nil {
		return nil, that.errs[n]
	}

	return that.replies[n], nil
}

func textMessage(text string) *sdk.Message {
	return &sdk.Message{
		Content: []sdk.ContentBlockUnion{{Type: "text", Text: text}},
	}
}

func TestConversation_Send(t *testing.T) {
	ctx := context.Background()

	t.Run("Uses the configured model and system prompt", func(t *testing.T) {
		// Given: a conversation with defaults
		fake := &fakeMessages{replies: []*sdk.Message{textMessage("14")}}
		conv := newConversation(fake, Config{})

		// When: the first prompt is sent
		reply, err := conv.Send(ctx, "Current board ...")

		// Then: the request carries the defaults and the reply text is returned
		require.NoError(t, err)
		assert.Equal(t, "14", reply)
		require.Len(t, fake.requests, 1)

		req := fake.requests[0]
		assert.Equal(t, sdk.Model(DefaultModel), req.Model)
		assert.Equal(t, int64(DefaultMaxTokens), req.MaxTokens)
		require.Len(t, req.System, 1)
		assert.Equal(t, SystemPrompt, req.System[0].Text)
		require.Len(t, req.Messages, 1)
		assert.Equal(t, sdk.MessageParamRoleUser, req.Messages[0].Role)
	})

	t.Run("Keeps the history between turns", func(t *testing.T) {
		fake := &fakeMessages{replies: []*sdk.Message{textMessage("14"), textMessage("1")}}
		conv := newConversation(fake, Config{Model: "claude-test", MaxTokens: 16})

		_, err := conv.Send(ctx, "first")
		require.NoError(t, err)
		_, err = conv.Send(ctx, "second")
		require.NoError(t, err)

		second := fake.requests[1]
		require.Len(t, second.Messages, 3)
		assert.Equal(t, sdk.MessageParamRoleUser, second.Messages[0].Role)
		assert.Equal(t, sdk.MessageParamRoleAssistant, second.Messages[1].Role)
		assert.Equal(t, sdk.MessageParamRoleUser, second.Messages[2].Role)
		assert.Equal(t, 2, conv.Turns())
	})

	t.Run("Failed turn is rolled back", func(t *testing.T) {
		// Given: the API fails once then recovers
		fake := &fakeMessages{
			replies: []*sdk.Message{nil, textMessage("5")},
			errs:    []error{errOverloaded},
		}
		conv := newConversation(fake, Config{})

		// When: the first send fails and the second succeeds
		_, err := conv.Send(ctx, "first")
		require.ErrorIs(t, err, errOverloaded)

		reply, err := conv.Send(ctx, "again")

		// Then: the failed prompt never reaches the history
		require.NoError(t, err)
		assert.Equal(t, "5", reply)
		assert.Len(t, fake.requests[1].Messages, 1)
		assert.Equal(t, 1, conv.Turns())
	})

	t.Run("Concatenates text blocks and skips the rest", func(t *testing.T) {
		msg := &sdk.Message{Content: []sdk.ContentBlockUnion{
			{Type: "thinking"},
			{Type: "text", Text: " 2"},
			{Type: "text", Text: "7 "},
		}}
		conv := newConversation(&fakeMessages{replies: []*sdk.Message{msg}}, Config{})

		reply, err := conv.Send(ctx, "prompt")

		require.NoError(t, err)
		assert.Equal(t, "27", reply)
	})

	t.Run("Reply without text is an error", func(t *testing.T) {
		conv := newConversation(&fakeMessages{replies: []*sdk.Message{{}}}, Config{})

		_, err := conv.Send(ctx, "prompt")

		require.ErrorIs(t, err, ErrEmptyReply)
		assert.Zero(t, conv.Turns())
	})
}
