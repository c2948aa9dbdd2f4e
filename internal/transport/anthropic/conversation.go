package anthropic

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const (
	DefaultModel     = "claude-3-haiku-20240307"
	DefaultMaxTokens = 1024
	SystemPrompt     = "You're the player of 3D Tic Tac Toe game."
)

var ErrEmptyReply = errors.New("model returned no text")

type messageCreator interface {
	New(ctx context.Context, body sdk.MessageNewParams, opts ...option.RequestOption) (*sdk.Message, error)
}

type Config struct {
	Model     string
	MaxTokens int64
	System    string
}

// Conversation keeps the whole exchange with the model, one Messages API call
// per Send.
type Conversation struct {
	messages messageCreator
	conf     Config
	history  []sdk.MessageParam
}

// New - creates a conversation backed by the Anthropic API. Retries are left to
// the caller.
func New(apiKey string, conf Config) *Conversation {
	client := sdk.NewClient(option.WithAPIKey(apiKey), option.WithMaxRetries(0))

	return newConversation(&client.Messages, conf)
}

func newConversation(messages messageCreator, conf Config) *Conversation {
	if conf.Model == "" {
		conf.Model = DefaultModel
	}

	if conf.MaxTokens <= 0 {
		conf.MaxTokens = DefaultMaxTokens
	}

	if conf.System == "" {
		conf.System = SystemPrompt
	}

	return &Conversation{
		messages: messages,
		conf:     conf,
	}
}

// Send - appends prompt as a user turn and returns the model's text. A failed
// call leaves the history as it was.
func (that *Conversation) Send(ctx context.Context, prompt string) (string, error) {
	turn := make([]sdk.MessageParam, 0, len(that.history)+2)
	turn = append(turn, that.history...)
	turn = append(turn, sdk.NewUserMessage(sdk.NewTextBlock(prompt)))

	msg, err := that.messages.New(ctx, sdk.MessageNewParams{
		Model:     sdk.Model(that.conf.Model),
		MaxTokens: that.conf.MaxTokens,
		System:    []sdk.TextBlockParam{{Text: that.conf.System}},
		Messages:  turn,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create message: %w", err)
	}

	reply := replyText(msg)
	if reply == "" {
		return "", fmt.Errorf("%w: stop reason %q", ErrEmptyReply, msg.StopReason)
	}

	that.history = append(turn, sdk.NewAssistantMessage(sdk.NewTextBlock(reply)))

	return reply, nil
}

// Turns returns the number of completed exchanges.
func (that *Conversation) Turns() int {
	return len(that.history) / 2
}

func replyText(msg *sdk.Message) string {
	var sb strings.Builder

	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}

	return strings.TrimSpace(sb.String())
}
