package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const DefaultModel = "gemini-1.5-flash"

var ErrEmptyReply = errors.New("model returned no text")

type chatSession interface {
	SendMessage(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
	HistoryLen() int
	TruncateHistory(n int)
}

// sdkSession exposes the history of a genai.ChatSession. SendMessage records
// the user turn before the call and keeps it when the call fails.
type sdkSession struct {
	*genai.ChatSession
}

func (that sdkSession) HistoryLen() int {
	return len(that.History)
}

func (that sdkSession) TruncateHistory(n int) {
	if n < len(that.History) {
		that.History = that.History[:n]
	}
}

// Conversation is a Gemini chat session. The SDK keeps the history.
type Conversation struct {
	session chatSession
	close   func() error
}

func New(ctx context.Context, apiKey, model string) (*Conversation, error) {
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &Conversation{
		session: sdkSession{ChatSession: client.GenerativeModel(model).StartChat()},
		close:   client.Close,
	}, nil
}

// Send - sends prompt in the chat. A failed or empty exchange is dropped from
// the history so a retry does not repeat the prompt.
func (that *Conversation) Send(ctx context.Context, prompt string) (string, error) {
	turns := that.session.HistoryLen()

	resp, err := that.session.SendMessage(ctx, genai.Text(prompt))
	if err != nil {
		that.session.TruncateHistory(turns)
		return "", fmt.Errorf("failed to send message: %w", err)
	}

	reply := responseText(resp)
	if reply == "" {
		that.session.TruncateHistory(turns)
		return "", ErrEmptyReply
	}

	return reply, nil
}

func (that *Conversation) Close() error {
	if that.close == nil {
		return nil
	}

	return that.close()
}

// responseText joins the text parts of the first candidate that has content.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}

	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}

		var sb strings.Builder
		for _, part := range candidate.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				sb.WriteString(string(text))
			}
		}

		return strings.TrimSpace(sb.String())
	}

	return ""
}
