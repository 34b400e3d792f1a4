// Package genai wraps the OpenAI API for podcast script and cover-art generation.
package genai

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

const (
	scriptSystemPrompt = "You are a professional podcast script writer. Create engaging, well-structured content that flows naturally when spoken."

	scriptUserPrompt = `Write a podcast script about %s. Include:
- A catchy introduction
- Clear main points
- Engaging examples or stories
- A strong conclusion
Keep it under 5 minutes when read aloud.`

	thumbnailPrompt = "A professional podcast cover art for a podcast about %s. Modern, minimal style."
)

// Client generates podcast scripts via chat completion and cover thumbnails
// via image generation.
type Client struct {
	api *openai.Client
}

func NewClient(apiKey string) *Client {
	return &Client{api: openai.NewClient(apiKey)}
}

// GenerateScript produces the spoken-word script for a topic.
func (c *Client) GenerateScript(ctx context.Context, topic string) (string, error) {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: openai.GPT3Dot5Turbo,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: scriptSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf(scriptUserPrompt, topic)},
		},
	})
	if err != nil {
		return "", fmt.Errorf("script generation: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("script generation: empty response")
	}
	return resp.Choices[0].Message.Content, nil
}

// GenerateThumbnail produces cover art for a topic and returns a temporary
// URL owned by the vendor; callers must copy the image somewhere durable.
func (c *Client) GenerateThumbnail(ctx context.Context, topic string) (string, error) {
	resp, err := c.api.CreateImage(ctx, openai.ImageRequest{
		Prompt: fmt.Sprintf(thumbnailPrompt, topic),
		N:      1,
		Size:   openai.CreateImageSize1024x1024,
	})
	if err != nil {
		return "", fmt.Errorf("thumbnail generation: %w", err)
	}
	if len(resp.Data) == 0 {
		return "", errors.New("thumbnail generation: empty response")
	}
	return resp.Data[0].URL, nil
}
