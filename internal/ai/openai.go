package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"statboard/internal/table"
)

var ErrDisabled = errors.New("openai disabled")

// Client asks a chat model to describe what the visible table shows.
type Client struct {
	apiKey  string
	baseURL string
	model   string
	timeout time.Duration
}

func NewClient(apiKey, baseURL, model string, timeout time.Duration) *Client {
	return &Client{apiKey: apiKey, baseURL: baseURL, model: model, timeout: timeout}
}

// Summarize returns a short plain-text reading of a prompt built with
// BuildPrompt.
func (c *Client) Summarize(ctx context.Context, prompt string) (string, error) {
	if c == nil || c.apiKey == "" {
		return "", ErrDisabled
	}
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	cfg := openai.DefaultConfig(c.apiKey)
	if c.baseURL != "" {
		cfg.BaseURL = c.baseURL
	}
	cli := openai.NewClientWithConfig(cfg)
	resp, err := cli.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: "You read commission statistics tables and answer in at most six short sentences of plain text. No markdown."},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.2,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("empty choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// BuildPrompt renders up to maxRows visible rows as a pipe table together
// with the active sort and filters.
func BuildPrompt(t *table.Table, maxRows int) string {
	v := t.View()
	cols := v.VisibleColumns()
	var b strings.Builder
	tot := t.Totals()
	fmt.Fprintf(&b, "Totals: %d commissions, %d pictures.\n", tot.Commissions, tot.Thumbnails)
	if s := t.Sort(); len(s) > 0 {
		names := make([]string, len(s))
		for i, k := range s {
			names[i] = fmt.Sprintf("%s %s", v.Headers[k.Column].Title, k.Direction)
		}
		fmt.Fprintf(&b, "Sorted by: %s.\n", strings.Join(names, ", "))
	}
	for _, ctl := range v.Controls {
		if ctl.Value != "" {
			fmt.Fprintf(&b, "Filter %s: %q.\n", v.Headers[ctl.Column].Title, ctl.Value)
		}
	}
	if w := t.Where(); w != "" {
		fmt.Fprintf(&b, "Where: %s.\n", w)
	}
	titles := make([]string, len(cols))
	for i, c := range cols {
		titles[i] = v.Headers[c].Title
	}
	b.WriteString(strings.Join(titles, " | "))
	b.WriteByte('\n')
	n := 0
	for _, br := range v.Body {
		if br.Hidden {
			continue
		}
		if n == maxRows {
			fmt.Fprintf(&b, "(%d more rows)\n", t.VisibleCount()-n)
			break
		}
		cells := make([]string, len(cols))
		for i, c := range cols {
			cells[i] = br.Cells[c]
		}
		b.WriteString(strings.Join(cells, " | "))
		b.WriteByte('\n')
		n++
	}
	return b.String()
}
