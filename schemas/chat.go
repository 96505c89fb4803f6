package schemas

import (
	"encoding/json"
	"fmt"
	"time"
)

// TextContent is a plain text part inside a structured message content.
type TextContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// ImageContent is an inline image part. Data is base64, optionally with a
// data-URI prefix.
type ImageContent struct {
	Type     string `json:"type"`
	Data     string `json:"data"`
	MimeType string `json:"mime_type"`
}

// ContentPart is one element of a structured message content list.
// Exactly one of Text or Image is set, keyed by the "type" discriminator.
type ContentPart struct {
	Text  *TextContent
	Image *ImageContent
}

func (p *ContentPart) UnmarshalJSON(data []byte) error {
	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}
	switch probe.Type {
	case "image":
		var img ImageContent
		if err := json.Unmarshal(data, &img); err != nil {
			return err
		}
		p.Image = &img
	case "text", "":
		var txt TextContent
		if err := json.Unmarshal(data, &txt); err != nil {
			return err
		}
		p.Text = &txt
	default:
		return fmt.Errorf("unknown content part type %q", probe.Type)
	}
	return nil
}

func (p ContentPart) MarshalJSON() ([]byte, error) {
	if p.Image != nil {
		img := *p.Image
		img.Type = "image"
		return json.Marshal(img)
	}
	txt := TextContent{Type: "text"}
	if p.Text != nil {
		txt.Text = p.Text.Text
	}
	return json.Marshal(txt)
}

// MessageContent accepts either a plain JSON string or a list of typed parts,
// mirroring the frontend's message shape.
type MessageContent struct {
	Plain string
	Parts []ContentPart
	// IsPlain distinguishes an empty plain string from an empty part list.
	IsPlain bool
}

func PlainContent(text string) MessageContent {
	return MessageContent{Plain: text, IsPlain: true}
}

func PartsContent(parts ...ContentPart) MessageContent {
	return MessageContent{Parts: parts}
}

func (c *MessageContent) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		c.Plain = s
		c.IsPlain = true
		c.Parts = nil
		return nil
	}
	var parts []ContentPart
	if err := json.Unmarshal(data, &parts); err != nil {
		return fmt.Errorf("content must be a string or a list of parts: %w", err)
	}
	c.Parts = parts
	c.IsPlain = false
	return nil
}

func (c MessageContent) MarshalJSON() ([]byte, error) {
	if c.IsPlain {
		return json.Marshal(c.Plain)
	}
	return json.Marshal(c.Parts)
}

// ChatMessage is one conversation turn.
type ChatMessage struct {
	Role      string         `json:"role"`
	Content   MessageContent `json:"content"`
	Timestamp *time.Time     `json:"timestamp,omitempty"`
}

// ChatRequest carries the prior conversation and the turns being submitted.
type ChatRequest struct {
	HistoryMessages []ChatMessage `json:"history_messages"`
	Messages        []ChatMessage `json:"messages"`
}

// ToolCall is the audit record of one dispatched tool invocation.
type ToolCall struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
	Result    string         `json:"result"`
}

// ChatStreamChunk is one unit of the conversation engine's output stream:
// either a text fragment or a dispatched tool call.
type ChatStreamChunk struct {
	Type     string    `json:"type"` // "text" or "tool_call"
	Content  string    `json:"content"`
	ToolCall *ToolCall `json:"tool_call,omitempty"`
}

// SSE payloads, one per event type on the chat stream.

type SSEConnectedEvent struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type SSEMessageEvent struct {
	Type      string `json:"type"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

type SSEToolCallEvent struct {
	Type      string    `json:"type"`
	Content   string    `json:"content"`
	ToolCall  *ToolCall `json:"tool_call"`
	Timestamp string    `json:"timestamp"`
}

type SSEErrorEvent struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	ErrorType string `json:"error_type"`
}

type SSEDoneEvent struct {
	Status string `json:"status"`
}
