package ai

import (
	"context"

	"github.com/rs/zerolog"
	"google.golang.org/genai"

	"github.com/Nat1anWasTaken/sitcon-camp-2025/schemas"
)

// Canned responses for the failure paths.
const (
	noResponseText    = "無法產生回應"
	generalErrorText  = "抱歉，發生錯誤，請稍後再試。"
	toolFollowUpText  = "處理工具回應時發生錯誤"
	functionTurnRole  = "function"
	resultResponseKey = "result"
)

// ToolHandler dispatches the model's function calls and owns the matching
// declaration catalog.
type ToolHandler interface {
	Tools() []*genai.Tool
	HandleToolCall(call *genai.FunctionCall) (string, schemas.ToolCall)
}

// Engine runs conversations against the model backend.
type Engine struct {
	gen Generator
	log zerolog.Logger
}

func NewEngine(gen Generator, logger zerolog.Logger) *Engine {
	return &Engine{gen: gen, log: logger}
}

// StreamChat streams a plain conversation with no tool access. The returned
// channel is closed when the conversation ends or ctx is cancelled.
func (e *Engine) StreamChat(ctx context.Context, history, messages []schemas.ChatMessage, systemPrompt string) <-chan schemas.ChatStreamChunk {
	ch := make(chan schemas.ChatStreamChunk)
	go func() {
		defer close(ch)
		contents, err := BuildContents(history, messages, systemPrompt)
		if err != nil {
			e.log.Warn().Err(err).Msg("failed to build chat contents")
			emit(ctx, ch, textChunk(generalErrorText))
			return
		}
		e.streamPlain(ctx, ch, contents)
	}()
	return ch
}

// StreamChatWithTools runs the two-phase tool cycle:
//
//  1. a non-streaming generation with the tool catalog attached
//  2. dispatch of every function call, each emitted as a tool_call chunk
//     at dispatch time so partial results survive a later failure
//  3. a follow-up generation over the replayed turns, without tools
//
// When the first generation fails the cycle degrades to plain streaming
// over the same turns.
func (e *Engine) StreamChatWithTools(ctx context.Context, history, messages []schemas.ChatMessage, systemPrompt string, handler ToolHandler) <-chan schemas.ChatStreamChunk {
	ch := make(chan schemas.ChatStreamChunk)
	go func() {
		defer close(ch)

		contents, err := BuildContents(history, messages, systemPrompt)
		if err != nil {
			e.log.Warn().Err(err).Msg("failed to build chat contents")
			emit(ctx, ch, textChunk(generalErrorText))
			return
		}

		resp, err := e.gen.GenerateContent(ctx, contents, generationConfig(handler.Tools()))
		if err != nil {
			e.log.Warn().Err(err).Msg("tooled generation failed, falling back to plain streaming")
			e.streamPlain(ctx, ch, contents)
			return
		}

		candidate := firstCandidate(resp)
		if candidate == nil || len(candidate.Content.Parts) == 0 {
			emit(ctx, ch, textChunk(noResponseText))
			return
		}

		var responseParts []*genai.Part
		for _, part := range candidate.Content.Parts {
			switch {
			case part.FunctionCall != nil:
				result, record := handler.HandleToolCall(part.FunctionCall)
				e.log.Debug().Str("tool", record.Name).Msg("tool call dispatched")
				if !emit(ctx, ch, toolChunk(record)) {
					return
				}
				// only named calls get a response replayed to the model
				if part.FunctionCall.Name != "" {
					responseParts = append(responseParts, genai.NewPartFromFunctionResponse(
						record.Name, map[string]any{resultResponseKey: result}))
				}
			case part.Text != "":
				if !emit(ctx, ch, textChunk(part.Text)) {
					return
				}
			}
		}
		if len(responseParts) == 0 {
			return
		}

		contents = append(contents, candidate.Content, &genai.Content{
			Role:  functionTurnRole,
			Parts: responseParts,
		})
		final, err := e.gen.GenerateContent(ctx, contents, generationConfig(nil))
		if err != nil {
			e.log.Warn().Err(err).Msg("follow-up generation failed")
			emit(ctx, ch, textChunk(toolFollowUpText))
			return
		}
		e.emitText(ctx, ch, final)
	}()
	return ch
}

// streamPlain streams a tool-less generation over prebuilt contents.
func (e *Engine) streamPlain(ctx context.Context, ch chan<- schemas.ChatStreamChunk, contents []*genai.Content) {
	for resp, err := range e.gen.GenerateContentStream(ctx, contents, generationConfig(nil)) {
		if err != nil {
			e.log.Warn().Err(err).Msg("streaming generation failed")
			emit(ctx, ch, textChunk(generalErrorText))
			return
		}
		candidate := firstCandidate(resp)
		if candidate == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part.Text == "" {
				continue
			}
			if !emit(ctx, ch, textChunk(part.Text)) {
				return
			}
		}
	}
}

// emitText emits the text parts of a non-streaming response, falling back
// to the canned no-response message when there are none.
func (e *Engine) emitText(ctx context.Context, ch chan<- schemas.ChatStreamChunk, resp *genai.GenerateContentResponse) {
	candidate := firstCandidate(resp)
	if candidate == nil || len(candidate.Content.Parts) == 0 {
		emit(ctx, ch, textChunk(noResponseText))
		return
	}
	emitted := false
	for _, part := range candidate.Content.Parts {
		if part.Text == "" {
			continue
		}
		if !emit(ctx, ch, textChunk(part.Text)) {
			return
		}
		emitted = true
	}
	if !emitted {
		emit(ctx, ch, textChunk(noResponseText))
	}
}

func firstCandidate(resp *genai.GenerateContentResponse) *genai.Candidate {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil
	}
	return resp.Candidates[0]
}

func textChunk(content string) schemas.ChatStreamChunk {
	return schemas.ChatStreamChunk{Type: "text", Content: content}
}

func toolChunk(record schemas.ToolCall) schemas.ChatStreamChunk {
	return schemas.ChatStreamChunk{Type: "tool_call", Content: record.Result, ToolCall: &record}
}

func emit(ctx context.Context, ch chan<- schemas.ChatStreamChunk, chunk schemas.ChatStreamChunk) bool {
	select {
	case ch <- chunk:
		return true
	case <-ctx.Done():
		return false
	}
}
